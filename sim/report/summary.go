package report

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Estimate is a metric aggregated across replications.
type Estimate struct {
	Mean   float64
	StdDev float64
	// HalfWidth is the 95% confidence half-width (Student's t across
	// replications); 0 with fewer than 2 replications.
	HalfWidth float64
}

// Summary aggregates per-replication metrics into cross-replication
// estimates. Safe to compute from zero rows (all fields zero-valued).
type Summary struct {
	Replications   int
	MeanWait       Estimate
	MeanSojourn    Estimate
	AvgQueueLength Estimate
	Utilization    Estimate
	Throughput     Estimate
	AbandonRate    Estimate
}

// Summarize merges replication rows into a Summary. The merge is a plain
// associative reduction over independent replications; no simulation state
// is involved.
func Summarize(rows []ReplicationRow) Summary {
	s := Summary{Replications: len(rows)}
	if len(rows) == 0 {
		return s
	}
	s.MeanWait = estimate(collect(rows, func(r ReplicationRow) float64 { return r.MeanWait }))
	s.MeanSojourn = estimate(collect(rows, func(r ReplicationRow) float64 { return r.MeanSojourn }))
	s.AvgQueueLength = estimate(collect(rows, func(r ReplicationRow) float64 { return r.AvgQueueLength }))
	s.Utilization = estimate(collect(rows, func(r ReplicationRow) float64 { return r.Utilization }))
	s.Throughput = estimate(collect(rows, func(r ReplicationRow) float64 { return r.Throughput }))
	s.AbandonRate = estimate(collect(rows, func(r ReplicationRow) float64 { return r.AbandonRate }))
	return s
}

func collect(rows []ReplicationRow, f func(ReplicationRow) float64) []float64 {
	xs := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = f(r)
	}
	return xs
}

func estimate(xs []float64) Estimate {
	e := Estimate{Mean: stat.Mean(xs, nil)}
	if len(xs) < 2 {
		return e
	}
	e.StdDev = stat.StdDev(xs, nil)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(len(xs) - 1)}
	e.HalfWidth = t.Quantile(0.975) * e.StdDev / math.Sqrt(float64(len(xs)))
	return e
}
