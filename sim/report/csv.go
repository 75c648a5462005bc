package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Column orders below are the stable contract consumed by the external
// visualizer. Do not reorder or rename without versioning the contract.

var customerHeader = []string{
	"replication", "customer_id", "arrival_time", "wait_time",
	"service_time", "departure_time", "abandoned", "abandon_kind",
}

var replicationHeader = []string{
	"replication", "run_id", "arrivals", "departures", "balked", "reneged",
	"mean_wait", "mean_sojourn", "avg_queue_length", "utilization",
	"throughput", "abandonment_rate", "end_time",
}

// WriteCustomersCSV encodes the per-customer table. Float columns use a
// fixed 6-decimal format so identical runs are byte-identical.
func WriteCustomersCSV(w io.Writer, rows []CustomerRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(customerHeader); err != nil {
		return fmt.Errorf("write customers header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Replication),
			strconv.FormatInt(r.CustomerID, 10),
			formatTime(r.ArrivalTime),
			formatTime(r.WaitTime),
			formatTime(r.ServiceTime),
			formatTime(r.DepartureTime),
			strconv.FormatBool(r.Abandoned),
			r.AbandonKind,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write customer row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReplicationsCSV encodes the per-replication aggregate table.
func WriteReplicationsCSV(w io.Writer, rows []ReplicationRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(replicationHeader); err != nil {
		return fmt.Errorf("write replications header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Replication),
			r.RunID,
			strconv.FormatInt(r.Arrivals, 10),
			strconv.FormatInt(r.Departures, 10),
			strconv.FormatInt(r.Balked, 10),
			strconv.FormatInt(r.Reneged, 10),
			formatTime(r.MeanWait),
			formatTime(r.MeanSojourn),
			formatTime(r.AvgQueueLength),
			formatTime(r.Utilization),
			formatTime(r.Throughput),
			formatTime(r.AbandonRate),
			formatTime(r.EndTime),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write replication row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatTime(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
