// Package report defines the tabular output contract of the simulation
// engine: one row per customer, one row per replication, and a merged
// cross-replication summary. External consumers (visualizers, result
// persistence) read these tables; column names and units are stable across
// runs. This package has no dependency on sim/ — it stores pure data types.
package report

// Abandonment kinds recorded on customer rows.
const (
	// AbandonBalked: lost on arrival, the queue was at capacity.
	AbandonBalked = "balked"
	// AbandonReneged: left the queue after its patience expired.
	AbandonReneged = "reneged"
)

// CustomerRow captures one customer's pass through the system. All times are
// in simulated time units. For abandoned customers ServiceTime is 0 and
// DepartureTime is the moment the customer was lost; WaitTime is the time
// spent queued before giving up (0 for balked customers).
type CustomerRow struct {
	Replication   int
	CustomerID    int64
	ArrivalTime   float64
	WaitTime      float64
	ServiceTime   float64
	DepartureTime float64
	Abandoned     bool
	AbandonKind   string // "balked", "reneged", or empty
}

// ReplicationRow captures one replication's aggregate metrics.
//
// Utilization and AvgQueueLength divide by the configured horizon, while the
// underlying integrals include work done draining past it. An overloaded run
// with a long drain can therefore report Utilization above 1; consumers must
// not assume [0,1].
type ReplicationRow struct {
	Replication    int
	RunID          string
	Arrivals       int64
	Departures     int64
	Balked         int64
	Reneged        int64
	MeanWait       float64
	MeanSojourn    float64
	AvgQueueLength float64
	Utilization    float64
	Throughput     float64
	AbandonRate    float64
	EndTime        float64
}

// ResultSet is the full output of a multi-replication run. Errors holds one
// entry per failed replication; rows from completed replications are always
// present and valid regardless of failures elsewhere.
type ResultSet struct {
	Customers    []CustomerRow
	Replications []ReplicationRow
	Summary      Summary
	Errors       []error
}
