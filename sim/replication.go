// Replication driver: runs independent replications (optionally in
// parallel), collects their tables and merges the summary.

package sim

import (
	"fmt"
	"sync"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/michalsciubisz/modele-kolejkowe/sim/report"
)

// ReplicationError wraps a failure confined to one replication.
type ReplicationError struct {
	Replication int
	Err         error
}

func (e *ReplicationError) Error() string {
	return fmt.Sprintf("replication %d: %v", e.Replication, e.Err)
}

func (e *ReplicationError) Unwrap() error {
	return e.Err
}

// RunReplications executes cfg.Replications independent replications,
// seeding replication i with cfg.Seed + i. Replications share no mutable
// state, so cfg.Parallelism of them may run concurrently; only the final
// merge touches shared data, after the join barrier.
//
// A replication that aborts (scheduler invariant violation) is recorded in
// ResultSet.Errors; rows from completed replications remain valid and are
// returned regardless. The returned error is non-nil only when the config is
// invalid or every replication failed.
func RunReplications(cfg Config) (*report.ResultSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := cfg.Parallelism
	if workers <= 0 {
		workers = 1
	}
	if workers > cfg.Replications {
		workers = cfg.Replications
	}

	type outcome struct {
		customers []report.CustomerRow
		row       report.ReplicationRow
		err       error
	}
	outcomes := make([]outcome, cfg.Replications)

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Replications; i++ {
		wg.Add(1)
		go func(rep int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			s, err := NewSimulator(cfg, rep, cfg.Seed+int64(rep))
			if err != nil {
				outcomes[rep].err = err
				return
			}
			if err := s.Run(); err != nil {
				outcomes[rep].err = err
				return
			}
			m := s.Metrics
			outcomes[rep] = outcome{
				customers: s.CustomerRows(),
				row: report.ReplicationRow{
					Replication:    rep,
					RunID:          xid.New().String(),
					Arrivals:       m.Arrivals,
					Departures:     m.Departures,
					Balked:         m.Balked,
					Reneged:        m.Reneged,
					MeanWait:       m.MeanWait(),
					MeanSojourn:    m.MeanSojourn(),
					AvgQueueLength: m.AvgQueueLength(),
					Utilization:    m.Utilization(),
					Throughput:     m.Throughput(),
					AbandonRate:    m.AbandonRate(),
					EndTime:        m.EndTime(),
				},
			}
		}(i)
	}
	wg.Wait()

	set := &report.ResultSet{}
	for rep, o := range outcomes {
		if o.err != nil {
			logrus.Errorf("replication %d failed: %v", rep, o.err)
			set.Errors = append(set.Errors, &ReplicationError{Replication: rep, Err: o.err})
			continue
		}
		set.Customers = append(set.Customers, o.customers...)
		set.Replications = append(set.Replications, o.row)
	}
	set.Summary = report.Summarize(set.Replications)

	if len(set.Replications) == 0 && len(set.Errors) > 0 {
		return set, fmt.Errorf("all %d replications failed: %w", cfg.Replications, set.Errors[0])
	}
	return set, nil
}
