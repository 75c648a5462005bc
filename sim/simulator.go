// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/michalsciubisz/modele-kolejkowe/sim/report"
)

// Phase tracks the driver's progress through a replication.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	// PhaseDraining: the arrival stream is closed; in-flight and queued
	// customers are still allowed to finish.
	PhaseDraining  Phase = "draining"
	PhaseCompleted Phase = "completed"
)

// Simulator owns the complete state of one replication: clock, pending
// events, wait queue, server pool, samplers and metrics. Nothing is shared
// across replications, so independent Simulators may run concurrently.
//
// Within a replication execution is strictly sequential: the loop processes
// one event to completion before popping the next.
type Simulator struct {
	Clock         float64
	Horizon       float64 // +Inf when the run is event-count bounded
	MaxEvents     int64
	QueueCapacity int

	WaitQ   *WaitQueue
	Servers *ServerPool
	Metrics *Metrics

	events   *EventQueue
	arrival  Sampler
	service  Sampler
	patience Sampler // nil when reneging is disabled
	breaks   Sampler // nil when breaks are disabled

	breakEvery int64 // calls between breaks; 0 when breaks are disabled

	replication int
	phase       Phase
	nextID      int64
	dispatched  int64
	rows        []report.CustomerRow
}

// NewSimulator builds an isolated replication from a validated config.
// seed selects the replication's RNG streams: identical seed and config
// reproduce the event trace exactly.
func NewSimulator(cfg Config, replication int, seed int64) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(seed))
	arrival, err := NewSampler("arrival", cfg.Arrival, rng.ForSubsystem(SubsystemArrival))
	if err != nil {
		return nil, err
	}
	service, err := NewSampler("service", cfg.Service, rng.ForSubsystem(SubsystemService))
	if err != nil {
		return nil, err
	}
	var patience Sampler
	if cfg.Patience != nil {
		patience, err = NewSampler("patience", *cfg.Patience, rng.ForSubsystem(SubsystemPatience))
		if err != nil {
			return nil, err
		}
	}
	var breaks Sampler
	var breakEvery int64
	if cfg.Break != nil {
		breaks, err = NewSampler("break.duration", cfg.Break.Duration, rng.ForSubsystem(SubsystemBreak))
		if err != nil {
			return nil, err
		}
		breakEvery = int64(cfg.Break.Every)
		if breakEvery < 1 {
			breakEvery = 1
		}
	}

	horizon := cfg.Horizon
	if horizon == 0 {
		horizon = math.Inf(1)
	}

	return &Simulator{
		Horizon:       horizon,
		MaxEvents:     cfg.MaxEvents,
		QueueCapacity: cfg.QueueCapacity,
		WaitQ:         &WaitQueue{},
		Servers:       NewServerPool(cfg.Servers),
		Metrics:       NewMetrics(cfg.Servers),
		events:        NewEventQueue(),
		arrival:       arrival,
		service:       service,
		patience:      patience,
		breaks:        breaks,
		breakEvery:    breakEvery,
		replication:   replication,
		phase:         PhaseIdle,
	}, nil
}

// Phase returns the driver's current phase.
func (s *Simulator) Phase() Phase {
	return s.phase
}

// Dispatched returns the number of events processed so far.
func (s *Simulator) Dispatched() int64 {
	return s.dispatched
}

// CustomerRows returns the per-customer output table, one row per customer
// that has left the system, in departure order.
func (s *Simulator) CustomerRows() []report.CustomerRow {
	return s.rows
}

// Schedule inserts an event, enforcing the no-past-scheduling invariant.
// A violation indicates a handler bug and aborts the replication.
func (s *Simulator) Schedule(ev Event) error {
	if ev.When() < s.Clock {
		return &SchedulerInvariantError{EventKind: ev.Kind(), EventTime: ev.When(), Clock: s.Clock}
	}
	s.events.Schedule(ev)
	return nil
}

// Run executes the event loop until every pending event has drained. The
// clock advances only when an event is popped, never between events. Natural
// termination (horizon exhausted, stream drained) is not an error; only an
// internal invariant violation aborts the run.
func (s *Simulator) Run() error {
	s.phase = PhaseRunning
	if err := s.scheduleNextArrival(0); err != nil {
		return err
	}

	for {
		ev, ok := s.events.PopNext()
		if !ok {
			break
		}
		// advance the clock
		s.Clock = ev.When()
		logrus.Debugf("[rep %d][t=%.4f] executing %s", s.replication, s.Clock, ev.Kind())
		if err := ev.Execute(s); err != nil {
			return fmt.Errorf("replication %d aborted: %w", s.replication, err)
		}
		s.dispatched++
		if s.MaxEvents > 0 && s.dispatched >= s.MaxEvents && s.phase == PhaseRunning {
			s.beginDraining("event cap reached")
		}
	}

	s.phase = PhaseCompleted
	s.Metrics.Finalize(s.Clock, s.window())
	logrus.Debugf("[rep %d][t=%.4f] simulation ended (%d events)", s.replication, s.Clock, s.dispatched)
	for _, srv := range s.Servers.Usage() {
		logrus.Debugf("[rep %d] server %d: %d calls, %.4f serving, %.4f on breaks",
			s.replication, srv.ID, srv.CallsHandled, srv.CallTime, srv.BreakTime)
	}
	return nil
}

// window returns the observation window for time-averaged metrics: the
// configured horizon when finite, otherwise the full elapsed time.
func (s *Simulator) window() float64 {
	if math.IsInf(s.Horizon, 1) {
		return s.Clock
	}
	return s.Horizon
}

// scheduleNextArrival keeps the arrival stream alive. When the next draw
// falls beyond the horizon the stream closes and the run drains.
func (s *Simulator) scheduleNextArrival(now float64) error {
	if s.phase != PhaseRunning {
		return nil
	}
	next := now + s.arrival.Sample()
	if next > s.Horizon {
		s.beginDraining("horizon reached")
		return nil
	}
	return s.Schedule(&ArrivalEvent{time: next})
}

func (s *Simulator) beginDraining(reason string) {
	s.phase = PhaseDraining
	logrus.Debugf("[rep %d][t=%.4f] draining: %s", s.replication, s.Clock, reason)
}

// breakDue reports whether the server that just finished a call is owed a
// break. Called after RecordCall, so the count includes the finished call.
func (s *Simulator) breakDue(serverID int) bool {
	if s.breaks == nil {
		return false
	}
	return s.Servers.CallsHandled(serverID)%s.breakEvery == 0
}

// startNextFromQueue puts the head of the wait queue into service on a
// freshly freed server. No-op when the queue is empty.
func (s *Simulator) startNextFromQueue(now float64) error {
	next := s.WaitQ.Dequeue()
	if next == nil {
		return nil
	}
	s.Metrics.ObserveQueue(now, s.WaitQ.Len())
	serverID, ok := s.Servers.Claim(next.ID)
	if !ok {
		panic("startNextFromQueue: no idle server after one was freed")
	}
	next.State = StateInService
	s.Metrics.ObserveBusy(now, s.Servers.BusyCount())
	return s.Schedule(&ServiceStartEvent{time: now, Customer: next, ServerID: serverID})
}

// newCustomer creates the next sequentially-numbered customer at its arrival
// timestamp. IDs start at 1 within each replication.
func (s *Simulator) newCustomer(arrival float64) *Customer {
	s.nextID++
	return &Customer{
		ID:          s.nextID,
		ArrivalTime: arrival,
		ServerID:    -1,
	}
}

// recordCustomer appends the customer's row to the output table once its
// outcome is known (departed, balked or reneged).
func (s *Simulator) recordCustomer(c *Customer) {
	row := report.CustomerRow{
		Replication:   s.replication,
		CustomerID:    c.ID,
		ArrivalTime:   c.ArrivalTime,
		DepartureTime: c.DepartureTime,
	}
	switch c.State {
	case StateDeparted:
		row.WaitTime = c.Wait()
		row.ServiceTime = c.DepartureTime - c.ServiceStart
	case StateBalked:
		row.Abandoned = true
		row.AbandonKind = report.AbandonBalked
	case StateReneged:
		row.Abandoned = true
		row.AbandonKind = report.AbandonReneged
		row.WaitTime = c.Sojourn()
	default:
		panic(fmt.Sprintf("recordCustomer: customer %d in non-terminal state %s", c.ID, c.State))
	}
	s.rows = append(s.rows, row)
}
