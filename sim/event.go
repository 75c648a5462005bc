// Event types that drive the simulation. Each event carries its timestamp
// and applies exactly one state transition when executed.

package sim

import "github.com/sirupsen/logrus"

// ArrivalEvent admits the next customer from the arrival stream.
type ArrivalEvent struct {
	time float64
}

func (e *ArrivalEvent) When() float64 { return e.time }
func (e *ArrivalEvent) Kind() string  { return "arrival" }

// Execute creates the customer, assigns an idle server or queues (or loses)
// the customer, and schedules the next arrival from a fresh inter-arrival
// draw. The arrival stream is self-perpetuating until the horizon closes it.
func (e *ArrivalEvent) Execute(sim *Simulator) error {
	if sim.Phase() != PhaseRunning {
		// Stream already closed (event-count cap); admit no one.
		return nil
	}

	c := sim.newCustomer(e.time)
	sim.Metrics.RecordArrival()
	logrus.Debugf("[t=%.4f] arrival: customer %d", e.time, c.ID)

	if serverID, ok := sim.Servers.Claim(c.ID); ok {
		c.State = StateInService
		sim.Metrics.ObserveBusy(e.time, sim.Servers.BusyCount())
		if err := sim.Schedule(&ServiceStartEvent{time: e.time, Customer: c, ServerID: serverID}); err != nil {
			return err
		}
	} else if sim.QueueCapacity > 0 && sim.WaitQ.Len() >= sim.QueueCapacity {
		c.State = StateBalked
		c.DepartureTime = e.time
		sim.Metrics.RecordBalk()
		sim.recordCustomer(c)
		logrus.Debugf("[t=%.4f] customer %d balked (queue at capacity %d)", e.time, c.ID, sim.QueueCapacity)
	} else {
		c.State = StateWaiting
		sim.WaitQ.Enqueue(c)
		sim.Metrics.ObserveQueue(e.time, sim.WaitQ.Len())
		if sim.patience != nil {
			expiry := e.time + sim.patience.Sample()
			if err := sim.Schedule(&PatienceEvent{time: expiry, Customer: c}); err != nil {
				return err
			}
		}
	}

	return sim.scheduleNextArrival(e.time)
}

// ServiceStartEvent begins service for a customer on a server that was
// claimed for it when the event was scheduled.
type ServiceStartEvent struct {
	time     float64
	Customer *Customer
	ServerID int
}

func (e *ServiceStartEvent) When() float64 { return e.time }
func (e *ServiceStartEvent) Kind() string  { return "service_start" }

// Execute stamps the service-start time, records the customer's wait, and
// schedules the departure at now + a fresh service draw.
func (e *ServiceStartEvent) Execute(sim *Simulator) error {
	c := e.Customer
	c.ServiceStart = e.time
	c.ServerID = e.ServerID
	sim.Metrics.RecordWait(c.Wait())
	logrus.Debugf("[t=%.4f] service start: customer %d on server %d (waited %.4f)",
		e.time, c.ID, e.ServerID, c.Wait())

	departAt := e.time + sim.service.Sample()
	return sim.Schedule(&DepartureEvent{time: departAt, Customer: c, ServerID: e.ServerID})
}

// DepartureEvent completes a customer's service and hands the freed server
// to the head of the wait queue, if any.
type DepartureEvent struct {
	time     float64
	Customer *Customer
	ServerID int
}

func (e *DepartureEvent) When() float64 { return e.time }
func (e *DepartureEvent) Kind() string  { return "departure" }

func (e *DepartureEvent) Execute(sim *Simulator) error {
	c := e.Customer
	c.State = StateDeparted
	c.DepartureTime = e.time
	sim.Metrics.RecordDeparture(c.Sojourn(), e.time-c.ServiceStart)
	sim.recordCustomer(c)
	logrus.Debugf("[t=%.4f] departure: customer %d from server %d", e.time, c.ID, e.ServerID)

	sim.Servers.Release(e.ServerID)
	sim.Servers.RecordCall(e.ServerID, e.time-c.ServiceStart)
	sim.Metrics.ObserveBusy(e.time, sim.Servers.BusyCount())

	if sim.breakDue(e.ServerID) {
		d := sim.breaks.Sample()
		sim.Servers.BeginBreak(e.ServerID)
		logrus.Debugf("[t=%.4f] server %d on break until %.4f", e.time, e.ServerID, e.time+d)
		return sim.Schedule(&BreakEndEvent{time: e.time + d, ServerID: e.ServerID, Duration: d})
	}
	return sim.startNextFromQueue(e.time)
}

// BreakEndEvent returns a server from its post-call break. The freed server
// immediately takes the head of the wait queue, if any.
type BreakEndEvent struct {
	time     float64
	ServerID int
	Duration float64
}

func (e *BreakEndEvent) When() float64 { return e.time }
func (e *BreakEndEvent) Kind() string  { return "break_end" }

func (e *BreakEndEvent) Execute(sim *Simulator) error {
	sim.Servers.EndBreak(e.ServerID, e.Duration)
	logrus.Debugf("[t=%.4f] server %d back from a %.4f break", e.time, e.ServerID, e.Duration)
	return sim.startNextFromQueue(e.time)
}

// PatienceEvent expires a waiting customer's patience. Cancellation is lazy:
// if service started (or the customer already left) before the event fires,
// it is a no-op.
type PatienceEvent struct {
	time     float64
	Customer *Customer
}

func (e *PatienceEvent) When() float64 { return e.time }
func (e *PatienceEvent) Kind() string  { return "patience_expired" }

func (e *PatienceEvent) Execute(sim *Simulator) error {
	c := e.Customer
	if c.State != StateWaiting {
		return nil
	}
	if !sim.WaitQ.Remove(c) {
		panic("Patience: waiting customer not found in queue")
	}
	sim.Metrics.ObserveQueue(e.time, sim.WaitQ.Len())
	c.State = StateReneged
	c.DepartureTime = e.time
	sim.Metrics.RecordRenege()
	sim.recordCustomer(c)
	logrus.Debugf("[t=%.4f] customer %d reneged after waiting %.4f", e.time, c.ID, c.Sojourn())
	return nil
}
