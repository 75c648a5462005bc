// Tracks per-replication performance metrics: per-customer wait and sojourn
// aggregates, time-weighted queue length and server utilization, throughput
// and abandonment counters.

package sim

// Metrics accumulates statistics for one replication. Handlers push every
// state transition into it, so the time-weighted integrals are exact for the
// events actually processed; the only approximation in the final estimates
// comes from the finite horizon and replication count.
//
// Queue length and busy-server counts are integrated as step functions:
// each Observe* call closes the rectangle since the previous change.
type Metrics struct {
	Arrivals   int64
	Departures int64
	Balked     int64 // lost on arrival, queue at capacity
	Reneged    int64 // left the queue, patience expired

	waitCount    int64
	waitSum      float64
	waitSumSq    float64
	sojournSum   float64
	sojournSumSq float64
	serviceSum   float64

	queueLen      int
	queueArea     float64
	lastQueueTime float64
	PeakQueueLen  int

	busyCount    int
	busyArea     float64
	lastBusyTime float64

	servers int

	// window is the observation window used as the denominator of
	// time-averaged metrics; clockEnd is where the integrals stop.
	window   float64
	clockEnd float64
}

// NewMetrics creates an accumulator for a pool of the given size.
func NewMetrics(servers int) *Metrics {
	return &Metrics{servers: servers}
}

// RecordArrival counts an admitted arrival.
func (m *Metrics) RecordArrival() {
	m.Arrivals++
}

// RecordBalk counts a customer lost on arrival.
func (m *Metrics) RecordBalk() {
	m.Balked++
}

// RecordRenege counts a customer that abandoned the queue.
func (m *Metrics) RecordRenege() {
	m.Reneged++
}

// RecordWait accumulates the queueing delay of a customer entering service.
func (m *Metrics) RecordWait(wait float64) {
	m.waitCount++
	m.waitSum += wait
	m.waitSumSq += wait * wait
}

// RecordDeparture accumulates a served customer's time in system and
// service duration.
func (m *Metrics) RecordDeparture(sojourn, service float64) {
	m.Departures++
	m.sojournSum += sojourn
	m.sojournSumSq += sojourn * sojourn
	m.serviceSum += service
}

// ObserveQueue closes the queue-length integral up to now and records the
// new length.
func (m *Metrics) ObserveQueue(now float64, length int) {
	m.queueArea += float64(m.queueLen) * (now - m.lastQueueTime)
	m.lastQueueTime = now
	m.queueLen = length
	if length > m.PeakQueueLen {
		m.PeakQueueLen = length
	}
}

// ObserveBusy closes the busy-server integral up to now and records the new
// busy count.
func (m *Metrics) ObserveBusy(now float64, busy int) {
	m.busyArea += float64(m.busyCount) * (now - m.lastBusyTime)
	m.lastBusyTime = now
	m.busyCount = busy
}

// Finalize flushes the step integrals to clockEnd and fixes the observation
// window used by the time-averaged accessors. For horizon-bounded runs the
// window is the horizon; draining past it still contributes busy time (the
// overtime is real work) but does not stretch the window.
func (m *Metrics) Finalize(clockEnd, window float64) {
	m.ObserveQueue(clockEnd, m.queueLen)
	m.ObserveBusy(clockEnd, m.busyCount)
	m.clockEnd = clockEnd
	m.window = window
}

// Abandoned returns the total number of lost customers.
func (m *Metrics) Abandoned() int64 {
	return m.Balked + m.Reneged
}

// MeanWait returns the average queueing delay of served customers, or 0 when
// no customer entered service.
func (m *Metrics) MeanWait() float64 {
	if m.waitCount == 0 {
		return 0
	}
	return m.waitSum / float64(m.waitCount)
}

// WaitVariance returns the sample variance of queueing delays.
func (m *Metrics) WaitVariance() float64 {
	return sampleVariance(m.waitCount, m.waitSum, m.waitSumSq)
}

// MeanSojourn returns the average time in system of departed customers.
func (m *Metrics) MeanSojourn() float64 {
	if m.Departures == 0 {
		return 0
	}
	return m.sojournSum / float64(m.Departures)
}

// SojournVariance returns the sample variance of times in system.
func (m *Metrics) SojournVariance() float64 {
	return sampleVariance(m.Departures, m.sojournSum, m.sojournSumSq)
}

// AvgQueueLength returns the time-weighted average queue length.
func (m *Metrics) AvgQueueLength() float64 {
	if m.window == 0 {
		return 0
	}
	return m.queueArea / m.window
}

// Utilization returns the time-weighted fraction of busy servers over the
// observation window. Busy time accrued while draining past the horizon
// counts toward the integral but not the window, so an overloaded run with a
// long drain can exceed 1.
func (m *Metrics) Utilization() float64 {
	if m.window == 0 {
		return 0
	}
	return m.busyArea / (m.window * float64(m.servers))
}

// Throughput returns departures per unit simulated time.
func (m *Metrics) Throughput() float64 {
	if m.window == 0 {
		return 0
	}
	return float64(m.Departures) / m.window
}

// AbandonRate returns the fraction of admitted arrivals that were lost.
func (m *Metrics) AbandonRate() float64 {
	if m.Arrivals == 0 {
		return 0
	}
	return float64(m.Abandoned()) / float64(m.Arrivals)
}

// TimeAvgInSystem returns the time-weighted average number of customers in
// the system (waiting plus in service), the L of Little's law.
func (m *Metrics) TimeAvgInSystem() float64 {
	if m.window == 0 {
		return 0
	}
	return (m.queueArea + m.busyArea) / m.window
}

// EndTime returns the simulated time at which the replication finished
// (after draining), 0 if the replication never ran.
func (m *Metrics) EndTime() float64 {
	return m.clockEnd
}

func sampleVariance(n int64, sum, sumSq float64) float64 {
	if n < 2 {
		return 0
	}
	mean := sum / float64(n)
	v := (sumSq - float64(n)*mean*mean) / float64(n-1)
	if v < 0 {
		// Guard tiny negative values from floating-point cancellation.
		return 0
	}
	return v
}
