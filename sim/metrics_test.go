package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_QueueIntegralIsTimeWeighted(t *testing.T) {
	// GIVEN a queue that holds 1 customer during [1,3) and 2 during [3,4)
	m := NewMetrics(1)
	m.ObserveQueue(1, 1)
	m.ObserveQueue(3, 2)
	m.ObserveQueue(4, 0)

	// WHEN finalizing over a window of 5
	m.Finalize(5, 5)

	// THEN the average is the integral 1*2 + 2*1 = 4 over 5
	assert.InDelta(t, 0.8, m.AvgQueueLength(), 1e-12)
	assert.Equal(t, 2, m.PeakQueueLen)
}

func TestMetrics_UtilizationIsTimeWeighted(t *testing.T) {
	// GIVEN 2 servers, one busy during [0,6), both during [6,8)
	m := NewMetrics(2)
	m.ObserveBusy(0, 1)
	m.ObserveBusy(6, 2)
	m.ObserveBusy(8, 0)
	m.Finalize(10, 10)

	// THEN utilization = (1*6 + 2*2) / (10*2) = 0.5
	assert.InDelta(t, 0.5, m.Utilization(), 1e-12)
}

func TestMetrics_WaitAggregates(t *testing.T) {
	m := NewMetrics(1)
	for _, w := range []float64{1, 2, 3} {
		m.RecordWait(w)
	}
	assert.InDelta(t, 2.0, m.MeanWait(), 1e-12)
	assert.InDelta(t, 1.0, m.WaitVariance(), 1e-12)
}

func TestMetrics_ZeroElapsed_NoNaNs(t *testing.T) {
	// GIVEN a replication that never processed an event
	m := NewMetrics(2)
	m.Finalize(0, 0)

	// THEN every estimate is zero, not NaN
	assert.Zero(t, m.MeanWait())
	assert.Zero(t, m.MeanSojourn())
	assert.Zero(t, m.AvgQueueLength())
	assert.Zero(t, m.Utilization())
	assert.Zero(t, m.Throughput())
	assert.Zero(t, m.AbandonRate())
	assert.Zero(t, m.TimeAvgInSystem())
}

func TestMetrics_AbandonAccounting(t *testing.T) {
	m := NewMetrics(1)
	for i := 0; i < 10; i++ {
		m.RecordArrival()
	}
	m.RecordBalk()
	m.RecordRenege()
	m.RecordRenege()

	assert.Equal(t, int64(3), m.Abandoned())
	assert.InDelta(t, 0.3, m.AbandonRate(), 1e-12)
}
