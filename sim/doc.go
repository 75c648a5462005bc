// Package sim provides the discrete-event simulation engine for the
// call-center queueing model.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - customer.go: Customer lifecycle (waiting → in service → departed/abandoned)
//   - event.go: Event types that drive the simulation (Arrival, ServiceStart, Departure, Patience)
//   - simulator.go: The event loop and the Idle → Running → Draining → Completed driver phases
//
// Randomness is fully seeded: every replication derives isolated RNG streams
// for its arrival, service, and patience draws (rng.go, variate.go), so two
// runs with the same seed and configuration produce an identical event trace.
//
// The tabular output contract consumed by external tooling (visualizers,
// result persistence) lives in sim/report and has no dependency on this
// package.
package sim
