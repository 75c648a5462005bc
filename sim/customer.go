// Defines the Customer struct that models an individual caller in the simulation.
// Tracks arrival, service-start and departure timestamps plus the abandonment kind.

package sim

import "fmt"

// CustomerState represents the lifecycle state of a customer.
type CustomerState string

const (
	StateWaiting   CustomerState = "waiting"
	StateInService CustomerState = "in_service"
	StateDeparted  CustomerState = "departed"
	// StateBalked marks a customer lost on arrival because the queue was at capacity.
	StateBalked CustomerState = "balked"
	// StateReneged marks a customer that left the queue after its patience expired.
	StateReneged CustomerState = "reneged"
)

// Customer models a single caller's pass through the system. Fields are
// filled progressively by the event handlers: ArrivalTime at arrival,
// ServiceStart/ServerID when a server is assigned, DepartureTime when the
// customer leaves (served or abandoned).
type Customer struct {
	ID int64 // Sequential identifier, unique within a replication

	State CustomerState

	ArrivalTime   float64
	ServiceStart  float64 // meaningful only once State reaches in_service
	DepartureTime float64 // meaningful only once the customer has left

	ServerID int // -1 until a server is assigned
}

// Wait returns the time the customer spent queued before service began.
func (c *Customer) Wait() float64 {
	return c.ServiceStart - c.ArrivalTime
}

// Sojourn returns the customer's total time in system.
func (c *Customer) Sojourn() float64 {
	return c.DepartureTime - c.ArrivalTime
}

func (c Customer) String() string {
	return fmt.Sprintf("Customer: (ID: %d, State: %s, ArrivalTime: %g)", c.ID, c.State, c.ArrivalTime)
}
