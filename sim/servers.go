// Implements the ServerPool, which tracks agent occupancy. Servers are owned
// exclusively by the simulator and mutated only by event handlers.

package sim

// Server is one agent: idle, serving exactly one customer, or on a post-call
// break. CallsHandled, CallTime and BreakTime accumulate over the replication
// and feed the per-server usage report.
type Server struct {
	ID       int
	Busy     bool
	OnBreak  bool
	Customer int64 // ID of the customer being served; -1 when not serving

	CallsHandled int64
	CallTime     float64
	BreakTime    float64
}

// ServerPool holds a fixed set of servers and maintains the invariant
// busy + onBreak + idle == total at every transition.
type ServerPool struct {
	servers []Server
	busy    int
	onBreak int
}

// NewServerPool creates a pool of n idle servers.
func NewServerPool(n int) *ServerPool {
	p := &ServerPool{servers: make([]Server, n)}
	for i := range p.servers {
		p.servers[i] = Server{ID: i, Customer: -1}
	}
	return p
}

// Claim assigns the lowest-numbered idle server to the given customer and
// returns its ID. Servers on break are skipped. The second return value is
// false when no server is available. Lowest-ID selection keeps the
// assignment deterministic.
func (p *ServerPool) Claim(customerID int64) (int, bool) {
	for i := range p.servers {
		if !p.servers[i].Busy && !p.servers[i].OnBreak {
			p.servers[i].Busy = true
			p.servers[i].Customer = customerID
			p.busy++
			return p.servers[i].ID, true
		}
	}
	return -1, false
}

// Release returns the server to the idle set.
func (p *ServerPool) Release(id int) {
	if id < 0 || id >= len(p.servers) || !p.servers[id].Busy {
		panic("Release: server is not busy")
	}
	p.servers[id].Busy = false
	p.servers[id].Customer = -1
	p.busy--
}

// RecordCall accumulates a completed call into the server's usage totals.
func (p *ServerPool) RecordCall(id int, duration float64) {
	p.servers[id].CallsHandled++
	p.servers[id].CallTime += duration
}

// CallsHandled returns the number of calls the server has completed.
func (p *ServerPool) CallsHandled(id int) int64 {
	return p.servers[id].CallsHandled
}

// BeginBreak takes an idle server offline.
func (p *ServerPool) BeginBreak(id int) {
	if p.servers[id].Busy || p.servers[id].OnBreak {
		panic("BeginBreak: server is not idle")
	}
	p.servers[id].OnBreak = true
	p.onBreak++
}

// EndBreak returns a server from its break and accumulates the break time.
func (p *ServerPool) EndBreak(id int, duration float64) {
	if !p.servers[id].OnBreak {
		panic("EndBreak: server is not on break")
	}
	p.servers[id].OnBreak = false
	p.servers[id].BreakTime += duration
	p.onBreak--
}

// BusyCount returns the number of servers currently serving.
func (p *ServerPool) BusyCount() int {
	return p.busy
}

// OnBreakCount returns the number of servers currently on break.
func (p *ServerPool) OnBreakCount() int {
	return p.onBreak
}

// IdleCount returns the number of servers available for a new customer.
func (p *ServerPool) IdleCount() int {
	return len(p.servers) - p.busy - p.onBreak
}

// Size returns the total number of servers in the pool.
func (p *ServerPool) Size() int {
	return len(p.servers)
}

// Usage returns a snapshot of every server's accumulated totals, in ID order.
func (p *ServerPool) Usage() []Server {
	out := make([]Server, len(p.servers))
	copy(out, p.servers)
	return out
}
