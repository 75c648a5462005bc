package sim

import (
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two replications with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemArrival is the RNG stream for inter-arrival draws.
	SubsystemArrival = "arrival"

	// SubsystemService is the RNG stream for service-time draws.
	SubsystemService = "service"

	// SubsystemPatience is the RNG stream for patience-threshold draws.
	SubsystemPatience = "patience"

	// SubsystemBreak is the RNG stream for break-duration draws.
	SubsystemBreak = "break"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG streams per subsystem.
// Isolating the streams keeps the draw sequence of one subsystem independent
// of how often the others sample: enabling patience, for example, does not
// perturb the arrival sequence.
//
// Derivation: each subsystem is seeded with (masterSeed, masterSeed XOR
// fnv1a64(subsystemName)) as the PCG state pair.
//
// Thread-safety: NOT thread-safe. Each replication owns its own instance.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derived := uint64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewPCG(uint64(p.key), derived))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
