package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the master seed of a run. Equal keys and equal configs
// give byte-identical time series.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemDivision names the stream that draws division angles. It is
// seeded with the master seed itself, so --seed N reproduces the angles of
// a plain rand.New(rand.NewSource(N)).
const SubsystemDivision = "division"

// PartitionedRNG hands out one independent *rand.Rand per named stream.
// Draws from one stream never shift another. A stream is created on first
// request and then reused for the rest of the run.
//
// Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates an empty partition for key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it if needed.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	r := rand.New(rand.NewSource(p.key.derive(name)))
	p.streams[name] = r
	return r
}

// Key returns the master seed.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// derive maps a stream name to its seed: the master seed for
// SubsystemDivision, master XOR FNV-1a(name) otherwise.
func (k SimulationKey) derive(name string) int64 {
	if name == SubsystemDivision {
		return int64(k)
	}
	return int64(k) ^ fnv1a64(name)
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
