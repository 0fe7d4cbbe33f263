package sim

import (
	"math"
	"math/rand"
	"testing"
)

// subsystemOther is any non-division subsystem name, used to check isolation.
const subsystemOther = "other"

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(SubsystemDivision).Float64()
		v2 := rng2.ForSubsystem(SubsystemDivision).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from subsystem A doesn't affect subsystem B
	rngA := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemDivision).Float64()
	}
	aOtherFirst := rngA.ForSubsystem(subsystemOther).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	expectedFirst := fresh.ForSubsystem(subsystemOther).Float64()

	if aOtherFirst != expectedFirst {
		t.Errorf("A's first value = %v, want %v (isolation broken)", aOtherFirst, expectedFirst)
	}
}

func TestPartitionedRNG_DivisionUsesMasterSeed(t *testing.T) {
	// BDD: "division" subsystem uses master seed directly
	seed := int64(42)
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	divisionRNG := rng.ForSubsystem(SubsystemDivision)
	directRNG := newRandFromSeed(seed)

	for i := 0; i < 10; i++ {
		got := divisionRNG.Float64()
		want := directRNG.Float64()
		if got != want {
			t.Errorf("Value %d: division RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	// BDD: Same name returns same *rand.Rand instance, so the source is seeded once
	rng := NewPartitionedRNG(NewSimulationKey(42))

	rng1 := rng.ForSubsystem(SubsystemDivision)
	first := rng1.Float64()
	rng2 := rng.ForSubsystem(SubsystemDivision)

	if rng1 != rng2 {
		t.Error("ForSubsystem returned different instances for same name")
	}
	if rng2.Float64() == first {
		t.Error("second lookup restarted the sequence")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_NegativeSeed(t *testing.T) {
	// BDD: MinInt64 seed works correctly
	rng := NewPartitionedRNG(NewSimulationKey(math.MinInt64))

	division := rng.ForSubsystem(SubsystemDivision)
	other := rng.ForSubsystem(subsystemOther)
	if division == nil || other == nil {
		t.Fatal("ForSubsystem returned nil with MinInt64 seed")
	}

	val := division.Float64()
	if val < 0 || val >= 1 {
		t.Errorf("Float64() returned %v, want [0, 1)", val)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	// BDD: Streams map is empty until ForSubsystem is called
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.streams) != 0 {
		t.Errorf("New PartitionedRNG has %d streams, want 0", len(rng.streams))
	}

	rng.ForSubsystem(SubsystemDivision)

	if len(rng.streams) != 1 {
		t.Errorf("After one ForSubsystem call, have %d streams, want 1", len(rng.streams))
	}
}

// === fnv1a64 Tests ===

func TestFnv1a64_Collision(t *testing.T) {
	// Different subsystem names should produce different hashes (spot check)
	names := []string{SubsystemDivision, subsystemOther, "layout", ""}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

// newRandFromSeed creates a *rand.Rand with the given seed
func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestSimulationKey_Derive(t *testing.T) {
	key := NewSimulationKey(7)
	if got := key.derive(SubsystemDivision); got != 7 {
		t.Errorf("derive(division) = %d, want 7", got)
	}
	if got, want := key.derive(subsystemOther), int64(7)^fnv1a64(subsystemOther); got != want {
		t.Errorf("derive(other) = %d, want %d", got, want)
	}
}
