// Package rng provides the seedable pseudo-random source every generation
// phase routes through. The sequence depends only on the seed and the call
// order, never on time, scheduling, or platform specifics, so peers in a
// rollback session that replay the same calls observe the same values.
package rng

// RNG is a SplitMix64 generator. It is deliberately not safe for concurrent
// use: each generation run owns exactly one instance, and sharing one across
// runs would break the call-order contract.
type RNG struct {
	state uint64
	seed  uint64
}

// New creates a generator seeded with the given value.
func New(seed uint64) *RNG {
	return &RNG{state: seed, seed: seed}
}

// Reseed resets the generator to the start of the sequence for seed.
func (r *RNG) Reseed(seed uint64) {
	r.state = seed
	r.seed = seed
}

// Seed returns the seed the current sequence started from.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// NextU64 advances the generator and returns the next 64-bit value.
func (r *RNG) NextU64() uint64 {
	r.state += 0x9E3779B97F4A7C15
	z := r.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// NextU32 advances the generator and returns the next 32-bit value.
func (r *RNG) NextU32() uint32 {
	return uint32(r.NextU64() >> 32)
}

// NextRange returns a value in [min, max], inclusive on both ends.
// min > max panics: a caller asking for an empty range is a defect.
func (r *RNG) NextRange(min, max int) int {
	if min > max {
		panic("rng: NextRange with min > max")
	}
	span := uint64(max-min) + 1
	return min + int(r.NextU64()%span)
}

// Chance returns true with the given percent probability in [0, 100].
func (r *RNG) Chance(percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return r.NextRange(0, 99) < percent
}

// DeriveSeed mixes a base seed with a stream index into an independent seed,
// so subsystems that need their own sequence (noise channels, per-level
// seeds) do not consume values from the main generator.
func DeriveSeed(base, stream uint64) uint64 {
	s := base ^ (stream * 0x9E3779B97F4A7C15)
	s = (s ^ (s >> 33)) * 0xFF51AFD7ED558CCD
	s = (s ^ (s >> 33)) * 0xC4CEB9FE1A85EC53
	return s ^ (s >> 33)
}
