// Package noise implements deterministic value noise for open-world
// terrain. All arithmetic is integer fixed-point: no math library calls, no
// transcendental functions, so every platform computes bit-identical fields.
package noise

// Fixed-point format: 16 fractional bits.
const (
	Shift = 16
	One   = int64(1) << Shift
)

// Sampler produces deterministic noise values for a fixed seed. Sampling is
// positional, not sequential: the value at a coordinate never depends on
// what was sampled before it, which keeps chunked or partial evaluation
// seam-free.
type Sampler struct {
	seed uint64
}

// NewSampler creates a sampler for the given seed.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{seed: seed}
}

// hash2 mixes a lattice coordinate into a 64-bit hash.
func (s *Sampler) hash2(x, y int64) uint64 {
	h := s.seed
	h ^= uint64(x) * 0x9E3779B185EBCA87
	h = (h ^ (h >> 31)) * 0xBF58476D1CE4E5B9
	h ^= uint64(y) * 0xC2B2AE3D27D4EB4F
	h = (h ^ (h >> 29)) * 0x94D049BB133111EB
	return h ^ (h >> 32)
}

// lattice returns the noise value in [0, One) pinned to an integer lattice
// point.
func (s *Sampler) lattice(x, y int64) int64 {
	return int64(s.hash2(x, y) & (uint64(One) - 1))
}

// fade is the smoothstep t²(3-2t) in fixed point, t in [0, One).
func fade(t int64) int64 {
	tt := (t * t) >> Shift
	return (tt * (3*One - 2*t)) >> Shift
}

// lerp interpolates between a and b by t in [0, One].
func lerp(a, b, t int64) int64 {
	return a + ((b-a)*t)>>Shift
}

// Value returns smooth value noise in [0, One) at a fixed-point coordinate.
func (s *Sampler) Value(x, y int64) int64 {
	x0 := x >> Shift
	y0 := y >> Shift
	fx := fade(x & (One - 1))
	fy := fade(y & (One - 1))

	top := lerp(s.lattice(x0, y0), s.lattice(x0+1, y0), fx)
	bot := lerp(s.lattice(x0, y0+1), s.lattice(x0+1, y0+1), fx)
	return lerp(top, bot, fy)
}

// Fractal layers octaves of Value, each at double the frequency of the last
// and scaled by persistence (fixed point, typically One/2). The result is
// normalized back into [0, One).
func (s *Sampler) Fractal(x, y int64, octaves int, persistence int64) int64 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, amp, total int64
	amp = One
	for i := 0; i < octaves; i++ {
		sum += (s.Value(x, y) * amp) >> Shift
		total += amp
		amp = (amp * persistence) >> Shift
		x <<= 1
		y <<= 1
	}
	if total == 0 {
		return 0
	}
	return (sum << Shift) / total
}
