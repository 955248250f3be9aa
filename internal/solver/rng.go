package solver

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// jitterEpsilon bounds the tie-breaking jitter added to entropy. It must
// stay small enough to never reorder genuinely distinct entropy values
// given double precision.
const jitterEpsilon = 1e-3

// stream is the single seeded RNG source a Model draws from. Every draw
// - jitter or weighted sample - comes from this one stream, in a fixed
// order (jitter first, then the collapse sample) so that identical
// (width, height, seed, RuleSet) always replays the same grid.
type stream struct {
	r *rand.Rand
}

// newStream builds a deterministic stream from an optional seed. When
// seed is nil, entropy is drawn from the OS CSPRNG once to seed the
// stream, after which the stream is itself fully deterministic for the
// remainder of the run.
func newStream(seed *uint64) *stream {
	var s1, s2 uint64
	if seed != nil {
		s1 = *seed
		s2 = *seed ^ 0x9E3779B97F4A7C15
	} else {
		var buf [16]byte
		if _, err := crand.Read(buf[:]); err != nil {
			// crypto/rand.Read on a supported platform does not fail;
			// fall back to a fixed seed rather than panic.
			s1, s2 = 0x2545F4914F6CDD1D, 0x9E3779B97F4A7C15
		} else {
			s1 = binary.LittleEndian.Uint64(buf[:8])
			s2 = binary.LittleEndian.Uint64(buf[8:])
		}
	}
	return &stream{r: rand.New(rand.NewPCG(s1, s2))}
}

// jitter draws the per-cell tie-breaking value in [0, jitterEpsilon).
func (s *stream) jitter() float64 {
	return s.r.Float64() * jitterEpsilon
}

// weightedIndex draws a position in [0, len(weights)) with probability
// proportional to weights[i]. weights must be non-empty and sum > 0.
func (s *stream) weightedIndex(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	target := s.r.IntN(total)
	cum := 0
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}
