package rules

import (
	"math/rand/v2"
)

// Source returns uniformly distributed values in [0,1).
// Food placement is the only consumer; everything else in the rules is
// integer arithmetic.
type Source func() float64

// SystemSource draws from the process-wide generator.
func SystemSource() Source {
	return rand.Float64
}

// SeededSource returns a deterministic PCG-backed source. Two sources built
// from the same seed yield the same sequence, which makes whole games
// reproducible from (seed, inputs).
func SeededSource(seed uint64) Source {
	return FromRand(rand.New(rand.NewPCG(seed, seed^0x534E414B45)))
}

// FromRand adapts an existing generator. The generator is not safe for
// concurrent use, so neither is the returned Source.
func FromRand(r *rand.Rand) Source {
	return r.Float64
}

func (s Source) orSystem() Source {
	if s == nil {
		return SystemSource()
	}
	return s
}
