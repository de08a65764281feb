package tetris

import (
	"math/rand"
	"time"
)

// PieceSource yields the kind of each newly queued piece.
type PieceSource func() Kind

// RandomSource draws each kind uniformly and independently from rng.
func RandomSource(rng *rand.Rand) PieceSource {
	return func() Kind {
		return kinds[rng.Intn(len(kinds))]
	}
}

// SequenceSource cycles through the given kinds forever.
func SequenceSource(seq ...Kind) PieceSource {
	if len(seq) == 0 {
		panic("tetris: empty piece sequence")
	}
	i := 0
	return func() Kind {
		k := seq[i%len(seq)]
		i++
		return k
	}
}

// clockSource seeds a RandomSource from the current time, or from seed when
// it is non-zero.
func clockSource(seed int64) PieceSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return RandomSource(rand.New(rand.NewSource(seed)))
}
