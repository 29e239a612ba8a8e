package match

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
)

// Rand is every random draw a match makes: catch rolls, catch weights, bot
// tackle and venue picks. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a deterministic source for seed.
func NewRand(seed int64) *rand.Rand {
	// #nosec G404 -- simulation randomness, not security sensitive.
	return rand.New(rand.NewPCG(seedWord(seed, "catch"), seedWord(seed, "tackle")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
