package draw

import (
	cryptorand "crypto/rand"
	"math/big"
	mathrand "math/rand"
	"time"
)

// Rand is the randomness source used by the selection strategy. The engine
// never reaches for a global generator: callers inject one, so tests can use
// a seeded generator for deterministic assertions while production can use a
// higher-entropy source.
type Rand interface {
	Intn(n int) int
}

// NewSeeded returns a deterministic generator for the given seed.
func NewSeeded(seed int64) Rand {
	return mathrand.New(mathrand.NewSource(seed))
}

// NewDefault returns a time-seeded pseudo-random generator.
func NewDefault() Rand {
	return mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
}

type secureRand struct {
	fallback *mathrand.Rand
}

// NewSecure returns a generator backed by crypto/rand. If the system entropy
// source fails mid-draw, it falls back to a time-seeded generator rather than
// aborting the selection.
func NewSecure() Rand {
	return &secureRand{fallback: mathrand.New(mathrand.NewSource(time.Now().UnixNano()))}
}

func (r *secureRand) Intn(n int) int {
	v, err := cryptorand.Int(cryptorand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return r.fallback.Intn(n)
	}
	return int(v.Int64())
}
