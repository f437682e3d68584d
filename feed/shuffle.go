package feed

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the random source consumed by the shuffle step. *rand.Rand
// satisfies it; tests inject a seeded instance for determinism.
type Rand interface {
	Intn(n int) int
}

// lockedRand guards a *rand.Rand so the default source is safe to share
// across concurrent feed requests
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// DefaultRand returns a time-seeded random source suitable for production use
func DefaultRand() Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Shuffle permutes s uniformly at random in place (Fisher-Yates). Empty and
// single-element slices are no-ops. The multiset of elements is preserved.
func Shuffle[T any](rng Rand, s []T) {
	if rng == nil {
		panic("feed: nil random source")
	}
	for i := len(s) - 1; i >= 1; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
