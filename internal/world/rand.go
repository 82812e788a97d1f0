package world

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is a goroutine-safe random source. Seed it for reproducible tests.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a source seeded with seed, or with the clock when seed is 0.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a value in [0, n). It returns 0 for n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Intn(n)
}

// Between returns a value in [lo, hi). It returns lo when hi <= lo.
func (r *Rand) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo)
}

// Roll succeeds with the given percent chance.
func (r *Rand) Roll(percent int) bool {
	return r.Intn(100) < percent
}

// Duration returns a value in [lo, hi).
func (r *Rand) Duration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + time.Duration(r.r.Int63n(int64(hi-lo)))
}

// Pick returns a random element of s, or the zero value when s is empty.
func Pick[T any](r *Rand, s []T) T {
	var zero T
	if len(s) == 0 {
		return zero
	}
	return s[r.Intn(len(s))]
}
