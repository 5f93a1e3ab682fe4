// internal/matching/rand.go
package matching

import (
	"math/rand"
	"sync"
	"time"
)

// RandSource is the randomness the selector and scorer draw from. Intn returns a
// value in [0, n) and must be safe for concurrent use.
type RandSource interface {
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededSource returns a concurrency-safe source. A zero seed uses the clock.
func NewSeededSource(seed int64) RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}
