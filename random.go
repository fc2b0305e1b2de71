package holdemtable

import (
	"math/rand"
	"sync"
	"time"
)

// lockedRandomSource lets several tables share one seeded generator.
type lockedRandomSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRandomSource(seed int64) RandomSource {
	return &lockedRandomSource{
		r: rand.New(rand.NewSource(seed)),
	}
}

func NewTimeSeededRandomSource() RandomSource {
	return NewRandomSource(time.Now().UnixNano())
}

func (l *lockedRandomSource) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}
