package colorutil

import (
	"math/rand/v2"
	"strings"
	"sync"
)

const hexDigits = "0123456789ABCDEF"

// Source supplies random integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the math/rand/v2 top-level generator, which is
// safe for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource returns the unseeded, concurrency-safe source.
func DefaultSource() Source {
	return globalSource{}
}

// lockedSource guards a seeded generator.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// NewSeededSource returns a deterministic source. Two sources built from the
// same seed yield the same sequence.
func NewSeededSource(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// RandomColor returns "#RRGGBB" with every digit drawn uniformly from the
// 16 hex digits.
func RandomColor(src Source) string {
	if src == nil {
		src = DefaultSource()
	}

	var b strings.Builder
	b.Grow(7)
	b.WriteByte('#')
	for i := 0; i < 6; i++ {
		b.WriteByte(hexDigits[src.IntN(len(hexDigits))])
	}
	return b.String()
}
