package conviction

import (
	"math/rand/v2"
	"sync"
)

// RiasecFallback supplies the RIASEC sub-score when the user has no assessment.
type RiasecFallback interface {
	Score() int
}

// NeutralDefaultStrategy always yields the neutral score. It is the only strategy used for a
// single career's conviction.
type NeutralDefaultStrategy struct{}

func (NeutralDefaultStrategy) Score() int { return NeutralRiasecScore }

const (
	discoveryFallbackMin = 70
	discoveryFallbackMax = 100
)

// RandomizedDiscoveryStrategy yields a pseudo-random score in [70,100] so unassessed users do not
// see a flat discovery list. Restricted to list ranking.
type RandomizedDiscoveryStrategy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomizedDiscoveryStrategy(src rand.Source) *RandomizedDiscoveryStrategy {
	if src == nil {
		return &RandomizedDiscoveryStrategy{}
	}
	return &RandomizedDiscoveryStrategy{rng: rand.New(src)}
}

func (s *RandomizedDiscoveryStrategy) Score() int {
	span := discoveryFallbackMax - discoveryFallbackMin + 1
	if s == nil || s.rng == nil {
		return discoveryFallbackMin + rand.IntN(span)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return discoveryFallbackMin + s.rng.IntN(span)
}
