package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/emarabot/plaza-os/internal/pkg/metrics"
)

const (
	moodStart = 87
	moodMin   = 80
	moodMax   = 95
)

// Mood is the community sentiment score on the manager dashboard. It drifts
// by one point per step and stays within [80, 95].
type Mood struct {
	mu    sync.Mutex
	value int
	rng   *rand.Rand
}

// NewMood returns a mood at its starting score. A nil src selects a randomly
// seeded PCG source.
func NewMood(src rand.Source) *Mood {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	metrics.CommunityMood.Set(moodStart)
	return &Mood{value: moodStart, rng: rand.New(src)}
}

func (m *Mood) Value() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// Step moves the score one point up or down and returns it.
func (m *Mood) Step() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	delta := -1
	if m.rng.Float64() > 0.5 {
		delta = 1
	}
	m.value = min(max(m.value+delta, moodMin), moodMax)
	metrics.CommunityMood.Set(float64(m.value))
	return m.value
}

// Run steps the mood every interval until ctx is done.
func (m *Mood) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Step()
		}
	}
}
