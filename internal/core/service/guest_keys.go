package service

import (
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
	"github.com/emarabot/plaza-os/internal/pkg/metrics"
)

// GuestKeySet is the in-memory, append-only visitor pass set. Keys are never
// removed or expired.
type GuestKeySet struct {
	mu     sync.RWMutex
	keys   []domain.GuestKey
	counts map[domain.GuestKey]int
}

// NewGuestKeySet returns a set holding the given seed keys.
func NewGuestKeySet(seed ...domain.GuestKey) *GuestKeySet {
	s := &GuestKeySet{counts: make(map[domain.GuestKey]int)}
	for _, k := range seed {
		s.Add(k)
	}
	return s
}

// Add appends key. A key already present is appended again.
func (s *GuestKeySet) Add(key domain.GuestKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	s.counts[key]++
}

func (s *GuestKeySet) Contains(key domain.GuestKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[key] > 0
}

// Len counts entries, duplicates included.
func (s *GuestKeySet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Keys returns the entries in issue order.
func (s *GuestKeySet) Keys() []domain.GuestKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GuestKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// GuestKeyIssuer generates G-####-X visitor passes and records them in a
// key store. It does not check for collisions.
type GuestKeyIssuer struct {
	store ports.GuestKeyStore
	log   zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGuestKeyIssuer returns an issuer drawing from src. A nil src selects a
// randomly seeded PCG source.
func NewGuestKeyIssuer(store ports.GuestKeyStore, src rand.Source, log zerolog.Logger) *GuestKeyIssuer {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &GuestKeyIssuer{store: store, rng: rand.New(src), log: log}
}

// Issue draws a number in [1000, 9999] and a letter in [A, Z], stores the
// resulting key and returns it.
func (i *GuestKeyIssuer) Issue() domain.GuestKey {
	i.mu.Lock()
	number := 1000 + i.rng.IntN(9000)
	letter := 'A' + rune(i.rng.IntN(26))
	i.mu.Unlock()

	key := domain.NewGuestKey(number, letter)
	i.store.Add(key)
	metrics.GuestKeysIssuedTotal.Inc()
	i.log.Info().Str("guest_key", key.String()).Msg("guest key issued")
	return key
}
