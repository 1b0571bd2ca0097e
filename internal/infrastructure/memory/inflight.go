// Package memory holds process-local adapters.
package memory

import (
	"context"
	"sync"
)

// InflightGuard is a process-local ports.InflightGuard.
type InflightGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewInflightGuard() *InflightGuard {
	return &InflightGuard{held: make(map[string]struct{})}
}

func (g *InflightGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.held[key]; ok {
		return false, nil
	}
	g.held[key] = struct{}{}
	return true, nil
}

func (g *InflightGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	delete(g.held, key)
	g.mu.Unlock()
	return nil
}
