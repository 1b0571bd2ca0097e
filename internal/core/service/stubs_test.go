package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

// stubGateway answers every capability through an optional fn field. A nil
// fn answers with an empty string.
type stubGateway struct {
	conciergeFn func(ctx context.Context, message string, history []domain.ChatMessage) (string, error)
	diagnoseFn  func(ctx context.Context, img domain.Image) (string, error)
	editFn      func(ctx context.Context, img domain.Image, instruction string) (string, error)
	polishFn    func(ctx context.Context, rough string) (string, error)
	draftFn     func(ctx context.Context, item, details string) (string, error)
}

func (s *stubGateway) Concierge(ctx context.Context, message string, history []domain.ChatMessage) (string, error) {
	if s.conciergeFn == nil {
		return "", nil
	}
	return s.conciergeFn(ctx, message, history)
}

func (s *stubGateway) DiagnoseImage(ctx context.Context, img domain.Image) (string, error) {
	if s.diagnoseFn == nil {
		return "", nil
	}
	return s.diagnoseFn(ctx, img)
}

func (s *stubGateway) EditImageDescription(ctx context.Context, img domain.Image, instruction string) (string, error) {
	if s.editFn == nil {
		return "", nil
	}
	return s.editFn(ctx, img, instruction)
}

func (s *stubGateway) PolishText(ctx context.Context, rough string) (string, error) {
	if s.polishFn == nil {
		return "", nil
	}
	return s.polishFn(ctx, rough)
}

func (s *stubGateway) DraftListing(ctx context.Context, item, details string) (string, error) {
	if s.draftFn == nil {
		return "", nil
	}
	return s.draftFn(ctx, item, details)
}

// stubGuard is an in-memory InflightGuard whose backend can be made to fail.
type stubGuard struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func newStubGuard() *stubGuard {
	return &stubGuard{held: make(map[string]bool)}
}

func (g *stubGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return false, g.err
	}
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	return nil
}

var fixedNow = time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)

func testDeps(gw *stubGateway) panelDeps {
	return panelDeps{
		gateway: gw,
		guard:   newStubGuard(),
		mood:    NewMood(nil),
		log:     zerolog.Nop(),
		now:     func() time.Time { return fixedNow },
	}
}

// pngHeader is enough for MIME sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: fixedNow}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
