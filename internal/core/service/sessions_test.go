package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

func newTestSessions(t *testing.T, keys *GuestKeySet) *Sessions {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewSessions(ctx, newTestValidator(t, keys), PanelConfig{
		Gateway: &stubGateway{},
		Guard:   newStubGuard(),
		Issuer:  NewGuestKeyIssuer(keys, rand.NewPCG(1, 1), zerolog.Nop()),
		Mood:    NewMood(nil),
		Seeds:   DefaultSeeds(),
		Log:     zerolog.Nop(),
	})
}

func bootedSession(t *testing.T, r *Sessions) *Session {
	t.Helper()
	sess, err := r.Create()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	<-sess.Ready()
	return sess
}

func TestSessions_CreateGetRemove(t *testing.T) {
	r := newTestSessions(t, NewGuestKeySet())
	sess := bootedSession(t, r)

	got, err := r.Get(sess.ID)
	if err != nil || got != sess {
		t.Fatalf("Get: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", r.Len())
	}
	if got := sess.View().Screen; got != domain.ScreenLoggedOut {
		t.Fatalf("expected LOGGED_OUT after boot, got %s", got)
	}

	if err := r.Remove(sess.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := r.Get(sess.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := r.Remove(sess.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second remove, got %v", err)
	}
}

func TestSession_PanelsFollowRole(t *testing.T) {
	r := newTestSessions(t, NewGuestKeySet("G-8821-X"))
	ctx := context.Background()

	anon := bootedSession(t, r)
	if _, err := anon.Concierge(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := anon.Parking(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for parking, got %v", err)
	}

	resident := bootedSession(t, r)
	if _, err := resident.Login(ctx, domain.LoginResident, domain.Credentials{Username: "Yassin", Password: "emarabot"}); err != nil {
		t.Fatalf("resident login: %v", err)
	}
	if _, err := resident.Concierge(); err != nil {
		t.Fatalf("resident concierge: %v", err)
	}
	if _, err := resident.Lens(); err != nil {
		t.Fatalf("resident lens: %v", err)
	}
	if _, err := resident.Board(); err != nil {
		t.Fatalf("resident board: %v", err)
	}
	if _, err := resident.Services(); err != nil {
		t.Fatalf("resident services: %v", err)
	}
	if _, err := resident.Dashboard(); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for resident dashboard, got %v", err)
	}
	if view, err := resident.Parking(); err != nil || view.Visitor {
		t.Fatalf("resident parking: %+v %v", view, err)
	}

	manager := bootedSession(t, r)
	if _, err := manager.Login(ctx, domain.LoginAdmin, domain.Credentials{Username: "admin", Password: "emarabot"}); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if _, err := manager.Dashboard(); err != nil {
		t.Fatalf("manager dashboard: %v", err)
	}
	if _, err := manager.Concierge(); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for manager concierge, got %v", err)
	}
	if _, err := manager.Parking(); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for manager parking, got %v", err)
	}

	guest := bootedSession(t, r)
	if _, err := guest.Login(ctx, domain.LoginGuest, domain.Credentials{AccessCode: "G-8821-X"}); err != nil {
		t.Fatalf("guest login: %v", err)
	}
	if view, err := guest.Parking(); err != nil || !view.Visitor || view.AssignedSpot != "105" {
		t.Fatalf("guest parking: %+v %v", view, err)
	}
	if _, err := guest.Services(); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for guest services, got %v", err)
	}
}

func TestSession_LogoutDropsPanels(t *testing.T) {
	r := newTestSessions(t, NewGuestKeySet())
	sess := bootedSession(t, r)
	ctx := context.Background()
	creds := domain.Credentials{Username: "Rashwan", Password: "emarabot"}

	_, _ = sess.Login(ctx, domain.LoginResident, creds)
	board, _ := sess.Board()
	_, _ = board.Publish("Bike", "$50", "Blue")

	sess.Logout()
	if _, err := sess.Board(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated after logout, got %v", err)
	}

	_, _ = sess.Login(ctx, domain.LoginResident, creds)
	board, err := sess.Board()
	if err != nil {
		t.Fatalf("Board after re-login: %v", err)
	}
	if n := len(board.Posts()); n != 3 {
		t.Fatalf("expected a fresh board after re-login, got %d posts", n)
	}
	concierge, _ := sess.Concierge()
	if msgs := concierge.Messages(); len(msgs) != 1 {
		t.Fatalf("expected a fresh conversation, got %d messages", len(msgs))
	}
}

func TestSession_VisitorPassUnlocksGuestLogin(t *testing.T) {
	keys := NewGuestKeySet()
	r := newTestSessions(t, keys)
	ctx := context.Background()

	resident := bootedSession(t, r)
	_, _ = resident.Login(ctx, domain.LoginResident, domain.Credentials{Username: "Yassin", Password: "emarabot"})
	hub, err := resident.Services()
	if err != nil {
		t.Fatalf("Services: %v", err)
	}
	key := hub.IssueVisitorPass()

	guest := bootedSession(t, r)
	identity, err := guest.Login(ctx, domain.LoginGuest, domain.Credentials{AccessCode: key.String()})
	if err != nil {
		t.Fatalf("guest login with issued key %q: %v", key, err)
	}
	if identity.Role != domain.RoleGuest || identity.Name != domain.VisitorName {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func newLimitedSessions(t *testing.T, clock *testClock, limits Limits) *Sessions {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewSessions(ctx, newTestValidator(t, NewGuestKeySet()), PanelConfig{
		Gateway: &stubGateway{},
		Guard:   newStubGuard(),
		Seeds:   DefaultSeeds(),
		Limits:  limits,
		Log:     zerolog.Nop(),
		Now:     clock.Now,
	})
}

func TestSessions_SweepEvictsIdleAndOverAge(t *testing.T) {
	clock := newTestClock()
	r := newLimitedSessions(t, clock, Limits{IdleTTL: time.Hour, MaxAge: 12 * time.Hour})

	idle := bootedSession(t, r)
	active := bootedSession(t, r)

	clock.Advance(30 * time.Minute)
	active.Touch()
	clock.Advance(45 * time.Minute)

	if n := r.Sweep(); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", r.Len())
	}
	if _, err := r.Get(idle.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected idle session evicted, got %v", err)
	}
	if _, err := r.Get(active.ID); err != nil {
		t.Fatalf("active session evicted: %v", err)
	}

	// Use keeps a session alive only until it outlives its token.
	for range 15 {
		clock.Advance(50 * time.Minute)
		active.Touch()
	}
	if n := r.Sweep(); n != 1 || r.Len() != 0 {
		t.Fatalf("expected over-age session evicted, got %d evictions and %d live", n, r.Len())
	}
}

func TestSessions_GetHidesExpiredBeforeSweep(t *testing.T) {
	clock := newTestClock()
	r := newLimitedSessions(t, clock, Limits{IdleTTL: time.Hour})
	sess := bootedSession(t, r)

	clock.Advance(2 * time.Hour)

	if _, err := r.Get(sess.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected session still registered until sweep, got %d", r.Len())
	}
}

func TestSessions_ManyCreatesStayBounded(t *testing.T) {
	clock := newTestClock()
	r := newLimitedSessions(t, clock, Limits{IdleTTL: time.Hour, MaxSessions: 100})

	var rejected int
	for range 1000 {
		if _, err := r.Create(); err != nil {
			if !errors.Is(err, domain.ErrSessionLimit) {
				t.Fatalf("unexpected error: %v", err)
			}
			rejected++
		}
	}
	if r.Len() != 100 || rejected != 900 {
		t.Fatalf("expected 100 live and 900 rejected, got %d live and %d rejected", r.Len(), rejected)
	}

	// A full registry makes room by sweeping expired sessions first.
	clock.Advance(2 * time.Hour)
	if _, err := r.Create(); err != nil {
		t.Fatalf("create after expiry: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 live session after sweep, got %d", r.Len())
	}
}

func TestSessions_DefaultsMood(t *testing.T) {
	r := newLimitedSessions(t, newTestClock(), Limits{})
	manager := bootedSession(t, r)
	if _, err := manager.Login(context.Background(), domain.LoginAdmin, domain.Credentials{Username: "admin", Password: "emarabot"}); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	dashboard, err := manager.Dashboard()
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if got := dashboard.Overview().Mood; got != moodStart {
		t.Fatalf("expected mood %d, got %d", moodStart, got)
	}
}
