package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/pkg/metrics"
)

// Timing holds the simulated latencies. Zero disables a delay.
type Timing struct {
	Boot  time.Duration
	Login time.Duration
	Scan  time.Duration
}

// SessionStore holds one session's identity and view state.
type SessionStore struct {
	checker CredentialChecker
	timing  Timing
	log     zerolog.Logger

	mu       sync.RWMutex
	identity domain.Identity
	router   *ViewRouter
	onChange func(domain.Identity)

	bootOnce sync.Once
	ready    chan struct{}
}

func NewSessionStore(checker CredentialChecker, timing Timing, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		checker:  checker,
		timing:   timing,
		log:      log,
		identity: domain.Anonymous(),
		router:   NewViewRouter(),
		ready:    make(chan struct{}),
	}
}

// OnIdentityChange registers fn to run whenever a login succeeds or a logout
// happens. fn runs with the store locked and must not call back into it.
func (s *SessionStore) OnIdentityChange(fn func(domain.Identity)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Start waits out the boot delay and moves the session to LOGGED_OUT.
func (s *SessionStore) Start(ctx context.Context) error {
	if err := wait(ctx, s.timing.Boot); err != nil {
		return err
	}
	s.bootOnce.Do(func() {
		s.mu.Lock()
		s.router.Boot()
		s.mu.Unlock()
		close(s.ready)
	})
	return nil
}

// Ready is closed once the session has booted.
func (s *SessionStore) Ready() <-chan struct{} {
	return s.ready
}

// Login validates creds after the login delay. On success the identity is
// replaced and the tab reset to SERVICES; on failure the identity is left
// as it was and domain.ErrInvalidCredentials is returned.
func (s *SessionStore) Login(ctx context.Context, kind domain.LoginKind, creds domain.Credentials) (domain.Identity, error) {
	s.mu.Lock()
	err := s.router.BeginLogin()
	s.mu.Unlock()
	if err != nil {
		return s.Identity(), err
	}

	if err := wait(ctx, s.timing.Login); err != nil {
		s.resolve(domain.Anonymous(), false)
		metrics.LoginsTotal.WithLabelValues(string(kind), "error").Inc()
		return s.Identity(), err
	}

	identity, err := s.checker.Validate(kind, creds)
	if err != nil {
		s.resolve(domain.Anonymous(), false)
		metrics.LoginsTotal.WithLabelValues(string(kind), "rejected").Inc()
		s.log.Info().Str("kind", string(kind)).Msg("login rejected")
		return s.Identity(), err
	}

	s.resolve(identity, true)
	metrics.LoginsTotal.WithLabelValues(string(kind), "accepted").Inc()
	s.log.Info().Str("kind", string(kind)).Str("role", string(identity.Role)).Msg("login accepted")
	return identity, nil
}

func (s *SessionStore) resolve(identity domain.Identity, accepted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !accepted {
		s.router.EndLogin(domain.RoleNone)
		return
	}
	s.identity = identity
	s.router.EndLogin(identity.Role)
	if s.onChange != nil {
		s.onChange(identity)
	}
}

// Logout clears the identity and resets the tab. It is idempotent.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasAuthenticated := s.identity.Authenticated()
	s.identity = domain.Anonymous()
	s.router.Logout()
	if s.onChange != nil {
		s.onChange(s.identity)
	}
	if wasAuthenticated {
		s.log.Info().Msg("logged out")
	}
}

// SelectTab switches the resident tab and reports whether it applied. For
// non-residents the view comes back untouched.
func (s *SessionStore) SelectTab(tab domain.Tab) (domain.ViewState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := s.router.SelectTab(tab)
	return s.router.View(), applied
}

func (s *SessionStore) Identity() domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *SessionStore) View() domain.ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.router.View()
}
