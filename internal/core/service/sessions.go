package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
	"github.com/emarabot/plaza-os/internal/pkg/metrics"
)

// Seeds is the static mock data panels start from.
type Seeds struct {
	Posts     []domain.CommunityPost
	Tickets   []domain.Ticket
	Services  []domain.ServiceCard
	Spots     []domain.ParkingSpot
	GuestSpot string
	// Unit labels posts published by residents.
	Unit string
}

func DefaultSeeds() Seeds {
	return Seeds{
		Posts:     domain.SeedPosts(),
		Tickets:   domain.SeedTickets(),
		Services:  domain.SeedServices(),
		Spots:     domain.SeedSpots(),
		GuestSpot: "105",
		Unit:      "Unit 404",
	}
}

// PanelConfig carries everything sessions and their feature panels are
// built from.
type PanelConfig struct {
	Gateway ports.Gateway
	Guard   ports.InflightGuard
	Issuer  ports.GuestKeyIssuer
	// Mood defaults to a fresh, unticked mood.
	Mood   *Mood
	Seeds  Seeds
	Timing Timing
	Limits Limits
	Log    zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Limits bounds the session registry. Zero values disable a limit.
type Limits struct {
	// IdleTTL evicts sessions that have not been used for this long.
	IdleTTL time.Duration
	// MaxAge evicts sessions older than this, whatever their use. It
	// matches the token lifetime: an older session is unreachable.
	MaxAge time.Duration
	// MaxSessions caps live sessions; Create fails with
	// domain.ErrSessionLimit beyond it.
	MaxSessions int
}

type panelDeps struct {
	gateway ports.Gateway
	guard   ports.InflightGuard
	mood    *Mood
	timing  Timing
	log     zerolog.Logger
	now     func() time.Time
}

// Panels is the per-login UI state. Which fields are set depends on the role.
type Panels struct {
	Services  *ServicesHub
	Concierge *Concierge
	Lens      *Lens
	Board     *CommunityBoard
	Dashboard *Dashboard
}

func buildPanels(sessionID string, identity domain.Identity, cfg PanelConfig) *Panels {
	deps := panelDeps{
		gateway: cfg.Gateway,
		guard:   cfg.Guard,
		mood:    cfg.Mood,
		timing:  cfg.Timing,
		log:     cfg.Log.With().Str("session_id", sessionID).Logger(),
		now:     cfg.Now,
	}
	if deps.now == nil {
		deps.now = time.Now
	}

	p := &Panels{}
	switch identity.Role {
	case domain.RoleResident:
		p.Services = newServicesHub(cfg.Seeds.Services, cfg.Issuer)
		p.Concierge = newConcierge(sessionID, identity.Name, deps)
		p.Lens = newLens(sessionID, deps)
		p.Board = newCommunityBoard(sessionID, "You ("+cfg.Seeds.Unit+")", cfg.Seeds.Posts, deps)
	case domain.RoleManager:
		p.Dashboard = newDashboard(sessionID, cfg.Seeds.Tickets, deps)
	}
	return p
}

// Session is one client's Session/Role Store plus the panels of its current
// login. Panels are rebuilt on every login and dropped on logout.
type Session struct {
	ID        string
	CreatedAt time.Time
	*SessionStore

	parking  *ParkingGuide
	now      func() time.Time
	lastSeen atomic.Int64

	mu     sync.RWMutex
	panels *Panels
}

func (s *Session) current() (*Panels, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.panels == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.panels, nil
}

func panel[T any](s *Session, pick func(*Panels) *T) (*T, error) {
	p, err := s.current()
	if err != nil {
		return nil, err
	}
	if v := pick(p); v != nil {
		return v, nil
	}
	return nil, domain.ErrForbidden
}

func (s *Session) Services() (*ServicesHub, error) {
	return panel(s, func(p *Panels) *ServicesHub { return p.Services })
}

func (s *Session) Concierge() (*Concierge, error) {
	return panel(s, func(p *Panels) *Concierge { return p.Concierge })
}

func (s *Session) Lens() (*Lens, error) {
	return panel(s, func(p *Panels) *Lens { return p.Lens })
}

func (s *Session) Board() (*CommunityBoard, error) {
	return panel(s, func(p *Panels) *CommunityBoard { return p.Board })
}

func (s *Session) Dashboard() (*Dashboard, error) {
	return panel(s, func(p *Panels) *Dashboard { return p.Dashboard })
}

// Touch records that the session was just used.
func (s *Session) Touch() {
	s.lastSeen.Store(s.now().UnixNano())
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Parking renders the guidance map for residents and guests.
func (s *Session) Parking() (ParkingView, error) {
	switch role := s.Identity().Role; role {
	case domain.RoleResident, domain.RoleGuest:
		return s.parking.View(role), nil
	case domain.RoleManager:
		return ParkingView{}, domain.ErrForbidden
	default:
		return ParkingView{}, domain.ErrNotAuthenticated
	}
}

// Sessions is the registry of live sessions, keyed by session id.
type Sessions struct {
	ctx     context.Context
	checker CredentialChecker
	cfg     PanelConfig
	parking *ParkingGuide
	log     zerolog.Logger

	mu   sync.RWMutex
	byID map[string]*Session
}

// NewSessions returns an empty registry. Session boots and, when a limit
// asks for it, idle eviction run until ctx is done.
func NewSessions(ctx context.Context, checker CredentialChecker, cfg PanelConfig) *Sessions {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Mood == nil {
		cfg.Mood = NewMood(nil)
	}
	r := &Sessions{
		ctx:     ctx,
		checker: checker,
		cfg:     cfg,
		parking: NewParkingGuide(cfg.Seeds.Spots, cfg.Seeds.GuestSpot),
		log:     cfg.Log,
		byID:    make(map[string]*Session),
	}
	if cfg.Limits.IdleTTL > 0 || cfg.Limits.MaxAge > 0 {
		go r.runSweeper(sweepInterval(cfg.Limits))
	}
	return r
}

// Create registers a new anonymous session and starts its boot in the
// background. Ready on the returned session closes when boot completes.
// When the registry is full, expired sessions are swept first and
// domain.ErrSessionLimit is returned if that frees nothing.
func (r *Sessions) Create() (*Session, error) {
	id := uuid.NewString()
	log := r.log.With().Str("session_id", id).Logger()
	sess := &Session{
		ID:           id,
		CreatedAt:    r.cfg.Now(),
		SessionStore: NewSessionStore(r.checker, r.cfg.Timing, log),
		parking:      r.parking,
		now:          r.cfg.Now,
	}
	sess.lastSeen.Store(sess.CreatedAt.UnixNano())
	sess.OnIdentityChange(func(identity domain.Identity) {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if identity.Authenticated() {
			sess.panels = buildPanels(id, identity, r.cfg)
		} else {
			sess.panels = nil
		}
	})

	r.mu.Lock()
	if limit := r.cfg.Limits.MaxSessions; limit > 0 && len(r.byID) >= limit {
		r.sweepLocked()
		if len(r.byID) >= limit {
			r.mu.Unlock()
			log.Warn().Int("max_sessions", limit).Msg("session limit reached")
			return nil, domain.ErrSessionLimit
		}
	}
	r.byID[id] = sess
	r.mu.Unlock()
	metrics.SessionsLive.Inc()

	go func() {
		if err := sess.Start(r.ctx); err != nil {
			log.Debug().Err(err).Msg("session boot interrupted")
		}
	}()
	log.Debug().Msg("session created")
	return sess, nil
}

// Get returns a live session. Expired sessions that have not been swept
// yet are reported as not found.
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.byID[id]
	if !ok || r.expired(sess, r.cfg.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (r *Sessions) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.byID, id)
	metrics.SessionsLive.Dec()
	return nil
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Sweep evicts idle and over-age sessions and returns how many it removed.
func (r *Sessions) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *Sessions) sweepLocked() int {
	now := r.cfg.Now()
	evicted := 0
	for id, sess := range r.byID {
		if r.expired(sess, now) {
			delete(r.byID, id)
			metrics.SessionsLive.Dec()
			evicted++
		}
	}
	if evicted > 0 {
		r.log.Info().Int("evicted", evicted).Int("live", len(r.byID)).Msg("expired sessions evicted")
	}
	return evicted
}

func (r *Sessions) expired(sess *Session, now time.Time) bool {
	l := r.cfg.Limits
	if l.IdleTTL > 0 && now.Sub(sess.LastSeen()) > l.IdleTTL {
		return true
	}
	return l.MaxAge > 0 && now.Sub(sess.CreatedAt) > l.MaxAge
}

func (r *Sessions) runSweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// sweepInterval checks ten times per shortest limit, at most once a second.
func sweepInterval(l Limits) time.Duration {
	shortest := l.IdleTTL
	if shortest <= 0 || (l.MaxAge > 0 && l.MaxAge < shortest) {
		shortest = l.MaxAge
	}
	if interval := shortest / 10; interval > time.Second {
		return interval
	}
	return time.Second
}
