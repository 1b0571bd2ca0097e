package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
	"github.com/emarabot/plaza-os/internal/pkg/metrics"
)

const defaultDiplomatInput = "Pool closed, cleaning."

// DiplomatState is the manager's rough note and its polished rewrite.
type DiplomatState struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type DashboardOverview struct {
	Mood     int             `json:"mood"`
	Tickets  []domain.Ticket `json:"tickets"`
	Diplomat DiplomatState   `json:"diplomat"`
}

// Dashboard is the manager command center.
type Dashboard struct {
	sessionID string
	gateway   ports.Gateway
	guard     ports.InflightGuard
	log       zerolog.Logger
	mood      *Mood
	tickets   []domain.Ticket

	mu       sync.RWMutex
	diplomat DiplomatState
}

func newDashboard(sessionID string, tickets []domain.Ticket, deps panelDeps) *Dashboard {
	return &Dashboard{
		sessionID: sessionID,
		gateway:   deps.gateway,
		guard:     deps.guard,
		log:       deps.log,
		mood:      deps.mood,
		tickets:   tickets,
		diplomat:  DiplomatState{Input: defaultDiplomatInput},
	}
}

func (d *Dashboard) Overview() DashboardOverview {
	d.mu.RLock()
	diplomat := d.diplomat
	d.mu.RUnlock()

	tickets := make([]domain.Ticket, len(d.tickets))
	copy(tickets, d.tickets)
	return DashboardOverview{
		Mood:     d.mood.Value(),
		Tickets:  tickets,
		Diplomat: diplomat,
	}
}

// Polish rewrites a rough note as a resident announcement. When the service
// fails or answers with nothing the note comes back unchanged.
func (d *Dashboard) Polish(ctx context.Context, rough string) (string, error) {
	if strings.TrimSpace(rough) == "" {
		return "", domain.ErrEmptyMessage
	}
	release, err := acquire(ctx, d.guard, d.log, guardKey(d.sessionID, domain.CapabilityPolish))
	if err != nil {
		return "", err
	}
	defer release()

	d.mu.Lock()
	d.diplomat.Input = rough
	d.mu.Unlock()

	polished, err := d.gateway.PolishText(ctx, rough)
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return "", err
	case err != nil:
		d.log.Warn().Err(err).Str("session_id", d.sessionID).Msg("polish failed, returning note unchanged")
		metrics.AIFallbacksTotal.WithLabelValues(string(domain.CapabilityPolish), "transport").Inc()
		polished = rough
	case strings.TrimSpace(polished) == "":
		metrics.AIFallbacksTotal.WithLabelValues(string(domain.CapabilityPolish), "empty").Inc()
		polished = rough
	}

	d.mu.Lock()
	d.diplomat.Output = polished
	d.mu.Unlock()
	return polished, nil
}
