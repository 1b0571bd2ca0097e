package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
	"github.com/emarabot/plaza-os/internal/pkg/metrics"
)

const (
	conciergeUnavailable = "I am currently experiencing a connection issue. Please try again momentarily."
	conciergeNoAnswer    = "I apologize, I could not process that request."
)

// Concierge is a resident's chat with the AI concierge. Messages are kept
// in request order; a second send while one is in flight is refused.
type Concierge struct {
	sessionID string
	gateway   ports.Gateway
	guard     ports.InflightGuard
	log       zerolog.Logger
	now       func() time.Time

	mu       sync.RWMutex
	messages []domain.ChatMessage
}

func newConcierge(sessionID, residentName string, deps panelDeps) *Concierge {
	c := &Concierge{
		sessionID: sessionID,
		gateway:   deps.gateway,
		guard:     deps.guard,
		log:       deps.log.With().Str("capability", string(domain.CapabilityConcierge)).Logger(),
		now:       deps.now,
	}
	c.messages = []domain.ChatMessage{{
		ID:        uuid.NewString(),
		Role:      domain.AuthorModel,
		Text:      fmt.Sprintf("Good evening, %s. The Plaza OS is online. How may I assist you tonight?", residentName),
		Timestamp: c.now(),
	}}
	return c
}

// Messages returns the conversation, oldest first.
func (c *Concierge) Messages() []domain.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Send appends text and the concierge's reply. Transport failures and empty
// answers are replaced by fixed apologies; a missing API credential is
// returned as domain.ErrConfiguration.
func (c *Concierge) Send(ctx context.Context, text string) (domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ChatMessage{}, domain.ErrEmptyMessage
	}
	release, err := acquire(ctx, c.guard, c.log, guardKey(c.sessionID, domain.CapabilityConcierge))
	if err != nil {
		return domain.ChatMessage{}, err
	}
	defer release()

	history := c.Messages()
	c.append(domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.AuthorUser,
		Text:      text,
		Timestamp: c.now(),
	})

	reply, err := c.gateway.Concierge(ctx, text, history)
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return domain.ChatMessage{}, err
	case err != nil:
		c.log.Warn().Err(err).Str("session_id", c.sessionID).Msg("concierge unavailable, using fallback")
		metrics.AIFallbacksTotal.WithLabelValues(string(domain.CapabilityConcierge), "transport").Inc()
		reply = conciergeUnavailable
	case strings.TrimSpace(reply) == "":
		metrics.AIFallbacksTotal.WithLabelValues(string(domain.CapabilityConcierge), "empty").Inc()
		reply = conciergeNoAnswer
	}

	answer := domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.AuthorModel,
		Text:      reply,
		Timestamp: c.now(),
	}
	c.append(answer)
	return answer, nil
}

func (c *Concierge) append(m domain.ChatMessage) {
	c.mu.Lock()
	c.messages = append(c.messages, m)
	c.mu.Unlock()
}
