package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
	"github.com/emarabot/plaza-os/internal/pkg/metrics"
)

const draftFallback = "Contact for details."

// CommunityBoard is the resident bulletin board. New posts go on top.
type CommunityBoard struct {
	sessionID string
	author    string
	gateway   ports.Gateway
	guard     ports.InflightGuard
	log       zerolog.Logger

	mu    sync.RWMutex
	posts []domain.CommunityPost
	draft string
}

func newCommunityBoard(sessionID, author string, seed []domain.CommunityPost, deps panelDeps) *CommunityBoard {
	posts := make([]domain.CommunityPost, len(seed))
	copy(posts, seed)
	return &CommunityBoard{
		sessionID: sessionID,
		author:    author,
		gateway:   deps.gateway,
		guard:     deps.guard,
		log:       deps.log,
		posts:     posts,
	}
}

func (b *CommunityBoard) Posts() []domain.CommunityPost {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.CommunityPost, len(b.posts))
	copy(out, b.posts)
	return out
}

// Draft asks the AI copywriter for a listing description and keeps it for
// the next Publish.
func (b *CommunityBoard) Draft(ctx context.Context, item, details string) (string, error) {
	if strings.TrimSpace(item) == "" {
		return "", domain.ErrEmptyItem
	}
	release, err := acquire(ctx, b.guard, b.log, guardKey(b.sessionID, domain.CapabilityDraft))
	if err != nil {
		return "", err
	}
	defer release()

	text, err := b.gateway.DraftListing(ctx, item, details)
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return "", err
	case err != nil:
		b.log.Warn().Err(err).Str("session_id", b.sessionID).Msg("listing draft failed, using fallback")
		metrics.AIFallbacksTotal.WithLabelValues(string(domain.CapabilityDraft), "transport").Inc()
		text = draftFallback
	case strings.TrimSpace(text) == "":
		metrics.AIFallbacksTotal.WithLabelValues(string(domain.CapabilityDraft), "empty").Inc()
		text = draftFallback
	}

	b.mu.Lock()
	b.draft = text
	b.mu.Unlock()
	return text, nil
}

// Publish puts a sale listing on top of the board. Its content is the last
// draft when there is one, otherwise details.
func (b *CommunityBoard) Publish(item, price, details string) (domain.CommunityPost, error) {
	if strings.TrimSpace(item) == "" {
		return domain.CommunityPost{}, domain.ErrEmptyItem
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	content := details
	if b.draft != "" {
		content = b.draft
	}
	post := domain.CommunityPost{
		ID:      uuid.NewString(),
		Author:  b.author,
		Title:   "Selling: " + item,
		Price:   price,
		Content: content,
		Type:    domain.PostSale,
	}
	b.posts = append([]domain.CommunityPost{post}, b.posts...)
	b.draft = ""
	return post, nil
}

func (b *CommunityBoard) Like(id string) (domain.CommunityPost, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.posts {
		if b.posts[i].ID == id {
			b.posts[i].Likes++
			return b.posts[i], nil
		}
	}
	return domain.CommunityPost{}, domain.ErrPostNotFound
}
