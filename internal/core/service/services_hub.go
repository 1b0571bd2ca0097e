package service

import (
	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
)

// ServicesHub is the resident's services grid.
type ServicesHub struct {
	cards  []domain.ServiceCard
	issuer ports.GuestKeyIssuer
}

func newServicesHub(cards []domain.ServiceCard, issuer ports.GuestKeyIssuer) *ServicesHub {
	return &ServicesHub{cards: cards, issuer: issuer}
}

func (h *ServicesHub) Catalogue() []domain.ServiceCard {
	out := make([]domain.ServiceCard, len(h.cards))
	copy(out, h.cards)
	return out
}

// IssueVisitorPass generates a fresh guest access key.
func (h *ServicesHub) IssueVisitorPass() domain.GuestKey {
	return h.issuer.Issue()
}
