package ports

import "github.com/emarabot/plaza-os/internal/core/domain"

// GuestKeyStore is the append-only set of visitor passes. Duplicates are
// kept as separate entries; membership is all that matters for validation.
type GuestKeyStore interface {
	Add(key domain.GuestKey)
	Contains(key domain.GuestKey) bool
	Len() int
}

// GuestKeyIssuer hands out new visitor passes.
type GuestKeyIssuer interface {
	Issue() domain.GuestKey
}
