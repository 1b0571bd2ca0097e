package ports

import (
	"context"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

// Gateway is the boundary to the external generative-AI service. Every call
// returns either a payload or an error wrapping one of domain.ErrConfiguration,
// domain.ErrTransport or domain.ErrMalformedResponse; fallbacks are chosen by
// the caller.
type Gateway interface {
	// Concierge answers message given the prior conversation, oldest first.
	Concierge(ctx context.Context, message string, history []domain.ChatMessage) (string, error)
	// DiagnoseImage returns the model's JSON diagnosis verbatim. It may be
	// wrapped in a markdown code fence.
	DiagnoseImage(ctx context.Context, img domain.Image) (string, error)
	// EditImageDescription describes img as it would look after instruction
	// is applied.
	EditImageDescription(ctx context.Context, img domain.Image, instruction string) (string, error)
	PolishText(ctx context.Context, rough string) (string, error)
	DraftListing(ctx context.Context, item, details string) (string, error)
}

// CredentialSource resolves the AI API credential at call time.
type CredentialSource interface {
	APIKey(ctx context.Context) (string, error)
}
