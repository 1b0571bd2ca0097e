package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
)

func guardKey(sessionID string, capability domain.Capability) string {
	return "inflight:" + sessionID + ":" + string(capability)
}

// acquire takes the in-flight slot for key. A guard backend failure is
// logged and the action proceeds unguarded.
func acquire(ctx context.Context, guard ports.InflightGuard, log zerolog.Logger, key string) (func(), error) {
	ok, err := guard.Acquire(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("in-flight guard unavailable, proceeding unguarded")
		return func() {}, nil
	}
	if !ok {
		return nil, domain.ErrRequestPending
	}
	return func() {
		if err := guard.Release(context.WithoutCancel(ctx), key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to release in-flight guard")
		}
	}, nil
}
