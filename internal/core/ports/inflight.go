package ports

import "context"

// InflightGuard prevents the same action from being submitted twice while
// the first submission is still running.
type InflightGuard interface {
	// Acquire returns false when key is already held.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
