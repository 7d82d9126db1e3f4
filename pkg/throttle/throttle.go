// Package throttle limits repeated failed logins per key.
package throttle

import "context"

// Limiter counts failures per key inside a window.
type Limiter interface {
	// Allow reports whether another attempt for key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
	// Fail records a failed attempt.
	Fail(ctx context.Context, key string) error
	// Reset forgets the failures of key, typically after a successful login.
	Reset(ctx context.Context, key string) error
}

// Noop never blocks. It is used when no Redis is configured.
type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, error) { return true, nil }
func (Noop) Fail(context.Context, string) error          { return nil }
func (Noop) Reset(context.Context, string) error         { return nil }
