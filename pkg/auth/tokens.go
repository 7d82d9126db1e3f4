package auth

import (
	"context"
	"time"
)

// TokenIssuer abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenIssuer interface {
	Issue(subject string, lifetime time.Duration) (string, error)
}

// TokenValidator returns the subject of a valid token.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// PasswordHasher hashes and verifies secrets.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
	NeedsRehash(digest string) bool
}

// AssertionVerifier checks a third-party identity assertion with its issuer.
type AssertionVerifier interface {
	Verify(ctx context.Context, assertion string) (Assertion, error)
}
