package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Gate resolves the caller behind a bearer token and checks roles.
// Tokens are not revocable on their own: deleting the user revokes them.
type Gate struct {
	tokens TokenValidator
	repo   UserRepository
}

func NewGate(tokens TokenValidator, repo UserRepository) *Gate {
	return &Gate{tokens: tokens, repo: repo}
}

// Authenticate returns the user the token was issued to. Invalid, expired or
// malformed tokens and tokens of users that no longer exist yield ErrUnauthorized.
func (g *Gate) Authenticate(ctx context.Context, token string) (User, error) {
	subject, err := g.tokens.Validate(token)
	if err != nil {
		return User{}, withCause(ErrUnauthorized, err)
	}
	id, err := uuid.Parse(subject)
	if err != nil {
		return User{}, withCause(ErrUnauthorized, err)
	}
	user, err := g.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, withCause(ErrUnauthorized, err)
		}
		return User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// Authorize requires user.Role to equal required. Roles are not ranked.
func (g *Gate) Authorize(user User, required Role) error {
	if user.Role != required {
		return ErrForbidden
	}
	return nil
}
