package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound          = errors.New("not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByGoogleID(ctx context.Context, googleID string) (User, error)
	// Create inserts the user and returns the stored row, server defaults included.
	// A uniqueness violation yields ErrUserAlreadyExists.
	Create(ctx context.Context, user User) (User, error)
	LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	// WithinTx runs fn against a repository bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(repo UserRepository) error) error
}
