package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prudvireddyNS/mentor/pkg/auth"
	storage "github.com/prudvireddyNS/mentor/pkg/storage/postgres"
)

var userColumns = []string{
	"id", "email", "password_hash", "google_id", "role",
	"first_name", "last_name", "created_at", "is_active",
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash *string   `db:"password_hash"`
	GoogleID     *string   `db:"google_id"`
	Role         string    `db:"role"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	CreatedAt    time.Time `db:"created_at"`
	IsActive     bool      `db:"is_active"`
}

func (r userRow) toDomain() auth.User {
	return auth.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		GoogleID:     r.GoogleID,
		Role:         auth.Role(r.Role),
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		CreatedAt:    r.CreatedAt.UTC(),
		IsActive:     r.IsActive,
	}
}

// UserRepository implements auth.UserRepository backed by PostgreSQL.
// Email lookups are exact; the unique index is the final word on duplicates.
type UserRepository struct {
	db   *sqlx.DB
	q    storage.DBTX
	inTx bool
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, q: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	return r.getBy(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (auth.User, error) {
	return r.getBy(ctx, sq.Eq{"google_id": googleID})
}

func (r *UserRepository) getBy(ctx context.Context, where sq.Eq) (auth.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return auth.User{}, fmt.Errorf("build user query: %w", err)
	}
	var row userRow
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		return auth.User{}, notFound(err, auth.ErrNotFound)
	}
	return row.toDomain(), nil
}

// Create inserts the user and reloads it so server defaults are visible.
func (r *UserRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	values := map[string]any{
		"id":            user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"google_id":     user.GoogleID,
		"role":          string(user.Role),
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
	}
	if !user.CreatedAt.IsZero() {
		values["created_at"] = user.CreatedAt
	}
	query, args, err := psql.Insert("users").SetMap(values).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).ToSql()
	if err != nil {
		return auth.User{}, fmt.Errorf("build insert user: %w", err)
	}
	var row userRow
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return auth.User{}, auth.ErrUserAlreadyExists
		}
		return auth.User{}, err
	}
	return row.toDomain(), nil
}

func (r *UserRepository) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error {
	return r.update(ctx, id, "google_id", googleID)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.update(ctx, id, "password_hash", hash)
}

func (r *UserRepository) update(ctx context.Context, id uuid.UUID, column string, value any) error {
	query, args, err := psql.Update("users").Set(column, value).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update user: %w", err)
	}
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return affected(res, auth.ErrNotFound)
}

// WithinTx runs fn against a repository bound to one transaction. Nested
// calls join the outer transaction.
func (r *UserRepository) WithinTx(ctx context.Context, fn func(repo auth.UserRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return storage.WithTx(ctx, r.db, nil, func(ctx context.Context, tx storage.DBTX) error {
		return fn(&UserRepository{db: r.db, q: tx, inTx: true})
	})
}
