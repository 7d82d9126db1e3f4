package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenType is the OAuth2 token type of every issued access token.
const TokenType = "bearer"

// Service implements password registration and login.
type Service struct {
	repo       UserRepository
	hasher     PasswordHasher
	tokens     TokenIssuer
	ttl        time.Duration
	allowAdmin bool
	logger     *zap.Logger
}

type ServiceConfig struct {
	TokenTTL               time.Duration
	AllowAdminRegistration bool
}

// NewService returns the password authentication use case.
// MaxPasswordBytes bounds registration passwords by bcrypt's input limit.
const MaxPasswordBytes = 72

func NewService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer, cfg ServiceConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		hasher:     hasher,
		tokens:     tokens,
		ttl:        cfg.TokenTTL,
		allowAdmin: cfg.AllowAdminRegistration,
		logger:     logger,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	if !in.Role.Valid() || (in.Role == RoleAdmin && !s.allowAdmin) {
		return User{}, ErrInvalidRole
	}
	// bcrypt only reads the first 72 bytes
	if len(in.Password) > MaxPasswordBytes {
		return User{}, ErrPasswordTooLong
	}
	// Best-effort check; the unique constraint decides under concurrency.
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup email: %w", err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}
	user, err := s.repo.Create(ctx, User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: &digest,
		Role:         in.Role,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	})
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	return user, nil
}

// Login verifies the password of the account registered under email.
// Unknown email, accounts without a password and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return TokenResponse{}, ErrInvalidCredentials
		}
		return TokenResponse{}, fmt.Errorf("lookup email: %w", err)
	}
	if !user.HasPassword() || !s.hasher.Verify(password, *user.PasswordHash) {
		return TokenResponse{}, ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(*user.PasswordHash) {
		s.rehash(ctx, user.ID, password)
	}

	token, err := s.tokens.Issue(user.ID.String(), s.ttl)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return TokenResponse{AccessToken: token, TokenType: TokenType, Role: user.Role}, nil
}

func (s *Service) rehash(ctx context.Context, id uuid.UUID, password string) {
	digest, err := s.hasher.Hash(password)
	if err == nil {
		err = s.repo.UpdatePasswordHash(ctx, id, digest)
	}
	if err != nil {
		s.logger.Warn("password rehash failed", zap.String("user_id", id.String()), zap.Error(err))
	}
}

// GetUser loads a user by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}
