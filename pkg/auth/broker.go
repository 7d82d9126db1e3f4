package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errLinkedElsewhere = errors.New("email is linked to another google account")

// Broker logs users in with a third-party identity assertion, linking or
// provisioning the local account on the way.
type Broker struct {
	verifier             AssertionVerifier
	repo                 UserRepository
	tokens               TokenIssuer
	ttl                  time.Duration
	requireVerifiedEmail bool
	logger               *zap.Logger
}

type BrokerConfig struct {
	TokenTTL time.Duration
	// RequireVerifiedEmail refuses to link an existing account unless the
	// provider vouches for the email address.
	RequireVerifiedEmail bool
}

func NewBroker(verifier AssertionVerifier, repo UserRepository, tokens TokenIssuer, cfg BrokerConfig, logger *zap.Logger) *Broker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broker{
		verifier:             verifier,
		repo:                 repo,
		tokens:               tokens,
		ttl:                  cfg.TokenTTL,
		requireVerifiedEmail: cfg.RequireVerifiedEmail,
		logger:               logger,
	}
}

// Login verifies the assertion, resolves the local account and issues a token.
// Every failure is reported as ErrInvalidAssertion with its cause attached,
// except a repeated provisioning conflict, reported as ErrProvisionConflict.
func (b *Broker) Login(ctx context.Context, assertion string) (TokenResponse, error) {
	resp, err := b.login(ctx, assertion)
	if err != nil {
		err = invalidAssertion(err)
		b.logger.Warn("google login failed", zap.Stringer("kind", KindOf(err)), zap.Error(err))
		return TokenResponse{}, err
	}
	return resp, nil
}

func (b *Broker) login(ctx context.Context, assertion string) (TokenResponse, error) {
	claims, err := b.verifier.Verify(ctx, assertion)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("verify assertion: %w", err)
	}
	if claims.Email == "" || claims.Subject == "" {
		return TokenResponse{}, errors.New("assertion is missing email or subject")
	}

	user, err := b.resolveInTx(ctx, claims)
	if errors.Is(err, ErrUserAlreadyExists) {
		// A concurrent first login provisioned the account; retry as a login.
		b.logger.Info("provisioning conflict, resolving again", zap.String("google_id", claims.Subject))
		user, err = b.resolveInTx(ctx, claims)
		if errors.Is(err, ErrUserAlreadyExists) {
			return TokenResponse{}, withCause(ErrProvisionConflict, err)
		}
	}
	if err != nil {
		return TokenResponse{}, err
	}

	token, err := b.tokens.Issue(user.ID.String(), b.ttl)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return TokenResponse{AccessToken: token, TokenType: TokenType, Role: user.Role}, nil
}

func (b *Broker) resolveInTx(ctx context.Context, claims Assertion) (User, error) {
	var user User
	err := b.repo.WithinTx(ctx, func(repo UserRepository) error {
		var err error
		user, err = b.resolve(ctx, repo, claims)
		return err
	})
	return user, err
}

// resolve finds the account by google id, then by email (linking it), and
// otherwise provisions a new student account.
func (b *Broker) resolve(ctx context.Context, repo UserRepository, claims Assertion) (User, error) {
	user, err := repo.GetByGoogleID(ctx, claims.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("lookup google id: %w", err)
	}

	user, err = repo.GetByEmail(ctx, claims.Email)
	switch {
	case err == nil:
		return b.link(ctx, repo, user, claims)
	case !errors.Is(err, ErrNotFound):
		return User{}, fmt.Errorf("lookup email: %w", err)
	}

	created, err := repo.Create(ctx, User{
		ID:        uuid.New(),
		Email:     claims.Email,
		GoogleID:  &claims.Subject,
		Role:      RoleStudent,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
	})
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return User{}, err
		}
		return User{}, fmt.Errorf("provision user: %w", err)
	}
	b.logger.Info("provisioned user from google login", zap.String("user_id", created.ID.String()))
	return created, nil
}

func (b *Broker) link(ctx context.Context, repo UserRepository, user User, claims Assertion) (User, error) {
	if user.HasExternalIdentity() {
		return User{}, errLinkedElsewhere
	}
	if !claims.EmailVerified {
		if b.requireVerifiedEmail {
			return User{}, errors.New("provider did not verify the email address")
		}
		b.logger.Warn("linking google identity to unverified email", zap.String("user_id", user.ID.String()))
	}
	if err := repo.LinkGoogleID(ctx, user.ID, claims.Subject); err != nil {
		return User{}, fmt.Errorf("link google id: %w", err)
	}
	user.GoogleID = &claims.Subject
	b.logger.Info("linked google identity", zap.String("user_id", user.ID.String()))
	return user, nil
}

// invalidAssertion collapses any broker failure into ErrInvalidAssertion,
// keeping the provisioning conflict distinct so callers can retry the login.
func invalidAssertion(err error) error {
	if KindOf(err) == KindConflict {
		return err
	}
	return withCause(ErrInvalidAssertion, err)
}
