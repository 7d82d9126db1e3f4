package google

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/prudvireddyNS/mentor/pkg/auth"
)

const DefaultIssuerURL = "https://accounts.google.com"

// OIDCVerifier checks ID token signatures locally against the issuer's published keys.
type OIDCVerifier struct {
	verifier   *oidc.IDTokenVerifier
	httpClient *http.Client
}

type idClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// NewOIDCVerifier runs provider discovery against issuerURL. clientID is the expected audience.
func NewOIDCVerifier(ctx context.Context, issuerURL, clientID string, timeout time.Duration) (*OIDCVerifier, error) {
	if issuerURL == "" {
		issuerURL = DefaultIssuerURL
	}
	client := &http.Client{Timeout: timeout}
	provider, err := oidc.NewProvider(oidc.ClientContext(ctx, client), issuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	cfg := &oidc.Config{ClientID: clientID, SkipClientIDCheck: clientID == ""}
	return &OIDCVerifier{verifier: provider.Verifier(cfg), httpClient: client}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, idToken string) (auth.Assertion, error) {
	token, err := v.verifier.Verify(oidc.ClientContext(ctx, v.httpClient), idToken)
	if err != nil {
		return auth.Assertion{}, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	var claims idClaims
	if err := token.Claims(&claims); err != nil {
		return auth.Assertion{}, fmt.Errorf("decode id token claims: %w", err)
	}
	return assertionFrom(token.Subject, claims)
}

func assertionFrom(subject string, claims idClaims) (auth.Assertion, error) {
	if subject == "" || claims.Email == "" {
		return auth.Assertion{}, fmt.Errorf("%w: missing email or sub", ErrRejected)
	}
	return auth.Assertion{
		Subject:       subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		GivenName:     claims.GivenName,
		FamilyName:    claims.FamilyName,
	}, nil
}
