// Package google verifies Google ID tokens presented as login assertions.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prudvireddyNS/mentor/pkg/auth"
)

const DefaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var ErrRejected = errors.New("google rejected the id token")

// TokenInfoVerifier asks Google's tokeninfo endpoint to validate the ID token.
type TokenInfoVerifier struct {
	endpoint   string
	clientID   string
	httpClient *http.Client
}

// NewTokenInfoVerifier returns a verifier bound to endpoint. When clientID is
// set the token audience must match it.
func NewTokenInfoVerifier(endpoint, clientID string, timeout time.Duration) *TokenInfoVerifier {
	if endpoint == "" {
		endpoint = DefaultTokenInfoURL
	}
	return &TokenInfoVerifier{
		endpoint:   endpoint,
		clientID:   clientID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type tokenInfo struct {
	Sub           string   `json:"sub"`
	Email         string   `json:"email"`
	EmailVerified flexBool `json:"email_verified"`
	Aud           string   `json:"aud"`
	GivenName     string   `json:"given_name"`
	FamilyName    string   `json:"family_name"`
}

func (v *TokenInfoVerifier) Verify(ctx context.Context, idToken string) (auth.Assertion, error) {
	u, err := url.Parse(v.endpoint)
	if err != nil {
		return auth.Assertion{}, fmt.Errorf("parse tokeninfo url: %w", err)
	}
	q := u.Query()
	q.Set("id_token", idToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return auth.Assertion{}, err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return auth.Assertion{}, fmt.Errorf("call tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return auth.Assertion{}, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var info tokenInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&info); err != nil {
		return auth.Assertion{}, fmt.Errorf("decode tokeninfo: %w", err)
	}
	if info.Email == "" || info.Sub == "" {
		return auth.Assertion{}, fmt.Errorf("%w: missing email or sub", ErrRejected)
	}
	if v.clientID != "" && info.Aud != v.clientID {
		return auth.Assertion{}, fmt.Errorf("%w: audience %q", ErrRejected, info.Aud)
	}
	return auth.Assertion{
		Subject:       info.Sub,
		Email:         info.Email,
		EmailVerified: bool(info.EmailVerified),
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
	}, nil
}

// flexBool accepts both JSON booleans and the quoted form tokeninfo returns.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := string(data)
	if uq, err := strconv.Unquote(s); err == nil {
		s = uq
	}
	if s == "" || s == "null" {
		*b = false
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("email_verified: %w", err)
	}
	*b = flexBool(v)
	return nil
}
