package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(t *testing.T, secret string, c *clock, opts ...Option) *Service {
	t.Helper()
	if c != nil {
		opts = append(opts, WithClock(c.now))
	}
	s, err := NewService([]byte(secret), opts...)
	require.NoError(t, err)
	return s
}

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()
	s := newTestService(t, "super-secret", nil)

	tok, err := s.Issue("user-123", time.Hour)
	require.NoError(t, err)

	sub, err := s.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestValidate_ExpiresAfterLifetime(t *testing.T) {
	t.Parallel()
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestService(t, "secret", c)

	tok, err := s.Issue("u1", 30*time.Minute)
	require.NoError(t, err)

	c.t = c.t.Add(29 * time.Minute)
	_, err = s.Validate(tok)
	require.NoError(t, err)

	c.t = c.t.Add(time.Minute) // exactly at expiry
	_, err = s.Validate(tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	c.t = c.t.Add(time.Second)
	_, err = s.Validate(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_DefaultLifetime(t *testing.T) {
	t.Parallel()
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestService(t, "secret", c)

	tok, err := s.Issue("u1", 0)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, c.t.Add(DefaultLifetime), claims.ExpiresAt.Time.UTC())
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()
	tok, err := newTestService(t, "right-secret", nil).Issue("u2", time.Hour)
	require.NoError(t, err)

	_, err = newTestService(t, "wrong-secret", nil).Validate(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Malformed(t *testing.T) {
	t.Parallel()
	s := newTestService(t, "k", nil)
	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := s.Validate(tok)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestValidate_MissingExpiry(t *testing.T) {
	t.Parallel()
	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u"}).SignedString(secret)
	require.NoError(t, err)

	_, err = newTestService(t, "k", nil).Validate(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_MissingSubject(t *testing.T) {
	t.Parallel()
	s := newTestService(t, "k", nil)
	tok, err := s.Issue("", time.Hour)
	require.NoError(t, err)

	_, err = s.Validate(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	claims := jwt.RegisteredClaims{Subject: "u", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	s := newTestService(t, "k", nil)
	for _, tok := range []string{hs512, none} {
		_, err := s.Validate(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestValidate_Issuer(t *testing.T) {
	t.Parallel()
	withIss := newTestService(t, "k", nil, WithIssuer("mentor"))
	plain := newTestService(t, "k", nil)

	tok, err := plain.Issue("u", time.Hour)
	require.NoError(t, err)
	_, err = withIss.Validate(tok)
	require.ErrorIs(t, err, ErrInvalidToken, "issuer required when configured")

	tok, err = withIss.Issue("u", time.Hour)
	require.NoError(t, err)
	sub, err := withIss.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "u", sub)
}

func TestNewService_EmptySecret(t *testing.T) {
	t.Parallel()
	_, err := NewService(nil)
	require.ErrorIs(t, err, ErrEmptySecret)
}
