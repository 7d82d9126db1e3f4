package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenInfoServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("id_token")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotToken
}

func TestTokenInfo_Success(t *testing.T) {
	srv, got := tokenInfoServer(t, http.StatusOK, `{
		"sub": "1234", "email": "ada@example.com", "email_verified": "true",
		"aud": "client-1", "given_name": "Ada", "family_name": "Lovelace"
	}`)
	v := NewTokenInfoVerifier(srv.URL, "client-1", time.Second)

	a, err := v.Verify(context.Background(), "id-token+/=")
	require.NoError(t, err)
	assert.Equal(t, "id-token+/=", *got, "token is query-escaped")
	assert.Equal(t, "1234", a.Subject)
	assert.Equal(t, "ada@example.com", a.Email)
	assert.True(t, a.EmailVerified)
	assert.Equal(t, "Ada", a.GivenName)
	assert.Equal(t, "Lovelace", a.FamilyName)
}

func TestTokenInfo_OptionalFields(t *testing.T) {
	srv, _ := tokenInfoServer(t, http.StatusOK, `{"sub": "1", "email": "a@b.c", "email_verified": false}`)

	a, err := NewTokenInfoVerifier(srv.URL, "", time.Second).Verify(context.Background(), "t")
	require.NoError(t, err)
	assert.False(t, a.EmailVerified)
	assert.Empty(t, a.GivenName)
}

func TestTokenInfo_Failures(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		clientID string
	}{
		{"rejected", http.StatusBadRequest, `{"error": "invalid_token"}`, ""},
		{"missing email", http.StatusOK, `{"sub": "1"}`, ""},
		{"missing sub", http.StatusOK, `{"email": "a@b.c"}`, ""},
		{"wrong audience", http.StatusOK, `{"sub": "1", "email": "a@b.c", "aud": "other"}`, "client-1"},
		{"not json", http.StatusOK, `<html>`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := tokenInfoServer(t, tc.status, tc.body)
			_, err := NewTokenInfoVerifier(srv.URL, tc.clientID, time.Second).Verify(context.Background(), "t")
			require.Error(t, err)
		})
	}
}

func TestTokenInfo_RejectedIsTyped(t *testing.T) {
	srv, _ := tokenInfoServer(t, http.StatusUnauthorized, `{}`)
	_, err := NewTokenInfoVerifier(srv.URL, "", time.Second).Verify(context.Background(), "t")
	require.True(t, errors.Is(err, ErrRejected))
}

func TestTokenInfo_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	start := time.Now()
	_, err := NewTokenInfoVerifier(srv.URL, "", 50*time.Millisecond).Verify(context.Background(), "t")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
