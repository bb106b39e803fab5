package odin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kittygram/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOdin(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Header.Get("X-Api-Key") != "key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var req verifyRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		switch req.Token {
		case "good":
			_ = json.NewEncoder(w).Encode(verifyResponse{UserID: "u1", Email: "u1@example.com"})
		case "anonymous":
			_ = json.NewEncoder(w).Encode(verifyResponse{})
		case "boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestVerifier(t *testing.T, baseURL, key string) *Verifier {
	t.Helper()
	c, err := NewClient(Config{BaseURL: baseURL, APIKey: key})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify(t *testing.T) {
	srv := newOdin(t)
	v := newTestVerifier(t, srv.URL, "key")
	ctx := context.Background()

	claims, err := v.Verify(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u1", Email: "u1@example.com"}, claims)

	_, err = v.Verify(ctx, "bad")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.ErrorIs(t, err, ErrOdinUnauthorized)

	_, err = v.Verify(ctx, "boom")
	assert.ErrorIs(t, err, ErrOdinUpstream)

	_, err = v.Verify(ctx, "anonymous")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = v.Verify(ctx, " ")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_NotConfigured(t *testing.T) {
	v := newTestVerifier(t, "", "")
	_, err := v.Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrOdinNotConfigured)
}
