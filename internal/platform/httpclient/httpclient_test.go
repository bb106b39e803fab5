package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)

	c, err := New("")
	require.NoError(t, err)
	assert.False(t, c.Configured())
	assert.ErrorIs(t, c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil), ErrNoBaseURL)
}

func TestDo_JSONRoundTrip(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "/api/v1/echo", r.URL.Path)

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/api/", WithHeader("X-Api-Key", "secret"))
	require.NoError(t, err)

	extra := make(http.Header)
	extra.Set("Authorization", "Bearer t")

	var out map[string]string
	require.NoError(t, c.PostJSON(context.Background(), "/v1/echo", extra, map[string]string{"msg": "miau"}, &out))

	assert.Equal(t, "miau", out["echo"])
	assert.Equal(t, "secret", got.Get("X-Api-Key"))
	assert.Equal(t, "Bearer t", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, userAgent, got.Get("User-Agent"))
}

func TestDo_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	err = c.Do(context.Background(), http.MethodGet, "/", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, HasStatus(err, http.StatusForbidden, http.StatusUnauthorized))
	assert.False(t, HasStatus(err, http.StatusBadGateway))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "nope", se.Body)
}
