package odin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kittygram/internal/platform/httpclient"
	"kittygram/internal/ports/auth"
)

var (
	ErrOdinNotConfigured = errors.New("odin client not configured")
	ErrOdinUnauthorized  = errors.New("odin unauthorized")
	ErrOdinUpstream      = errors.New("odin upstream error")
)

const (
	verifyPath = "/v1/tokens/verify"

	defaultAPIKeyHeader = "X-Api-Key"
	defaultTimeout      = 5 * time.Second
)

type Config struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string // default X-Api-Key
	Timeout      time.Duration
}

// Client habla con el identity store (Odin).
type Client struct {
	http      *httpclient.Client
	hasAPIKey bool
}

func NewClient(cfg Config) (*Client, error) {
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = defaultAPIKeyHeader
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	key := strings.TrimSpace(cfg.APIKey)

	hc, err := httpclient.New(cfg.BaseURL,
		httpclient.WithTimeout(timeout),
		httpclient.WithHeader(header, key),
	)
	if err != nil {
		return nil, fmt.Errorf("odin: %w", err)
	}
	return &Client{http: hc, hasAPIKey: key != ""}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.Configured() && c.hasAPIKey
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// VerifyToken pide a Odin los claims del dueño del token.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	if token = strings.TrimSpace(token); token == "" {
		return auth.Claims{}, ErrOdinUnauthorized
	}

	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)

	var out verifyResponse
	err := c.http.PostJSON(ctx, verifyPath, h, verifyRequest{Token: token}, &out)
	switch {
	case err == nil:
	case httpclient.HasStatus(err, http.StatusUnauthorized, http.StatusForbidden):
		return auth.Claims{}, ErrOdinUnauthorized
	default:
		return auth.Claims{}, fmt.Errorf("%w: %w", ErrOdinUpstream, err)
	}

	return auth.Claims{
		UserID: strings.TrimSpace(out.UserID),
		Email:  strings.TrimSpace(out.Email),
	}, nil
}
