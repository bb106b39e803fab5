package odin

import (
	"context"
	"fmt"
	"strings"

	"kittygram/internal/ports/auth"
)

// Verifier implementa auth.AuthVerifier usando Odin.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	if strings.TrimSpace(token) == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %w", auth.ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: odin claims missing user id", auth.ErrInvalidToken)
	}
	return claims, nil
}
