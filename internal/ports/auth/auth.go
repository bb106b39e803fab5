package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims es lo que sabemos del usuario autenticado.
// UserID es el owner de los gatos que crea.
type Claims struct {
	UserID string
	Email  string
}

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
