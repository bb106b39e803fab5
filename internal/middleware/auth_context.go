package middleware

import (
	"context"
	"net/http"
	"strings"

	"kittygram/internal/errs"
	"kittygram/internal/ports/auth"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader permite inyectar el usuario en modo dev (sin verifier).
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext:
// - verifier != nil y viene Bearer token => Verify() y setea claims.
// - verifier == nil => modo dev: X-Debug-User-ID setea claims.
// - Sin claims el request sigue; RequireUser decide el 401.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
					next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), auth.Claims{UserID: uid})))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("token verification failed")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// RequireUser corta con 401 si no hay usuario autenticado.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			errs.Write(w, errs.NewUnauthorizedError("authentication credentials were not provided"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// UserID devuelve el id del usuario autenticado (no vacío).
func UserID(ctx context.Context) (string, bool) {
	c, ok := GetClaims(ctx)
	if !ok || strings.TrimSpace(c.UserID) == "" {
		return "", false
	}
	return c.UserID, true
}

func withClaims(ctx context.Context, c auth.Claims) context.Context {
	ctx = context.WithValue(ctx, claimsKey, c)
	// el user_id viaja en todas las líneas de log del request
	l := zerolog.Ctx(ctx).With().Str("user_id", c.UserID).Logger()
	return l.WithContext(ctx)
}

func bearerToken(authHeader string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
