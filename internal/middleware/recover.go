package middleware

import (
	"net/http"
	"runtime/debug"

	"kittygram/internal/errs"

	"github.com/rs/zerolog/hlog"
)

// Recover convierte un panic en 500 JSON y lo loguea con stack.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			hlog.FromRequest(r).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			errs.Write(w, errs.NewInternalServerError())
		}()
		next.ServeHTTP(w, r)
	})
}
