package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/zatekoja/clinicdirectory/internal/infrastructure/observability"
)

// Recover turns a panic in a handler into a 500 JSON response
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}

			observability.LoggerFromContext(r.Context()).Error().
				Interface("panic", p).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from handler panic")
			writeError(w, http.StatusInternalServerError, "internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}
