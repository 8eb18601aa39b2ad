package middleware

import (
	"net/http"

	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

const msgDatabaseConfigMissing = "Database configuration missing"

// RequireDatabase answers 500 on every request while no database is configured
func RequireDatabase(configured bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if configured {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeAppError(w, apperrors.NewConfigurationError(msgDatabaseConfigMissing))
		})
	}
}
