package middleware

import (
	"context"
	"net/http"

	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

// AuthTokenHeader carries the bearer token issued by the auth endpoint
const AuthTokenHeader = "X-Auth-Token"

const msgAdminRequired = "access denied: administrator rights required"

type userContextKey struct{}

// TokenVerifier decodes an auth token into the user it was issued for
type TokenVerifier interface {
	Verify(token string) (*entities.PublicUser, error)
}

// UserFromContext returns the authenticated user stored by RequireAuth or RequireAdmin
func UserFromContext(ctx context.Context) (*entities.PublicUser, bool) {
	user, ok := ctx.Value(userContextKey{}).(*entities.PublicUser)
	return user, ok && user != nil
}

// ContextWithUser stores user in ctx
func ContextWithUser(ctx context.Context, user *entities.PublicUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// RequireAuth rejects requests without a valid token with 401
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := tokens.Verify(r.Header.Get(AuthTokenHeader))
			if err != nil {
				writeAppError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin rejects invalid tokens with 401 and valid non-admin tokens with 403
func RequireAdmin(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := UserFromContext(r.Context())
			if !user.IsAdmin {
				writeAppError(w, apperrors.NewForbiddenError(msgAdminRequired))
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
