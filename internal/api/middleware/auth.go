package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rohits-web03/sharevault/internal/models"
	"github.com/rohits-web03/sharevault/internal/utils"
)

type contextKey string

const IdentityKey contextKey = "identity"

// TokenVerifier validates a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// AuthMiddleware rejects requests without a valid bearer token: a missing
// header is 401, a malformed, invalid or expired token is 403.
func AuthMiddleware(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
					Success: false,
					Kind:    "unauthorized",
					Message: "Access denied. No token provided.",
				})
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				invalidToken(w)
				return
			}

			identity, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil || identity.IsZero() {
				invalidToken(w)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the identity stored by AuthMiddleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(models.Identity)
	return id, ok && !id.IsZero()
}

func invalidToken(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
		Success: false,
		Kind:    "forbidden",
		Message: "Invalid token.",
	})
}
