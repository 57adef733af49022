package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/totaltools/manufacturing-api/pkg/auth"
	"github.com/totaltools/manufacturing-api/pkg/logger"
	"github.com/totaltools/manufacturing-api/pkg/response"
)

// ErrUnknownUser is returned by a RoleLookup when the email has no account
// record. Kept distinct from store failures so the guard can tell "requester
// does not exist" apart from "the lookup itself broke".
var ErrUnknownUser = errors.New("unknown user")

// RoleLookup resolves the stored role for a verified email.
// Implemented by the users repository.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// Authenticate verifies the Authorization bearer token and attaches the
// decoded claims to the request context. A missing token is 401; a token
// that fails verification (bad signature, expired) is 403.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Forbidden(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

// RequireAdmin gates admin-only routes. It must run after Authenticate.
//
// The requester's account is looked up by the claimed email: a missing
// account or a non-admin role is 403, a failed lookup is 500. Unknown
// requesters are logged separately — a valid token whose email has no user
// record usually means the account was deleted after the token was issued.
func RequireAdmin(users RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.FromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			role, err := users.RoleByEmail(r.Context(), claims.Email)
			if err != nil {
				if errors.Is(err, ErrUnknownUser) {
					logger.WithCtx(r.Context()).Warn("admin check for unknown account",
						"email", claims.Email)
					response.Forbidden(w)
					return
				}
				logger.WithCtx(r.Context()).Error("admin role lookup failed",
					"email", claims.Email, "error", err)
				response.Error(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}

			if role != "admin" {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
