package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/apperr"
	"github.com/okarpova/staffhub/internal/models"
	"github.com/okarpova/staffhub/internal/token"
)

// StatusProvider fetches the subject's current flags on every
// authenticated request, so disabling a user takes effect immediately
// rather than at token expiry.
type StatusProvider interface {
	GetStatus(ctx context.Context, username string) (*models.UserStatus, error)
}

// Authenticate returns the authentication middleware.
//
// Requests to a public route, and all OPTIONS pre-flight requests,
// pass through without a token and without an identity. Every other
// request must carry "Authorization: Bearer <access token>"; the token
// is decoded, refresh tokens are refused, the subject's current status
// is loaded, and the resulting Identity is attached to the request
// context. Any failure terminates the request with its classified
// error; the handler never runs.
func Authenticate(codec *token.Codec, users StatusProvider, publicRoutes []string, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || MatchRoute(publicRoutes, r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			credential, err := bearerCredential(r)
			if err != nil {
				reject(w, log, r, err)
				return
			}

			claims, err := codec.Decode(credential)
			if err != nil {
				reject(w, log, r, err)
				return
			}
			if claims.TokenType == token.TypeRefresh {
				reject(w, log, r, apperr.New(apperr.KindWrongTokenType, "Invalid token type"))
				return
			}

			status, err := users.GetStatus(r.Context(), claims.Subject)
			if err != nil {
				reject(w, log, r, err)
				return
			}
			if !status.IsActive {
				reject(w, log, r, apperr.New(apperr.KindUserDisabled, "User is not active"))
				return
			}

			ctx := withIdentity(r.Context(), Identity{
				Username: status.Username,
				IsActive: status.IsActive,
				IsAdmin:  status.IsStaff,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerCredential extracts the token from the Authorization header.
// A missing header and a header without a second whitespace-delimited
// segment are the same failure: no credential was provided.
func bearerCredential(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperr.New(apperr.KindTokenMissing,
			"'Authorization' header has not been provided or not valid")
	}
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return "", apperr.New(apperr.KindTokenMissing,
			"'Authorization' header has not been provided or not valid")
	}
	return parts[1], nil
}
