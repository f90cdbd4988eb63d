package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/apperr"
)

// RequireAdmin returns the authorization middleware. It must be
// composed after Authenticate: it performs no token parsing and only
// inspects the Identity that Authenticate attached.
//
// Requests whose method and path match an admin route entry are
// rejected unless the identity carries the admin flag. Everything else
// passes through unchanged.
func RequireAdmin(adminRoutes []string, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || !MatchRoute(adminRoutes, r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			id, ok := IdentityFromContext(r.Context())
			if !ok || !id.IsAdmin {
				reject(w, log, r, apperr.New(apperr.KindInsufficientPrivilege,
					"User does not have admin rights"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
