// Package middleware provides HTTP middlewares for request logging,
// token authentication, and admin authorization.
package middleware

import "context"

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the per-request record of who is calling. It is attached
// by Authenticate, read-only for downstream handlers, and discarded at
// request end.
type Identity struct {
	// Username is the token subject.
	Username string
	// IsActive mirrors the user's current active flag.
	IsActive bool
	// IsAdmin reports whether the user may call admin-only routes.
	IsAdmin bool
}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the authenticated identity from the
// request context. The second return value is false for requests that
// bypassed authentication (public routes, OPTIONS).
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
