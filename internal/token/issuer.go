package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer builds access and refresh token payloads and signs them via a
// Codec. It is a pure function of (subject, current time, configured
// TTLs, keypair) and keeps no per-token state.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewIssuer constructs an Issuer with the given token lifetimes.
func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// AccessToken issues a signed access token for subject, valid for the
// configured access TTL.
func (i *Issuer) AccessToken(subject string) (string, error) {
	return i.issue(subject, TypeAccess, i.accessTTL)
}

// RefreshToken issues a signed refresh token for subject, valid for
// the configured refresh TTL.
func (i *Issuer) RefreshToken(subject string) (string, error) {
	return i.issue(subject, TypeRefresh, i.refreshTTL)
}

func (i *Issuer) issue(subject string, tokenType Type, ttl time.Duration) (string, error) {
	now := i.now()
	return i.codec.Encode(Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
}
