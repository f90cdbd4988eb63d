// Package token implements signing and verification of access and
// refresh tokens as RS256 JWTs, and the issuer that builds their
// payloads.
package token

import (
	"crypto/rsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/okarpova/staffhub/internal/apperr"
)

// Type discriminates access tokens from refresh tokens.
type Type string

const (
	// TypeAccess authorizes normal API calls.
	TypeAccess Type = "access"
	// TypeRefresh may only be exchanged for a new access token.
	TypeRefresh Type = "refresh"
)

// Claims is the token payload: the registered sub/iat/exp claims plus
// the token_type discriminator.
type Claims struct {
	TokenType Type `json:"token_type"`
	jwt.RegisteredClaims
}

// Codec signs payloads with an RSA private key and verifies them with
// the matching public key. The algorithm is pinned to RS256; tokens
// carrying any other algorithm are rejected.
type Codec struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewCodec builds a Codec around a loaded keypair. Both keys are
// read-only after construction, so a single Codec is safe for
// concurrent use across requests.
func NewCodec(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) *Codec {
	return &Codec{privateKey: privateKey, publicKey: publicKey}
}

// Encode signs claims into the JWT compact serialization.
func (c *Codec) Encode(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(c.privateKey)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of tokenString and returns
// its claims. Failures are classified into the closed error set:
// expired, invalid signature (including algorithm mismatch), or
// malformed. Expiry is validated explicitly and a missing exp claim is
// a malformed token.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return c.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}
	return claims, nil
}

// classify maps jwt parse errors onto the apperr taxonomy. Expiry wins
// over other claim failures.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperr.Wrap(apperr.KindTokenExpired, "Token has been expired.", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperr.Wrap(apperr.KindTokenInvalidSignature, "Token is not valid. Token verification failed.", err)
	default:
		return apperr.Wrap(apperr.KindTokenMalformed, "jwt token is not valid", err)
	}
}
