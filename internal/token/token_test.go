package token

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/okarpova/staffhub/internal/apperr"
)

func newTestCodec(t *testing.T) (*Codec, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return NewCodec(key, &key.PublicKey), key
}

func TestIssueAndDecodeAccessToken(t *testing.T) {
	codec, _ := newTestCodec(t)
	issuer := NewIssuer(codec, 15*time.Minute, 24*time.Hour)

	signed, err := issuer.AccessToken("root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "root" {
		t.Errorf("expected subject %q, got %q", "root", claims.Subject)
	}
	if claims.TokenType != TypeAccess {
		t.Errorf("expected token_type %q, got %q", TypeAccess, claims.TokenType)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Errorf("expected exp to be after iat")
	}
}

func TestRefreshTokenType(t *testing.T) {
	codec, _ := newTestCodec(t)
	issuer := NewIssuer(codec, 15*time.Minute, 24*time.Hour)

	signed, err := issuer.RefreshToken("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.TokenType != TypeRefresh {
		t.Errorf("expected token_type %q, got %q", TypeRefresh, claims.TokenType)
	}
}

func TestDecodeExpiredToken(t *testing.T) {
	codec, _ := newTestCodec(t)
	issuer := NewIssuer(codec, time.Minute, time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	signed, err := issuer.AccessToken("root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = codec.Decode(signed)
	if apperr.KindOf(err) != apperr.KindTokenExpired {
		t.Errorf("expected expired token error, got %v", err)
	}
}

func TestDecodeForeignSignature(t *testing.T) {
	codec, _ := newTestCodec(t)
	otherCodec, _ := newTestCodec(t)
	issuer := NewIssuer(otherCodec, time.Minute, time.Minute)

	signed, err := issuer.AccessToken("root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = codec.Decode(signed)
	if apperr.KindOf(err) != apperr.KindTokenInvalidSignature {
		t.Errorf("expected invalid signature error, got %v", err)
	}
}

func TestDecodeMalformedToken(t *testing.T) {
	codec, _ := newTestCodec(t)

	_, err := codec.Decode("definitely.not.a-jwt")
	if apperr.KindOf(err) != apperr.KindTokenMalformed {
		t.Errorf("expected malformed token error, got %v", err)
	}
}

func TestDecodeRejectsDowngradedAlgorithm(t *testing.T) {
	codec, _ := newTestCodec(t)

	// An HS256 token must be rejected even if it parses, to prevent
	// downgrading the asymmetric scheme to a shared-secret one.
	hs := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TokenType: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "root",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := hs.SignedString([]byte("shared-secret"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := codec.Decode(signed); err == nil {
		t.Fatalf("expected HS256 token to be rejected")
	}
}

func TestDecodeRequiresExpiry(t *testing.T) {
	codec, key := newTestCodec(t)

	noExp := jwt.NewWithClaims(jwt.SigningMethodRS256, Claims{
		TokenType: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "root",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := noExp.SignedString(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := codec.Decode(signed); err == nil {
		t.Fatalf("expected token without exp to be rejected")
	}
}
