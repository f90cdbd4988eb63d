package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/apperr"
	"github.com/okarpova/staffhub/internal/models"
	"github.com/okarpova/staffhub/internal/token"
)

// fakeStatusProvider implements StatusProvider for testing.
type fakeStatusProvider struct {
	statuses map[string]*models.UserStatus
}

func (f *fakeStatusProvider) GetStatus(ctx context.Context, username string) (*models.UserStatus, error) {
	if status, ok := f.statuses[username]; ok {
		return status, nil
	}
	return nil, apperr.New(apperr.KindNotFound, "Data does not exist")
}

func newTestKeys(t *testing.T) (*token.Codec, *token.Issuer, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	codec := token.NewCodec(key, &key.PublicKey)
	return codec, token.NewIssuer(codec, 15*time.Minute, 24*time.Hour), key
}

// expiredAccessToken signs an access token whose exp is in the past.
func expiredAccessToken(t *testing.T, key *rsa.PrivateKey, subject string) string {
	t.Helper()
	old := time.Now().Add(-time.Hour)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, token.Claims{
		TokenType: token.TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(old),
			ExpiresAt: jwt.NewNumericDate(old.Add(time.Minute)),
		},
	}).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func accessToken(t *testing.T, issuer *token.Issuer, subject string) string {
	t.Helper()
	signed, err := issuer.AccessToken(subject)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return signed
}

func TestAuthenticate(t *testing.T) {
	codec, issuer, key := newTestKeys(t)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	foreignCodec := token.NewCodec(otherKey, &otherKey.PublicKey)
	foreignIssuer := token.NewIssuer(foreignCodec, time.Minute, time.Minute)

	users := &fakeStatusProvider{statuses: map[string]*models.UserStatus{
		"root":   {Username: "root", IsActive: true, IsStaff: true},
		"alice":  {Username: "alice", IsActive: true, IsStaff: false},
		"mallet": {Username: "mallet", IsActive: false, IsStaff: false},
	}}

	public := []string{"/api/v1/auth/login", "/api/v1/healthcheck"}

	refreshFor := func(subject string) string {
		signed, err := issuer.RefreshToken(subject)
		if err != nil {
			t.Fatalf("failed to issue refresh token: %v", err)
		}
		return signed
	}

	tests := []struct {
		name         string
		method       string
		path         string
		authz        string
		expectedCode int
		wantIdentity bool
	}{
		{
			name:         "public route needs no token",
			method:       "POST",
			path:         "/api/v1/auth/login",
			expectedCode: http.StatusOK,
		},
		{
			name:         "OPTIONS bypasses authentication everywhere",
			method:       "OPTIONS",
			path:         "/api/v1/users",
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing Authorization header",
			method:       "GET",
			path:         "/api/v1/users/alice",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "header without credential",
			method:       "GET",
			path:         "/api/v1/users/alice",
			authz:        "Bearer",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "valid access token",
			method:       "GET",
			path:         "/api/v1/users/alice",
			authz:        "Bearer " + accessToken(t, issuer, "alice"),
			expectedCode: http.StatusOK,
			wantIdentity: true,
		},
		{
			name:         "expired token",
			method:       "GET",
			path:         "/api/v1/users/alice",
			authz:        "Bearer " + expiredAccessToken(t, key, "alice"),
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "foreign signature",
			method:       "GET",
			path:         "/api/v1/users/alice",
			authz:        "Bearer " + accessToken(t, foreignIssuer, "alice"),
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "garbage token",
			method:       "GET",
			path:         "/api/v1/users/alice",
			authz:        "Bearer not-a-jwt",
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "refresh token refused for normal requests",
			method:       "GET",
			path:         "/api/v1/users/alice",
			authz:        "Bearer " + refreshFor("alice"),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown subject",
			method:       "GET",
			path:         "/api/v1/users/alice",
			authz:        "Bearer " + accessToken(t, issuer, "ghost"),
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "disabled subject",
			method:       "GET",
			path:         "/api/v1/users/alice",
			authz:        "Bearer " + accessToken(t, issuer, "mallet"),
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIdentity bool
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, gotIdentity = IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authz != "" {
				req.Header.Set("Authorization", tt.authz)
			}

			Authenticate(codec, users, public, zap.NewNop())(handler).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d (body %q)", tt.expectedCode, rec.Code, rec.Body.String())
			}
			if tt.wantIdentity && !gotIdentity {
				t.Errorf("expected identity in handler context")
			}
			if rec.Code != http.StatusOK && !strings.Contains(rec.Body.String(), "error") {
				t.Errorf("expected JSON error body, got %q", rec.Body.String())
			}
		})
	}
}

func TestAuthenticateAttachesFlags(t *testing.T) {
	codec, issuer, _ := newTestKeys(t)
	users := &fakeStatusProvider{statuses: map[string]*models.UserStatus{
		"root": {Username: "root", IsActive: true, IsStaff: true},
	}}

	var id Identity
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/subdivisions", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, issuer, "root"))

	Authenticate(codec, users, nil, zap.NewNop())(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if id.Username != "root" || !id.IsActive || !id.IsAdmin {
		t.Errorf("unexpected identity: %+v", id)
	}
}
