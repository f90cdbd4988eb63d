package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestRequireAdmin(t *testing.T) {
	admin := []string{
		"POST /api/v1/users",
		"PUT /api/v1/subdivisions/{subdivisionID}",
	}

	tests := []struct {
		name         string
		method       string
		path         string
		identity     *Identity
		expectedCode int
	}{
		{
			name:         "admin identity on admin route",
			method:       "POST",
			path:         "/api/v1/users",
			identity:     &Identity{Username: "root", IsActive: true, IsAdmin: true},
			expectedCode: http.StatusOK,
		},
		{
			name:         "non-admin identity on admin route",
			method:       "POST",
			path:         "/api/v1/users",
			identity:     &Identity{Username: "alice", IsActive: true},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "non-admin identity on templated admin route",
			method:       "PUT",
			path:         "/api/v1/subdivisions/42",
			identity:     &Identity{Username: "alice", IsActive: true},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "non-admin identity on plain route",
			method:       "GET",
			path:         "/api/v1/subdivisions/42",
			identity:     &Identity{Username: "alice", IsActive: true},
			expectedCode: http.StatusOK,
		},
		{
			name:         "no identity on admin route",
			method:       "POST",
			path:         "/api/v1/users",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "OPTIONS passes through",
			method:       "OPTIONS",
			path:         "/api/v1/users",
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.identity != nil {
				req = req.WithContext(withIdentity(req.Context(), *tt.identity))
			}

			RequireAdmin(admin, zap.NewNop())(handler).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d (body %q)", tt.expectedCode, rec.Code, rec.Body.String())
			}
		})
	}
}
