package middleware

import "testing"

func TestMatchRoute(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		method  string
		path    string
		want    bool
	}{
		{
			name:    "exact literal match",
			entries: []string{"/api/v1/auth/login"},
			method:  "POST",
			path:    "/api/v1/auth/login",
			want:    true,
		},
		{
			name:    "literal mismatch",
			entries: []string{"/api/v1/auth/login"},
			method:  "POST",
			path:    "/api/v1/auth/refresh",
			want:    false,
		},
		{
			name:    "template segment matches concrete value",
			entries: []string{"PUT /api/v1/users/{username}"},
			method:  "PUT",
			path:    "/api/v1/users/alice",
			want:    true,
		},
		{
			name:    "template does not match extra segments",
			entries: []string{"PUT /api/v1/users/{username}"},
			method:  "PUT",
			path:    "/api/v1/users/alice/password",
			want:    false,
		},
		{
			name:    "method prefix restricts the entry",
			entries: []string{"POST /api/v1/subdivisions"},
			method:  "GET",
			path:    "/api/v1/subdivisions",
			want:    false,
		},
		{
			name:    "method prefix is case-insensitive",
			entries: []string{"post /api/v1/subdivisions"},
			method:  "POST",
			path:    "/api/v1/subdivisions",
			want:    true,
		},
		{
			name:    "entry without method matches any method",
			entries: []string{"/api/v1/healthcheck"},
			method:  "DELETE",
			path:    "/api/v1/healthcheck",
			want:    true,
		},
		{
			name:    "nested templates",
			entries: []string{"PUT /api/v1/subdivisions/{subdivisionID}/projects/{projectID}"},
			method:  "PUT",
			path:    "/api/v1/subdivisions/7/projects/12",
			want:    true,
		},
		{
			name:    "template segment refuses empty value",
			entries: []string{"PUT /api/v1/users/{username}"},
			method:  "PUT",
			path:    "/api/v1/users/",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchRoute(tt.entries, tt.method, tt.path)
			if got != tt.want {
				t.Errorf("MatchRoute(%v, %q, %q) = %v, want %v",
					tt.entries, tt.method, tt.path, got, tt.want)
			}
		})
	}
}
