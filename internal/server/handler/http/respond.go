// Package http provides the HTTP handlers and router for the staffhub
// API: authentication, users, subdivisions, and projects.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/apperr"
)

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as the {"error": message} rejection body with
// the status mapped from its kind. The underlying cause is logged, not
// exposed.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	log.Error("request failed",
		zap.String("message", apperr.Message(err)),
		zap.Error(err),
	)
	writeJSON(w, apperr.Status(err), map[string]string{"error": apperr.Message(err)})
}

// decodeJSON parses the request body into v. A body that does not
// parse is unprocessable.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.KindUnprocessable, "Incoming data is not valid", err)
	}
	return nil
}

// pathID extracts a numeric path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindUnprocessable, "Incoming data is not valid", err)
	}
	return id, nil
}

// queryInt parses an integer query parameter, falling back to def when
// the parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return value
}

// splitList splits a "a|b|c" query value into its parts.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, "|")
}

// formatID renders a numeric id as a path segment.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// joinURL builds an absolute link from the API base and path segments.
// The base already carries the version prefix.
func joinURL(base string, segments ...string) string {
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
