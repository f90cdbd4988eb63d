package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/apperr"
)

// reject terminates the request with the classified error: the JSON
// body carries only the client-safe message, the cause goes to the log.
func reject(w http.ResponseWriter, log *zap.Logger, r *http.Request, err error) {
	log.Warn("request rejected",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", apperr.Status(err)),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.Status(err))
	_ = json.NewEncoder(w).Encode(map[string]string{"error": apperr.Message(err)})
}
