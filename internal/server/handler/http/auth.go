package http

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/apperr"
	"github.com/okarpova/staffhub/internal/models"
	"github.com/okarpova/staffhub/internal/service"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	// Login verifies a credential pair and issues a token pair.
	Login(ctx context.Context, username, password string) (*models.User, *service.TokenPair, error)
	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// AuthHandler handles login and token refresh requests.
type AuthHandler struct {
	// Auth performs the underlying authentication operations.
	Auth AuthService
	// BaseURL is the public address links are built against.
	BaseURL string
	// Log records request failures.
	Log *zap.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserData  userPayload        `json:"user_data"`
	TokenData *service.TokenPair `json:"token_data"`
}

// Login authenticates a credential pair and returns the user's profile
// together with an access/refresh token pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	user, pair, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		UserData:  newUserPayload(user, h.BaseURL),
		TokenData: pair,
	})
}

// Refresh exchanges the refresh token carried in the Authorization
// header for a new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := bearerToken(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	access, err := h.Auth.Refresh(r.Context(), refreshToken)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

// Healthcheck reports liveness.
func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// bearerToken extracts the credential from the Authorization header.
// An absent header or one without a credential part is reported the
// same way.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return "", apperr.New(apperr.KindTokenMissing,
			"'Authorization' header has not been provided or not valid")
	}
	return fields[1], nil
}
