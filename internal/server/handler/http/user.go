package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/apperr"
	"github.com/okarpova/staffhub/internal/models"
	"github.com/okarpova/staffhub/internal/service"
)

// UserService defines the user management operations required by the
// HTTP handlers.
type UserService interface {
	Get(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	Create(ctx context.Context, user *models.User, password string, avatar *service.AvatarUpload) (*models.User, error)
	Update(ctx context.Context, user *models.User, avatar *service.AvatarUpload) (*models.User, error)
	ChangePassword(ctx context.Context, username, current, next string) error
	Delete(ctx context.Context, username string) error
}

// UserHandler handles user management requests.
type UserHandler struct {
	// Users performs the underlying user operations.
	Users UserService
	// BaseURL is the public address links are built against.
	BaseURL string
	// Log records request failures.
	Log *zap.Logger
}

type userURLs struct {
	UserURL string `json:"user_url"`
}

type userPayload struct {
	models.User
	URLs userURLs `json:"urls"`
}

func newUserPayload(u *models.User, baseURL string) userPayload {
	return userPayload{
		User: *u,
		URLs: userURLs{UserURL: joinURL(baseURL, "users", u.Username)},
	}
}

func (h *UserHandler) payload(u *models.User) userPayload {
	return newUserPayload(u, h.BaseURL)
}

type createUserRequest struct {
	Username    string                `json:"username"`
	Email       string                `json:"email"`
	Password    string                `json:"password"`
	Name        string                `json:"name"`
	PhoneNumber string                `json:"phone_number"`
	About       string                `json:"about"`
	IsStaff     bool                  `json:"is_staff"`
	IsActive    *bool                 `json:"is_active"`
	IsSuperuser bool                  `json:"is_superuser"`
	Avatar      *service.AvatarUpload `json:"avatar"`
}

type updateUserRequest struct {
	Email       string                `json:"email"`
	Name        string                `json:"name"`
	PhoneNumber string                `json:"phone_number"`
	About       string                `json:"about"`
	IsStaff     *bool                 `json:"is_staff"`
	IsActive    *bool                 `json:"is_active"`
	IsSuperuser *bool                 `json:"is_superuser"`
	Avatar      *service.AvatarUpload `json:"avatar"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// List returns users matching the query filters. List values are
// pipe-separated, e.g. usernames=alice|bob.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.UserFilter{
		Usernames: splitList(q.Get("usernames")),
		Names:     splitList(q.Get("names")),
		Emails:    splitList(q.Get("emails")),
		Limit:     queryInt(r, "limit", 20),
		Offset:    queryInt(r, "offset", 0),
	}
	for name, target := range map[string]**bool{
		"is_staff":     &filter.IsStaff,
		"is_active":    &filter.IsActive,
		"is_superuser": &filter.IsSuperuser,
	} {
		if value := q.Get(name); value != "" {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				writeError(w, h.Log, apperr.Wrap(apperr.KindUnprocessable, "Incoming data is not valid", err))
				return
			}
			*target = &parsed
		}
	}

	users, err := h.Users.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	payloads := make([]userPayload, 0, len(users))
	for i := range users {
		payloads = append(payloads, h.payload(&users[i]))
	}
	writeJSON(w, http.StatusOK, payloads)
}

// Get returns one user by username.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.payload(user))
}

// Create stores a new user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		About:       req.About,
		IsStaff:     req.IsStaff,
		IsActive:    active,
		IsSuperuser: req.IsSuperuser,
	}

	created, err := h.Users.Create(r.Context(), user, req.Password, req.Avatar)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.payload(created))
}

// Update rewrites a user's profile fields. Account flags are not
// updatable here.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if req.IsStaff != nil || req.IsActive != nil || req.IsSuperuser != nil {
		writeError(w, h.Log, apperr.New(apperr.KindUnprocessable,
			"is_staff/is_active/is_superuser field can't be updated by this method"))
		return
	}

	user := &models.User{
		Username:    chi.URLParam(r, "username"),
		Email:       req.Email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		About:       req.About,
	}
	updated, err := h.Users.Update(r.Context(), user, req.Avatar)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.payload(updated))
}

// ChangePassword verifies the current password and replaces it.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	username := chi.URLParam(r, "username")
	if err := h.Users.ChangePassword(r.Context(), username, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a user.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
