package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/models"
	"github.com/okarpova/staffhub/internal/pagination"
)

// SubdivisionService defines the subdivision operations required by
// the HTTP handlers.
type SubdivisionService interface {
	List(ctx context.Context, nameFilter string, page pagination.Page) ([]models.Subdivision, pagination.Meta, error)
	Get(ctx context.Context, subdivisionID int64) (*models.Subdivision, error)
	Create(ctx context.Context, s *models.Subdivision) (*models.Subdivision, error)
	Update(ctx context.Context, s *models.Subdivision) (*models.Subdivision, error)
	Delete(ctx context.Context, subdivisionID int64) error
	AttachEmployee(ctx context.Context, subdivisionID int64, username string) error
	DetachEmployee(ctx context.Context, subdivisionID int64, username string) error
}

// SubdivisionHandler handles subdivision and employee assignment
// requests.
type SubdivisionHandler struct {
	// Subdivisions performs the underlying subdivision operations.
	Subdivisions SubdivisionService
	// BaseURL is the public address links are built against.
	BaseURL string
	// Log records request failures.
	Log *zap.Logger
}

type subdivisionURLs struct {
	SubdivisionURL string `json:"subdivision_url"`
	ProjectsURL    string `json:"projects_url"`
	EmployeesURL   string `json:"employees_url"`
}

type subdivisionPayload struct {
	models.Subdivision
	URLs subdivisionURLs `json:"urls"`
}

func (h *SubdivisionHandler) payload(s *models.Subdivision) subdivisionPayload {
	id := formatID(s.SubdivisionID)
	return subdivisionPayload{
		Subdivision: *s,
		URLs: subdivisionURLs{
			SubdivisionURL: joinURL(h.BaseURL, "subdivisions", id),
			ProjectsURL:    joinURL(h.BaseURL, "subdivisions", id, "projects"),
			EmployeesURL:   joinURL(h.BaseURL, "subdivisions", id, "employees"),
		},
	}
}

type subdivisionRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Department  models.Department `json:"department"`
}

type subdivisionListResponse struct {
	Subdivisions []subdivisionPayload `json:"subdivisions"`
	Pagination   pagination.Meta      `json:"pagination"`
}

// ListDepartments returns the known department values.
func ListDepartments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.Departments())
}

// List returns one page of subdivisions with pagination metadata. The
// page is selected with the page and limit query parameters; filter
// narrows by name substring.
func (h *SubdivisionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.NewPage(queryInt(r, "page", 1), queryInt(r, "limit", pagination.DefaultLimit))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	subdivisions, meta, err := h.Subdivisions.List(r.Context(), r.URL.Query().Get("filter"), page)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	payloads := make([]subdivisionPayload, 0, len(subdivisions))
	for i := range subdivisions {
		payloads = append(payloads, h.payload(&subdivisions[i]))
	}
	writeJSON(w, http.StatusOK, subdivisionListResponse{Subdivisions: payloads, Pagination: meta})
}

// Get returns one subdivision by id.
func (h *SubdivisionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "subdivisionID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	subdivision, err := h.Subdivisions.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.payload(subdivision))
}

// Create stores a new subdivision.
func (h *SubdivisionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req subdivisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	created, err := h.Subdivisions.Create(r.Context(), &models.Subdivision{
		Name:        req.Name,
		Description: req.Description,
		Department:  req.Department,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.payload(created))
}

// Update rewrites a subdivision.
func (h *SubdivisionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "subdivisionID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var req subdivisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	updated, err := h.Subdivisions.Update(r.Context(), &models.Subdivision{
		SubdivisionID: id,
		Name:          req.Name,
		Description:   req.Description,
		Department:    req.Department,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.payload(updated))
}

// Delete removes a subdivision.
func (h *SubdivisionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "subdivisionID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Subdivisions.Delete(r.Context(), id); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AttachEmployee assigns a user to a subdivision.
func (h *SubdivisionHandler) AttachEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "subdivisionID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var req struct {
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	if err := h.Subdivisions.AttachEmployee(r.Context(), id, req.Username); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.Employee{Username: req.Username, SubdivisionID: id})
}

// DetachEmployee removes a user's assignment to a subdivision.
func (h *SubdivisionHandler) DetachEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "subdivisionID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Subdivisions.DetachEmployee(r.Context(), id, chi.URLParam(r, "username")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
