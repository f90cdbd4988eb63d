package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/okarpova/staffhub/internal/models"
)

// ProjectService defines the project operations required by the HTTP
// handlers.
type ProjectService interface {
	List(ctx context.Context, subdivisionID int64, nameFilter string, limit, offset int) ([]models.Project, error)
	Get(ctx context.Context, subdivisionID, projectID int64) (*models.Project, error)
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Update(ctx context.Context, p *models.Project) (*models.Project, error)
	Delete(ctx context.Context, subdivisionID, projectID int64) error
}

// ProjectHandler handles project requests within a subdivision.
type ProjectHandler struct {
	// Projects performs the underlying project operations.
	Projects ProjectService
	// BaseURL is the public address links are built against.
	BaseURL string
	// Log records request failures.
	Log *zap.Logger
}

type projectURLs struct {
	ProjectURL string `json:"project_url"`
}

type projectPayload struct {
	models.Project
	URLs projectURLs `json:"urls"`
}

func (h *ProjectHandler) payload(p *models.Project) projectPayload {
	return projectPayload{
		Project: *p,
		URLs: projectURLs{
			ProjectURL: joinURL(h.BaseURL,
				"subdivisions", formatID(p.SubdivisionID), "projects", formatID(p.ProjectID)),
		},
	}
}

type projectRequest struct {
	Name         string     `json:"name"`
	Completed    bool       `json:"completed"`
	StartTime    time.Time  `json:"start_time"`
	CompleteTime *time.Time `json:"complete_time"`
	Description  string     `json:"description"`
}

// List returns a subdivision's projects matching the name filter.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	subdivisionID, err := pathID(r, "subdivisionID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	projects, err := h.Projects.List(r.Context(), subdivisionID,
		r.URL.Query().Get("filter"), queryInt(r, "limit", 20), queryInt(r, "offset", 0))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	payloads := make([]projectPayload, 0, len(projects))
	for i := range projects {
		payloads = append(payloads, h.payload(&projects[i]))
	}
	writeJSON(w, http.StatusOK, payloads)
}

// Get returns one project scoped to its subdivision.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	subdivisionID, err := pathID(r, "subdivisionID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	projectID, err := pathID(r, "projectID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	project, err := h.Projects.Get(r.Context(), subdivisionID, projectID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.payload(project))
}

// Create stores a new project under a subdivision.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	subdivisionID, err := pathID(r, "subdivisionID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	created, err := h.Projects.Create(r.Context(), &models.Project{
		Name:          req.Name,
		Completed:     req.Completed,
		StartTime:     req.StartTime,
		CompleteTime:  req.CompleteTime,
		Description:   req.Description,
		SubdivisionID: subdivisionID,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.payload(created))
}

// Update rewrites a project.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	subdivisionID, err := pathID(r, "subdivisionID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	projectID, err := pathID(r, "projectID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	updated, err := h.Projects.Update(r.Context(), &models.Project{
		ProjectID:     projectID,
		Name:          req.Name,
		Completed:     req.Completed,
		StartTime:     req.StartTime,
		CompleteTime:  req.CompleteTime,
		Description:   req.Description,
		SubdivisionID: subdivisionID,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.payload(updated))
}

// Delete removes a project from its subdivision.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subdivisionID, err := pathID(r, "subdivisionID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	projectID, err := pathID(r, "projectID")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	if err := h.Projects.Delete(r.Context(), subdivisionID, projectID); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
