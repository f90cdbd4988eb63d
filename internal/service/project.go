package service

import (
	"context"
	"time"

	"github.com/okarpova/staffhub/internal/apperr"
	"github.com/okarpova/staffhub/internal/models"
)

// ProjectRepository defines the persistence operations required by the
// project service.
type ProjectRepository interface {
	List(ctx context.Context, subdivisionID int64, nameFilter string, limit, offset int) ([]models.Project, error)
	Get(ctx context.Context, subdivisionID, projectID int64) (*models.Project, error)
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Update(ctx context.Context, p *models.Project) (*models.Project, error)
	Delete(ctx context.Context, subdivisionID, projectID int64) error
}

// Projects implements project management within subdivisions.
type Projects struct {
	repo ProjectRepository
	now  func() time.Time
}

// NewProjects constructs a Projects service using the provided
// repository.
func NewProjects(repo ProjectRepository) *Projects {
	return &Projects{repo: repo, now: time.Now}
}

// validateProject checks the fields a client controls. A start time in
// the future is rejected; a zero start time falls back to now.
func (p *Projects) validateProject(project *models.Project) error {
	if project.Name == "" {
		return apperr.New(apperr.KindUnprocessable, "Name has not been provided")
	}
	now := p.now()
	if project.StartTime.IsZero() {
		project.StartTime = now
	}
	if project.StartTime.After(now) {
		return apperr.New(apperr.KindUnprocessable, "Start time must be today or earlier")
	}
	if project.Completed && project.CompleteTime == nil {
		completed := now
		project.CompleteTime = &completed
	}
	return nil
}

// List returns a subdivision's projects matching the name filter.
func (p *Projects) List(ctx context.Context, subdivisionID int64, nameFilter string, limit, offset int) ([]models.Project, error) {
	if limit < 1 {
		limit = 20
	}
	return p.repo.List(ctx, subdivisionID, nameFilter, limit, offset)
}

// Get returns one project scoped to its subdivision.
func (p *Projects) Get(ctx context.Context, subdivisionID, projectID int64) (*models.Project, error) {
	return p.repo.Get(ctx, subdivisionID, projectID)
}

// Create validates and stores a new project under a subdivision.
func (p *Projects) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	if err := p.validateProject(project); err != nil {
		return nil, err
	}
	return p.repo.Create(ctx, project)
}

// Update validates and rewrites a project.
func (p *Projects) Update(ctx context.Context, project *models.Project) (*models.Project, error) {
	if err := p.validateProject(project); err != nil {
		return nil, err
	}
	return p.repo.Update(ctx, project)
}

// Delete removes a project from its subdivision.
func (p *Projects) Delete(ctx context.Context, subdivisionID, projectID int64) error {
	return p.repo.Delete(ctx, subdivisionID, projectID)
}
