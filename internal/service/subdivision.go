package service

import (
	"context"

	"github.com/okarpova/staffhub/internal/apperr"
	"github.com/okarpova/staffhub/internal/models"
	"github.com/okarpova/staffhub/internal/pagination"
)

// SubdivisionRepository defines the persistence operations required by
// the subdivision service.
type SubdivisionRepository interface {
	List(ctx context.Context, nameFilter string, limit, offset int) ([]models.Subdivision, error)
	Count(ctx context.Context, nameFilter string) (int, error)
	Get(ctx context.Context, subdivisionID int64) (*models.Subdivision, error)
	Create(ctx context.Context, s *models.Subdivision) (*models.Subdivision, error)
	Update(ctx context.Context, s *models.Subdivision) (*models.Subdivision, error)
	Delete(ctx context.Context, subdivisionID int64) error
	AddEmployee(ctx context.Context, subdivisionID int64, username string) error
	RemoveEmployee(ctx context.Context, subdivisionID int64, username string) error
}

// Subdivisions implements subdivision and employee assignment
// management.
type Subdivisions struct {
	repo SubdivisionRepository
}

// NewSubdivisions constructs a Subdivisions service using the provided
// repository.
func NewSubdivisions(repo SubdivisionRepository) *Subdivisions {
	return &Subdivisions{repo: repo}
}

func validateSubdivision(s *models.Subdivision) error {
	if s.Name == "" {
		return apperr.New(apperr.KindUnprocessable, "Name has not been provided")
	}
	if !s.Department.Valid() {
		return apperr.New(apperr.KindUnprocessable, "Department is not valid")
	}
	return nil
}

// List returns one page of subdivisions matching the name filter,
// together with pagination metadata.
func (s *Subdivisions) List(ctx context.Context, nameFilter string, page pagination.Page) ([]models.Subdivision, pagination.Meta, error) {
	subdivisions, err := s.repo.List(ctx, nameFilter, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	total, err := s.repo.Count(ctx, nameFilter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return subdivisions, page.Describe(total), nil
}

// Get returns one subdivision by id.
func (s *Subdivisions) Get(ctx context.Context, subdivisionID int64) (*models.Subdivision, error) {
	return s.repo.Get(ctx, subdivisionID)
}

// Create validates and stores a new subdivision.
func (s *Subdivisions) Create(ctx context.Context, subdivision *models.Subdivision) (*models.Subdivision, error) {
	if err := validateSubdivision(subdivision); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, subdivision)
}

// Update validates and rewrites a subdivision.
func (s *Subdivisions) Update(ctx context.Context, subdivision *models.Subdivision) (*models.Subdivision, error) {
	if err := validateSubdivision(subdivision); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, subdivision)
}

// Delete removes a subdivision.
func (s *Subdivisions) Delete(ctx context.Context, subdivisionID int64) error {
	return s.repo.Delete(ctx, subdivisionID)
}

// AttachEmployee assigns a user to a subdivision.
func (s *Subdivisions) AttachEmployee(ctx context.Context, subdivisionID int64, username string) error {
	if username == "" {
		return apperr.New(apperr.KindUnprocessable, "Username has not been provided")
	}
	return s.repo.AddEmployee(ctx, subdivisionID, username)
}

// DetachEmployee removes a user's assignment to a subdivision.
func (s *Subdivisions) DetachEmployee(ctx context.Context, subdivisionID int64, username string) error {
	return s.repo.RemoveEmployee(ctx, subdivisionID, username)
}
