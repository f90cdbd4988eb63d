package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/okarpova/staffhub/internal/models"
)

const projectColumns = `project_id, name, completed, start_time, complete_time, COALESCE(description, ''), subdivision_id`

// PostgresProjectRepository implements project persistence. Projects
// are always scoped to a subdivision.
type PostgresProjectRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProjectRepository creates a PostgresProjectRepository with
// the given database connection.
func NewPostgresProjectRepository(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

func scanProject(row *sql.Row) (*models.Project, error) {
	var p models.Project
	var completeTime sql.NullTime
	err := row.Scan(&p.ProjectID, &p.Name, &p.Completed, &p.StartTime,
		&completeTime, &p.Description, &p.SubdivisionID)
	if err != nil {
		return nil, classify(err)
	}
	if completeTime.Valid {
		p.CompleteTime = &completeTime.Time
	}
	return &p, nil
}

// List returns a subdivision's projects whose name contains the filter
// substring, ordered by id.
func (r *PostgresProjectRepository) List(ctx context.Context, subdivisionID int64, nameFilter string, limit, offset int) ([]models.Project, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE subdivision_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY project_id LIMIT $3 OFFSET $4
	`, subdivisionID, nameFilter, limit, offset)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		var completeTime sql.NullTime
		if err := rows.Scan(&p.ProjectID, &p.Name, &p.Completed, &p.StartTime,
			&completeTime, &p.Description, &p.SubdivisionID); err != nil {
			return nil, classify(err)
		}
		if completeTime.Valid {
			p.CompleteTime = &completeTime.Time
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return projects, nil
}

// Get fetches one project, scoped to its subdivision so a project
// cannot be addressed through another subdivision's URL.
func (r *PostgresProjectRepository) Get(ctx context.Context, subdivisionID, projectID int64) (*models.Project, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE subdivision_id = $1 AND project_id = $2
	`, subdivisionID, projectID)
	return scanProject(row)
}

// Create inserts a project under a subdivision and returns the stored
// row. An unknown subdivision surfaces as a conflict via the foreign
// key.
func (r *PostgresProjectRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO projects (name, completed, start_time, complete_time, description, subdivision_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING `+projectColumns,
		p.Name, p.Completed, p.StartTime, nullableTime(p.CompleteTime), p.Description, p.SubdivisionID)
	return scanProject(row)
}

// Update rewrites a project's fields and returns the stored row.
func (r *PostgresProjectRepository) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE projects SET name = $3, completed = $4, start_time = $5, complete_time = $6, description = NULLIF($7, '')
		WHERE subdivision_id = $1 AND project_id = $2
		RETURNING `+projectColumns,
		p.SubdivisionID, p.ProjectID, p.Name, p.Completed, p.StartTime,
		nullableTime(p.CompleteTime), p.Description)
	return scanProject(row)
}

// Delete removes a project from its subdivision.
func (r *PostgresProjectRepository) Delete(ctx context.Context, subdivisionID, projectID int64) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM projects WHERE subdivision_id = $1 AND project_id = $2
	`, subdivisionID, projectID)
	if err != nil {
		return classify(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return classify(err)
	}
	if affected == 0 {
		return classify(sql.ErrNoRows)
	}
	return nil
}

// nullableTime adapts an optional completion time to its column value.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
