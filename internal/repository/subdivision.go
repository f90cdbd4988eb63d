package repository

import (
	"context"
	"database/sql"

	"github.com/okarpova/staffhub/internal/models"
)

const subdivisionColumns = `subdivision_id, name, COALESCE(description, ''), creation_time, department`

// PostgresSubdivisionRepository implements subdivision and employee
// assignment persistence.
type PostgresSubdivisionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSubdivisionRepository creates a
// PostgresSubdivisionRepository with the given database connection.
func NewPostgresSubdivisionRepository(db *sql.DB) *PostgresSubdivisionRepository {
	return &PostgresSubdivisionRepository{DB: db}
}

func scanSubdivision(row *sql.Row) (*models.Subdivision, error) {
	var s models.Subdivision
	err := row.Scan(&s.SubdivisionID, &s.Name, &s.Description, &s.CreationTime, &s.Department)
	if err != nil {
		return nil, classify(err)
	}
	return &s, nil
}

// List returns subdivisions whose name contains the filter substring
// (all subdivisions when the filter is empty), ordered by id.
func (r *PostgresSubdivisionRepository) List(ctx context.Context, nameFilter string, limit, offset int) ([]models.Subdivision, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+subdivisionColumns+` FROM subdivisions
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY subdivision_id LIMIT $2 OFFSET $3
	`, nameFilter, limit, offset)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var subdivisions []models.Subdivision
	for rows.Next() {
		var s models.Subdivision
		if err := rows.Scan(&s.SubdivisionID, &s.Name, &s.Description, &s.CreationTime, &s.Department); err != nil {
			return nil, classify(err)
		}
		subdivisions = append(subdivisions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return subdivisions, nil
}

// Count returns how many subdivisions match the filter, for pagination
// metadata.
func (r *PostgresSubdivisionRepository) Count(ctx context.Context, nameFilter string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM subdivisions
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
	`, nameFilter).Scan(&count)
	if err != nil {
		return 0, classify(err)
	}
	return count, nil
}

// Get fetches one subdivision by id.
func (r *PostgresSubdivisionRepository) Get(ctx context.Context, subdivisionID int64) (*models.Subdivision, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+subdivisionColumns+` FROM subdivisions WHERE subdivision_id = $1`, subdivisionID)
	return scanSubdivision(row)
}

// Create inserts a subdivision and returns the stored row with its
// generated id and creation time.
func (r *PostgresSubdivisionRepository) Create(ctx context.Context, s *models.Subdivision) (*models.Subdivision, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO subdivisions (name, description, department)
		VALUES ($1, NULLIF($2, ''), $3)
		RETURNING `+subdivisionColumns,
		s.Name, s.Description, s.Department)
	return scanSubdivision(row)
}

// Update rewrites a subdivision's fields and returns the stored row.
func (r *PostgresSubdivisionRepository) Update(ctx context.Context, s *models.Subdivision) (*models.Subdivision, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE subdivisions SET name = $2, description = NULLIF($3, ''), department = $4
		WHERE subdivision_id = $1
		RETURNING `+subdivisionColumns,
		s.SubdivisionID, s.Name, s.Description, s.Department)
	return scanSubdivision(row)
}

// Delete removes a subdivision; its projects and employee assignments
// cascade in the schema.
func (r *PostgresSubdivisionRepository) Delete(ctx context.Context, subdivisionID int64) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM subdivisions WHERE subdivision_id = $1`, subdivisionID)
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

// AddEmployee assigns a user to a subdivision. Unknown users or
// subdivisions surface as conflicts via foreign keys; duplicate
// assignments via the primary key.
func (r *PostgresSubdivisionRepository) AddEmployee(ctx context.Context, subdivisionID int64, username string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO employees (username, subdivision_id) VALUES ($1, $2)
	`, username, subdivisionID)
	if err != nil {
		return classify(err)
	}
	return nil
}

// RemoveEmployee removes a user's assignment to a subdivision.
func (r *PostgresSubdivisionRepository) RemoveEmployee(ctx context.Context, subdivisionID int64, username string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM employees WHERE username = $1 AND subdivision_id = $2
	`, username, subdivisionID)
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
