package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/okarpova/staffhub/internal/models"
)

// userColumns are the non-credential user columns, selected together so
// every read returns the same shape. Nullable text columns collapse to
// empty strings.
const userColumns = `username, COALESCE(email, ''), COALESCE(name, ''),
	COALESCE(phone_number, ''), COALESCE(avatar, ''), COALESCE(about, ''),
	is_staff, is_active, is_superuser`

// PostgresUserRepository implements user persistence, including the
// credential and status lookups the authentication flow depends on.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.Username, &u.Email, &u.Name, &u.PhoneNumber,
		&u.Avatar, &u.About, &u.IsStaff, &u.IsActive, &u.IsSuperuser)
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

// Get fetches a user by username, without the stored credential.
func (r *PostgresUserRepository) Get(ctx context.Context, username string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// GetCredential fetches the stored password hash for username.
func (r *PostgresUserRepository) GetCredential(ctx context.Context, username string) ([]byte, error) {
	var credential []byte
	err := r.DB.QueryRowContext(ctx,
		`SELECT password FROM users WHERE username = $1`, username).Scan(&credential)
	if err != nil {
		return nil, classify(err)
	}
	return credential, nil
}

// GetStatus fetches the flags the authentication middleware checks on
// every request.
func (r *PostgresUserRepository) GetStatus(ctx context.Context, username string) (*models.UserStatus, error) {
	var status models.UserStatus
	err := r.DB.QueryRowContext(ctx,
		`SELECT username, is_active, is_staff FROM users WHERE username = $1`, username).
		Scan(&status.Username, &status.IsActive, &status.IsStaff)
	if err != nil {
		return nil, classify(err)
	}
	return &status, nil
}

// List returns users matching the filter, ordered by username.
func (r *PostgresUserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`

	var conds []string
	var args []interface{}
	appendCond := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if len(filter.Usernames) > 0 {
		appendCond("username = ANY($%d)", pq.Array(filter.Usernames))
	}
	if len(filter.Names) > 0 {
		appendCond("name = ANY($%d)", pq.Array(filter.Names))
	}
	if len(filter.Emails) > 0 {
		appendCond("email = ANY($%d)", pq.Array(filter.Emails))
	}
	if filter.IsStaff != nil {
		appendCond("is_staff = $%d", *filter.IsStaff)
	}
	if filter.IsActive != nil {
		appendCond("is_active = $%d", *filter.IsActive)
	}
	if filter.IsSuperuser != nil {
		appendCond("is_superuser = $%d", *filter.IsSuperuser)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY username LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.Email, &u.Name, &u.PhoneNumber,
			&u.Avatar, &u.About, &u.IsStaff, &u.IsActive, &u.IsSuperuser); err != nil {
			return nil, classify(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return users, nil
}

// Create inserts a new user and returns the stored row. Duplicate
// usernames or emails surface as conflicts.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password, name, phone_number, avatar, about, is_staff, is_active, is_superuser)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10)
		RETURNING `+userColumns,
		user.Username, user.Email, user.Password, user.Name, user.PhoneNumber,
		user.Avatar, user.About, user.IsStaff, user.IsActive, user.IsSuperuser)
	return scanUser(row)
}

// Update rewrites a user's profile fields and returns the stored row.
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE users SET
			email = NULLIF($2, ''),
			name = NULLIF($3, ''),
			phone_number = NULLIF($4, ''),
			avatar = NULLIF($5, ''),
			about = NULLIF($6, ''),
			is_staff = $7,
			is_active = $8,
			is_superuser = $9
		WHERE username = $1
		RETURNING `+userColumns,
		user.Username, user.Email, user.Name, user.PhoneNumber,
		user.Avatar, user.About, user.IsStaff, user.IsActive, user.IsSuperuser)
	return scanUser(row)
}

// UpdatePassword replaces the stored credential for username.
func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, username string, credential []byte) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password = $2 WHERE username = $1`, username, credential)
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

// Delete removes a user. Employee assignments cascade in the schema.
func (r *PostgresUserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
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
