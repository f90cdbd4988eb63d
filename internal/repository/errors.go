// Package repository provides persistence implementations over a
// PostgreSQL database.
package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/okarpova/staffhub/internal/apperr"
)

// Postgres error codes surfaced as conflicts.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// classify maps database failures onto the closed error set. Missing
// rows become NotFound; constraint violations become Conflict;
// everything else is an internal error whose cause is preserved for
// logging and never swallowed.
func classify(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Wrap(apperr.KindNotFound, "Data does not exist", err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return apperr.Wrap(apperr.KindConflict, "Inserted data must be unique", err)
		case pqForeignKeyViolation:
			return apperr.Wrap(apperr.KindConflict,
				"Row with foreign key you trying to insert does not exist", err)
		}
	}
	return apperr.Wrap(apperr.KindInternal, "Internal server error", err)
}
