package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/SAMSGit/sams_api/internal/utils"
)

// Postgres error codes of interest.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateRead maps driver errors from read paths onto the application
// error taxonomy.
func translateRead(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}

// translateWrite maps driver errors from insert/update paths. A unique
// violation becomes a conflict; a foreign key violation means the referenced
// row does not exist.
func translateWrite(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return utils.ErrConflict
		case pgForeignKeyViolation:
			return utils.ErrNotFound
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}

// translateDelete maps driver errors from delete paths. A foreign key
// violation here means dependent rows protect the record from deletion.
func translateDelete(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
		return utils.ErrProtected
	}
	return err
}
