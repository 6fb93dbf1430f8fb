package postgres

import (
	"database/sql"
	stderrors "errors"

	"github.com/lib/pq"

	"github.com/clinicore/records-api/pkg/errors"
)

// SQLSTATE classes the engine raises for constraint failures.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// mapWriteError translates driver errors on insert/update into the store's
// taxonomy. A 23503 here means a dangling parent reference.
func mapWriteError(err error, table string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeNotNullViolation:
			return errors.NotNull(table, pqErr.Column)
		case codeForeignKeyViolation:
			return errors.ForeignKey(table, pqErr.Constraint, pqErr.Detail)
		case codeUniqueViolation:
			return errors.Unique(table, pqErr.Constraint, pqErr.Detail)
		}
	}
	return err
}

// mapDeleteError translates driver errors on delete. A 23503 here is an
// ON DELETE RESTRICT dependent blocking the removal.
func mapDeleteError(err error, table string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && pqErr.Code == codeForeignKeyViolation {
		return errors.Restricted(table, pqErr.Constraint, pqErr.Detail)
	}
	return err
}

func mapGetError(err error, table string, id any) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFound(table, id)
	}
	return err
}
