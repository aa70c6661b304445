package sqlite

import (
	"errors"
	"fmt"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"blogful/internal/domain/entity"
	"blogful/internal/observability/metrics"
)

// translateError maps SQLite constraint failures to *entity.ConstraintViolation.
// The driver message is kept as the violation detail.
func translateError(op string, err error) error {
	kind, ok := constraintKind(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.RecordConstraintViolation(string(kind))
	return fmt.Errorf("%s: %w", op, &entity.ConstraintViolation{
		Kind:   kind,
		Detail: err.Error(),
		Err:    err,
	})
}

func constraintKind(err error) (entity.ConstraintKind, bool) {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return "", false
	}
	// modernc reports extended result codes.
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
		return entity.ConstraintNotNull, true
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return entity.ConstraintUnique, true
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return entity.ConstraintForeignKey, true
	case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
		return entity.ConstraintCheck, true
	case sqlite3lib.SQLITE_CONSTRAINT_DATATYPE, sqlite3lib.SQLITE_MISMATCH:
		return entity.ConstraintTypeMismatch, true
	default:
		return "", false
	}
}
