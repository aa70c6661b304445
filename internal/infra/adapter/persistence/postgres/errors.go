package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"blogful/internal/domain/entity"
	"blogful/internal/observability/metrics"
)

// SQLSTATE codes mapped to constraint kinds.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeInvalidTextRep      = "22P02"
	codeDatetimeOverflow    = "22008"
)

// translateError wraps err with the operation name. Postgres constraint
// failures become *entity.ConstraintViolation; everything else keeps its
// driver error in the chain.
func translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	kind, ok := constraintKind(pgErr.Code)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordConstraintViolation(string(kind))
	return fmt.Errorf("%s: %w", op, &entity.ConstraintViolation{
		Kind:       kind,
		Table:      pgErr.TableName,
		Column:     pgErr.ColumnName,
		Constraint: pgErr.ConstraintName,
		Detail:     pgErr.Message,
		Err:        pgErr,
	})
}

func constraintKind(code string) (entity.ConstraintKind, bool) {
	switch code {
	case codeNotNullViolation:
		return entity.ConstraintNotNull, true
	case codeForeignKeyViolation:
		return entity.ConstraintForeignKey, true
	case codeUniqueViolation:
		return entity.ConstraintUnique, true
	case codeCheckViolation:
		return entity.ConstraintCheck, true
	case codeInvalidTextRep, codeDatetimeOverflow:
		return entity.ConstraintTypeMismatch, true
	default:
		return "", false
	}
}
