package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/taskmanager-server/internal/model"
)

// mapWriteError translates constraint violations into model sentinels.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %s", model.ErrAlreadyExists, pgErr.ConstraintName)
	case pgerrcode.CheckViolation,
		pgerrcode.NotNullViolation,
		pgerrcode.StringDataRightTruncationDataException,
		pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %s", model.ErrInvalidField, violatedField(pgErr))
	}

	return err
}

func violatedField(pgErr *pgconn.PgError) string {
	switch {
	case pgErr.ColumnName != "":
		return pgErr.ColumnName
	case pgErr.ConstraintName != "":
		return pgErr.ConstraintName
	default:
		return pgErr.Message
	}
}
