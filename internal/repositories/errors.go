package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stock-backend/internal/models"
)

// PostgreSQL error codes the store translates into domain errors
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// mapError converts driver errors into the models error kinds
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, models.ErrReferenced)
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: duplicate value (%s)", op, models.ErrValidation, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%s: %w: %s", op, models.ErrValidation, pgErr.ConstraintName)
		}
	}

	return fmt.Errorf("%s: %w: %w", op, models.ErrStorage, err)
}

// nullableID stores a zero id as NULL
func nullableID(id int) *int {
	if id == 0 {
		return nil
	}
	return &id
}
