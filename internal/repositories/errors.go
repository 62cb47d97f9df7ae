package repositories

import (
	"errors"
	"fmt"
	"strings"

	"cookbook/internal/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the store reacts to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// translate maps a store error onto the apperrors taxonomy. entity and field name the
// record and unique column involved, used for not-found and uniqueness failures.
// Errors that already carry a kind pass through untouched.
func translate(err error, entity, field string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict(entity, field, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Referential(entity, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.Conflict(entity, field, err)
		case pgForeignKeyViolation:
			return apperrors.Referential(entity, err)
		case pgSerializationFailure, pgDeadlockDetected:
			return apperrors.Transient(entity, err)
		}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return apperrors.Conflict(entity, field, err)
		case sqlite3.ErrConstraintForeignKey:
			return apperrors.Referential(entity, err)
		case sqlite3.ErrConstraintTrigger:
			// ON DELETE RESTRICT is enforced as a trigger
			if strings.Contains(sqliteErr.Error(), "FOREIGN KEY") {
				return apperrors.Referential(entity, err)
			}
		}
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return apperrors.Transient(entity, err)
		}
	}

	return fmt.Errorf("%s store failure: %w", orEntity(entity), err)
}

func orEntity(entity string) string {
	if entity == "" {
		return "database"
	}
	return entity
}
