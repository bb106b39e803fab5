package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"kittygram/internal/domain/cats"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE usados.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	invalidTextRepr     = "22P02"
)

const (
	constraintAchievementCat = "unique_achievement_cat"
	constraintBirthYear      = "birth_year_reasonable"
)

// mapErr traduce errores del driver a sentinels del dominio.
// notFound se usa para no-rows, FK rota e ids mal formados.
func mapErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation:
		if pgErr.ConstraintName == constraintAchievementCat {
			return cats.ErrDuplicateAchievement
		}
	case checkViolation:
		if pgErr.ConstraintName == constraintBirthYear {
			return cats.ErrBirthYearOutOfRange
		}
	case foreignKeyViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, notFound)
	case invalidTextRepr:
		return notFound
	}
	return err
}
