package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/thanFreecss/celebrity-salon/internal/httperr"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation recognises duplicate-key failures from either the
// translated gorm error or a raw postgres error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func storageErr(err error) error {
	if err == nil {
		return nil
	}
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return httperr.Unavailable("storage_unavailable", err)
}
