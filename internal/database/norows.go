package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

func isPgxNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
