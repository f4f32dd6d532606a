package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// isUniqueViolation recognises a unique index conflict whether or not the
// connection was opened with gorm's TranslateError.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// closedRange restricts column to [from, to]. Empty bounds are ignored.
func closedRange(column, from, to string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case from != "" && to != "":
			return db.Where(column+" BETWEEN ? AND ?", from, to)
		case from != "":
			return db.Where(column+" >= ?", from)
		case to != "":
			return db.Where(column+" <= ?", to)
		}
		return db
	}
}
