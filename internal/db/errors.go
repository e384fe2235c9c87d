package db

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	invalidTextRep      = "22P02"
)

// IsUniqueViolation reports whether err came from a unique index rejecting
// an insert, e.g. two concurrent sign-ups with the same email.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return hasCode(err, uniqueViolation)
}

// IsForeignKeyViolation reports whether err came from a foreign key naming a
// row that does not exist.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return hasCode(err, foreignKeyViolation)
}

// IsInvalidText reports whether Postgres rejected a parameter's text form,
// e.g. a malformed uuid.
func IsInvalidText(err error) bool {
	return hasCode(err, invalidTextRep)
}

// IsNotFound reports whether err is GORM's missing-row error or a lookup by
// an id Postgres could not parse.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || IsInvalidText(err)
}

// ValidID reports whether id can name a row in a uuid primary key column.
// Lookups by anything else are answered as not found without a query.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
