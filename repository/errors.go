package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Duplicate-key sentinels. The database is the authority on
// uniqueness; pre-insert existence checks are advisory and these
// errors are what callers must branch on.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)

// ErrNoRowsUpdated reports an update that passed its existence check
// but wrote nothing, e.g. the row vanished between check and write.
var ErrNoRowsUpdated = errors.New("update affected no rows")

const pgUniqueViolation = "23505"

// translateDuplicate maps a postgres unique violation to the matching
// sentinel by constraint name. Unknown constraints pass through
// untouched.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "uk_users_username":
		return ErrDuplicateUsername
	case "uk_users_email":
		return ErrDuplicateEmail
	}
	return err
}

func IsDuplicateIdentity(err error) bool {
	return errors.Is(err, ErrDuplicateUsername) || errors.Is(err, ErrDuplicateEmail)
}
