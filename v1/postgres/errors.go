package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("postgres: record not found")
	ErrDuplicateKey   = errors.New("postgres: duplicate key violation")
	ErrForeignKey     = errors.New("postgres: foreign key violation")
	ErrInvalidData    = errors.New("postgres: invalid data")
	ErrConnection     = errors.New("postgres: connection failure")
	ErrTimeout        = errors.New("postgres: timeout")
)

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeAdminShutdown       = "57P01"
	codeQueryCanceled       = "57014"
)

// TranslateError maps gorm and pgconn errors to the package sentinels.
// Errors it does not recognize are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return ErrDuplicateKey
		case pgErr.Code == codeForeignKeyViolation:
			return ErrForeignKey
		case pgErr.Code == codeQueryCanceled:
			return errors.Join(ErrTimeout, err)
		case pgErr.Code == codeAdminShutdown, len(pgErr.Code) == 5 && pgErr.Code[:2] == "08":
			return errors.Join(ErrConnection, err)
		}
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return errors.Join(ErrConnection, err)
	}
	return err
}
