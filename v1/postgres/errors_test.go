package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, ErrRecordNotFound},
		{"wrapped not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), ErrRecordNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, ErrDuplicateKey},
		{"unique violation", &pgconn.PgError{Code: "23505"}, ErrDuplicateKey},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrForeignKey},
		{"connection exception", &pgconn.PgError{Code: "08006"}, ErrConnection},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, ErrConnection},
		{"query canceled", &pgconn.PgError{Code: "57014"}, ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, TranslateError(tt.in), tt.want)
		})
	}

	assert.NoError(t, TranslateError(nil))

	syntax := &pgconn.PgError{Code: "42601"}
	assert.Same(t, syntax, TranslateError(syntax))

	other := errors.New("boom")
	assert.Same(t, other, TranslateError(other))
}

func TestTranslateError_ContextDeadline(t *testing.T) {
	err := TranslateError(fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	canceled := fmt.Errorf("query: %w", context.Canceled)
	assert.Same(t, canceled, TranslateError(canceled))
}

func TestNewInsertRecord(t *testing.T) {
	rec := NewInsertRecord("WVW1", "fleet", []string{"color", "battery/level", "brand_name"})

	assert.Equal(t, "WVW1", rec.VehicleID)
	assert.Equal(t, "fleet", rec.Owner)
	assert.Equal(t, 3, rec.LeafCount)
	assert.Equal(t, "battery/level,brand_name,color", rec.Keys)
}
