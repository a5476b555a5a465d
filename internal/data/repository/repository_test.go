package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "foreign key",
			err:  &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "movies_genre_id_fkey"},
			want: ErrForeignKey,
		},
		{
			name: "unique",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"},
			want: ErrDuplicate,
		},
		{
			name: "check",
			err:  &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "movies_number_in_stock_check"},
			want: ErrConstraint,
		},
		{
			name: "wrapped unique",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}),
			want: ErrDuplicate,
		},
		{
			name: "not a postgres error",
			err:  plain,
			want: plain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err), tt.want)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("61f313a80f8e83e9d482c800")
	assert.NoError(t, err)
	assert.Equal(t, "61f313a80f8e83e9d482c800", id.Hex())

	_, err = parseID("1234")
	assert.Error(t, err)
}
