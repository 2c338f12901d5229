//go:build unit

package infra_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"staybook/internal/infra"
	"staybook/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapPgErr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	testCases := []struct {
		name     string
		err      error
		kind     infra.RepositoryErrorKind
		sharedIs error
	}{
		{name: "no rows", err: pgx.ErrNoRows, kind: infra.KindNotFound, sharedIs: errs.ErrNotFound},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, kind: infra.KindConflict, sharedIs: errs.ErrConflict},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, kind: infra.KindDuplicateKey, sharedIs: errs.ErrConflict},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, kind: infra.KindForeignKeyViolated},
		{name: "anything else", err: errors.New("connection reset"), kind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := infra.WrapPgErr(logger, "insert booking", tc.err)

			assert.True(t, infra.IsKind(err, tc.kind))
			assert.ErrorIs(t, err, tc.err)
			if tc.sharedIs != nil {
				assert.ErrorIs(t, err, tc.sharedIs)
			} else {
				assert.NotErrorIs(t, err, errs.ErrNotFound)
				assert.NotErrorIs(t, err, errs.ErrConflict)
			}
		})
	}
}
