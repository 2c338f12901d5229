//go:build unit

package pgconv_test

import (
	"testing"

	"staybook/internal/domain/calendar"
	"staybook/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericRoundTrip(t *testing.T) {
	for _, v := range []float64{20, -100, 12.5, -33.3333, 75000} {
		got, err := pgconv.Float64FromNumeric(pgconv.NumericFromFloat64(v))
		require.NoError(t, err)
		assert.InDelta(t, v, got, 1e-9)
	}

	_, err := pgconv.Float64FromNumeric(pgtype.Numeric{})
	assert.ErrorIs(t, err, pgconv.ErrInvalidFloat64Value)
}

func TestDateConversion(t *testing.T) {
	d := calendar.MustParseDate("2025-03-09")

	got, err := pgconv.DateFromPgtype(pgconv.DateToPgtype(d))
	require.NoError(t, err)
	assert.True(t, d.Equal(got))

	_, err = pgconv.DateFromPgtype(pgtype.Date{Valid: true, InfinityModifier: pgtype.Infinity})
	assert.ErrorIs(t, err, pgconv.ErrInvalidDateValue)
	assert.False(t, pgconv.DateToPgtype(calendar.Date{}).Valid)
}

func TestOptionalString(t *testing.T) {
	assert.False(t, pgconv.OptionalStringToPgtype("").Valid)
	assert.Equal(t, "x", pgconv.StringFromPgtype(pgconv.OptionalStringToPgtype("x")))
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
}
