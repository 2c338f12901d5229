//go:build unit

package commands_test

import (
	"context"
	"testing"

	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePriceRule(t *testing.T) {
	ctx := context.Background()
	december := commands.CreatePriceRuleRequest{
		Name: "December", StartDate: "2025-12-01", EndDate: "2025-12-31", PriceType: "PERCENTAGE", Value: 20,
	}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		v, err := f.priceRules.CreatePriceRule(ctx, f.propertyID, december)
		require.NoError(t, err)

		assert.Equal(t, f.propertyID, v.PropertyID)
		assert.Equal(t, "2025-12-01", v.StartDate)
		assert.Equal(t, "2025-12-31", v.EndDate)
		assert.True(t, v.IsActive)
		assert.Equal(t, 1, f.invalidator.count())
	})

	t.Run("overlapping active rule is rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.priceRules.CreatePriceRule(ctx, f.propertyID, december)
		require.NoError(t, err)

		// End dates are inclusive, so sharing 2025-12-31 is an overlap.
		_, err = f.priceRules.CreatePriceRule(ctx, f.propertyID, commands.CreatePriceRuleRequest{
			Name: "New year", StartDate: "2025-12-31", EndDate: "2026-01-02", PriceType: "FIXED", Value: 150000,
		})
		assert.ErrorIs(t, err, shared.ErrPriceRuleOverlap)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("adjacent rule is accepted", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.priceRules.CreatePriceRule(ctx, f.propertyID, december)
		require.NoError(t, err)

		_, err = f.priceRules.CreatePriceRule(ctx, f.propertyID, commands.CreatePriceRuleRequest{
			Name: "New year", StartDate: "2026-01-01", EndDate: "2026-01-02", PriceType: "FIXED", Value: 150000,
		})
		assert.NoError(t, err)
	})

	t.Run("deactivated rule no longer blocks nor prices", func(t *testing.T) {
		f := newFixture(t)
		v, err := f.priceRules.CreatePriceRule(ctx, f.propertyID, december)
		require.NoError(t, err)
		require.NoError(t, f.priceRules.DeactivatePriceRule(ctx, f.propertyID, v.ID))

		b := f.create(t, uuid.New(), "2025-12-10", "2025-12-12")
		assert.Equal(t, int64(200000), b.TotalPrice)

		_, err = f.priceRules.CreatePriceRule(ctx, f.propertyID, december)
		assert.NoError(t, err)
	})

	t.Run("validation and lookup failures", func(t *testing.T) {
		f := newFixture(t)
		testCases := []struct {
			name       string
			propertyID uuid.UUID
			req        commands.CreatePriceRuleRequest
			kind       error
		}{
			{name: "empty name", propertyID: f.propertyID, req: commands.CreatePriceRuleRequest{StartDate: "2025-12-01", EndDate: "2025-12-02", PriceType: "FIXED", Value: 1}, kind: errs.ErrValidation},
			{name: "reversed period", propertyID: f.propertyID, req: commands.CreatePriceRuleRequest{Name: "x", StartDate: "2025-12-03", EndDate: "2025-12-02", PriceType: "FIXED", Value: 1}, kind: errs.ErrValidation},
			{name: "unknown price type", propertyID: f.propertyID, req: commands.CreatePriceRuleRequest{Name: "x", StartDate: "2025-12-01", EndDate: "2025-12-02", PriceType: "MULTIPLIER", Value: 1}, kind: errs.ErrValidation},
			{name: "percentage below -100", propertyID: f.propertyID, req: commands.CreatePriceRuleRequest{Name: "x", StartDate: "2025-12-01", EndDate: "2025-12-02", PriceType: "PERCENTAGE", Value: -101}, kind: errs.ErrValidation},
			{name: "fixed value beyond the stored precision", propertyID: f.propertyID, req: commands.CreatePriceRuleRequest{Name: "x", StartDate: "2025-12-01", EndDate: "2025-12-02", PriceType: "FIXED", Value: 1e19}, kind: errs.ErrValidation},
			{name: "percentage beyond the stored precision", propertyID: f.propertyID, req: commands.CreatePriceRuleRequest{Name: "x", StartDate: "2025-12-01", EndDate: "2025-12-02", PriceType: "PERCENTAGE", Value: 1e8}, kind: errs.ErrValidation},
			{name: "date-time instead of a civil date", propertyID: f.propertyID, req: commands.CreatePriceRuleRequest{Name: "x", StartDate: "2025-12-24T23:30:00-05:00", EndDate: "2025-12-26", PriceType: "FIXED", Value: 1}, kind: errs.ErrValidation},
			{name: "bad date", propertyID: f.propertyID, req: commands.CreatePriceRuleRequest{Name: "x", StartDate: "tomorrow", EndDate: "2025-12-02", PriceType: "FIXED", Value: 1}, kind: errs.ErrValidation},
			{name: "unknown property", propertyID: uuid.New(), req: december, kind: errs.ErrNotFound},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.priceRules.CreatePriceRule(ctx, tc.propertyID, tc.req)
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.kind)
			})
		}
	})
}

func TestDeactivatePriceRule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	v, err := f.priceRules.CreatePriceRule(ctx, f.propertyID, commands.CreatePriceRuleRequest{
		Name: "Weekend", StartDate: "2025-12-06", EndDate: "2025-12-07", PriceType: "FIXED", Value: 130000,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.priceRules.DeactivatePriceRule(ctx, uuid.New(), v.ID), shared.ErrPriceRuleNotFound)
	assert.ErrorIs(t, f.priceRules.DeactivatePriceRule(ctx, f.propertyID, uuid.New()), shared.ErrPriceRuleNotFound)

	require.NoError(t, f.priceRules.DeactivatePriceRule(ctx, f.propertyID, v.ID))
	require.NoError(t, f.priceRules.DeactivatePriceRule(ctx, f.propertyID, v.ID), "deactivation is idempotent")

	views, err := f.store.Reads().ListByProperty(ctx, f.propertyID, true)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].IsActive)
}
