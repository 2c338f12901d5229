//go:build unit

package pricing_test

import (
	"strings"
	"testing"

	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceRule(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewPriceRuleBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsActive())
		assert.Equal(t, 17, actual.SpanDays())
	})

	testCases := []struct {
		name   string
		mutate func(*builder.PriceRuleBuilder)
		errIs  error
	}{
		{name: "empty name", mutate: func(b *builder.PriceRuleBuilder) { b.Name = "  " }, errIs: pricing.ErrEmptyRuleName},
		{name: "name too long", mutate: func(b *builder.PriceRuleBuilder) { b.Name = strings.Repeat("x", pricing.MaxRuleNameLength+1) }, errIs: pricing.ErrRuleNameTooLong},
		{name: "start after end", mutate: func(b *builder.PriceRuleBuilder) { b.WithPeriod("2025-12-02", "2025-12-01") }, errIs: pricing.ErrInvalidRulePeriod},
		{name: "missing start", mutate: func(b *builder.PriceRuleBuilder) { b.StartDate = "" }, errIs: pricing.ErrInvalidRulePeriod},
		{name: "single day rule", mutate: func(b *builder.PriceRuleBuilder) { b.WithPeriod("2025-12-25", "2025-12-25") }},
		{name: "full discount", mutate: func(b *builder.PriceRuleBuilder) { b.WithPercentage(-100) }},
		{name: "discount below -100", mutate: func(b *builder.PriceRuleBuilder) { b.WithPercentage(-100.5) }, errIs: pricing.ErrInvalidPercentage},
		{name: "fractional percentage", mutate: func(b *builder.PriceRuleBuilder) { b.WithPercentage(12.5) }},
		{name: "fixed price", mutate: func(b *builder.PriceRuleBuilder) { b.WithFixed(75000) }},
		{name: "zero fixed price", mutate: func(b *builder.PriceRuleBuilder) { b.WithFixed(0) }, errIs: pricing.ErrInvalidFixedPrice},
		{name: "fractional fixed price", mutate: func(b *builder.PriceRuleBuilder) { b.WithFixed(10.5) }, errIs: pricing.ErrInvalidFixedPrice},
		{name: "largest fixed price", mutate: func(b *builder.PriceRuleBuilder) { b.WithFixed(pricing.MaxRuleValue - 1) }},
		{name: "fixed price beyond the stored precision", mutate: func(b *builder.PriceRuleBuilder) { b.WithFixed(1e19) }, errIs: pricing.ErrRuleValueTooLarge},
		{name: "percentage beyond the stored precision", mutate: func(b *builder.PriceRuleBuilder) { b.WithPercentage(pricing.MaxRuleValue) }, errIs: pricing.ErrRuleValueTooLarge},
		{name: "unknown price type", mutate: func(b *builder.PriceRuleBuilder) { b.PriceType = "MULTIPLIER" }, errIs: pricing.ErrInvalidPriceType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := builder.NewPriceRuleBuilder().With(tc.mutate).BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, actual)
		})
	}
}

func TestPriceRule_AppliesOn(t *testing.T) {
	rule := builder.NewPriceRuleBuilder().WithPeriod("2025-12-24", "2025-12-26").Build()

	assert.False(t, rule.AppliesOn(calendar.MustParseDate("2025-12-23")))
	assert.True(t, rule.AppliesOn(calendar.MustParseDate("2025-12-24")))
	assert.True(t, rule.AppliesOn(calendar.MustParseDate("2025-12-26")), "end date is inclusive")
	assert.False(t, rule.AppliesOn(calendar.MustParseDate("2025-12-27")))

	rule.Deactivate()
	assert.False(t, rule.AppliesOn(calendar.MustParseDate("2025-12-25")))
}

func TestEnsureNoOverlap(t *testing.T) {
	propertyID := uuid.New()
	existing := []*pricing.PriceRule{
		builder.NewPriceRuleBuilder().WithProperty(propertyID).WithPeriod("2025-12-20", "2025-12-31").Build(),
		builder.NewPriceRuleBuilder().WithProperty(propertyID).WithPeriod("2026-02-01", "2026-02-10").With(func(b *builder.PriceRuleBuilder) { b.IsActive = false }).Build(),
	}

	testCases := []struct {
		name       string
		propertyID uuid.UUID
		start, end string
		errIs      error
	}{
		{name: "disjoint", propertyID: propertyID, start: "2026-01-01", end: "2026-01-10"},
		{name: "shares the inclusive end date", propertyID: propertyID, start: "2025-12-31", end: "2026-01-03", errIs: pricing.ErrOverlappingPriceRule},
		{name: "nested", propertyID: propertyID, start: "2025-12-24", end: "2025-12-25", errIs: pricing.ErrOverlappingPriceRule},
		{name: "overlaps an inactive rule only", propertyID: propertyID, start: "2026-02-05", end: "2026-02-06"},
		{name: "other property", propertyID: uuid.New(), start: "2025-12-24", end: "2025-12-25"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			candidate := builder.NewPriceRuleBuilder().WithProperty(tc.propertyID).WithPeriod(tc.start, tc.end).Build()
			err := pricing.EnsureNoOverlap(candidate, existing)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}
