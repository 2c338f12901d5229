//go:build unit

package pricing_test

import (
	"testing"

	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	day := calendar.MustParseDate("2025-12-25")

	t.Run("no rules", func(t *testing.T) {
		assert.Nil(t, pricing.Resolve(nil, day))
	})

	t.Run("rule outside the date", func(t *testing.T) {
		r := builder.NewPriceRuleBuilder().WithPeriod("2026-01-01", "2026-01-31").Build()
		assert.Nil(t, pricing.Resolve([]*pricing.PriceRule{r}, day))
	})

	t.Run("narrowest span wins regardless of order", func(t *testing.T) {
		wide := builder.NewPriceRuleBuilder().WithPeriod("2025-12-01", "2025-12-31").Build()
		narrow := builder.NewPriceRuleBuilder().WithPeriod("2025-12-24", "2025-12-26").Build()

		assert.Equal(t, narrow.ID(), pricing.Resolve([]*pricing.PriceRule{wide, narrow}, day).ID())
		assert.Equal(t, narrow.ID(), pricing.Resolve([]*pricing.PriceRule{narrow, wide}, day).ID())
	})

	t.Run("equal span prefers the later start", func(t *testing.T) {
		early := builder.NewPriceRuleBuilder().WithPeriod("2025-12-23", "2025-12-25").Build()
		late := builder.NewPriceRuleBuilder().WithPeriod("2025-12-25", "2025-12-27").Build()

		assert.Equal(t, late.ID(), pricing.Resolve([]*pricing.PriceRule{early, late}, day).ID())
		assert.Equal(t, late.ID(), pricing.Resolve([]*pricing.PriceRule{late, early}, day).ID())
	})

	t.Run("identical periods fall back to the smallest id", func(t *testing.T) {
		low := builder.NewPriceRuleBuilder().With(func(b *builder.PriceRuleBuilder) {
			b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
		}).Build()
		high := builder.NewPriceRuleBuilder().With(func(b *builder.PriceRuleBuilder) {
			b.ID = uuid.MustParse("ffffffff-0000-0000-0000-000000000000")
		}).Build()

		assert.Equal(t, low.ID(), pricing.Resolve([]*pricing.PriceRule{high, low}, day).ID())
		assert.Equal(t, low.ID(), pricing.Resolve([]*pricing.PriceRule{low, high}, day).ID())
	})

	t.Run("inactive rules are ignored", func(t *testing.T) {
		r := builder.NewPriceRuleBuilder().With(func(b *builder.PriceRuleBuilder) { b.IsActive = false }).Build()
		assert.Nil(t, pricing.Resolve([]*pricing.PriceRule{r}, day))
	})
}
