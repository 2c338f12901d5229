//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stay(t *testing.T, checkIn, checkOut string) calendar.Range {
	t.Helper()
	r, err := calendar.NewRange(calendar.MustParseDate(checkIn), calendar.MustParseDate(checkOut))
	require.NoError(t, err)
	return r
}

func TestRangePricer_TotalPrice(t *testing.T) {
	pricer := pricing.NewRangePricer()

	testCases := []struct {
		name      string
		basePrice int64
		rules     []*pricing.PriceRule
		stay      calendar.Range
		expected  int64
	}{
		{
			name:      "no rules charges base price per night",
			basePrice: 100000,
			stay:      stay(t, "2025-11-03", "2025-11-06"),
			expected:  300000,
		},
		{
			name:      "percentage increase on every night",
			basePrice: 100000,
			rules:     []*pricing.PriceRule{builder.NewPriceRuleBuilder().WithPeriod("2025-11-01", "2025-11-30").WithPercentage(20).Build()},
			stay:      stay(t, "2025-11-03", "2025-11-06"),
			expected:  360000,
		},
		{
			name:      "fixed override replaces base price",
			basePrice: 100000,
			rules:     []*pricing.PriceRule{builder.NewPriceRuleBuilder().WithPeriod("2025-11-01", "2025-11-30").WithFixed(75000).Build()},
			stay:      stay(t, "2025-11-10", "2025-11-12"),
			expected:  150000,
		},
		{
			name:      "rule covers part of the stay",
			basePrice: 100000,
			rules:     []*pricing.PriceRule{builder.NewPriceRuleBuilder().WithPeriod("2025-11-04", "2025-11-04").WithPercentage(-50).Build()},
			stay:      stay(t, "2025-11-03", "2025-11-06"),
			expected:  250000,
		},
		{
			name:      "each night is rounded before summing",
			basePrice: 100001,
			rules:     []*pricing.PriceRule{builder.NewPriceRuleBuilder().WithPeriod("2025-11-01", "2025-11-30").WithPercentage(-50).Build()},
			stay:      stay(t, "2025-11-03", "2025-11-05"),
			expected:  100002,
		},
		{
			name:      "full discount",
			basePrice: 100000,
			rules:     []*pricing.PriceRule{builder.NewPriceRuleBuilder().WithPeriod("2025-11-01", "2025-11-30").WithPercentage(-100).Build()},
			stay:      stay(t, "2025-11-03", "2025-11-05"),
			expected:  0,
		},
		{
			name:      "rule end date is inclusive",
			basePrice: 1000,
			rules:     []*pricing.PriceRule{builder.NewPriceRuleBuilder().WithPeriod("2025-11-01", "2025-11-03").WithFixed(500).Build()},
			stay:      stay(t, "2025-11-03", "2025-11-05"),
			expected:  1500,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			total, err := pricer.TotalPrice(tc.basePrice, tc.rules, tc.stay)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, total)
		})
	}
}

func TestRangePricer_OutOfRange(t *testing.T) {
	pricer := pricing.NewRangePricer()
	december := stay(t, "2025-12-01", "2025-12-03")

	t.Run("largest fixed rule keeps value times nights", func(t *testing.T) {
		rules := []*pricing.PriceRule{builder.NewPriceRuleBuilder().WithPeriod("2025-12-01", "2025-12-31").WithFixed(99999999).Build()}
		total, err := pricer.TotalPrice(100000, rules, december)
		require.NoError(t, err)
		assert.Equal(t, int64(2*99999999), total)
	})

	t.Run("night above the supported amount", func(t *testing.T) {
		// Rows written before the value bound existed bypass NewPriceRule.
		rules := []*pricing.PriceRule{builder.NewPriceRuleBuilder().WithPeriod("2025-12-01", "2025-12-31").WithFixed(1e19).Build()}
		_, err := pricer.TotalPrice(100000, rules, december)
		assert.ErrorIs(t, err, pricing.ErrPriceOutOfRange)

		month, err := calendar.ParseMonth("2025-12")
		require.NoError(t, err)
		_, err = pricer.MonthCalendar(100000, rules, nil, month)
		assert.ErrorIs(t, err, pricing.ErrPriceOutOfRange)
	})

	t.Run("sum above the supported amount", func(t *testing.T) {
		_, err := pricer.TotalPrice(pricing.MaxAmount, nil, december)
		assert.ErrorIs(t, err, pricing.ErrPriceOutOfRange)
	})

	t.Run("rounding rejects values beyond int64", func(t *testing.T) {
		_, err := pricing.RoundAmount(1e19)
		assert.ErrorIs(t, err, pricing.ErrPriceOutOfRange)
		v, err := pricing.RoundAmount(2.5)
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)
	})
}

type fakeAvailability map[string]bool

func (f fakeAvailability) IsAvailable(r calendar.Range) bool {
	return !f[r.Start.String()]
}

func TestRangePricer_MonthCalendar(t *testing.T) {
	pricer := pricing.NewRangePricer()
	rules := []*pricing.PriceRule{
		builder.NewPriceRuleBuilder().WithPeriod("2025-11-10", "2025-11-12").WithPercentage(20).Build(),
	}
	booked := fakeAvailability{"2025-11-15": true}

	t.Run("thirty day month", func(t *testing.T) {
		month, err := calendar.ParseMonth("2025-11")
		require.NoError(t, err)

		days, err := pricer.MonthCalendar(100000, rules, booked, month)
		require.NoError(t, err)
		require.Len(t, days, 30)

		assert.Equal(t, "2025-11-01", days[0].Date.String())
		assert.Equal(t, "2025-11-30", days[29].Date.String())

		assert.Equal(t, int64(120000), days[9].Price)
		assert.True(t, days[9].IsHoliday)
		assert.Equal(t, int64(100000), days[12].Price)
		assert.False(t, days[12].IsHoliday)

		assert.False(t, days[14].IsAvailable)
		assert.True(t, days[15].IsAvailable)

		for _, d := range days {
			isWeekend := d.Date.Weekday() == time.Saturday || d.Date.Weekday() == time.Sunday
			assert.Equal(t, isWeekend, d.IsWeekend, d.Date.String())
		}
	})

	t.Run("leap February", func(t *testing.T) {
		month, err := calendar.ParseMonth("2028-02")
		require.NoError(t, err)
		days, err := pricer.MonthCalendar(100, nil, nil, month)
		require.NoError(t, err)
		assert.Len(t, days, 29)
	})

	t.Run("calendar days sum to the stay total", func(t *testing.T) {
		month, err := calendar.ParseMonth("2025-11")
		require.NoError(t, err)
		odd := []*pricing.PriceRule{
			builder.NewPriceRuleBuilder().WithPeriod("2025-11-01", "2025-11-30").WithPercentage(-33.3).Build(),
		}

		days, err := pricer.MonthCalendar(100001, odd, nil, month)
		require.NoError(t, err)
		var sum int64
		for _, d := range days[4:9] {
			sum += d.Price
		}
		total, err := pricer.TotalPrice(100001, odd, stay(t, "2025-11-05", "2025-11-10"))
		require.NoError(t, err)
		assert.Equal(t, total, sum)
	})
}
