//go:build unit

package booking_test

import (
	"testing"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/room"
	"staybook/internal/pkg/clock"
	"staybook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_CreateBooking(t *testing.T) {
	propertyID := uuid.New()
	r, err := room.NewRoom(uuid.New(), propertyID, 100000, 2, "Asia/Jakarta")
	require.NoError(t, err)

	// 2025-11-30 23:30 UTC is already 2025-12-01 in Jakarta.
	clk := clock.NewMockClock(time.Date(2025, 11, 30, 23, 30, 0, 0, time.UTC))
	factory := booking.NewFactory(clk, pricing.NewRangePricer(), 30)
	rules := []*pricing.PriceRule{
		builder.NewPriceRuleBuilder().WithProperty(propertyID).WithPeriod("2025-12-01", "2025-12-31").WithPercentage(20).Build(),
	}
	userID := uuid.New()

	stayOf := func(in, out string) calendar.Range {
		return calendar.Range{Start: calendar.MustParseDate(in), End: calendar.MustParseDate(out)}
	}

	t.Run("prices the stay and starts pending payment", func(t *testing.T) {
		b, err := factory.CreateBooking(r, propertyID, rules, userID, stayOf("2025-12-01", "2025-12-03"), 2, booking.Note{})
		require.NoError(t, err)

		assert.Equal(t, int64(240000), b.TotalPrice())
		assert.Equal(t, booking.StatusPendingPayment, b.Status())
		assert.Equal(t, r.ID(), b.RoomID())
		assert.Equal(t, clk.Now(), b.CreatedAt())
	})

	testCases := []struct {
		name       string
		propertyID uuid.UUID
		stay       calendar.Range
		guests     int
		errIs      error
	}{
		{name: "empty stay", propertyID: propertyID, stay: stayOf("2025-12-02", "2025-12-02"), guests: 1, errIs: calendar.ErrInvalidRange},
		{name: "no guests", propertyID: propertyID, stay: stayOf("2025-12-02", "2025-12-03"), errIs: booking.ErrInvalidGuests},
		{name: "too long", propertyID: propertyID, stay: stayOf("2025-12-02", "2026-01-02"), guests: 1, errIs: booking.ErrStayTooLong},
		{name: "room of another property", propertyID: uuid.New(), stay: stayOf("2025-12-02", "2025-12-03"), guests: 1, errIs: booking.ErrRoomNotInProperty},
		{name: "over capacity", propertyID: propertyID, stay: stayOf("2025-12-02", "2025-12-03"), guests: 3, errIs: booking.ErrExceedsCapacity},
		{name: "check-in yesterday in property time", propertyID: propertyID, stay: stayOf("2025-11-30", "2025-12-02"), guests: 1, errIs: booking.ErrCheckInInPast},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := factory.CreateBooking(r, tc.propertyID, rules, userID, tc.stay, tc.guests, booking.Note{})
			require.ErrorIs(t, err, tc.errIs)
			assert.Nil(t, b)
		})
	}
}

func TestNewFactory_DefaultMaxNights(t *testing.T) {
	f := booking.NewFactory(clock.NewRealClock(), pricing.NewRangePricer(), 0)
	assert.Equal(t, booking.DefaultMaxNights, f.MaxNights)
}
