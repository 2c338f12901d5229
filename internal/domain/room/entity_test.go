//go:build unit

package room_test

import (
	"testing"

	"staybook/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	testCases := []struct {
		name      string
		basePrice int64
		capacity  int
		timeZone  string
		errIs     error
	}{
		{name: "valid room", basePrice: 100000, capacity: 2, timeZone: "Asia/Jakarta"},
		{name: "empty time zone falls back to UTC", basePrice: 1, capacity: 1},
		{name: "zero base price", basePrice: 0, capacity: 2, errIs: room.ErrNonPositiveBasePrice},
		{name: "negative capacity", basePrice: 100, capacity: -1, errIs: room.ErrNonPositiveCapacity},
		{name: "unknown time zone", basePrice: 100, capacity: 1, timeZone: "Mars/Olympus", errIs: room.ErrUnknownTimeZone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := room.NewRoom(uuid.New(), uuid.New(), tc.basePrice, tc.capacity, tc.timeZone)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.basePrice, r.BasePrice())
			assert.NotNil(t, r.Location())
		})
	}
}

func TestRoom_Fits(t *testing.T) {
	r, err := room.NewRoom(uuid.New(), uuid.New(), 100, 3, "")
	require.NoError(t, err)

	assert.False(t, r.Fits(0))
	assert.True(t, r.Fits(1))
	assert.True(t, r.Fits(3))
	assert.False(t, r.Fits(4))
}
