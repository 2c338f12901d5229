package booking

import (
	"staybook/internal/domain/calendar"

	"github.com/google/uuid"
)

// IsAvailable reports whether no booking of roomID that still holds the room
// shares a night with stay.
func IsAvailable(bookings []*Booking, roomID uuid.UUID, stay calendar.Range) bool {
	for _, b := range bookings {
		if b.roomID == roomID && b.status.HoldsRoom() && b.stay.Overlaps(stay) {
			return false
		}
	}
	return true
}

// Schedule is the set of bookings of one room, used to answer availability
// for many ranges without going back to the store.
type Schedule struct {
	roomID   uuid.UUID
	bookings []*Booking
}

func NewSchedule(roomID uuid.UUID, bookings []*Booking) *Schedule {
	return &Schedule{roomID: roomID, bookings: bookings}
}

func (s *Schedule) IsAvailable(r calendar.Range) bool {
	return IsAvailable(s.bookings, s.roomID, r)
}
