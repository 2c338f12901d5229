package booking

import (
	"errors"

	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/room"
	"staybook/internal/pkg/clock"

	"github.com/google/uuid"
)

const DefaultMaxNights = 365

var (
	ErrStayTooLong       = errors.New("stay exceeds the maximum number of nights")
	ErrCheckInInPast     = errors.New("check-in date is in the past")
	ErrExceedsCapacity   = errors.New("guests exceed room capacity")
	ErrRoomNotInProperty = errors.New("room does not belong to property")
)

type Factory struct {
	Clock     clock.Clock
	Pricer    pricing.Calculator
	MaxNights int
}

func NewFactory(clock clock.Clock, pricer pricing.Calculator, maxNights int) *Factory {
	if maxNights <= 0 {
		maxNights = DefaultMaxNights
	}
	return &Factory{
		Clock:     clock,
		Pricer:    pricer,
		MaxNights: maxNights,
	}
}

// ValidateRequest holds the checks that need neither the store nor the room.
func (f *Factory) ValidateRequest(stay calendar.Range, guests int) error {
	if _, err := calendar.NewRange(stay.Start, stay.End); err != nil {
		return err
	}
	if guests <= 0 {
		return ErrInvalidGuests
	}
	if stay.Nights() > f.MaxNights {
		return ErrStayTooLong
	}
	return nil
}

// CreateBooking prices the stay for r and returns a PENDING_PAYMENT booking.
// Availability is the caller's concern since it needs the write transaction.
func (f *Factory) CreateBooking(
	r *room.Room,
	propertyID uuid.UUID,
	rules []*pricing.PriceRule,
	userID uuid.UUID,
	stay calendar.Range,
	guests int,
	note Note,
) (*Booking, error) {
	if err := f.ValidateRequest(stay, guests); err != nil {
		return nil, err
	}
	if r.PropertyID() != propertyID {
		return nil, ErrRoomNotInProperty
	}
	if !r.Fits(guests) {
		return nil, ErrExceedsCapacity
	}

	now := f.Clock.Now()
	if stay.Start.Before(calendar.DateOf(now, r.Location())) {
		return nil, ErrCheckInInPast
	}

	total, err := f.Pricer.TotalPrice(r.BasePrice(), rules, stay)
	if err != nil {
		return nil, err
	}
	return NewBooking(userID, propertyID, r.ID(), stay, guests, total, note, now)
}
