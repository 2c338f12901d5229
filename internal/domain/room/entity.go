package room

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveBasePrice = errors.New("base price must be positive")
	ErrNonPositiveCapacity  = errors.New("capacity must be positive")
	ErrUnknownTimeZone      = errors.New("unknown property time zone")
)

// Room is read-only for pricing purposes during a request.
type Room struct {
	id         uuid.UUID
	propertyID uuid.UUID
	basePrice  int64
	capacity   int
	location   *time.Location
}

func NewRoom(id, propertyID uuid.UUID, basePrice int64, capacity int, timeZone string) (*Room, error) {
	if basePrice <= 0 {
		return nil, ErrNonPositiveBasePrice
	}
	if capacity <= 0 {
		return nil, ErrNonPositiveCapacity
	}
	loc := time.UTC
	if timeZone != "" {
		l, err := time.LoadLocation(timeZone)
		if err != nil {
			return nil, errors.Join(ErrUnknownTimeZone, err)
		}
		loc = l
	}

	return &Room{
		id:         id,
		propertyID: propertyID,
		basePrice:  basePrice,
		capacity:   capacity,
		location:   loc,
	}, nil
}

func (r *Room) Fits(guests int) bool {
	return guests > 0 && guests <= r.capacity
}

func (r *Room) ID() uuid.UUID            { return r.id }
func (r *Room) PropertyID() uuid.UUID    { return r.propertyID }
func (r *Room) BasePrice() int64         { return r.basePrice }
func (r *Room) Capacity() int            { return r.capacity }
func (r *Room) Location() *time.Location { return r.location }
