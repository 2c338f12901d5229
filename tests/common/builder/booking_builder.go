//go:build unit || e2e

package builder

import (
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	reqdto "staybook/internal/handler/dto/request"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	PropertyID   uuid.UUID
	RoomID       uuid.UUID
	CheckIn      string
	CheckOut     string
	Guests       int
	TotalPrice   int64
	Status       booking.Status
	Note         string
	PaymentProof string
	CreatedAt    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		PropertyID: uuid.New(),
		RoomID:     uuid.New(),
		CheckIn:    "2025-12-01",
		CheckOut:   "2025-12-04",
		Guests:     2,
		TotalPrice: 300000,
		Status:     booking.StatusPendingPayment,
		Note:       "Late arrival",
		CreatedAt:  time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut string) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithRoom(propertyID, roomID uuid.UUID) *BookingBuilder {
	b.PropertyID = propertyID
	b.RoomID = roomID
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) Stay() calendar.Range {
	return calendar.Range{Start: parseOrZero(b.CheckIn), End: parseOrZero(b.CheckOut)}
}

// BuildDomain runs the constructor validation.
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	note, err := booking.NewNote(b.Note)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.UserID, b.PropertyID, b.RoomID, b.Stay(), b.Guests, b.TotalPrice, note, b.CreatedAt)
}

// Build reconstructs a booking in any status.
func (b *BookingBuilder) Build() *booking.Booking {
	note, _ := booking.NewNote(b.Note)
	var proof booking.PaymentProof
	if b.PaymentProof != "" {
		proof, _ = booking.NewPaymentProof(b.PaymentProof)
	}
	return booking.ReconstructBooking(b.ID, b.UserID, b.PropertyID, b.RoomID, b.Stay(), b.Guests,
		b.TotalPrice, b.Status, note, proof, b.CreatedAt, b.CreatedAt)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return queries.NewBookingView(b.Build())
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	req := reqdto.CreateBookingRequest{
		PropertyID: b.PropertyID,
		RoomID:     b.RoomID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Guests:     b.Guests,
	}
	if b.Note != "" {
		note := b.Note
		req.Notes = &note
	}
	return req
}
