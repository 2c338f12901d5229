package booking

import (
	"errors"
	"fmt"
	"time"

	"staybook/internal/domain/calendar"

	"github.com/google/uuid"
)

var (
	ErrInvalidGuests     = errors.New("guests must be greater than zero")
	ErrNegativePrice     = errors.New("total price cannot be negative")
	ErrInvalidTransition = errors.New("booking status does not allow this transition")
	ErrNotOwner          = errors.New("booking belongs to another user")
)

type Booking struct {
	id           uuid.UUID
	userID       uuid.UUID
	propertyID   uuid.UUID
	roomID       uuid.UUID
	stay         calendar.Range
	guests       int
	totalPrice   int64
	status       Status
	note         Note
	paymentProof PaymentProof
	createdAt    time.Time
	updatedAt    time.Time
}

func NewBooking(
	userID, propertyID, roomID uuid.UUID,
	stay calendar.Range,
	guests int,
	totalPrice int64,
	note Note,
	now time.Time,
) (*Booking, error) {
	if guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if totalPrice < 0 {
		return nil, ErrNegativePrice
	}
	if _, err := calendar.NewRange(stay.Start, stay.End); err != nil {
		return nil, err
	}

	return &Booking{
		id:         uuid.New(),
		userID:     userID,
		propertyID: propertyID,
		roomID:     roomID,
		stay:       stay,
		guests:     guests,
		totalPrice: totalPrice,
		status:     StatusPendingPayment,
		note:       note,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructBooking(
	id, userID, propertyID, roomID uuid.UUID,
	stay calendar.Range,
	guests int,
	totalPrice int64,
	status Status,
	note Note,
	paymentProof PaymentProof,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		userID:       userID,
		propertyID:   propertyID,
		roomID:       roomID,
		stay:         stay,
		guests:       guests,
		totalPrice:   totalPrice,
		status:       status,
		note:         note,
		paymentProof: paymentProof,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (b *Booking) transition(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.status, next)
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// AttachPaymentProof is done by the guest who made the booking.
func (b *Booking) AttachPaymentProof(actorID uuid.UUID, proof PaymentProof, now time.Time) error {
	if actorID != b.userID {
		return ErrNotOwner
	}
	if err := b.transition(StatusPaymentConfirmed, now); err != nil {
		return err
	}
	b.paymentProof = proof
	return nil
}

func (b *Booking) Confirm(now time.Time) error {
	return b.transition(StatusConfirmed, now)
}

func (b *Booking) Complete(now time.Time) error {
	return b.transition(StatusCompleted, now)
}

// Cancel is allowed to the owning guest and to tenants.
func (b *Booking) Cancel(actorID uuid.UUID, role Role, now time.Time) error {
	if role != RoleTenant && actorID != b.userID {
		return ErrNotOwner
	}
	return b.transition(StatusCancelled, now)
}

// StayFinished reports whether today is on or after check-out.
func (b *Booking) StayFinished(today calendar.Date) bool {
	return !today.Before(b.stay.End)
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) UserID() uuid.UUID          { return b.userID }
func (b *Booking) PropertyID() uuid.UUID      { return b.propertyID }
func (b *Booking) RoomID() uuid.UUID          { return b.roomID }
func (b *Booking) Stay() calendar.Range       { return b.stay }
func (b *Booking) CheckIn() calendar.Date     { return b.stay.Start }
func (b *Booking) CheckOut() calendar.Date    { return b.stay.End }
func (b *Booking) Guests() int                { return b.guests }
func (b *Booking) TotalPrice() int64          { return b.totalPrice }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) Note() Note                 { return b.note }
func (b *Booking) PaymentProof() PaymentProof { return b.paymentProof }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
