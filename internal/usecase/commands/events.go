package commands

import (
	"encoding/json"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	EventBookingCreated          = "booking.created"
	EventBookingPaymentConfirmed = "booking.payment_confirmed"
	EventBookingConfirmed        = "booking.confirmed"
	EventBookingCompleted        = "booking.completed"
	EventBookingCancelled        = "booking.cancelled"
)

var eventByStatus = map[booking.Status]string{
	booking.StatusPendingPayment:   EventBookingCreated,
	booking.StatusPaymentConfirmed: EventBookingPaymentConfirmed,
	booking.StatusConfirmed:        EventBookingConfirmed,
	booking.StatusCompleted:        EventBookingCompleted,
	booking.StatusCancelled:        EventBookingCancelled,
}

// BookingEvent is the payload published for every booking state change.
type BookingEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	PropertyID uuid.UUID `json:"property_id"`
	RoomID     uuid.UUID `json:"room_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	TotalPrice int64     `json:"total_price"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newBookingOutboxEvent(topic string, b *booking.Booking, now time.Time) (shared.OutboxEvent, error) {
	evt := BookingEvent{
		EventID:    uuid.New(),
		EventType:  eventByStatus[b.Status()],
		BookingID:  b.ID(),
		UserID:     b.UserID(),
		PropertyID: b.PropertyID(),
		RoomID:     b.RoomID(),
		CheckIn:    b.CheckIn().String(),
		CheckOut:   b.CheckOut().String(),
		TotalPrice: b.TotalPrice(),
		Status:     b.Status().String(),
		OccurredAt: now,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return shared.OutboxEvent{}, err
	}
	return shared.OutboxEvent{
		ID:          evt.EventID,
		Topic:       topic,
		EventType:   evt.EventType,
		AggregateID: b.ID(),
		Payload:     payload,
		Status:      shared.OutboxStatusPending,
		RunAt:       now,
		CreatedAt:   now,
	}, nil
}
