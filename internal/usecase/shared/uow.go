package shared

import (
	"context"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/room"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	PriceRules() PriceRuleRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	Reads() CommandReads
}

// CommandReads loads aggregates for the write side. Inside a Tx the reads
// see the transaction's own writes.
type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// BookingsOverlapping returns the room's bookings that still hold the room
	// and share a night with window.
	BookingsOverlapping(ctx context.Context, roomID uuid.UUID, window calendar.Range) ([]*booking.Booking, error)
	// ActiveRules returns the property's active rules touching any date of window.
	ActiveRules(ctx context.Context, propertyID uuid.UUID, window calendar.Range) ([]*pricing.PriceRule, error)
	PriceRuleByID(ctx context.Context, id uuid.UUID) (*pricing.PriceRule, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	// FinishedStays lists CONFIRMED bookings whose check-out is on or before
	// the property-local date at now.
	FinishedStays(ctx context.Context, now time.Time, limit int) ([]*booking.Booking, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// UpdateStatus persists b only if the stored status still equals from.
	UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error
}

type PriceRuleRepository interface {
	Create(ctx context.Context, r *pricing.PriceRule) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert reports false when the key already exists for the user and
	// has not expired as of now.
	TryInsert(ctx context.Context, rec IdempotencyRecord, now time.Time) (bool, error)
	Complete(ctx context.Context, key, userID, bookingID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, evt OutboxEvent) error
	// ClaimPending locks up to limit due events for the current transaction.
	ClaimPending(ctx context.Context, now time.Time, limit int) ([]OutboxEvent, error)
	MarkPublished(ctx context.Context, id uuid.UUID, now time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt time.Time, dead bool) error
}
