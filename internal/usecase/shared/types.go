package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Status      string
	RequestHash string
	BookingID   *uuid.UUID
	ExpiresAt   time.Time
}

const (
	OutboxStatusPending   = "pending"
	OutboxStatusPublished = "published"
	OutboxStatusFailed    = "failed"
)

type OutboxEvent struct {
	ID          uuid.UUID
	Topic       string
	EventType   string
	AggregateID uuid.UUID
	Payload     []byte
	Status      string
	Attempts    int
	LastError   *string
	RunAt       time.Time
	CreatedAt   time.Time
}

// CalendarInvalidator drops cached month calendars after writes that change
// prices or availability of a property.
type CalendarInvalidator interface {
	InvalidateProperty(ctx context.Context, propertyID uuid.UUID) error
}
