package memory

import (
	"context"
	"slices"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"
	"staybook/internal/infra"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

// The repositories below run with the store lock already held by Within.

type bookingRepo Store

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	s := (*Store)(r)
	if _, ok := s.state.bookings[b.ID()]; ok {
		return s.conflict("booking already exists")
	}
	for _, other := range s.state.bookings {
		if other.RoomID() == b.RoomID() && other.Status().HoldsRoom() && other.Stay().Overlaps(b.Stay()) {
			return s.conflict("booking overlaps an existing booking of the room")
		}
	}
	s.state.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, b *booking.Booking, from booking.Status) error {
	s := (*Store)(r)
	current, ok := s.state.bookings[b.ID()]
	if !ok {
		return s.notFound("booking not found")
	}
	if current.Status() != from {
		return s.conflict("booking status changed concurrently: expected " + from.String() + ", found " + current.Status().String())
	}
	s.state.bookings[b.ID()] = cloneBooking(b)
	return nil
}

type priceRuleRepo Store

func (r *priceRuleRepo) Create(_ context.Context, rule *pricing.PriceRule) error {
	s := (*Store)(r)
	if _, ok := s.state.properties[rule.PropertyID()]; !ok {
		return infra.WrapRepoErr(s.logger, infra.KindForeignKeyViolated, "price rule references an unknown property", nil)
	}
	if _, ok := s.state.rules[rule.ID()]; ok {
		return s.conflict("price rule already exists")
	}
	if rule.IsActive() {
		for _, other := range s.state.rules {
			if other.IsActive() && other.Overlaps(rule) {
				return s.conflict("price rule overlaps an active rule")
			}
		}
	}
	s.state.rules[rule.ID()] = cloneRule(rule)
	return nil
}

func (r *priceRuleRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	s := (*Store)(r)
	rule, ok := s.state.rules[id]
	if !ok || !rule.IsActive() {
		return nil
	}
	c := cloneRule(rule)
	c.Deactivate()
	s.state.rules[id] = c
	return nil
}

type idempotencyRepo Store

func (r *idempotencyRepo) TryInsert(_ context.Context, rec shared.IdempotencyRecord, now time.Time) (bool, error) {
	s := (*Store)(r)
	k := idempotencyKey{key: rec.Key, userID: rec.UserID}
	if existing, ok := s.state.idempotency[k]; ok && !now.After(existing.ExpiresAt) {
		return false, nil
	}
	rec.Status = shared.IdempotencyStatusProcessing
	rec.BookingID = nil
	s.state.idempotency[k] = rec
	return true, nil
}

func (r *idempotencyRepo) Complete(_ context.Context, key, userID, bookingID uuid.UUID) error {
	s := (*Store)(r)
	k := idempotencyKey{key: key, userID: userID}
	rec, ok := s.state.idempotency[k]
	if !ok {
		return s.notFound("idempotency key not found")
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.BookingID = &bookingID
	s.state.idempotency[k] = rec
	return nil
}

func (r *idempotencyRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s := (*Store)(r)
	var n int64
	for k, rec := range s.state.idempotency {
		if rec.ExpiresAt.Before(now) {
			delete(s.state.idempotency, k)
			n++
		}
	}
	return n, nil
}

type outboxRepo Store

func (r *outboxRepo) Enqueue(_ context.Context, evt shared.OutboxEvent) error {
	s := (*Store)(r)
	evt.Status = shared.OutboxStatusPending
	evt.Attempts = 0
	s.state.outbox[evt.ID] = evt
	return nil
}

func (r *outboxRepo) ClaimPending(_ context.Context, now time.Time, limit int) ([]shared.OutboxEvent, error) {
	s := (*Store)(r)
	var due []shared.OutboxEvent
	for _, evt := range s.state.outbox {
		if evt.Status == shared.OutboxStatusPending && !evt.RunAt.After(now) {
			due = append(due, evt)
		}
	}
	slices.SortFunc(due, func(a, b shared.OutboxEvent) int {
		if c := a.RunAt.Compare(b.RunAt); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *outboxRepo) MarkPublished(_ context.Context, id uuid.UUID, _ time.Time) error {
	s := (*Store)(r)
	evt, ok := s.state.outbox[id]
	if !ok {
		return s.notFound("outbox event not found")
	}
	evt.Status = shared.OutboxStatusPublished
	s.state.outbox[id] = evt
	return nil
}

func (r *outboxRepo) MarkFailed(_ context.Context, id uuid.UUID, lastError string, retryAt time.Time, dead bool) error {
	s := (*Store)(r)
	evt, ok := s.state.outbox[id]
	if !ok {
		return s.notFound("outbox event not found")
	}
	evt.Attempts++
	evt.LastError = &lastError
	evt.RunAt = retryAt
	if dead {
		evt.Status = shared.OutboxStatusFailed
	}
	s.state.outbox[id] = evt
	return nil
}
