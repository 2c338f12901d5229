package repository

import (
	"context"
	"log/slog"
	"time"

	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const enqueueOutboxEventSQL = `
INSERT INTO outbox_events (id, topic, event_type, aggregate_id, payload, status, attempts, run_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $8)`

// SKIP LOCKED lets several relays drain the table without blocking each other.
const claimPendingOutboxEventsSQL = `
SELECT id, topic, event_type, aggregate_id, payload, status, attempts, last_error, run_at, created_at
FROM outbox_events
WHERE status = $1 AND run_at <= $2
ORDER BY run_at, created_at
LIMIT $3
FOR UPDATE SKIP LOCKED`

const markOutboxPublishedSQL = `
UPDATE outbox_events SET status = $2, updated_at = $3 WHERE id = $1`

const markOutboxFailedSQL = `
UPDATE outbox_events
SET status = $2, attempts = attempts + 1, last_error = $3, run_at = $4, updated_at = now()
WHERE id = $1`

type OutboxRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewOutboxRepository(dbtx db.DBTX, logger *slog.Logger) *OutboxRepository {
	return &OutboxRepository{db: dbtx, logger: logger}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, evt shared.OutboxEvent) error {
	_, err := r.db.Exec(ctx, enqueueOutboxEventSQL,
		evt.ID, evt.Topic, evt.EventType, evt.AggregateID, evt.Payload,
		shared.OutboxStatusPending, pgconv.TimeToPgtype(evt.RunAt), pgconv.TimeToPgtype(evt.CreatedAt))
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to enqueue outbox event", err)
	}
	return nil
}

func (r *OutboxRepository) ClaimPending(ctx context.Context, now time.Time, limit int) ([]shared.OutboxEvent, error) {
	rows, err := r.db.Query(ctx, claimPendingOutboxEventsSQL, shared.OutboxStatusPending, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to claim outbox events", err)
	}
	defer rows.Close()

	var events []shared.OutboxEvent
	for rows.Next() {
		var (
			evt       shared.OutboxEvent
			attempts  int32
			lastError pgtype.Text
			runAt     pgtype.Timestamptz
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&evt.ID, &evt.Topic, &evt.EventType, &evt.AggregateID, &evt.Payload,
			&evt.Status, &attempts, &lastError, &runAt, &createdAt); err != nil {
			return nil, infra.WrapPgErr(r.logger, "failed to scan outbox event", err)
		}
		evt.Attempts = int(attempts)
		evt.LastError = pgconv.StringPtrFromPgtype(lastError)
		evt.RunAt = pgconv.TimeFromPgtype(runAt)
		evt.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to iterate outbox events", err)
	}
	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, now time.Time) error {
	if _, err := r.db.Exec(ctx, markOutboxPublishedSQL, id, shared.OutboxStatusPublished, pgconv.TimeToPgtype(now)); err != nil {
		return infra.WrapPgErr(r.logger, "failed to mark outbox event published", err)
	}
	return nil
}

// MarkFailed either reschedules the event at retryAt or parks it as failed
// when dead is set.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt time.Time, dead bool) error {
	status := shared.OutboxStatusPending
	if dead {
		status = shared.OutboxStatusFailed
	}
	if _, err := r.db.Exec(ctx, markOutboxFailedSQL, id, status, lastError, pgconv.TimeToPgtype(retryAt)); err != nil {
		return infra.WrapPgErr(r.logger, "failed to mark outbox event failed", err)
	}
	return nil
}
