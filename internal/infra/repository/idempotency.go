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
)

const tryInsertIdempotencyKeySQL = `
INSERT INTO idempotency_keys (key, user_id, status, request_hash, expires_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (key, user_id) DO UPDATE
SET status = EXCLUDED.status, request_hash = EXCLUDED.request_hash, booking_id = NULL, expires_at = EXCLUDED.expires_at
WHERE idempotency_keys.expires_at < $6`

const completeIdempotencyKeySQL = `
UPDATE idempotency_keys SET status = $3, booking_id = $4
WHERE key = $1 AND user_id = $2`

const deleteExpiredIdempotencyKeysSQL = `DELETE FROM idempotency_keys WHERE expires_at < $1`

type IdempotencyRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewIdempotencyRepository(dbtx db.DBTX, logger *slog.Logger) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx, logger: logger}
}

// TryInsert claims the key for this request. A key expired as of now is
// reclaimed as if it had never been used.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, rec shared.IdempotencyRecord, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencyKeySQL,
		rec.Key, rec.UserID, shared.IdempotencyStatusProcessing, rec.RequestHash,
		pgconv.TimeToPgtype(rec.ExpiresAt), pgconv.TimeToPgtype(now))
	if err != nil {
		return false, infra.WrapPgErr(r.logger, "failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key, userID, bookingID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, completeIdempotencyKeySQL,
		key, userID, shared.IdempotencyStatusCompleted, pgconv.UUIDToPgtype(bookingID))
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to update idempotency key status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "idempotency key not found", nil)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredIdempotencyKeysSQL, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapPgErr(r.logger, "failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
