package readstore

import (
	"context"
	"log/slog"

	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const idempotencyKeySQL = `
SELECT key, user_id, status, request_hash, booking_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2`

type IdempotencyReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewIdempotencyReadStore(dbtx db.DBTX, logger *slog.Logger) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx, logger: logger}
}

func (r *IdempotencyReadStore) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		rec       shared.IdempotencyRecord
		bookingID pgtype.UUID
		expiresAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, idempotencyKeySQL, key, userID).
		Scan(&rec.Key, &rec.UserID, &rec.Status, &rec.RequestHash, &bookingID, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "idempotency key not found", err)
		}
		return nil, infra.WrapPgErr(r.logger, "failed to get idempotency key", err)
	}
	rec.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
	rec.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	return &rec, nil
}
