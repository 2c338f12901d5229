package repository

import (
	"context"
	"log/slog"

	"staybook/internal/domain/booking"
	"staybook/internal/infra"
	"staybook/internal/infra/converter"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const insertBookingSQL = `
INSERT INTO bookings (
	id, user_id, property_id, room_id, check_in, check_out, guests,
	total_price, status, notes, payment_proof_ref, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// The status predicate turns a concurrent transition into zero affected rows.
const updateBookingStatusSQL = `
UPDATE bookings
SET status = $3, payment_proof_ref = $4, updated_at = $5
WHERE id = $1 AND status = $2`

const bookingStatusSQL = `SELECT status FROM bookings WHERE id = $1`

type BookingRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingRepository(dbtx db.DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{db: dbtx, logger: logger}
}

// Create relies on the bookings_no_overlap exclusion constraint; a competing
// booking for the same nights surfaces as KindConflict.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if _, err := r.db.Exec(ctx, insertBookingSQL, converter.BookingToInsertArgs(b)...); err != nil {
		return infra.WrapPgErr(r.logger, "failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error {
	tag, err := r.db.Exec(ctx, updateBookingStatusSQL,
		b.ID(),
		from.String(),
		b.Status().String(),
		pgconv.OptionalStringToPgtype(b.PaymentProof().String()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to update booking status", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	return r.missedUpdate(ctx, b.ID(), from)
}

func (r *BookingRepository) missedUpdate(ctx context.Context, id uuid.UUID, from booking.Status) error {
	var current string
	if err := r.db.QueryRow(ctx, bookingStatusSQL, id).Scan(&current); err != nil {
		return infra.WrapPgErr(r.logger, "failed to update booking status", err)
	}
	return infra.WrapRepoErr(r.logger, infra.KindConflict,
		"booking status changed concurrently: expected "+from.String()+", found "+current, nil)
}
