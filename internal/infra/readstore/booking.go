package readstore

import (
	"context"
	"log/slog"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/infra"
	"staybook/internal/infra/converter"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingByIDSQL = `SELECT ` + converter.BookingColumns + ` FROM bookings b WHERE b.id = $1`

const bookingsByUserFirstPageSQL = `
SELECT ` + converter.BookingColumns + `
FROM bookings b
WHERE b.user_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2`

const bookingsByUserKeysetSQL = `
SELECT ` + converter.BookingColumns + `
FROM bookings b
WHERE b.user_id = $1 AND (b.created_at, b.id) < ($2, $3)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4`

// Mirrors the bookings_no_overlap constraint: same room, shared night, not cancelled.
const bookingsOverlappingSQL = `
SELECT ` + converter.BookingColumns + `
FROM bookings b
WHERE b.room_id = $1
  AND b.status <> 'CANCELLED'
  AND b.stay && daterange($2, $3, '[)')
ORDER BY b.check_in`

const finishedStaysSQL = `
SELECT ` + converter.BookingColumns + `
FROM bookings b
JOIN properties p ON p.id = b.property_id
WHERE b.status = 'CONFIRMED'
  AND b.check_out <= ($1::timestamptz AT TIME ZONE p.timezone)::date
ORDER BY b.check_out, b.id
LIMIT $2`

type BookingReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingReadStore(dbtx db.DBTX, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{db: dbtx, logger: logger}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := row.ToView()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to map booking view", err)
	}
	return v, nil
}

func (r *BookingReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := row.ToDomain()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to map booking", err)
	}
	return b, nil
}

func (r *BookingReadStore) findRow(ctx context.Context, id uuid.UUID) (converter.BookingRow, error) {
	row, err := converter.ScanBooking(r.db.QueryRow(ctx, bookingByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return row, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return row, infra.WrapPgErr(r.logger, "failed to get booking by id", err)
	}
	return row, nil
}

func (r *BookingReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.queryRows(ctx, "failed to get bookings first page by user", bookingsByUserFirstPageSQL, userID, limit)
	if err != nil {
		return nil, err
	}
	return toListItems(rows), nil
}

func (r *BookingReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.queryRows(ctx, "failed to get bookings keyset by user", bookingsByUserKeysetSQL,
		userID, pgconv.TimeToPgtype(lastCreatedAt), lastID, limit)
	if err != nil {
		return nil, err
	}
	return toListItems(rows), nil
}

func (r *BookingReadStore) BookingsOverlapping(ctx context.Context, roomID uuid.UUID, window calendar.Range) ([]*booking.Booking, error) {
	rows, err := r.queryRows(ctx, "failed to get overlapping bookings", bookingsOverlappingSQL,
		roomID, pgconv.DateToPgtype(window.Start), pgconv.DateToPgtype(window.End))
	if err != nil {
		return nil, err
	}
	return r.toDomain(rows)
}

func (r *BookingReadStore) FinishedStays(ctx context.Context, now time.Time, limit int) ([]*booking.Booking, error) {
	rows, err := r.queryRows(ctx, "failed to get finished stays", finishedStaysSQL, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, err
	}
	return r.toDomain(rows)
}

func (r *BookingReadStore) queryRows(ctx context.Context, msg, sql string, args ...any) ([]converter.BookingRow, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, msg, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (converter.BookingRow, error) {
		return converter.ScanBooking(row)
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, msg, err)
	}
	return out, nil
}

func (r *BookingReadStore) toDomain(rows []converter.BookingRow) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := row.ToDomain()
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to map booking", err)
		}
		out = append(out, b)
	}
	return out, nil
}

func toListItems(rows []converter.BookingRow) []*queries.BookingListItem {
	items := make([]*queries.BookingListItem, len(rows))
	for i, row := range rows {
		items[i] = row.ToListItem()
	}
	return items
}
