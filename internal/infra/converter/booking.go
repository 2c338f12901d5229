package converter

import (
	"fmt"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns matches the scan order of BookingRow.
const BookingColumns = `b.id, b.user_id, b.property_id, b.room_id, b.check_in, b.check_out, b.guests,
	b.total_price, b.status, b.notes, b.payment_proof_ref, b.created_at, b.updated_at`

type BookingRow struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	PropertyID      uuid.UUID
	RoomID          uuid.UUID
	CheckIn         pgtype.Date
	CheckOut        pgtype.Date
	Guests          int32
	TotalPrice      int64
	Status          string
	Notes           pgtype.Text
	PaymentProofRef pgtype.Text
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func ScanBooking(row pgx.Row) (BookingRow, error) {
	var r BookingRow
	err := row.Scan(&r.ID, &r.UserID, &r.PropertyID, &r.RoomID, &r.CheckIn, &r.CheckOut, &r.Guests,
		&r.TotalPrice, &r.Status, &r.Notes, &r.PaymentProofRef, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r BookingRow) stay() (calendar.Range, error) {
	in, err := pgconv.DateFromPgtype(r.CheckIn)
	if err != nil {
		return calendar.Range{}, err
	}
	out, err := pgconv.DateFromPgtype(r.CheckOut)
	if err != nil {
		return calendar.Range{}, err
	}
	return calendar.Range{Start: in, End: out}, nil
}

func (r BookingRow) ToDomain() (*booking.Booking, error) {
	stay, err := r.stay()
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", r.ID, err)
	}
	status := booking.Status(r.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("booking %s: unknown status %q", r.ID, r.Status)
	}
	note, err := booking.NewNote(pgconv.StringFromPgtype(r.Notes))
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", r.ID, err)
	}
	var proof booking.PaymentProof
	if r.PaymentProofRef.Valid {
		if proof, err = booking.NewPaymentProof(r.PaymentProofRef.String); err != nil {
			return nil, fmt.Errorf("booking %s: %w", r.ID, err)
		}
	}

	return booking.ReconstructBooking(
		r.ID, r.UserID, r.PropertyID, r.RoomID,
		stay,
		int(r.Guests),
		r.TotalPrice,
		status,
		note,
		proof,
		pgconv.TimeFromPgtype(r.CreatedAt),
		pgconv.TimeFromPgtype(r.UpdatedAt),
	), nil
}

func (r BookingRow) ToView() (*queries.BookingView, error) {
	b, err := r.ToDomain()
	if err != nil {
		return nil, err
	}
	return queries.NewBookingView(b), nil
}

func (r BookingRow) ToListItem() *queries.BookingListItem {
	item := &queries.BookingListItem{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		RoomID:     r.RoomID,
		TotalPrice: r.TotalPrice,
		Status:     r.Status,
		CreatedAt:  pgconv.TimeFromPgtype(r.CreatedAt),
	}
	if stay, err := r.stay(); err == nil {
		item.CheckIn = stay.Start.String()
		item.CheckOut = stay.End.String()
	}
	return item
}

// BookingToInsertArgs returns the values for the INSERT column order used by
// the booking repository.
func BookingToInsertArgs(b *booking.Booking) []any {
	return []any{
		b.ID(),
		b.UserID(),
		b.PropertyID(),
		b.RoomID(),
		pgconv.DateToPgtype(b.CheckIn()),
		pgconv.DateToPgtype(b.CheckOut()),
		int32(b.Guests()),
		b.TotalPrice(),
		b.Status().String(),
		pgconv.OptionalStringToPgtype(b.Note().String()),
		pgconv.OptionalStringToPgtype(b.PaymentProof().String()),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}
