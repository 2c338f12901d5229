package queries

import (
	"context"
	"fmt"
	"log/slog"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/room"
	"staybook/internal/infra"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// PricingReadStore is the subset of reads the pricing engine needs.
type PricingReadStore interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	ActiveRules(ctx context.Context, propertyID uuid.UUID, window calendar.Range) ([]*pricing.PriceRule, error)
	BookingsOverlapping(ctx context.Context, roomID uuid.UUID, window calendar.Range) ([]*booking.Booking, error)
}

// CalendarCache stores computed month calendars. Implementations must treat
// a property invalidation as dropping every room-month of that property.
// Get reports the cache version it observed; a calendar computed after a
// miss is written back with that version, so an invalidation landing
// between the store read and Set cannot resurrect a stale month.
type CalendarCache interface {
	Get(ctx context.Context, propertyID, roomID uuid.UUID, month calendar.Month) ([]CalendarDayView, int64, bool, error)
	Set(ctx context.Context, version int64, propertyID, roomID uuid.UUID, month calendar.Month, days []CalendarDayView) error
}

type PricingQueries interface {
	QuotePrice(ctx context.Context, roomID uuid.UUID, checkIn, checkOut string) (*PriceQuote, error)
	CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut string) (*AvailabilityView, error)
	MonthCalendar(ctx context.Context, propertyID, roomID uuid.UUID, month string) ([]CalendarDayView, error)
}

type pricingQueriesImpl struct {
	store     PricingReadStore
	pricer    pricing.Calculator
	cache     CalendarCache
	maxNights int
	group     singleflight.Group
}

func NewPricingQueries(store PricingReadStore, pricer pricing.Calculator, cache CalendarCache, maxNights int) PricingQueries {
	if maxNights <= 0 {
		maxNights = booking.DefaultMaxNights
	}
	return &pricingQueriesImpl{
		store:     store,
		pricer:    pricer,
		cache:     cache,
		maxNights: maxNights,
	}
}

func (q *pricingQueriesImpl) QuotePrice(ctx context.Context, roomID uuid.UUID, checkIn, checkOut string) (*PriceQuote, error) {
	r, stay, err := q.roomAndStay(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	rules, err := q.store.ActiveRules(ctx, r.PropertyID(), stay)
	if err != nil {
		return nil, err
	}

	total, err := q.pricer.TotalPrice(r.BasePrice(), rules, stay)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}

	return &PriceQuote{
		RoomID:     roomID,
		CheckIn:    stay.Start.String(),
		CheckOut:   stay.End.String(),
		Nights:     stay.Nights(),
		TotalPrice: total,
	}, nil
}

func (q *pricingQueriesImpl) CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut string) (*AvailabilityView, error) {
	_, stay, err := q.roomAndStay(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	existing, err := q.store.BookingsOverlapping(ctx, roomID, stay)
	if err != nil {
		return nil, err
	}

	return &AvailabilityView{
		RoomID:      roomID,
		CheckIn:     stay.Start.String(),
		CheckOut:    stay.End.String(),
		IsAvailable: booking.IsAvailable(existing, roomID, stay),
	}, nil
}

func (q *pricingQueriesImpl) MonthCalendar(ctx context.Context, propertyID, roomID uuid.UUID, monthStr string) ([]CalendarDayView, error) {
	month, err := calendar.ParseMonth(monthStr)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}

	var version int64
	cacheable := false
	if q.cache != nil {
		days, v, ok, cerr := q.cache.Get(ctx, propertyID, roomID, month)
		switch {
		case cerr != nil:
			slog.Warn("calendar cache read failed", "property_id", propertyID, "room_id", roomID, "error", cerr)
		case ok:
			return days, nil
		default:
			version, cacheable = v, true
		}
	}

	// Callers that saw a newer version never join a computation started
	// before the invalidation.
	key := fmt.Sprintf("%s/%s/%s/v%d", propertyID, roomID, month, version)
	v, err, _ := q.group.Do(key, func() (any, error) {
		days, err := q.computeMonthCalendar(ctx, propertyID, roomID, month)
		if err != nil {
			return nil, err
		}
		if cacheable {
			if cerr := q.cache.Set(ctx, version, propertyID, roomID, month, days); cerr != nil {
				slog.Warn("calendar cache write failed", "property_id", propertyID, "room_id", roomID, "error", cerr)
			}
		}
		return days, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]CalendarDayView), nil
}

func (q *pricingQueriesImpl) computeMonthCalendar(ctx context.Context, propertyID, roomID uuid.UUID, month calendar.Month) ([]CalendarDayView, error) {
	r, err := q.loadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.PropertyID() != propertyID {
		return nil, shared.ErrRoomNotFound
	}

	window := month.Range()
	rules, err := q.store.ActiveRules(ctx, propertyID, window)
	if err != nil {
		return nil, err
	}
	existing, err := q.store.BookingsOverlapping(ctx, roomID, window)
	if err != nil {
		return nil, err
	}

	quotes, err := q.pricer.MonthCalendar(r.BasePrice(), rules, booking.NewSchedule(roomID, existing), month)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}
	days := make([]CalendarDayView, len(quotes))
	for i, d := range quotes {
		days[i] = CalendarDayView{
			Date:        d.Date.String(),
			Price:       d.Price,
			IsAvailable: d.IsAvailable,
			IsHoliday:   d.IsHoliday,
			IsWeekend:   d.IsWeekend,
		}
	}
	return days, nil
}

func (q *pricingQueriesImpl) roomAndStay(ctx context.Context, roomID uuid.UUID, checkIn, checkOut string) (*room.Room, calendar.Range, error) {
	if err := shared.PrecheckStay(checkIn, checkOut); err != nil {
		return nil, calendar.Range{}, err
	}
	r, err := q.loadRoom(ctx, roomID)
	if err != nil {
		return nil, calendar.Range{}, err
	}
	stay, err := shared.ParseStay(r.Location(), checkIn, checkOut)
	if err != nil {
		return nil, calendar.Range{}, err
	}
	if stay.Nights() > q.maxNights {
		return nil, calendar.Range{}, errs.AsKind(booking.ErrStayTooLong, errs.ErrValidation)
	}
	return r, stay, nil
}

func (q *pricingQueriesImpl) loadRoom(ctx context.Context, roomID uuid.UUID) (*room.Room, error) {
	r, err := q.store.RoomByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, shared.ErrRoomNotFound
		}
		return nil, err
	}
	return r, nil
}
