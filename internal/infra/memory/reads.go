package memory

import (
	"bytes"
	"context"
	"slices"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/room"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

// reads assumes the caller holds the store lock.
type reads Store

func (r *reads) RoomByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	s := (*Store)(r)
	rm, ok := s.state.rooms[id]
	if !ok {
		return nil, s.notFound("room not found")
	}
	return rm, nil
}

func (r *reads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s := (*Store)(r)
	b, ok := s.state.bookings[id]
	if !ok {
		return nil, s.notFound("booking not found")
	}
	return cloneBooking(b), nil
}

func (r *reads) BookingsOverlapping(_ context.Context, roomID uuid.UUID, window calendar.Range) ([]*booking.Booking, error) {
	s := (*Store)(r)
	var out []*booking.Booking
	for _, b := range s.state.bookings {
		if b.RoomID() == roomID && b.Status().HoldsRoom() && b.Stay().Overlaps(window) {
			out = append(out, cloneBooking(b))
		}
	}
	slices.SortFunc(out, func(a, b *booking.Booking) int { return a.CheckIn().Compare(b.CheckIn()) })
	return out, nil
}

func (r *reads) ActiveRules(_ context.Context, propertyID uuid.UUID, window calendar.Range) ([]*pricing.PriceRule, error) {
	s := (*Store)(r)
	var out []*pricing.PriceRule
	for _, rule := range s.state.rules {
		if rule.PropertyID() != propertyID || !rule.IsActive() {
			continue
		}
		if rule.StartDate().Before(window.End) && !rule.EndDate().Before(window.Start) {
			out = append(out, cloneRule(rule))
		}
	}
	sortRules(out)
	return out, nil
}

func (r *reads) PriceRuleByID(_ context.Context, id uuid.UUID) (*pricing.PriceRule, error) {
	s := (*Store)(r)
	rule, ok := s.state.rules[id]
	if !ok {
		return nil, s.notFound("price rule not found")
	}
	return cloneRule(rule), nil
}

func (r *reads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	s := (*Store)(r)
	rec, ok := s.state.idempotency[idempotencyKey{key: key, userID: userID}]
	if !ok {
		return nil, s.notFound("idempotency key not found")
	}
	return &rec, nil
}

func (r *reads) FinishedStays(_ context.Context, now time.Time, limit int) ([]*booking.Booking, error) {
	s := (*Store)(r)
	var out []*booking.Booking
	for _, b := range s.state.bookings {
		if b.Status() != booking.StatusConfirmed {
			continue
		}
		loc := time.UTC
		if rm, ok := s.state.rooms[b.RoomID()]; ok {
			loc = rm.Location()
		}
		if b.StayFinished(calendar.DateOf(now, loc)) {
			out = append(out, cloneBooking(b))
		}
	}
	slices.SortFunc(out, func(a, b *booking.Booking) int {
		if c := a.CheckOut().Compare(b.CheckOut()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *reads) findByID(id uuid.UUID) (*queries.BookingView, error) {
	s := (*Store)(r)
	b, ok := s.state.bookings[id]
	if !ok {
		return nil, s.notFound("booking not found")
	}
	return queries.NewBookingView(b), nil
}

// userBookings returns the user's bookings newest first, the order the
// cursor pagination relies on.
func (r *reads) userBookings(userID uuid.UUID) []*booking.Booking {
	s := (*Store)(r)
	var out []*booking.Booking
	for _, b := range s.state.bookings {
		if b.UserID() == userID {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b *booking.Booking) int {
		if c := createdMicro(b).Compare(createdMicro(a)); c != 0 {
			return c
		}
		return compareIDs(b.ID(), a.ID())
	})
	return out
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

// Cursors carry microseconds, so comparisons use the same precision.
func createdMicro(b *booking.Booking) time.Time {
	return b.CreatedAt().Truncate(time.Microsecond)
}

func (r *reads) listItems(bookings []*booking.Booking, limit int32) []*queries.BookingListItem {
	if limit > 0 && len(bookings) > int(limit) {
		bookings = bookings[:limit]
	}
	items := make([]*queries.BookingListItem, len(bookings))
	for i, b := range bookings {
		items[i] = &queries.BookingListItem{
			ID:         b.ID(),
			PropertyID: b.PropertyID(),
			RoomID:     b.RoomID(),
			CheckIn:    b.CheckIn().String(),
			CheckOut:   b.CheckOut().String(),
			TotalPrice: b.TotalPrice(),
			Status:     b.Status().String(),
			CreatedAt:  b.CreatedAt(),
		}
	}
	return items
}

func (r *reads) listByProperty(propertyID uuid.UUID, includeInactive bool) []*queries.PriceRuleView {
	s := (*Store)(r)
	var rules []*pricing.PriceRule
	for _, rule := range s.state.rules {
		if rule.PropertyID() == propertyID && (includeInactive || rule.IsActive()) {
			rules = append(rules, rule)
		}
	}
	sortRules(rules)
	views := make([]*queries.PriceRuleView, len(rules))
	for i, rule := range rules {
		views[i] = queries.NewPriceRuleView(rule)
	}
	return views
}

func sortRules(rules []*pricing.PriceRule) {
	slices.SortFunc(rules, func(a, b *pricing.PriceRule) int {
		if c := a.StartDate().Compare(b.StartDate()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
}

// ReadStore serves reads outside a unit of work. It takes the store lock for
// each call and satisfies the query-side read store interfaces.
type ReadStore struct {
	store *Store
}

func (s *Store) Reads() *ReadStore {
	return &ReadStore{store: s}
}

func (l *ReadStore) inner() *reads { return (*reads)(l.store) }

func (l *ReadStore) RoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.inner().RoomByID(ctx, id)
}

func (l *ReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.inner().BookingByID(ctx, id)
}

func (l *ReadStore) BookingsOverlapping(ctx context.Context, roomID uuid.UUID, window calendar.Range) ([]*booking.Booking, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.inner().BookingsOverlapping(ctx, roomID, window)
}

func (l *ReadStore) ActiveRules(ctx context.Context, propertyID uuid.UUID, window calendar.Range) ([]*pricing.PriceRule, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.inner().ActiveRules(ctx, propertyID, window)
}

func (l *ReadStore) PriceRuleByID(ctx context.Context, id uuid.UUID) (*pricing.PriceRule, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.inner().PriceRuleByID(ctx, id)
}

func (l *ReadStore) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.inner().IdempotencyByKey(ctx, key, userID)
}

func (l *ReadStore) FinishedStays(ctx context.Context, now time.Time, limit int) ([]*booking.Booking, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.inner().FinishedStays(ctx, now, limit)
}

func (l *ReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.inner().findByID(id)
}

func (l *ReadStore) FindByUserFirstPage(_ context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	r := l.inner()
	return r.listItems(r.userBookings(userID), limit), nil
}

func (l *ReadStore) FindByUserKeyset(_ context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	r := l.inner()
	cursor := lastCreatedAt.Truncate(time.Microsecond)
	var page []*booking.Booking
	for _, b := range r.userBookings(userID) {
		c := createdMicro(b).Compare(cursor)
		if c < 0 || (c == 0 && compareIDs(b.ID(), lastID) < 0) {
			page = append(page, b)
		}
	}
	return r.listItems(page, limit), nil
}

func (l *ReadStore) ListByProperty(_ context.Context, propertyID uuid.UUID, includeInactive bool) ([]*queries.PriceRuleView, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.inner().listByProperty(propertyID, includeInactive), nil
}

var (
	_ shared.CommandReads        = (*reads)(nil)
	_ shared.CommandReads        = (*ReadStore)(nil)
	_ queries.BookingReadStore   = (*ReadStore)(nil)
	_ queries.PricingReadStore   = (*ReadStore)(nil)
	_ queries.PriceRuleReadStore = (*ReadStore)(nil)
)
