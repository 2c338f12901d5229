// Package memory is an in-process store used for local runs and tests. It
// serialises every unit of work under one mutex and enforces the same
// non-overlap rules as the Postgres exclusion constraints.
package memory

import (
	"log/slog"
	"maps"
	"sync"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/room"
	"staybook/internal/infra"
	"staybook/internal/pkg/clock"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

type idempotencyKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type Store struct {
	mu     sync.Mutex
	clock  clock.Clock
	logger *slog.Logger

	state state
}

type state struct {
	properties  map[uuid.UUID]struct{}
	rooms       map[uuid.UUID]*room.Room
	bookings    map[uuid.UUID]*booking.Booking
	rules       map[uuid.UUID]*pricing.PriceRule
	idempotency map[idempotencyKey]shared.IdempotencyRecord
	outbox      map[uuid.UUID]shared.OutboxEvent
}

func NewStore(clk clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		clock:  clk,
		logger: logger,
		state: state{
			properties:  make(map[uuid.UUID]struct{}),
			rooms:       make(map[uuid.UUID]*room.Room),
			bookings:    make(map[uuid.UUID]*booking.Booking),
			rules:       make(map[uuid.UUID]*pricing.PriceRule),
			idempotency: make(map[idempotencyKey]shared.IdempotencyRecord),
			outbox:      make(map[uuid.UUID]shared.OutboxEvent),
		},
	}
}

// AddRoom registers a room and its property. Rooms are owned by the
// catalogue and only seeded here.
func (s *Store) AddRoom(r *room.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.properties[r.PropertyID()] = struct{}{}
	s.state.rooms[r.ID()] = r
}

// Stored values are never mutated in place, so a shallow copy of each map is
// a consistent snapshot.
func (st state) snapshot() state {
	return state{
		properties:  st.properties,
		rooms:       maps.Clone(st.rooms),
		bookings:    maps.Clone(st.bookings),
		rules:       maps.Clone(st.rules),
		idempotency: maps.Clone(st.idempotency),
		outbox:      maps.Clone(st.outbox),
	}
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	c := *b
	return &c
}

func cloneRule(r *pricing.PriceRule) *pricing.PriceRule {
	c := *r
	return &c
}

func (s *Store) notFound(msg string) error {
	return infra.WrapRepoErr(s.logger, infra.KindNotFound, msg, nil)
}

func (s *Store) conflict(msg string) error {
	return infra.WrapRepoErr(s.logger, infra.KindConflict, msg, nil)
}
