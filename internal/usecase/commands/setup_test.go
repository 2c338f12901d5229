//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/room"
	"staybook/internal/infra/memory"
	"staybook/internal/pkg/clock"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct {
	mu    sync.Mutex
	calls []uuid.UUID
}

func (r *recordingInvalidator) InvalidateProperty(_ context.Context, propertyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, propertyID)
	return nil
}

func (r *recordingInvalidator) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *countingMetrics) ObserveBookingCreate(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[string]int{}
	}
	m.outcomes[outcome]++
}

type fixture struct {
	store       *memory.Store
	uow         shared.UnitOfWork
	clock       *clock.MockClock
	bookings    commands.BookingCommands
	priceRules  commands.PriceRuleCommands
	invalidator *recordingInvalidator
	metrics     *countingMetrics
	room        *room.Room
	propertyID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))
	store := memory.NewStore(clk, logger)

	propertyID := uuid.New()
	rm, err := room.NewRoom(uuid.New(), propertyID, 100000, 2, "UTC")
	require.NoError(t, err)
	store.AddRoom(rm)

	uow := memory.NewUnitOfWork(store)
	invalidator := &recordingInvalidator{}
	metrics := &countingMetrics{}
	factory := booking.NewFactory(clk, pricing.NewRangePricer(), booking.DefaultMaxNights)
	bookingQueries := queries.NewBookingQueries(store.Reads())

	return &fixture{
		store: store,
		uow:   uow,
		clock: clk,
		bookings: commands.NewBookingUseCase(uow, factory, bookingQueries, invalidator, metrics, clk,
			commands.BookingSettings{IdempotencyTTL: time.Hour, EventsTopic: "booking.events.v1"}, logger),
		priceRules:  commands.NewPriceRuleUseCase(uow, invalidator, clk, logger),
		invalidator: invalidator,
		metrics:     metrics,
		room:        rm,
		propertyID:  propertyID,
	}
}

func (f *fixture) request(checkIn, checkOut string) commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		PropertyID: f.propertyID,
		RoomID:     f.room.ID(),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     2,
	}
}

func (f *fixture) create(t *testing.T, userID uuid.UUID, checkIn, checkOut string) *queries.BookingView {
	t.Helper()
	res, err := f.bookings.CreateBooking(context.Background(), f.request(checkIn, checkOut), userID, uuid.New())
	require.NoError(t, err)
	return res.Booking
}

func (f *fixture) pendingEvents(t *testing.T) []shared.OutboxEvent {
	t.Helper()
	var events []shared.OutboxEvent
	err := f.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		events, err = tx.Outbox().ClaimPending(ctx, f.clock.Now().Add(time.Hour), 100)
		return err
	})
	require.NoError(t, err)
	return events
}
