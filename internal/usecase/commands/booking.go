package commands

//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock staybook/internal/usecase/commands BookingCommands,PriceRuleCommands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/infra"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	OutcomeCreated  = "created"
	OutcomeReplayed = "replayed"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// BookingMetrics records booking creation outcomes.
type BookingMetrics interface {
	ObserveBookingCreate(outcome string)
}

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"property_id"`
	RoomID     uuid.UUID `json:"room_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Guests     int       `json:"guests"`
	Notes      string    `json:"notes"`
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingSettings struct {
	IdempotencyTTL time.Duration
	EventsTopic    string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	UploadPaymentProof(ctx context.Context, bookingID, actorID uuid.UUID, proofRef string) (*queries.BookingView, error)
	ConfirmBooking(ctx context.Context, bookingID uuid.UUID, actorRole booking.Role) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorRole booking.Role) (*queries.BookingView, error)
	CompleteBooking(ctx context.Context, bookingID uuid.UUID, actorRole booking.Role) (*queries.BookingView, error)
	// CompleteFinishedStays moves CONFIRMED bookings whose stay has ended to
	// COMPLETED and returns how many were moved.
	CompleteFinishedStays(ctx context.Context, limit int) (int, error)
}

type bookingUseCaseImpl struct {
	uow         shared.UnitOfWork
	factory     *booking.Factory
	queries     queries.BookingQueries
	invalidator shared.CalendarInvalidator
	metrics     BookingMetrics
	clock       clock.Clock
	settings    BookingSettings
	logger      *slog.Logger
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	invalidator shared.CalendarInvalidator,
	metrics BookingMetrics,
	clk clock.Clock,
	settings BookingSettings,
	logger *slog.Logger,
) BookingCommands {
	if settings.IdempotencyTTL <= 0 {
		settings.IdempotencyTTL = 24 * time.Hour
	}
	return &bookingUseCaseImpl{
		uow:         uow,
		factory:     factory,
		queries:     bookingQueries,
		invalidator: invalidator,
		metrics:     metrics,
		clock:       clk,
		settings:    settings,
		logger:      logger,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	req CreateBookingRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	if idempotencyKey == uuid.Nil {
		return nil, errs.AsKind(errs.ErrIdempotencyKeyRequired, errs.ErrValidation)
	}
	if err := precheckRequest(req); err != nil {
		uc.observe(OutcomeRejected)
		return nil, err
	}
	requestHash := calculateRequestHash(req)

	var (
		created  *booking.Booking
		replayID *uuid.UUID
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, replayID = nil, nil

		now := uc.clock.Now()
		inserted, err := tx.Idempotency().TryInsert(ctx, shared.IdempotencyRecord{
			Key:         idempotencyKey,
			UserID:      userID,
			RequestHash: requestHash,
			ExpiresAt:   now.Add(uc.settings.IdempotencyTTL),
		}, now)
		if err != nil {
			return err
		}
		if !inserted {
			replayID, err = uc.replayTarget(ctx, tx, idempotencyKey, userID, requestHash)
			return err
		}

		created, err = uc.createInTx(ctx, tx, req, userID)
		if err != nil {
			return err
		}
		if err := tx.Idempotency().Complete(ctx, idempotencyKey, userID, created.ID()); err != nil {
			return err
		}
		return uc.enqueue(ctx, tx, created)
	})
	if err != nil {
		uc.observe(outcomeOf(err))
		return nil, err
	}

	if replayID != nil {
		uc.observe(OutcomeReplayed)
		view, err := uc.queries.GetByIDSystem(ctx, *replayID)
		if err != nil {
			return nil, err
		}
		return &CreateBookingResult{Booking: view, IsReplayed: true}, nil
	}

	uc.observe(OutcomeCreated)
	uc.invalidate(ctx, created.PropertyID())
	uc.logger.Info("booking created",
		"booking_id", created.ID(),
		"room_id", created.RoomID(),
		"stay", created.Stay().String(),
		"total_price", created.TotalPrice())
	return &CreateBookingResult{Booking: queries.NewBookingView(created)}, nil
}

func (uc *bookingUseCaseImpl) replayTarget(ctx context.Context, tx shared.Tx, key, userID uuid.UUID, requestHash string) (*uuid.UUID, error) {
	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	if existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReused
	}
	if existing.Status == shared.IdempotencyStatusCompleted && existing.BookingID != nil {
		return existing.BookingID, nil
	}
	return nil, shared.ErrIdempotencyInProgress
}

// createInTx validates the request and inserts the booking. The availability
// read runs in the same transaction as the insert; the store's non-overlap
// constraint settles races between concurrent transactions.
func (uc *bookingUseCaseImpl) createInTx(ctx context.Context, tx shared.Tx, req CreateBookingRequest, userID uuid.UUID) (*booking.Booking, error) {
	reads := tx.Reads()

	rm, err := reads.RoomByID(ctx, req.RoomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, shared.ErrRoomNotFound
		}
		return nil, err
	}

	// Date-times are interpreted in the property's time zone.
	stay, err := shared.ParseStay(rm.Location(), req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := uc.factory.ValidateRequest(stay, req.Guests); err != nil {
		return nil, shared.ClassifyDomainError(err)
	}
	if rm.PropertyID() != req.PropertyID {
		return nil, shared.ErrRoomNotFound
	}

	existing, err := reads.BookingsOverlapping(ctx, rm.ID(), stay)
	if err != nil {
		return nil, err
	}
	if !booking.IsAvailable(existing, rm.ID(), stay) {
		return nil, shared.ErrRoomUnavailable
	}

	rules, err := reads.ActiveRules(ctx, rm.PropertyID(), stay)
	if err != nil {
		return nil, err
	}

	note, err := booking.NewNote(req.Notes)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}
	b, err := uc.factory.CreateBooking(rm, req.PropertyID, rules, userID, stay, req.Guests, note)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}

	if err := tx.Bookings().Create(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, shared.ErrRoomUnavailable
		}
		return nil, err
	}
	return b, nil
}

func (uc *bookingUseCaseImpl) UploadPaymentProof(ctx context.Context, bookingID, actorID uuid.UUID, proofRef string) (*queries.BookingView, error) {
	proof, err := booking.NewPaymentProof(proofRef)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}
	return uc.transition(ctx, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.AttachPaymentProof(actorID, proof, now)
	})
}

func (uc *bookingUseCaseImpl) ConfirmBooking(ctx context.Context, bookingID uuid.UUID, actorRole booking.Role) (*queries.BookingView, error) {
	if actorRole != booking.RoleTenant {
		return nil, shared.ErrTenantOnly
	}
	return uc.transition(ctx, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.Confirm(now)
	})
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorRole booking.Role) (*queries.BookingView, error) {
	view, err := uc.transition(ctx, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.Cancel(actorID, actorRole, now)
	})
	if err != nil {
		return nil, err
	}
	// Cancelling frees nights, so cached calendars are stale.
	uc.invalidate(ctx, view.PropertyID)
	return view, nil
}

func (uc *bookingUseCaseImpl) CompleteBooking(ctx context.Context, bookingID uuid.UUID, actorRole booking.Role) (*queries.BookingView, error) {
	if actorRole != booking.RoleTenant {
		return nil, shared.ErrTenantOnly
	}
	return uc.transition(ctx, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.Complete(now)
	})
}

func (uc *bookingUseCaseImpl) CompleteFinishedStays(ctx context.Context, limit int) (int, error) {
	finished, err := uc.uow.CommandReads().FinishedStays(ctx, uc.clock.Now(), limit)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, b := range finished {
		if err := ctx.Err(); err != nil {
			return completed, err
		}
		_, err := uc.transition(ctx, b.ID(), func(b *booking.Booking, now time.Time) error {
			return b.Complete(now)
		})
		switch {
		case err == nil:
			completed++
		case errs.Is(err, errs.ErrConflict):
			// Cancelled or completed by someone else in the meantime.
			uc.logger.Debug("skipping finished stay", "booking_id", b.ID(), "error", err)
		default:
			return completed, err
		}
	}
	return completed, nil
}

// transition loads the booking, applies fn and stores the result only if
// the status did not change since it was read.
func (uc *bookingUseCaseImpl) transition(ctx context.Context, bookingID uuid.UUID, fn func(b *booking.Booking, now time.Time) error) (*queries.BookingView, error) {
	var updated *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return shared.ErrBookingNotFound
			}
			return err
		}

		from := b.Status()
		now := uc.clock.Now()
		if err := fn(b, now); err != nil {
			return shared.ClassifyDomainError(err)
		}
		if err := tx.Bookings().UpdateStatus(ctx, b, from); err != nil {
			switch {
			case infra.IsKind(err, infra.KindConflict):
				return shared.ErrBookingStateChanged
			case infra.IsKind(err, infra.KindNotFound):
				return shared.ErrBookingNotFound
			}
			return err
		}
		updated = b
		return uc.enqueue(ctx, tx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("booking status changed", "booking_id", updated.ID(), "status", updated.Status().String())
	return queries.NewBookingView(updated), nil
}

func (uc *bookingUseCaseImpl) enqueue(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	evt, err := newBookingOutboxEvent(uc.settings.EventsTopic, b, uc.clock.Now())
	if err != nil {
		return errs.Wrap(err, "failed to encode booking event")
	}
	return tx.Outbox().Enqueue(ctx, evt)
}

func (uc *bookingUseCaseImpl) invalidate(ctx context.Context, propertyID uuid.UUID) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.InvalidateProperty(ctx, propertyID); err != nil {
		uc.logger.Warn("failed to invalidate calendar cache", "property_id", propertyID, "error", err)
	}
}

func (uc *bookingUseCaseImpl) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBookingCreate(outcome)
	}
}

// precheckRequest rejects malformed input before the room is looked up.
func precheckRequest(req CreateBookingRequest) error {
	if err := shared.PrecheckStay(req.CheckIn, req.CheckOut); err != nil {
		return err
	}
	if req.Guests <= 0 {
		return shared.ClassifyDomainError(booking.ErrInvalidGuests)
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case errs.Is(err, errs.ErrConflict):
		return OutcomeConflict
	case errs.Is(err, errs.ErrValidation), errs.Is(err, errs.ErrNotFound):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}

func calculateRequestHash(req CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
