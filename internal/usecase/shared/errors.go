package shared

import (
	"errors"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/internal/pkg/errs"
)

var (
	ErrRoomNotFound          = errs.NotFound("room not found")
	ErrBookingNotFound       = errs.NotFound("booking not found")
	ErrPriceRuleNotFound     = errs.NotFound("price rule not found")
	ErrPropertyNotFound      = errs.NotFound("property not found")
	ErrRoomUnavailable       = errs.Conflict("room is not available for the selected dates")
	ErrPriceRuleOverlap      = errs.Conflict("price rule overlaps an active rule of the same property")
	ErrIdempotencyInProgress = errs.Conflict("a request with this idempotency key is still being processed")
	ErrBookingStateChanged   = errs.Conflict("booking was modified concurrently")
	ErrBookingAccess         = errs.Forbidden("booking belongs to another user")
	ErrTenantOnly            = errs.Forbidden("operation requires the tenant role")
)

var validationErrors = []error{
	calendar.ErrInvalidDate,
	calendar.ErrInvalidRange,
	calendar.ErrInvalidMonth,
	booking.ErrInvalidGuests,
	booking.ErrNegativePrice,
	booking.ErrStayTooLong,
	booking.ErrCheckInInPast,
	booking.ErrExceedsCapacity,
	booking.ErrNoteTooLong,
	booking.ErrEmptyPaymentProof,
	booking.ErrPaymentProofTooLong,
	pricing.ErrEmptyRuleName,
	pricing.ErrRuleNameTooLong,
	pricing.ErrInvalidRulePeriod,
	pricing.ErrInvalidPriceType,
	pricing.ErrInvalidPercentage,
	pricing.ErrInvalidFixedPrice,
	pricing.ErrRuleValueTooLarge,
	pricing.ErrPriceOutOfRange,
}

// ClassifyDomainError attaches an error kind to domain errors so handlers can
// map them to a status. Unknown errors are returned unchanged.
func ClassifyDomainError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, booking.ErrRoomNotInProperty):
		return ErrRoomNotFound
	case errors.Is(err, booking.ErrInvalidTransition):
		return errs.AsKind(err, errs.ErrConflict)
	case errors.Is(err, booking.ErrNotOwner):
		return errs.AsKind(err, errs.ErrForbidden)
	case errors.Is(err, pricing.ErrOverlappingPriceRule):
		return ErrPriceRuleOverlap
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return errs.AsKind(err, errs.ErrValidation)
		}
	}
	return err
}
