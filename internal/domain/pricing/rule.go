package pricing

import (
	"errors"
	"math"
	"strings"
	"time"

	"staybook/internal/domain/calendar"

	"github.com/google/uuid"
)

var (
	ErrEmptyRuleName        = errors.New("price rule name cannot be empty")
	ErrRuleNameTooLong      = errors.New("price rule name is too long (max 100 characters)")
	ErrInvalidRulePeriod    = errors.New("price rule start date must not be after end date")
	ErrInvalidPriceType     = errors.New("price type must be PERCENTAGE or FIXED")
	ErrInvalidPercentage    = errors.New("percentage adjustment must be at least -100")
	ErrInvalidFixedPrice    = errors.New("fixed price must be a positive whole amount")
	ErrRuleValueTooLarge    = errors.New("price rule value must be less than 100000000")
	ErrOverlappingPriceRule = errors.New("price rule overlaps an active rule of the same property")
)

const MaxRuleNameLength = 100

// MaxRuleValue is the exclusive upper bound of a rule value; price_rules.value
// is numeric(12,4).
const MaxRuleValue = 1e8

type PriceType string

const (
	PriceTypePercentage PriceType = "PERCENTAGE"
	PriceTypeFixed      PriceType = "FIXED"
)

func (t PriceType) IsValid() bool {
	return t == PriceTypePercentage || t == PriceTypeFixed
}

func (t PriceType) String() string {
	return string(t)
}

// PriceRule is a time-bounded adjustment of a property's base prices.
// StartDate and EndDate are both inclusive.
type PriceRule struct {
	id         uuid.UUID
	propertyID uuid.UUID
	name       string
	startDate  calendar.Date
	endDate    calendar.Date
	priceType  PriceType
	value      float64
	isActive   bool
	createdAt  time.Time
}

func NewPriceRule(
	propertyID uuid.UUID,
	name string,
	startDate, endDate calendar.Date,
	priceType PriceType,
	value float64,
	now time.Time,
) (*PriceRule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRuleName
	}
	if len(name) > MaxRuleNameLength {
		return nil, ErrRuleNameTooLong
	}
	if startDate.IsZero() || endDate.IsZero() || startDate.After(endDate) {
		return nil, ErrInvalidRulePeriod
	}
	if err := validateValue(priceType, value); err != nil {
		return nil, err
	}

	return &PriceRule{
		id:         uuid.New(),
		propertyID: propertyID,
		name:       name,
		startDate:  startDate,
		endDate:    endDate,
		priceType:  priceType,
		value:      value,
		isActive:   true,
		createdAt:  now,
	}, nil
}

func ReconstructPriceRule(
	id, propertyID uuid.UUID,
	name string,
	startDate, endDate calendar.Date,
	priceType PriceType,
	value float64,
	isActive bool,
	createdAt time.Time,
) *PriceRule {
	return &PriceRule{
		id:         id,
		propertyID: propertyID,
		name:       name,
		startDate:  startDate,
		endDate:    endDate,
		priceType:  priceType,
		value:      value,
		isActive:   isActive,
		createdAt:  createdAt,
	}
}

func validateValue(priceType PriceType, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrInvalidPercentage
	}
	if value >= MaxRuleValue {
		return ErrRuleValueTooLarge
	}
	switch priceType {
	case PriceTypePercentage:
		if value < -100 {
			return ErrInvalidPercentage
		}
	case PriceTypeFixed:
		if value <= 0 || value != math.Trunc(value) {
			return ErrInvalidFixedPrice
		}
	default:
		return ErrInvalidPriceType
	}
	return nil
}

// AppliesOn reports whether the rule is active and d lies in [startDate, endDate].
func (r *PriceRule) AppliesOn(d calendar.Date) bool {
	return r.isActive && !d.Before(r.startDate) && !d.After(r.endDate)
}

// Overlaps compares the inclusive periods of two rules of the same property.
func (r *PriceRule) Overlaps(o *PriceRule) bool {
	return r.propertyID == o.propertyID &&
		!r.startDate.After(o.endDate) && !o.startDate.After(r.endDate)
}

// SpanDays is the number of dates the rule covers.
func (r *PriceRule) SpanDays() int {
	return r.startDate.DaysUntil(r.endDate) + 1
}

func (r *PriceRule) Deactivate() {
	r.isActive = false
}

func (r *PriceRule) ID() uuid.UUID            { return r.id }
func (r *PriceRule) PropertyID() uuid.UUID    { return r.propertyID }
func (r *PriceRule) Name() string             { return r.name }
func (r *PriceRule) StartDate() calendar.Date { return r.startDate }
func (r *PriceRule) EndDate() calendar.Date   { return r.endDate }
func (r *PriceRule) PriceType() PriceType     { return r.priceType }
func (r *PriceRule) Value() float64           { return r.value }
func (r *PriceRule) IsActive() bool           { return r.isActive }
func (r *PriceRule) CreatedAt() time.Time     { return r.createdAt }

// EnsureNoOverlap rejects candidate when it overlaps any other active rule.
func EnsureNoOverlap(candidate *PriceRule, existing []*PriceRule) error {
	for _, e := range existing {
		if e.id == candidate.id || !e.isActive {
			continue
		}
		if candidate.Overlaps(e) {
			return ErrOverlappingPriceRule
		}
	}
	return nil
}
