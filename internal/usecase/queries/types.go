package queries

import (
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"

	"github.com/google/uuid"
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	PropertyID      uuid.UUID `json:"property_id"`
	RoomID          uuid.UUID `json:"room_id"`
	CheckIn         string    `json:"check_in"`
	CheckOut        string    `json:"check_out"`
	Nights          int       `json:"nights"`
	Guests          int       `json:"guests"`
	TotalPrice      int64     `json:"total_price"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	PaymentProofRef *string   `json:"payment_proof_ref,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	RoomID     uuid.UUID `json:"room_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	TotalPrice int64     `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// PriceRuleView represents read-optimized price rule data
type PriceRuleView struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	PriceType  string    `json:"price_type"`
	Value      float64   `json:"value"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type PriceQuote struct {
	RoomID     uuid.UUID `json:"room_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Nights     int       `json:"nights"`
	TotalPrice int64     `json:"total_price"`
}

type AvailabilityView struct {
	RoomID      uuid.UUID `json:"room_id"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	IsAvailable bool      `json:"is_available"`
}

type CalendarDayView struct {
	Date        string `json:"date"`
	Price       int64  `json:"price"`
	IsAvailable bool   `json:"is_available"`
	IsHoliday   bool   `json:"is_holiday"`
	IsWeekend   bool   `json:"is_weekend"`
}

func NewBookingView(b *booking.Booking) *BookingView {
	v := &BookingView{
		ID:         b.ID(),
		UserID:     b.UserID(),
		PropertyID: b.PropertyID(),
		RoomID:     b.RoomID(),
		CheckIn:    b.CheckIn().String(),
		CheckOut:   b.CheckOut().String(),
		Nights:     b.Stay().Nights(),
		Guests:     b.Guests(),
		TotalPrice: b.TotalPrice(),
		Status:     b.Status().String(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
	if !b.Note().IsEmpty() {
		n := b.Note().String()
		v.Notes = &n
	}
	if !b.PaymentProof().IsEmpty() {
		p := b.PaymentProof().String()
		v.PaymentProofRef = &p
	}
	return v
}

func NewPriceRuleView(rule *pricing.PriceRule) *PriceRuleView {
	return &PriceRuleView{
		ID:         rule.ID(),
		PropertyID: rule.PropertyID(),
		Name:       rule.Name(),
		StartDate:  rule.StartDate().String(),
		EndDate:    rule.EndDate().String(),
		PriceType:  rule.PriceType().String(),
		Value:      rule.Value(),
		IsActive:   rule.IsActive(),
		CreatedAt:  rule.CreatedAt(),
	}
}
