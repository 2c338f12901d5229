package response

import (
	"time"

	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PriceQuoteResponse struct {
	RoomID     uuid.UUID `json:"roomId"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Nights     int       `json:"nights"`
	TotalPrice int64     `json:"totalPrice"`
}

type AvailabilityResponse struct {
	RoomID      uuid.UUID `json:"roomId"`
	CheckIn     string    `json:"checkIn"`
	CheckOut    string    `json:"checkOut"`
	IsAvailable bool      `json:"isAvailable"`
}

type CalendarDayResponse struct {
	Date        string `json:"date"`
	Price       int64  `json:"price"`
	IsAvailable bool   `json:"isAvailable"`
	IsHoliday   bool   `json:"isHoliday"`
	IsWeekend   bool   `json:"isWeekend"`
}

type PriceRuleResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"propertyId"`
	Name       string    `json:"name"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	PriceType  string    `json:"priceType"`
	Value      float64   `json:"value"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromPriceQuote(q *queries.PriceQuote) *PriceQuoteResponse {
	var res PriceQuoteResponse
	_ = copier.Copy(&res, q)
	return &res
}

func FromAvailability(a *queries.AvailabilityView) *AvailabilityResponse {
	var res AvailabilityResponse
	_ = copier.Copy(&res, a)
	return &res
}

func FromCalendar(days []queries.CalendarDayView) []CalendarDayResponse {
	res := make([]CalendarDayResponse, 0, len(days))
	if len(days) > 0 {
		_ = copier.Copy(&res, days)
	}
	return res
}

func FromPriceRuleView(v *queries.PriceRuleView) *PriceRuleResponse {
	var res PriceRuleResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromPriceRuleList(views []*queries.PriceRuleView) []PriceRuleResponse {
	res := make([]PriceRuleResponse, 0, len(views))
	if len(views) > 0 {
		_ = copier.Copy(&res, views)
	}
	return res
}
