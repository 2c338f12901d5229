package request

import "staybook/internal/usecase/commands"

type StayQuery struct {
	CheckIn  string `form:"checkIn" binding:"required"`
	CheckOut string `form:"checkOut" binding:"required"`
}

type CalendarQuery struct {
	Month string `form:"month" binding:"required"`
}

type CreatePriceRuleRequest struct {
	Name      string   `json:"name" binding:"required"`
	StartDate string   `json:"startDate" binding:"required"`
	EndDate   string   `json:"endDate" binding:"required"`
	PriceType string   `json:"priceType" binding:"required,oneof=PERCENTAGE FIXED"`
	Value     *float64 `json:"value" binding:"required"`
}

type ListPriceRulesQuery struct {
	IncludeInactive bool `form:"includeInactive"`
}

func (r CreatePriceRuleRequest) ToCommand() commands.CreatePriceRuleRequest {
	return commands.CreatePriceRuleRequest{
		Name:      r.Name,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		PriceType: r.PriceType,
		Value:     *r.Value,
	}
}
