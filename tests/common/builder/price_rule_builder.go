//go:build unit || e2e

package builder

import (
	"time"

	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	reqdto "staybook/internal/handler/dto/request"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
)

type PriceRuleBuilder struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	Name       string
	StartDate  string
	EndDate    string
	PriceType  pricing.PriceType
	Value      float64
	IsActive   bool
	CreatedAt  time.Time
}

func NewPriceRuleBuilder() *PriceRuleBuilder {
	return &PriceRuleBuilder{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		Name:       "High season",
		StartDate:  "2025-12-20",
		EndDate:    "2026-01-05",
		PriceType:  pricing.PriceTypePercentage,
		Value:      20,
		IsActive:   true,
		CreatedAt:  time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *PriceRuleBuilder) With(mutate func(*PriceRuleBuilder)) *PriceRuleBuilder {
	mutate(b)
	return b
}

func (b *PriceRuleBuilder) WithPeriod(start, end string) *PriceRuleBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *PriceRuleBuilder) WithPercentage(v float64) *PriceRuleBuilder {
	b.PriceType = pricing.PriceTypePercentage
	b.Value = v
	return b
}

func (b *PriceRuleBuilder) WithFixed(v float64) *PriceRuleBuilder {
	b.PriceType = pricing.PriceTypeFixed
	b.Value = v
	return b
}

func (b *PriceRuleBuilder) WithProperty(id uuid.UUID) *PriceRuleBuilder {
	b.PropertyID = id
	return b
}

// BuildDomain runs the constructor validation.
func (b *PriceRuleBuilder) BuildDomain() (*pricing.PriceRule, error) {
	return pricing.NewPriceRule(b.PropertyID, b.Name, parseOrZero(b.StartDate), parseOrZero(b.EndDate), b.PriceType, b.Value, b.CreatedAt)
}

// Build skips validation and keeps the builder's id, for resolver fixtures.
func (b *PriceRuleBuilder) Build() *pricing.PriceRule {
	return pricing.ReconstructPriceRule(b.ID, b.PropertyID, b.Name,
		parseOrZero(b.StartDate), parseOrZero(b.EndDate), b.PriceType, b.Value, b.IsActive, b.CreatedAt)
}

func parseOrZero(s string) calendar.Date {
	if s == "" {
		return calendar.Date{}
	}
	return calendar.MustParseDate(s)
}

func (b *PriceRuleBuilder) BuildView() *queries.PriceRuleView {
	return queries.NewPriceRuleView(b.Build())
}

func (b *PriceRuleBuilder) BuildCreateRequestDTO() reqdto.CreatePriceRuleRequest {
	value := b.Value
	return reqdto.CreatePriceRuleRequest{
		Name:      b.Name,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		PriceType: b.PriceType.String(),
		Value:     &value,
	}
}
