package converter

import (
	"fmt"

	"staybook/internal/domain/pricing"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const PriceRuleColumns = `id, property_id, name, start_date, end_date, price_type, value, is_active, created_at`

type PriceRuleRow struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	Name       string
	StartDate  pgtype.Date
	EndDate    pgtype.Date
	PriceType  string
	Value      pgtype.Numeric
	IsActive   bool
	CreatedAt  pgtype.Timestamptz
}

func ScanPriceRule(row pgx.Row) (PriceRuleRow, error) {
	var r PriceRuleRow
	err := row.Scan(&r.ID, &r.PropertyID, &r.Name, &r.StartDate, &r.EndDate, &r.PriceType, &r.Value, &r.IsActive, &r.CreatedAt)
	return r, err
}

func (r PriceRuleRow) ToDomain() (*pricing.PriceRule, error) {
	start, err := pgconv.DateFromPgtype(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("price rule %s: %w", r.ID, err)
	}
	end, err := pgconv.DateFromPgtype(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("price rule %s: %w", r.ID, err)
	}
	value, err := pgconv.Float64FromNumeric(r.Value)
	if err != nil {
		return nil, fmt.Errorf("price rule %s: %w", r.ID, err)
	}
	priceType := pricing.PriceType(r.PriceType)
	if !priceType.IsValid() {
		return nil, fmt.Errorf("price rule %s: %w", r.ID, pricing.ErrInvalidPriceType)
	}

	return pricing.ReconstructPriceRule(r.ID, r.PropertyID, r.Name, start, end, priceType, value, r.IsActive,
		pgconv.TimeFromPgtype(r.CreatedAt)), nil
}

func (r PriceRuleRow) ToView() (*queries.PriceRuleView, error) {
	rule, err := r.ToDomain()
	if err != nil {
		return nil, err
	}
	return queries.NewPriceRuleView(rule), nil
}

func PriceRuleToInsertArgs(rule *pricing.PriceRule) []any {
	return []any{
		rule.ID(),
		rule.PropertyID(),
		rule.Name(),
		pgconv.DateToPgtype(rule.StartDate()),
		pgconv.DateToPgtype(rule.EndDate()),
		rule.PriceType().String(),
		pgconv.NumericFromFloat64(rule.Value()),
		rule.IsActive(),
		pgconv.TimeToPgtype(rule.CreatedAt()),
	}
}
