package readstore

import (
	"context"
	"log/slog"

	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/internal/infra"
	"staybook/internal/infra/converter"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const priceRuleByIDSQL = `SELECT ` + converter.PriceRuleColumns + ` FROM price_rules WHERE id = $1`

const priceRulesByPropertySQL = `
SELECT ` + converter.PriceRuleColumns + `
FROM price_rules
WHERE property_id = $1 AND (is_active OR $2)
ORDER BY start_date, id`

// A rule touches [$2, $3) when it starts before $3 and ends on or after $2.
const activeRulesSQL = `
SELECT ` + converter.PriceRuleColumns + `
FROM price_rules
WHERE property_id = $1 AND is_active AND start_date < $3 AND end_date >= $2
ORDER BY start_date, id`

type PriceRuleReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPriceRuleReadStore(dbtx db.DBTX, logger *slog.Logger) *PriceRuleReadStore {
	return &PriceRuleReadStore{db: dbtx, logger: logger}
}

func (r *PriceRuleReadStore) PriceRuleByID(ctx context.Context, id uuid.UUID) (*pricing.PriceRule, error) {
	row, err := converter.ScanPriceRule(r.db.QueryRow(ctx, priceRuleByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "price rule not found", err)
		}
		return nil, infra.WrapPgErr(r.logger, "failed to get price rule by id", err)
	}
	rule, err := row.ToDomain()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to map price rule", err)
	}
	return rule, nil
}

func (r *PriceRuleReadStore) ListByProperty(ctx context.Context, propertyID uuid.UUID, includeInactive bool) ([]*queries.PriceRuleView, error) {
	rows, err := r.queryRows(ctx, "failed to list price rules by property", priceRulesByPropertySQL, propertyID, includeInactive)
	if err != nil {
		return nil, err
	}
	views := make([]*queries.PriceRuleView, 0, len(rows))
	for _, row := range rows {
		v, err := row.ToView()
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to map price rule view", err)
		}
		views = append(views, v)
	}
	return views, nil
}

func (r *PriceRuleReadStore) ActiveRules(ctx context.Context, propertyID uuid.UUID, window calendar.Range) ([]*pricing.PriceRule, error) {
	rows, err := r.queryRows(ctx, "failed to get active price rules", activeRulesSQL,
		propertyID, pgconv.DateToPgtype(window.Start), pgconv.DateToPgtype(window.End))
	if err != nil {
		return nil, err
	}
	rules := make([]*pricing.PriceRule, 0, len(rows))
	for _, row := range rows {
		rule, err := row.ToDomain()
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to map price rule", err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *PriceRuleReadStore) queryRows(ctx context.Context, msg, sql string, args ...any) ([]converter.PriceRuleRow, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, msg, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (converter.PriceRuleRow, error) {
		return converter.ScanPriceRule(row)
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, msg, err)
	}
	return out, nil
}
