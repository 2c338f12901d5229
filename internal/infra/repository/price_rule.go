package repository

import (
	"context"
	"log/slog"

	"staybook/internal/domain/pricing"
	"staybook/internal/infra"
	"staybook/internal/infra/converter"
	"staybook/internal/infra/db"

	"github.com/google/uuid"
)

const insertPriceRuleSQL = `
INSERT INTO price_rules (` + converter.PriceRuleColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const deactivatePriceRuleSQL = `UPDATE price_rules SET is_active = false WHERE id = $1 AND is_active`

type PriceRuleRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPriceRuleRepository(dbtx db.DBTX, logger *slog.Logger) *PriceRuleRepository {
	return &PriceRuleRepository{db: dbtx, logger: logger}
}

// Create is backed by the price_rules_no_overlap exclusion constraint, which
// catches overlaps committed by concurrent writers.
func (r *PriceRuleRepository) Create(ctx context.Context, rule *pricing.PriceRule) error {
	if _, err := r.db.Exec(ctx, insertPriceRuleSQL, converter.PriceRuleToInsertArgs(rule)...); err != nil {
		return infra.WrapPgErr(r.logger, "failed to create price rule", err)
	}
	return nil
}

// Deactivate is a no-op for a rule that is already inactive.
func (r *PriceRuleRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, deactivatePriceRuleSQL, id); err != nil {
		return infra.WrapPgErr(r.logger, "failed to deactivate price rule", err)
	}
	return nil
}
