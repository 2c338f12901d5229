package commands

import (
	"context"
	"log/slog"

	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	"staybook/internal/infra"
	"staybook/internal/pkg/clock"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreatePriceRuleRequest struct {
	Name      string
	StartDate string
	EndDate   string
	PriceType string
	Value     float64
}

type PriceRuleCommands interface {
	CreatePriceRule(ctx context.Context, propertyID uuid.UUID, req CreatePriceRuleRequest) (*queries.PriceRuleView, error)
	DeactivatePriceRule(ctx context.Context, propertyID, ruleID uuid.UUID) error
}

type priceRuleUseCaseImpl struct {
	uow         shared.UnitOfWork
	invalidator shared.CalendarInvalidator
	clock       clock.Clock
	logger      *slog.Logger
}

func NewPriceRuleUseCase(uow shared.UnitOfWork, invalidator shared.CalendarInvalidator, clk clock.Clock, logger *slog.Logger) PriceRuleCommands {
	return &priceRuleUseCaseImpl{uow: uow, invalidator: invalidator, clock: clk, logger: logger}
}

// Rule dates are civil dates in the property's calendar and must be given
// as YYYY-MM-DD; a date-time would need the property time zone to resolve.
func (uc *priceRuleUseCaseImpl) CreatePriceRule(ctx context.Context, propertyID uuid.UUID, req CreatePriceRuleRequest) (*queries.PriceRuleView, error) {
	start, err := calendar.ParseCivilDate(req.StartDate)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}
	end, err := calendar.ParseCivilDate(req.EndDate)
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}
	rule, err := pricing.NewPriceRule(propertyID, req.Name, start, end, pricing.PriceType(req.PriceType), req.Value, uc.clock.Now())
	if err != nil {
		return nil, shared.ClassifyDomainError(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The rule period is inclusive; the read window is half-open.
		window := calendar.Range{Start: rule.StartDate(), End: rule.EndDate().AddDays(1)}
		active, err := tx.Reads().ActiveRules(ctx, propertyID, window)
		if err != nil {
			return err
		}
		if err := pricing.EnsureNoOverlap(rule, active); err != nil {
			return shared.ClassifyDomainError(err)
		}

		if err := tx.PriceRules().Create(ctx, rule); err != nil {
			switch {
			case infra.IsKind(err, infra.KindConflict):
				return shared.ErrPriceRuleOverlap
			case infra.IsKind(err, infra.KindForeignKeyViolated):
				return shared.ErrPropertyNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, propertyID)
	uc.logger.Info("price rule created", "rule_id", rule.ID(), "property_id", propertyID,
		"period", rule.StartDate().String()+".."+rule.EndDate().String())
	return queries.NewPriceRuleView(rule), nil
}

func (uc *priceRuleUseCaseImpl) DeactivatePriceRule(ctx context.Context, propertyID, ruleID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rule, err := tx.Reads().PriceRuleByID(ctx, ruleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return shared.ErrPriceRuleNotFound
			}
			return err
		}
		if rule.PropertyID() != propertyID {
			return shared.ErrPriceRuleNotFound
		}
		return tx.PriceRules().Deactivate(ctx, ruleID)
	})
	if err != nil {
		return err
	}

	uc.invalidate(ctx, propertyID)
	uc.logger.Info("price rule deactivated", "rule_id", ruleID, "property_id", propertyID)
	return nil
}

func (uc *priceRuleUseCaseImpl) invalidate(ctx context.Context, propertyID uuid.UUID) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.InvalidateProperty(ctx, propertyID); err != nil {
		uc.logger.Warn("failed to invalidate calendar cache", "property_id", propertyID, "error", err)
	}
}
