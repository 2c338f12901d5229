package queries

import (
	"context"

	"github.com/google/uuid"
)

type PriceRuleReadStore interface {
	ListByProperty(ctx context.Context, propertyID uuid.UUID, includeInactive bool) ([]*PriceRuleView, error)
}

type PriceRuleQueries interface {
	ListByProperty(ctx context.Context, propertyID uuid.UUID, includeInactive bool) ([]*PriceRuleView, error)
}

type priceRuleQueriesImpl struct {
	store PriceRuleReadStore
}

func NewPriceRuleQueries(store PriceRuleReadStore) PriceRuleQueries {
	return &priceRuleQueriesImpl{store: store}
}

func (q *priceRuleQueriesImpl) ListByProperty(ctx context.Context, propertyID uuid.UUID, includeInactive bool) ([]*PriceRuleView, error) {
	return q.store.ListByProperty(ctx, propertyID, includeInactive)
}
