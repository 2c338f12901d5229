package readstore

import (
	"log/slog"

	"staybook/internal/infra/db"
)

// PricingReadStore serves the pricing queries from the room, rule and booking
// tables.
type PricingReadStore struct {
	*RoomReadStore
	*PriceRuleReadStore
	*BookingReadStore
}

func NewPricingReadStore(dbtx db.DBTX, logger *slog.Logger) *PricingReadStore {
	return &PricingReadStore{
		RoomReadStore:      NewRoomReadStore(dbtx, logger),
		PriceRuleReadStore: NewPriceRuleReadStore(dbtx, logger),
		BookingReadStore:   NewBookingReadStore(dbtx, logger),
	}
}
