package memory

import (
	"context"

	"staybook/internal/usecase/shared"
)

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return &UnitOfWork{store: store}
}

// Within holds the store lock for the whole callback and restores the
// pre-transaction state when fn fails.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.state.snapshot()
	if err := fn(ctx, &memTx{store: s}); err != nil {
		s.state = before
		return err
	}
	return nil
}

func (u *UnitOfWork) CommandReads() shared.CommandReads {
	return u.store.Reads()
}

type memTx struct {
	store *Store
}

func (t *memTx) Bookings() shared.BookingRepository        { return (*bookingRepo)(t.store) }
func (t *memTx) PriceRules() shared.PriceRuleRepository    { return (*priceRuleRepo)(t.store) }
func (t *memTx) Idempotency() shared.IdempotencyRepository { return (*idempotencyRepo)(t.store) }
func (t *memTx) Outbox() shared.OutboxRepository           { return (*outboxRepo)(t.store) }
func (t *memTx) Reads() shared.CommandReads                { return (*reads)(t.store) }
