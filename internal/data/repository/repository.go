package repository

import (
	"context"
	"fmt"

	"fitness-booking/pkg/database"

	"go.uber.org/zap"
)

// TxRunner executes a unit of work against transaction-bound repositories.
// The production runner locks rows via SELECT ... FOR UPDATE inside the
// callback queries, so concurrent bookings against the same class serialize
// instead of racing on the capacity check.
type TxRunner interface {
	RunSerialized(ctx context.Context, fn func(r *Repository) error) error
}

type Repository struct {
	Class   ClassRepository
	Booking BookingRepository
	Tx      TxRunner
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Class:   NewClassRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Tx:      &pgxTxRunner{db: db, log: log},
	}
}

type pgxTxRunner struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTxRunner) RunSerialized(ctx context.Context, fn func(r *Repository) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	bound := &Repository{
		Class:   NewClassRepository(tx, t.log),
		Booking: NewBookingRepository(tx, t.log),
	}

	if err := fn(bound); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
