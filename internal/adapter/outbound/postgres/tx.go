package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/leaguehub/server/internal/port/outbound"
	"github.com/leaguehub/server/internal/shared/database"
)

// txContextKey is used to store the transaction in context.
type txContextKeyType struct{}

var txContextKey = txContextKeyType{}

// conn returns the transaction stored in ctx, or db outside a transaction.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// translate maps driver errors onto outbound persistence errors.
func translate(err error) error {
	return database.TranslateError(err)
}

// TransactionAdapter implements outbound.TransactionPort.
type TransactionAdapter struct {
	db *gorm.DB
}

// NewTransactionAdapter creates a new transaction adapter.
func NewTransactionAdapter(db *gorm.DB) *TransactionAdapter {
	return &TransactionAdapter{db: db}
}

// RunInTransaction runs fn in a transaction. Adapters called with the context
// passed to fn join it. Nested calls reuse the outer transaction.
func (a *TransactionAdapter) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Store tx in context for nested operations
		return fn(context.WithValue(ctx, txContextKey, tx))
	})
}

var _ outbound.TransactionPort = (*TransactionAdapter)(nil)
