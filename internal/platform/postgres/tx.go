package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type txKey struct{}

// WithTx stores a transactional handle in the context so repositories
// participating in the same unit of work share it.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// FromContext returns the transactional handle carried by ctx, or fallback
// when no transaction is active.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback
}

// TxRunner executes a function inside a single database transaction. Every
// repository call made with the derived context joins that transaction, so
// the writes it performs commit or roll back as one.
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner wires a transaction runner over the shared GORM handle.
func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// WithinTransaction opens a transaction, injects it into the context, and
// runs fn. A non-nil error from fn rolls the transaction back.
func (r *TxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if r == nil || r.db == nil {
		return errors.New("postgres transaction runner not configured")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
