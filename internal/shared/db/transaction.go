// Package db provides transaction scoping utilities on top of GORM.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TransactionManager scopes a transaction to a context so that every
// statement issued through GetTx inside RunInTransaction joins the same
// atomic unit. The subscription repository relies on this to keep the
// projection row and its event log consistent.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction runs fn inside a single database transaction. An error
// from fn rolls everything back, nil commits.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// GetTx returns the transaction carried by ctx, falling back to the plain
// connection outside RunInTransaction.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return tm.db.WithContext(ctx)
}
