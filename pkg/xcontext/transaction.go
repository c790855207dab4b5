package xcontext

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	txKey       struct{}
	nestedTxKey struct{}
)

// WithDBTransaction begins a transaction and replaces the DB of context by
// it. If the context is already in a transaction, the returned context joins
// that transaction, commit and rollback of the inner context are no-op.
func WithDBTransaction(ctx context.Context) context.Context {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return context.WithValue(ctx, nestedTxKey{}, true)
	}

	tx := DB(ctx).Begin()
	ctx = context.WithValue(ctx, txKey{}, tx)
	ctx = context.WithValue(ctx, nestedTxKey{}, false)
	return WithDB(ctx, tx)
}

func WithCommitDBTransaction(ctx context.Context) error {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return errors.New("not in transaction")
	}

	if nested, _ := ctx.Value(nestedTxKey{}).(bool); nested {
		return nil
	}

	return tx.Commit().Error
}

// WithRollbackDBTransaction rollbacks the transaction. It does nothing if the
// transaction has been committed.
func WithRollbackDBTransaction(ctx context.Context) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return
	}

	if nested, _ := ctx.Value(nestedTxKey{}).(bool); nested {
		return
	}

	tx.Rollback()
}
