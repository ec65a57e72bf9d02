package service

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner executes fn inside a single database transaction. Services depend
// on this instead of *gorm.DB directly so the commit-as-one-unit contract can
// be exercised in tests.
type TxRunner func(ctx context.Context, fn func(tx *gorm.DB) error) error

func NewGormTxRunner(db *gorm.DB) TxRunner {
	return func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return db.WithContext(ctx).Transaction(fn)
	}
}
