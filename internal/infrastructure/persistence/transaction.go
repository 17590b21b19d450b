package persistence

import (
	"context"

	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

type txContextKey struct{}

// GormTransactionManager implements shared.TransactionManager on a GORM
// connection. The transaction handle travels in the context, so
// repository calls made inside Execute join the same transaction.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a transaction manager on an open connection
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// Execute runs fn inside a single transaction. A returned error rolls
// everything back.
func (m *GormTransactionManager) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// session returns the transaction bound to ctx if there is one, else
// the base connection.
func session(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

var _ shared.TransactionManager = (*GormTransactionManager)(nil)
