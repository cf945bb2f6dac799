package services

import (
	"context"

	"server/internal/database"
	"server/internal/logger"

	"gorm.io/gorm"
)

type txContextKey struct{}

// TransactionService runs a function inside one gorm transaction and makes
// the transaction reachable through the context, so repositories join it
// transparently via GetTransaction.
type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	return s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txContextKey{}, tx)
		return fn(txCtx)
	})
}

// GetTransaction returns the transaction carried by ctx, if any.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}
