package repository

import (
	"context"

	domainRepo "github.com/danuartha/warungpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// NewRepositories builds the repository bundle bound to the given gorm
// handle, which may be the shared pool or an open transaction.
func NewRepositories(db *gorm.DB) *domainRepo.Repositories {
	return &domainRepo.Repositories{
		Items:      NewItemRepository(db),
		Users:      NewUserRepository(db),
		Orders:     NewOrderRepository(db),
		Receipts:   NewReceiptRepository(db),
		Settings:   NewSettingsRepository(db),
		Categories: NewCategoryRepository(db),
	}
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by gorm transactions
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &gormTxManager{db: db}
}

// RunInTx opens one database transaction, rebinds the repositories to it and
// runs fn. An error from fn rolls the whole unit back.
func (m *gormTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context, repos *domainRepo.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepositories(tx))
	})
}
