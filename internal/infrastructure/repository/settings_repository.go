package repository

import (
	"context"
	"errors"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	domainRepo "github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// GetTaxSetting returns the single current tax/discount record. A missing
// row behaves as zero tax and zero discount.
func (r *settingsRepository) GetTaxSetting(ctx context.Context) (*entity.TaxSetting, error) {
	var setting entity.TaxSetting
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.TaxSetting{
			TaxPercent:      decimal.Zero,
			DiscountPercent: decimal.Zero,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
