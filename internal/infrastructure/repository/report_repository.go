package repository

import (
	"context"
	"errors"
	"time"

	"github.com/danuartha/warungpos-api/internal/domain/entity"
	domainRepo "github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

// AccumulateSale folds one receipt into the day's aggregate. The ledger
// insert carries the dedup: if the receipt was already counted the insert
// affects no rows and the increment is skipped. The increment itself is a
// single conditional upsert, so two sales landing on the same day cannot
// lose an update to each other.
func (r *reportRepository) AccumulateSale(ctx context.Context, receiptID uuid.UUID, day time.Time, grandTotal decimal.Decimal) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := entity.ReportLedgerEntry{
			ReceiptID:  receiptID,
			ReportDate: day,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ledger)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Receipt already folded in, nothing to add.
			return nil
		}
		applied = true

		report := entity.DailyReport{
			ReportDate:     day,
			ReportType:     entity.ReportTypeDaily,
			TotalSales:     grandTotal,
			NumberOfOrders: 1,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "report_date"}, {Name: "report_type"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_sales":      gorm.Expr("daily_reports.total_sales + excluded.total_sales"),
				"number_of_orders": gorm.Expr("daily_reports.number_of_orders + 1"),
				"updated_at":       time.Now().UTC(),
			}),
		}).Create(&report).Error
	})
	return applied, err
}

func (r *reportRepository) GetByDate(ctx context.Context, day time.Time) (*entity.DailyReport, error) {
	var report entity.DailyReport
	err := r.db.WithContext(ctx).
		First(&report, "report_date = ? AND report_type = ?", day, entity.ReportTypeDaily).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) SummarizeRange(ctx context.Context, from, to time.Time) (*domainRepo.ReportSummary, error) {
	var row struct {
		TotalSales     decimal.Decimal
		NumberOfOrders int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total_sales), 0) as total_sales,
			COALESCE(SUM(number_of_orders), 0) as number_of_orders
		FROM daily_reports
		WHERE report_type = ? AND report_date >= ? AND report_date <= ?
	`, entity.ReportTypeDaily, from, to).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &domainRepo.ReportSummary{
		TotalSales:     row.TotalSales,
		NumberOfOrders: row.NumberOfOrders,
	}, nil
}
