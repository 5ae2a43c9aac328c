package service

import (
	"context"
	"time"

	"github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/danuartha/warungpos-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService folds committed sales into per-calendar-day aggregates and
// answers range summaries over them.
type ReportService struct {
	reports repository.ReportRepository
	log     *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(reports repository.ReportRepository, log *zap.Logger) *ReportService {
	return &ReportService{reports: reports, log: log}
}

// DayOf normalizes a timestamp to its UTC calendar day
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RecordSale adds one receipt's grand total to its day's rolling aggregate.
// Replaying the same receipt is a no-op, so the call is safe to retry after
// a transient failure. The returned bool reports whether this call counted
// the sale.
func (s *ReportService) RecordSale(ctx context.Context, receiptID uuid.UUID, issuedAt time.Time, grandTotal decimal.Decimal) (bool, error) {
	applied, err := s.reports.AccumulateSale(ctx, receiptID, DayOf(issuedAt), grandTotal.Round(2))
	if err != nil {
		return false, err
	}
	if !applied {
		s.log.Info("sale already folded into daily report, skipping",
			zap.String("receipt_id", receiptID.String()))
	}
	return applied, nil
}

// GetSummary sums the daily aggregates for the inclusive UTC day range
func (s *ReportService) GetSummary(ctx context.Context, from, to time.Time) (*repository.ReportSummary, error) {
	fromDay := DayOf(from)
	toDay := DayOf(to)
	if toDay.Before(fromDay) {
		return nil, apperror.NewValidationError("End date must not be before start date")
	}
	return s.reports.SummarizeRange(ctx, fromDay, toDay)
}
