package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/danuartha/warungpos-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDayOf(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "utc afternoon",
			in:   time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC),
			want: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "utc midnight is its own day",
			in:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "early local morning falls on the previous utc day",
			in:   time.Date(2026, 1, 1, 3, 0, 0, 0, jakarta),
			want: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, DayOf(tt.in).Equal(tt.want), "got %s", DayOf(tt.in))
		})
	}
}

func TestRecordSale_ReplayIsNoOp(t *testing.T) {
	reports := newMemReportRepo()
	svc := NewReportService(reports, zap.NewNop())
	receiptID := uuid.New()
	issuedAt := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	applied, err := svc.RecordSale(context.Background(), receiptID, issuedAt, mustDecimal("42.00"))
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = svc.RecordSale(context.Background(), receiptID, issuedAt, mustDecimal("42.00"))
	require.NoError(t, err)
	assert.False(t, applied, "replaying a counted receipt must not apply again")

	report, err := reports.GetByDate(context.Background(), DayOf(issuedAt))
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, int64(1), report.NumberOfOrders)
	assert.True(t, report.TotalSales.Equal(mustDecimal("42.00")))
}

func TestRecordSale_ConcurrentDistinctReceipts(t *testing.T) {
	reports := newMemReportRepo()
	svc := NewReportService(reports, zap.NewNop())
	issuedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	const sales = 50
	var wg sync.WaitGroup
	for i := 0; i < sales; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordSale(context.Background(), uuid.New(), issuedAt, mustDecimal("10.00"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	report, err := reports.GetByDate(context.Background(), DayOf(issuedAt))
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, int64(sales), report.NumberOfOrders)
	assert.True(t, report.TotalSales.Equal(mustDecimal("500.00")))
}

func TestGetSummary_SumsInclusiveDayRange(t *testing.T) {
	reports := newMemReportRepo()
	svc := NewReportService(reports, zap.NewNop())

	days := []time.Time{
		time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		_, err := svc.RecordSale(context.Background(), uuid.New(), day, mustDecimal("100.00"))
		require.NoError(t, err)
	}

	summary, err := svc.GetSummary(context.Background(), days[0], days[2])
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.NumberOfOrders)
	assert.True(t, summary.TotalSales.Equal(mustDecimal("300.00")))

	// Narrower range leaves the outside day out.
	summary, err = svc.GetSummary(context.Background(), days[1], days[2])
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.NumberOfOrders)
	assert.True(t, summary.TotalSales.Equal(mustDecimal("200.00")))
}

func TestGetSummary_RejectsInvertedRange(t *testing.T) {
	svc := NewReportService(newMemReportRepo(), zap.NewNop())

	_, err := svc.GetSummary(context.Background(),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
