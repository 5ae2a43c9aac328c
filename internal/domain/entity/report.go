package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportTypeDaily is the only report granularity the aggregator produces.
const ReportTypeDaily = "daily"

// DailyReport is the per-calendar-day rolling sales aggregate. ReportDate is
// normalized to UTC midnight. Rows are created lazily on the first sale of a
// day and only ever incremented after that.
type DailyReport struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReportDate     time.Time       `gorm:"type:date;not null;uniqueIndex:idx_report_date_type" json:"report_date"`
	ReportType     string          `gorm:"size:20;not null;uniqueIndex:idx_report_date_type" json:"report_type"`
	TotalSales     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_sales"`
	NumberOfOrders int64           `gorm:"not null" json:"number_of_orders"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new daily report
func (d *DailyReport) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DailyReport model
func (DailyReport) TableName() string {
	return "daily_reports"
}

// ReportLedgerEntry marks one receipt as folded into the daily aggregate.
// The primary key on ReceiptID means a retried aggregation for the same
// receipt inserts nothing and therefore increments nothing.
type ReportLedgerEntry struct {
	ReceiptID  uuid.UUID `gorm:"type:uuid;primary_key" json:"receipt_id"`
	ReportDate time.Time `gorm:"type:date;not null;index" json:"report_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the table name for the ReportLedgerEntry model
func (ReportLedgerEntry) TableName() string {
	return "report_ledger_entries"
}
