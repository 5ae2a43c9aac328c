package handler

import (
	"time"

	"github.com/danuartha/warungpos-api/internal/application/service"
	"github.com/danuartha/warungpos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles daily sales report queries
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSummary aggregates daily report rows over an inclusive date range.
// Both dates default to today.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	now := time.Now().UTC()
	from := now
	to := now

	if fromStr := c.Query("start_date"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			response.BadRequest(c, "start_date must be YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if toStr := c.Query("end_date"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			response.BadRequest(c, "end_date must be YYYY-MM-DD")
			return
		}
		to = parsed
	}

	summary, err := h.reportService.GetSummary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report summary retrieved successfully", summary)
}
