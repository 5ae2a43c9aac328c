package handler

import (
	"strconv"
	"time"

	domainRepo "github.com/danuartha/warungpos-api/internal/domain/repository"
	"github.com/danuartha/warungpos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// parseOrderFilter reads pagination and date-range query parameters shared
// by the order and receipt listings
func parseOrderFilter(c *gin.Context) *domainRepo.OrderFilterParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &domainRepo.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			// End of the named day, exclusive upper bound.
			end := endDate.AddDate(0, 0, 1)
			params.EndDate = &end
		}
	}

	return params
}
