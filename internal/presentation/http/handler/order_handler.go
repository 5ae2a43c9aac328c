package handler

import (
	"github.com/danuartha/warungpos-api/internal/application/service"
	"github.com/danuartha/warungpos-api/internal/presentation/http/dto/response"
	"github.com/danuartha/warungpos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderHandler handles order and receipt read paths
type OrderHandler struct {
	queryService *service.OrderQueryService
	log          *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(queryService *service.OrderQueryService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{queryService: queryService, log: log}
}

// ListOrders handles listing orders newest-first
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := parseOrderFilter(c)

	result, err := h.queryService.ListOrders(c.Request.Context(), params)
	if err != nil {
		h.log.Warn("order listing degraded", zap.Error(err))
		response.DegradedList[response.OrderSummary](c, "Orders are temporarily unavailable")
		return
	}

	summaries := make([]response.OrderSummary, 0, len(result.Items))
	for i := range result.Items {
		summaries = append(summaries, response.NewOrderSummary(&result.Items[i]))
	}
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully",
		pagination.NewPaginatedResult(summaries, result.Pagination))
}

// GetOrder handles fetching one order's full line breakdown
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.queryService.GetOrderDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", response.NewOrderDetail(order))
}

// ListReceipts handles listing receipts newest-first
func (h *OrderHandler) ListReceipts(c *gin.Context) {
	params := parseOrderFilter(c)

	result, err := h.queryService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		h.log.Warn("receipt listing degraded", zap.Error(err))
		response.DegradedList[response.ReceiptSummary](c, "Receipts are temporarily unavailable")
		return
	}

	summaries := make([]response.ReceiptSummary, 0, len(result.Items))
	for i := range result.Items {
		summaries = append(summaries, response.NewReceiptSummary(&result.Items[i]))
	}
	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully",
		pagination.NewPaginatedResult(summaries, result.Pagination))
}

// GetReceipt handles fetching one receipt
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt id")
		return
	}

	receipt, err := h.queryService.GetReceiptByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}
