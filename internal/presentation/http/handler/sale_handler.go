package handler

import (
	"github.com/danuartha/warungpos-api/internal/application/service"
	"github.com/danuartha/warungpos-api/internal/domain/enum"
	"github.com/danuartha/warungpos-api/internal/presentation/http/dto/request"
	"github.com/danuartha/warungpos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles the checkout: it turns the cart payload into an order, a
// receipt and an updated daily aggregate
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateSaleInput{
		AmountPaid:    decimal.NewFromFloat(req.AmountPaid).Round(2),
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		CashierID:     req.CashierID,
		Description:   req.Description,
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, service.CartLine{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: decimal.NewFromFloat(line.UnitPrice).Round(2),
		})
	}

	outcome, err := h.saleService.CreateOrderWithReceipt(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Sale completed successfully"
	if outcome.Warning != "" {
		message = outcome.Warning
	}
	response.Created(c, message, outcome)
}
