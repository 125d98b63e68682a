package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medgear/medgear_api/internal/service"
	"github.com/medgear/medgear_api/internal/utils"
)

// QuoteHandler handles the public, anonymous quote request endpoint.
type QuoteHandler struct {
	orders *service.OrderService
}

// NewQuoteHandler constructs a QuoteHandler.
func NewQuoteHandler(orders *service.OrderService) *QuoteHandler {
	return &QuoteHandler{orders: orders}
}

// quoteRequest is the public submission payload. Phone is optional here;
// anonymous visitors often only leave an email.
type quoteRequest struct {
	ProductID int     `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone"`
	Company   *string `json:"company"`
	Message   *string `json:"message"`
}

// SubmitQuoteRequest handles POST /v1/quote-requests
func (h *QuoteHandler) SubmitQuoteRequest(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	order, err := h.orders.SubmitQuoteRequest(req.ProductID, req.Quantity, service.ContactInfo{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
	}, nil)
	if err != nil {
		switch err {
		case utils.ErrInvalidQuantity:
			utils.Error(c, 400, "INVALID_QUANTITY", "Quantity must be at least 1")
		case utils.ErrMissingContact:
			utils.Error(c, 400, "MISSING_CONTACT", "Name and email are required")
		case utils.ErrProductNotFound:
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to submit quote request")
		}
		return
	}

	utils.Success(c, 201, "Quote request submitted", order)
}
