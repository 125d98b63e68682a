package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/repository"
	"github.com/medgear/medgear_api/internal/service"
	"github.com/medgear/medgear_api/internal/utils"
)

// AdminOrderHandler handles back-office order and quote management.
// Routes using it are gated on the process_orders privilege; status changes
// and quote attachment re-check the actor inside the service as well.
type AdminOrderHandler struct {
	orders    *service.OrderService
	orderRepo *repository.OrderRepository
}

// NewAdminOrderHandler constructs an AdminOrderHandler.
func NewAdminOrderHandler(orders *service.OrderService, orderRepo *repository.OrderRepository) *AdminOrderHandler {
	return &AdminOrderHandler{orders: orders, orderRepo: orderRepo}
}

// ListOrders handles GET /v1/admin/orders
func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	filter := &repository.OrderFilter{
		Page:  1,
		Limit: 50,
	}
	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).Valid() {
			utils.Error(c, 400, "INVALID_STATUS", "Unknown order status")
			return
		}
		filter.Status = &status
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}
	if start := c.Query("startDate"); start != "" {
		filter.StartDate = &start
	}
	if end := c.Query("endDate"); end != "" {
		filter.EndDate = &end
	}
	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}

	result, err := h.orderRepo.GetAllAdmin(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve orders")
		return
	}

	utils.SuccessWithPagination(c, 200, "Orders retrieved", result.Orders,
		result.Page, result.Limit, result.TotalItems)
}

// GetOrder handles GET /v1/admin/orders/:id
func (h *AdminOrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid order ID")
		return
	}

	order, err := h.orderRepo.GetByID(id)
	if err != nil {
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	utils.Success(c, 200, "Order retrieved", order)
}

// UpdateStatus handles PUT /v1/admin/orders/:id/status
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid order ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	err = h.orders.TransitionStatus(id, models.OrderStatus(req.Status), c.GetInt("user_id"))
	if err != nil {
		switch err {
		case utils.ErrNotAllowed:
			utils.Error(c, 403, "NOT_ALLOWED", "Missing process_orders privilege")
		case utils.ErrInvalidStatus:
			utils.Error(c, 400, "INVALID_STATUS", "Unknown order status")
		case utils.ErrInvalidTransition:
			utils.Error(c, 409, "INVALID_TRANSITION", "Status change not allowed from the current status")
		case utils.ErrOrderNotFound:
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update order status")
		}
		return
	}

	utils.Success(c, 200, "Order status updated", nil)
}

// AttachQuote handles PUT /v1/admin/orders/:id/quote
func (h *AdminOrderHandler) AttachQuote(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid order ID")
		return
	}

	var req struct {
		QuotedPrice string     `json:"quotedPrice" binding:"required"`
		AdminNotes  *string    `json:"adminNotes"`
		ExpiresAt   *time.Time `json:"expiresAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	price, err := decimal.NewFromString(req.QuotedPrice)
	if err != nil {
		utils.Error(c, 400, "INVALID_PRICE", "Quoted price must be a decimal string")
		return
	}

	err = h.orders.AttachQuote(id, price, req.AdminNotes, req.ExpiresAt, c.GetInt("user_id"))
	if err != nil {
		switch err {
		case utils.ErrNotAllowed:
			utils.Error(c, 403, "NOT_ALLOWED", "Missing process_orders privilege")
		case utils.ErrNegativePrice:
			utils.Error(c, 400, "NEGATIVE_PRICE", "Quoted price must not be negative")
		case utils.ErrOrderNotFound:
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to attach quote")
		}
		return
	}

	utils.Success(c, 200, "Quote attached", nil)
}

// GetStats handles GET /v1/admin/orders/stats
func (h *AdminOrderHandler) GetStats(c *gin.Context) {
	stats, err := h.orderRepo.GetStats()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve order statistics")
		return
	}

	trend, err := h.orderRepo.GetDailyTrend()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve order trend")
		return
	}

	utils.Success(c, 200, "Order statistics retrieved", gin.H{
		"stats": stats,
		"trend": trend,
	})
}
