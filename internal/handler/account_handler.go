package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medgear/medgear_api/internal/repository"
	"github.com/medgear/medgear_api/internal/service"
	"github.com/medgear/medgear_api/internal/utils"
)

// AccountHandler handles customer-facing account endpoints: registration,
// login, profile, and the customer's own quote requests.
type AccountHandler struct {
	customerAuth *service.CustomerAuthService
	orders       *service.OrderService
	orderRepo    *repository.OrderRepository
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(customerAuth *service.CustomerAuthService, orders *service.OrderService, orderRepo *repository.OrderRepository) *AccountHandler {
	return &AccountHandler{customerAuth: customerAuth, orders: orders, orderRepo: orderRepo}
}

// Register handles POST /v1/account/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Email    string  `json:"email" binding:"required,email"`
		Phone    string  `json:"phone" binding:"required"`
		Password string  `json:"password" binding:"required,min=8"`
		Company  *string `json:"company"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	customer, err := h.customerAuth.Register(req.Name, req.Email, req.Phone, req.Password, req.Company)
	if err != nil {
		if err == utils.ErrDuplicateCustomer {
			utils.Error(c, 409, "EMAIL_EXISTS", "An account with this email already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to register account")
		return
	}

	utils.Success(c, 201, "Account created", customer)
}

// Login handles POST /v1/account/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	token, err := h.customerAuth.Login(req.Email, req.Password)
	if err != nil {
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
	})
}

// Logout handles POST /v1/account/logout
// Tokens are stateless; the client discards its copy. The endpoint exists
// so the sign-out flow has a server acknowledgement.
func (h *AccountHandler) Logout(c *gin.Context) {
	utils.Success(c, 200, "Logged out", nil)
}

// Me handles GET /v1/account/me
func (h *AccountHandler) Me(c *gin.Context) {
	customer, err := h.customerAuth.GetByID(c.GetInt("user_id"))
	if err != nil {
		utils.Error(c, 404, "ACCOUNT_NOT_FOUND", "Account not found")
		return
	}
	utils.Success(c, 200, "Account retrieved", customer)
}

// ListMyRequests handles GET /v1/account/quote-requests
func (h *AccountHandler) ListMyRequests(c *gin.Context) {
	orders, err := h.orderRepo.GetByCustomer(c.GetInt("user_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve quote requests")
		return
	}
	utils.Success(c, 200, "Quote requests retrieved", gin.H{
		"requests": orders,
		"total":    len(orders),
	})
}

// SubmitQuoteRequest handles POST /v1/account/quote-requests
// Unlike the anonymous endpoint, a phone number is required here.
func (h *AccountHandler) SubmitQuoteRequest(c *gin.Context) {
	var req struct {
		ProductID int     `json:"productId" binding:"required"`
		Quantity  int     `json:"quantity" binding:"required"`
		Name      string  `json:"name" binding:"required"`
		Email     string  `json:"email" binding:"required,email"`
		Phone     string  `json:"phone"`
		Company   *string `json:"company"`
		Message   *string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	customerID := c.GetInt("user_id")
	order, err := h.orders.SubmitQuoteRequest(req.ProductID, req.Quantity, service.ContactInfo{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
	}, &customerID)
	if err != nil {
		switch err {
		case utils.ErrInvalidQuantity:
			utils.Error(c, 400, "INVALID_QUANTITY", "Quantity must be at least 1")
		case utils.ErrMissingContact:
			utils.Error(c, 400, "MISSING_CONTACT", "Name and email are required")
		case utils.ErrPhoneRequired:
			utils.Error(c, 400, "PHONE_REQUIRED", "Phone number is required")
		case utils.ErrProductNotFound:
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to submit quote request")
		}
		return
	}

	utils.Success(c, 201, "Quote request submitted", order)
}
