package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/medgear/medgear_api/internal/middleware"
	"github.com/medgear/medgear_api/internal/service"
	"github.com/medgear/medgear_api/internal/utils"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	adminAuth   *service.AdminAuthService
	rateLimiter *middleware.InvalidAuthRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(adminAuth *service.AdminAuthService, rateLimiter *middleware.InvalidAuthRateLimiter) *AuthHandler {
	return &AuthHandler{adminAuth: adminAuth, rateLimiter: rateLimiter}
}

// Login handles POST /v1/admin/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.rateLimiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed attempts, try again later")
		return
	}

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	token, err := h.adminAuth.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case utils.ErrAccountPending:
			utils.Error(c, 403, "ACCOUNT_PENDING", "Account is awaiting approval")
		case utils.ErrAccountRejected:
			utils.Error(c, 403, "ACCOUNT_REJECTED", "Account has been rejected")
		default:
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		}
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
	})
}

// Register handles POST /v1/admin/auth/register
// New accounts always start pending with no privileges.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	id, err := h.adminAuth.RegisterAdmin(req.Name, req.Email, req.Password)
	if err != nil {
		if err == utils.ErrDuplicateAdmin {
			utils.Error(c, 409, "EMAIL_EXISTS", "An account with this email already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to register account")
		return
	}

	utils.Success(c, 201, "Registration submitted, awaiting approval", gin.H{
		"id":     id,
		"status": "pending",
	})
}

// Me handles GET /v1/admin/auth/me and returns the caller's effective
// authorization state, with privileges already masked by approval status.
func (h *AuthHandler) Me(c *gin.Context) {
	state, err := h.adminAuth.ResolveAdminState(c.GetInt("user_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to resolve account state")
		return
	}
	utils.Success(c, 200, "Account state retrieved", state)
}
