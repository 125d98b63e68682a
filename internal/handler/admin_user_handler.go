package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/service"
	"github.com/medgear/medgear_api/internal/utils"
)

// AdminUserHandler handles admin account management endpoints. Every
// operation here is restricted to approved super admins; the service layer
// enforces that independently of route middleware.
type AdminUserHandler struct {
	adminAuth *service.AdminAuthService
}

// NewAdminUserHandler constructs an AdminUserHandler.
func NewAdminUserHandler(adminAuth *service.AdminAuthService) *AdminUserHandler {
	return &AdminUserHandler{adminAuth: adminAuth}
}

// ListAdmins handles GET /v1/admin/admins?status=pending
func (h *AdminUserHandler) ListAdmins(c *gin.Context) {
	status := models.AdminStatus(c.Query("status"))
	if status != models.AdminStatusNone && status != models.AdminStatusPending &&
		status != models.AdminStatusApproved && status != models.AdminStatusRejected {
		utils.Error(c, 400, "INVALID_STATUS", "Unknown status filter")
		return
	}

	admins, err := h.adminAuth.ListAdmins(c.GetInt("user_id"), status)
	if err != nil {
		if err == utils.ErrNotAllowed {
			utils.Error(c, 403, "NOT_ALLOWED", "Super admin access required")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve admin accounts")
		return
	}

	utils.Success(c, 200, "Admin accounts retrieved", gin.H{
		"admins": admins,
		"total":  len(admins),
	})
}

// ApproveAdmin handles POST /v1/admin/admins/:id/approve
func (h *AdminUserHandler) ApproveAdmin(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid admin ID")
		return
	}

	var req models.PrivilegeGrants
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.adminAuth.ApproveAdmin(targetID, c.GetInt("user_id"), req); err != nil {
		switch err {
		case utils.ErrNotAllowed:
			utils.Error(c, 403, "NOT_ALLOWED", "Super admin access required")
		case utils.ErrAdminNotFound:
			utils.Error(c, 404, "ADMIN_NOT_FOUND", "No pending account with this ID")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to approve account")
		}
		return
	}

	utils.Success(c, 200, "Account approved", nil)
}

// RejectAdmin handles POST /v1/admin/admins/:id/reject
func (h *AdminUserHandler) RejectAdmin(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid admin ID")
		return
	}

	if err := h.adminAuth.RejectAdmin(targetID, c.GetInt("user_id")); err != nil {
		switch err {
		case utils.ErrNotAllowed:
			utils.Error(c, 403, "NOT_ALLOWED", "Super admin access required")
		case utils.ErrAdminNotFound:
			utils.Error(c, 404, "ADMIN_NOT_FOUND", "No pending account with this ID")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to reject account")
		}
		return
	}

	utils.Success(c, 200, "Account rejected", nil)
}
