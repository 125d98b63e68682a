package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/medgear/medgear_api/internal/models"
	"github.com/medgear/medgear_api/internal/service"
	"github.com/medgear/medgear_api/internal/utils"
)

// PrivilegeMiddleware gates admin routes on the tiered authorization
// model. It re-resolves the admin account from the store on every request
// rather than trusting token claims: a token minted before a rejection or
// privilege change must stop working immediately, and unknown states deny.
type PrivilegeMiddleware struct {
	adminAuth *service.AdminAuthService
}

// NewPrivilegeMiddleware constructs a new PrivilegeMiddleware.
func NewPrivilegeMiddleware(adminAuth *service.AdminAuthService) *PrivilegeMiddleware {
	return &PrivilegeMiddleware{adminAuth: adminAuth}
}

// Require returns a middleware that only admits approved admins holding
// the named privilege (super admins hold every privilege implicitly).
func (m *PrivilegeMiddleware) Require(p models.Privilege) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := c.GetInt("user_id")
		if adminID == 0 || !m.adminAuth.CheckPrivilege(adminID, p) {
			utils.Error(c, 403, "NOT_ALLOWED", "Missing required privilege: "+string(p))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin returns a middleware that only admits approved super
// admins; used for the admin-account management surface.
func (m *PrivilegeMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := c.GetInt("user_id")
		state, err := m.adminAuth.ResolveAdminState(adminID)
		if err != nil || state.Status != models.AdminStatusApproved || !state.IsSuperAdmin {
			utils.Error(c, 403, "NOT_ALLOWED", "Super admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
