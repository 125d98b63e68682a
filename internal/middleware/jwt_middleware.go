package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medgear/medgear_api/internal/utils"
)

// JWTMiddleware validates session bearer tokens for a single role and
// places the identity into the request context. Identity always travels in
// the context; there is no ambient current-user state.
type JWTMiddleware struct {
	secret string
}

// NewJWTMiddleware constructs a JWTMiddleware with the signing secret.
func NewJWTMiddleware(secret string) *JWTMiddleware {
	return &JWTMiddleware{secret: secret}
}

// Handle returns a middleware that requires a valid token with the given role.
func (m *JWTMiddleware) Handle(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1], m.secret)
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}
		if claims.Role != role {
			utils.Error(c, 403, "FORBIDDEN", "Token role not permitted here")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}
