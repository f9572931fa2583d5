package middleware

import (
	"net/http"
	"strings"

	"github.com/formteam/formtrack-backend/internal/database/repository"
	"github.com/formteam/formtrack-backend/internal/models"
	"github.com/formteam/formtrack-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BearerTokenMiddleware struct {
	db *gorm.DB
}

func NewBearerTokenMiddleware(db *gorm.DB) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{db: db}
}

// BearerTokenAuthMiddleware validates the JWT and sets admin info in context
func (m *BearerTokenMiddleware) BearerTokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		tokenInfo, err := auth.NewAuthService(m.db).ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		admin, err := repository.NewAdminRepository(m.db).GetByID(tokenInfo.AdminID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not found"})
			c.Abort()
			return
		}

		// Approval can be revoked after a token was issued; re-check per request.
		if !admin.IsApproved() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is not approved"})
			c.Abort()
			return
		}

		c.Set("admin_id", admin.ID)
		c.Set("admin", admin)
		c.Set("role", admin.Role)
		c.Set("token_info", tokenInfo)

		c.Next()
	}
}

// SuperAdminOnly rejects requests from admins without the superadmin role.
// It must run after BearerTokenAuthMiddleware.
func SuperAdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := c.MustGet("admin").(*models.Admin)
		if !admin.IsSuperAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Superadmin privileges required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
