package middleware

import (
	"net/http"

	"shiffy/utils"

	"github.com/gin-gonic/gin"
)

// Context keys populated by ShopContextMiddleware.
const (
	CtxShopID = "shopID"
	CtxUserID = "userID"
	CtxRole   = "role"
)

// ShopContextMiddleware copies the identity headers set by the upstream auth
// provider into the gin context. Requests without a shop, user or known role
// are rejected.
func ShopContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID := c.GetHeader(utils.HeaderShopID)
		userID := c.GetHeader(utils.HeaderUserID)
		role := c.GetHeader(utils.HeaderUserRole)

		if shopID == "" || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing identity headers. Expected " + utils.HeaderShopID + " and " + utils.HeaderUserID + ".",
			})
			return
		}
		switch role {
		case utils.RoleManager, utils.RoleEmployee:
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid or missing '" + utils.HeaderUserRole + "' header. Expected 'manager' or 'employee'.",
			})
			return
		}

		c.Set(CtxShopID, shopID)
		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// RequireRole lets only the given roles through. It must run after ShopContextMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role for this operation"})
	}
}
