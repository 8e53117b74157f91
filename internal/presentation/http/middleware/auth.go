package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/slowlifemotors/garage-pos/internal/presentation/http/dto/response"
	"github.com/slowlifemotors/garage-pos/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// Validate the token
		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Set staff info in context
		c.Set("staff_id", claims.StaffID)
		c.Set("staff_email", claims.Email)
		c.Set("staff_role", claims.Role)
		c.Set("staff_commission", claims.CommissionPercent)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("staff_role")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		staffRole, ok := role.(string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		hasRole := false
		for _, r := range roles {
			if staffRole == r {
				hasRole = true
				break
			}
		}

		if !hasRole {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}
