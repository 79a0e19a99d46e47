package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gymmate/internal/pkg/logger"
	"gymmate/internal/pkg/response"
	"gymmate/internal/pkg/security"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(blacklist security.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Detail(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Detail(c, http.StatusUnauthorized, "Invalid token.")
			c.Abort()
			return
		}

		revoked, err := blacklist.IsRevoked(c.Request.Context(), signature)
		if err != nil {
			response.Detail(c, http.StatusInternalServerError, "A server error occurred.")
			c.Abort()
			return
		}
		if revoked {
			response.Detail(c, http.StatusUnauthorized, "Invalid token.")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Detail(c, http.StatusUnauthorized, "Invalid token.")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("is_staff", claims.IsStaff)
		c.Set("claims", claims)
		c.Set("token", tokenString)

		newCtx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
