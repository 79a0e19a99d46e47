package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymmate/internal/pkg/response"
	"gymmate/internal/pkg/security"
)

// CheckStaff 仅管理员可写的路由在鉴权之后挂载该中间件
func CheckStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_staff") {
			response.Detail(c, http.StatusForbidden, "You do not have permission to perform this action.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CheckScope 检查令牌是否授权访问对应资源域
func CheckScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("claims")
		if !exists {
			response.Detail(c, http.StatusForbidden, "You do not have permission to perform this action.")
			c.Abort()
			return
		}
		claims, ok := value.(*security.UserClaims)
		if !ok || !claims.HasScope(scope) {
			response.Detail(c, http.StatusForbidden, "You do not have permission to perform this action.")
			c.Abort()
			return
		}
		c.Next()
	}
}
