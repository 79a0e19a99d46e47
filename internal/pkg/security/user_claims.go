package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "gymmate"
	JWTExpirationTime        = time.Hour * 24
)

// 资源组访问范围
const (
	ScopeAccounts  = "accounts"
	ScopeExercises = "exercises"
	ScopeMetrics   = "metrics"
	ScopeWorkouts  = "workouts"
)

// AllScopes 签发 Token 时默认授予的全部访问范围
var AllScopes = []string{ScopeAccounts, ScopeExercises, ScopeMetrics, ScopeWorkouts}

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID  uint64   `json:"user_id"`
	IsStaff bool     `json:"is_staff"`
	Scopes  []string `json:"scopes"`
	jwt.RegisteredClaims
}

// HasScope 判断 Token 是否携带指定访问范围
func (c *UserClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
