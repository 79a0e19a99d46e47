package security

import (
	"context"
	"time"
)

// TokenBlacklist 已注销 Token 的黑名单存储
type TokenBlacklist interface {
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
	IsRevoked(ctx context.Context, signature string) (bool, error)
}
