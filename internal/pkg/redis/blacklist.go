package redis

import (
	"context"
	"time"

	"gymmate/internal/pkg/consts"
)

// TokenBlacklist 基于 Redis 的 Token 黑名单，key 为 Token 签名
type TokenBlacklist struct{}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{}
}

func (s *TokenBlacklist) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	return SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, ttl)
}

func (s *TokenBlacklist) IsRevoked(ctx context.Context, signature string) (bool, error) {
	return Exists(ctx, consts.TokenBlacklistKey+signature)
}
