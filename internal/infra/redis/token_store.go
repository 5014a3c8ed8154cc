package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "auth:revoked:"

// TokenStore 记录已注销的 token（按 jti），过期时间与 token 剩余有效期一致
type TokenStore struct {
	rdb redis.Cmdable
}

func NewTokenStore(rdb redis.Cmdable) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func revokedKey(jti string) string {
	return revokedTokenPrefix + jti
}

// Revoke 注销 token
func (s *TokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked 判断 token 是否已注销
func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.rdb.Get(ctx, revokedKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return true, nil
}

// Ping 检查连通性
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
