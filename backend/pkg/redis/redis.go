package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cafemap/backend/config"
)

// ErrCacheMiss 캐시에 값이 없음
var ErrCacheMiss = errors.New("cache miss")

// Client Redis 클라이언트 래퍼
// Token 블랙리스트, 요청 속도 제한, 영업 상태 캐시에 사용한다
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient Redis 연결 생성 후 Ping 헬스체크
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	logger.Info("Redis 연결 성공", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 블랙리스트 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken JWT ID 를 블랙리스트에 등록. TTL 은 토큰 잔여 유효기간
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 이미 만료된 토큰
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted JWT ID 가 블랙리스트에 있는지 확인
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 요청 속도 제한 ──

// CheckRateLimit 고정 윈도우 카운터 방식의 속도 제한
// 윈도우 내 요청 수가 limit 이하이면 true
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// ── 영업 상태 캐시 ──

const statusCachePrefix = "place:status:"

// SetStatusCache 장소의 최신 영업 상태 스냅샷(JSON)을 캐시에 저장
func (c *Client) SetStatusCache(ctx context.Context, kakaoID string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, statusCachePrefix+kakaoID, payload, ttl).Err()
}

// GetStatusCache 캐시된 영업 상태 조회. 없으면 ErrCacheMiss
func (c *Client) GetStatusCache(ctx context.Context, kakaoID string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, statusCachePrefix+kakaoID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Close Redis 연결 종료
func (c *Client) Close() error {
	return c.rdb.Close()
}
