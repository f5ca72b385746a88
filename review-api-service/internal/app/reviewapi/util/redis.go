package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"productreview/pkg/metrics"
)

const (
	serviceName     = "review-api"
	summaryKeyFmt   = "ai_summary:%d"
	summaryKeyLabel = "ai_summary"
)

// RedisClient - кэш AI-резюме товаров. Резюме детерминированно
// строится из отзывов, поэтому инвалидируется при каждом новом отзыве.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int, ttl time.Duration) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client, ttl: ttl}, nil
}

// NewRedisClientWithConn оборачивает готовое соединение, для тестов
func NewRedisClientWithConn(client *redis.Client, ttl time.Duration) *RedisClient {
	return &RedisClient{client: client, ttl: ttl}
}

// GetSummary возвращает кэшированное резюме товара.
// Промах кэша - ("", nil), не ошибка.
func (r *RedisClient) GetSummary(ctx context.Context, productID int64) (string, error) {
	data, err := r.client.Get(ctx, fmt.Sprintf(summaryKeyFmt, productID)).Result()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, summaryKeyLabel)
			return "", nil
		}
		metrics.RecordRedisError(serviceName, "get")
		return "", fmt.Errorf("failed to get summary from cache: %w", err)
	}

	metrics.RecordCacheHit(serviceName, summaryKeyLabel)
	return data, nil
}

// SetSummary кэширует резюме товара на срок жизни кэша
func (r *RedisClient) SetSummary(ctx context.Context, productID int64, summary string) error {
	if err := r.client.Set(ctx, fmt.Sprintf(summaryKeyFmt, productID), summary, r.ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, "set")
		return fmt.Errorf("failed to set summary in cache: %w", err)
	}
	return nil
}

// InvalidateSummary сбрасывает кэш резюме после нового отзыва
func (r *RedisClient) InvalidateSummary(ctx context.Context, productID int64) error {
	if err := r.client.Del(ctx, fmt.Sprintf(summaryKeyFmt, productID)).Err(); err != nil {
		metrics.RecordRedisError(serviceName, "del")
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
