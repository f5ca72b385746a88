package util

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisClientWithConn(client, ttl), mr
}

// ===================== GetSummary Tests =====================

func TestGetSummary_Miss(t *testing.T) {
	// Arrange
	cache, _ := newTestCache(t, time.Minute)

	// Act
	summary, err := cache.GetSummary(context.Background(), 1)

	// Assert: промах - не ошибка
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestGetSummary_Hit(t *testing.T) {
	// Arrange
	cache, _ := newTestCache(t, time.Minute)
	require.NoError(t, cache.SetSummary(context.Background(), 1, "Mostly positive feedback."))

	// Act
	summary, err := cache.GetSummary(context.Background(), 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Mostly positive feedback.", summary)
}

func TestGetSummary_ConnectionError(t *testing.T) {
	// Arrange
	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	// Act
	_, err := cache.GetSummary(context.Background(), 1)

	// Assert
	assert.Error(t, err)
}

// ===================== SetSummary Tests =====================

func TestSetSummary_AppliesTTL(t *testing.T) {
	// Arrange
	cache, mr := newTestCache(t, time.Minute)

	// Act
	err := cache.SetSummary(context.Background(), 7, "summary text")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("ai_summary:7"))
}

func TestSetSummary_ExpiresAfterTTL(t *testing.T) {
	// Arrange
	cache, mr := newTestCache(t, time.Minute)
	require.NoError(t, cache.SetSummary(context.Background(), 1, "summary text"))

	// Act
	mr.FastForward(2 * time.Minute)
	summary, err := cache.GetSummary(context.Background(), 1)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, summary)
}

// ===================== InvalidateSummary Tests =====================

func TestInvalidateSummary_RemovesKey(t *testing.T) {
	// Arrange
	cache, _ := newTestCache(t, time.Minute)
	require.NoError(t, cache.SetSummary(context.Background(), 1, "stale summary"))

	// Act
	err := cache.InvalidateSummary(context.Background(), 1)

	// Assert
	require.NoError(t, err)

	summary, err := cache.GetSummary(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestInvalidateSummary_MissingKey_NoError(t *testing.T) {
	// Arrange
	cache, _ := newTestCache(t, time.Minute)

	// Act
	err := cache.InvalidateSummary(context.Background(), 42)

	// Assert
	assert.NoError(t, err)
}

// ===================== Key Isolation Tests =====================

func TestSummaryKeys_PerProduct(t *testing.T) {
	// Arrange
	cache, _ := newTestCache(t, time.Minute)
	require.NoError(t, cache.SetSummary(context.Background(), 1, "first"))
	require.NoError(t, cache.SetSummary(context.Background(), 2, "second"))

	// Act
	require.NoError(t, cache.InvalidateSummary(context.Background(), 1))

	// Assert: соседний ключ не задет
	summary, err := cache.GetSummary(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "second", summary)
}
