package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/visithercegovina/tours-backend/internal/tours/domain"
)

const activeToursKey = "tours:active"

// ToursCache is a small Redis read cache for the public tour listing, the
// hottest endpoint. Every tour or review mutation invalidates it; a short
// TTL bounds staleness if an invalidation is lost. Cache failures degrade to
// the store, never to an error.
type ToursCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewToursCache(client *redis.Client, ttl time.Duration) *ToursCache {
	return &ToursCache{client: client, ttl: ttl}
}

func (c *ToursCache) GetTours(ctx context.Context) ([]domain.Tour, bool) {
	data, err := c.client.Get(ctx, activeToursKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] get failed: %v", err)
		return nil, false
	}

	var tours []domain.Tour
	if err := json.Unmarshal([]byte(data), &tours); err != nil {
		log.Printf("[cache] corrupt entry, dropping: %v", err)
		c.Invalidate(ctx)
		return nil, false
	}

	return tours, true
}

func (c *ToursCache) SetTours(ctx context.Context, tours []domain.Tour) {
	data, err := json.Marshal(tours)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, activeToursKey, data, c.ttl).Err(); err != nil {
		log.Printf("[cache] set failed: %v", err)
	}
}

func (c *ToursCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, activeToursKey).Err(); err != nil {
		log.Printf("[cache] invalidate failed: %v", err)
	}
}
