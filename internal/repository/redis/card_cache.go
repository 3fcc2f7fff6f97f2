package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agenticWallet/domain"

	"github.com/redis/go-redis/v9"
)

const cardCacheTTL = 5 * time.Minute

// CardCache keeps a per-user snapshot of active cards so the recommend path
// does not hit postgres on every purchase.
type CardCache struct {
	client *redis.Client
}

func NewCardCache(client *redis.Client) *CardCache {
	return &CardCache{
		client: client,
	}
}

func cardKey(userID uint) string {
	return fmt.Sprintf("cards:user:%d", userID)
}

// Get returns the cached cards and whether the cache had an entry. Cache
// errors are reported as a miss; the caller falls through to postgres.
func (c *CardCache) Get(ctx context.Context, userID uint) ([]domain.CreditCard, bool) {
	val, err := c.client.Get(ctx, cardKey(userID)).Result()
	if err != nil {
		return nil, false
	}

	var cards []domain.CreditCard
	if err := json.Unmarshal([]byte(val), &cards); err != nil {
		return nil, false
	}

	return cards, true
}

func (c *CardCache) Set(ctx context.Context, userID uint, cards []domain.CreditCard) error {
	jsonData, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("failed to marshal cards: %w", err)
	}

	if err := c.client.Set(ctx, cardKey(userID), jsonData, cardCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache cards: %w", err)
	}

	return nil
}

// Invalidate drops the snapshot after any card mutation.
func (c *CardCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, cardKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate card cache: %w", err)
	}

	return nil
}
