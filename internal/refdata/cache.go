package refdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mapsee-lab/placesync/internal/domain"
	"github.com/mapsee-lab/placesync/internal/logger"
)

const interestsKey = "refdata:interests"

// InterestSource loads the interest list from its backing store.
type InterestSource interface {
	ListAll(ctx context.Context) ([]domain.Interest, error)
}

// InterestCache is a Redis read-through cache over the interest table.
// The table changes only on deploys, so a stale window of one TTL is fine.
type InterestCache struct {
	client *redis.Client
	source InterestSource
	ttl    time.Duration
	logger logger.Logger
}

func NewInterestCache(client *redis.Client, source InterestSource, ttl time.Duration, log logger.Logger) *InterestCache {
	return &InterestCache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: log,
	}
}

// List returns the interest list, serving from Redis when possible. Cache
// errors degrade to a direct database read rather than failing the request.
func (c *InterestCache) List(ctx context.Context) ([]domain.Interest, error) {
	cached, err := c.client.Get(ctx, interestsKey).Bytes()
	if err == nil {
		var interests []domain.Interest
		if unmarshalErr := json.Unmarshal(cached, &interests); unmarshalErr == nil {
			return interests, nil
		}
		c.logger.Warn("Dropping undecodable cached interests",
			logger.String("redis_key", interestsKey),
		)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Error("Redis error reading interests cache",
			logger.String("redis_key", interestsKey),
			logger.Error(err),
		)
	}

	interests, err := c.source.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load interests: %w", err)
	}

	payload, err := json.Marshal(interests)
	if err != nil {
		return nil, fmt.Errorf("encode interests for cache: %w", err)
	}
	if setErr := c.client.Set(ctx, interestsKey, payload, c.ttl).Err(); setErr != nil {
		c.logger.Error("Redis error writing interests cache",
			logger.String("redis_key", interestsKey),
			logger.Error(setErr),
		)
	}

	return interests, nil
}

// Invalidate drops the cached interest list.
func (c *InterestCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, interestsKey).Err(); err != nil {
		return fmt.Errorf("invalidate interests cache: %w", err)
	}
	return nil
}
