package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rotape-service/internal/ports/models"

	"github.com/redis/go-redis/v9"
)

const tallyTTL = 24 * time.Hour

// RedisTallyCache stores tallies as JSON under tally:{eventID}
type RedisTallyCache struct {
	client *redis.Client
}

func NewRedisTallyCache(client *redis.Client) *RedisTallyCache {
	return &RedisTallyCache{client: client}
}

func tallyKey(eventID uint) string {
	return fmt.Sprintf("tally:%d", eventID)
}

func (c *RedisTallyCache) Get(ctx context.Context, eventID uint) (*models.VoteTally, error) {
	data, err := c.client.Get(ctx, tallyKey(eventID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tally models.VoteTally
	if err := json.Unmarshal(data, &tally); err != nil {
		return nil, err
	}
	return &tally, nil
}

func (c *RedisTallyCache) Set(ctx context.Context, tally models.VoteTally) error {
	data, err := json.Marshal(tally)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tallyKey(tally.EventID), data, tallyTTL).Err()
}
