package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ds124wfegd/eventhub/internal/entity"

	"github.com/redis/go-redis/v9"
)

// EventCache is a read-through cache for resolved events. Eviction is TTL
// based; mutations invalidate keys explicitly.
type EventCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventCache(client *redis.Client, ttl time.Duration) *EventCache {
	return &EventCache{
		client: client,
		ttl:    ttl,
	}
}

func eventKey(id int64) string {
	return fmt.Sprintf("event:%d", id)
}

func (c *EventCache) SetEvent(ctx context.Context, event *entity.ResolvedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, eventKey(event.ID), data, c.ttl).Err()
}

func (c *EventCache) GetEvent(ctx context.Context, id int64) (*entity.ResolvedEvent, error) {
	data, err := c.client.Get(ctx, eventKey(id)).Result()
	if err != nil {
		return nil, err
	}

	var event entity.ResolvedEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (c *EventCache) DeleteEvent(ctx context.Context, id int64) error {
	return c.client.Del(ctx, eventKey(id)).Err()
}
