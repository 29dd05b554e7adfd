package cache

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/domain/service"
	"github.com/The-Gleb/advertisement_form/internal/errors"
	"github.com/redis/go-redis/v9"
)

var _ service.AdvertisementCache = new(redisCache)

// InvalidationChannel carries an Event every time an organization's
// first listing page is dropped from the cache.
const InvalidationChannel = "advertisements_invalidated"

const EventAdvertisementsInvalidated = "advertisements_invalidated"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type redisCache struct {
	client *redis.Client
	expiry time.Duration
}

// NewRedisCache keeps pages for expiry seconds.
func NewRedisCache(client *redis.Client, expiry int) *redisCache {
	return &redisCache{
		client: client,
		expiry: time.Duration(expiry) * time.Second,
	}
}

func firstPageKey(organizationID string) string {
	return fmt.Sprintf("advertisements:%s:first", organizationID)
}

func (c *redisCache) Get(ctx context.Context, organizationID string) (entity.AdvertisementPage, error) {
	data, err := c.client.Get(ctx, firstPageKey(organizationID)).Bytes()
	if err != nil {
		if stdErrors.Is(err, redis.Nil) {
			return entity.AdvertisementPage{}, errors.NewDomainError(errors.ErrNoDataFound, "")
		}
		slog.Error("error getting advertisements from redis", "error", err)
		return entity.AdvertisementPage{}, err
	}

	var page entity.AdvertisementPage
	err = json.Unmarshal(data, &page)
	if err != nil {
		slog.Error("error unmarshalling result from redis", "error", err)
		return entity.AdvertisementPage{}, err
	}

	return page, nil
}

func (c *redisCache) Set(ctx context.Context, organizationID string, page entity.AdvertisementPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		slog.Error("error marshalling advertisements", "error", err)
		return err
	}

	err = c.client.Set(ctx, firstPageKey(organizationID), data, c.expiry).Err()
	if err != nil {
		slog.Error("error setting advertisements in redis", "error", err)
		return err
	}

	return nil
}

func (c *redisCache) Invalidate(ctx context.Context, organizationID string) error {
	err := c.client.Del(ctx, firstPageKey(organizationID)).Err()
	if err != nil {
		slog.Error("error deleting advertisements from redis", "error", err)
		return err
	}

	data, err := json.Marshal(Event{
		Type:    EventAdvertisementsInvalidated,
		Payload: map[string]any{"organization_id": organizationID},
	})
	if err != nil {
		return err
	}

	err = c.client.Publish(ctx, InvalidationChannel, string(data)).Err()
	if err != nil {
		slog.Error("error publishing invalidation event", "error", err)
		return err
	}

	return nil
}

// Subscribe calls handler for every invalidation event until ctx is done.
func (c *redisCache) Subscribe(ctx context.Context, handler func(Event)) error {
	pubsub := c.client.Subscribe(ctx, InvalidationChannel)
	// wait for the subscription to be confirmed
	if _, err := pubsub.Receive(ctx); err != nil {
		slog.Error("error subscribing to invalidation events", "error", err)
		pubsub.Close()
		return err
	}
	ch := pubsub.Channel()

	go func() {
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					slog.Error("failed to unmarshal event", "error", err)
					continue
				}
				handler(event)
			}
		}
	}()

	return nil
}
