package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"staybook/internal/domain/calendar"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "staybook:calendar"

// Observer receives cache events: hit, miss, set, invalidate.
type Observer interface {
	ObserveCache(event string)
}

// CalendarCache keeps month calendars in Redis. Every key embeds a
// per-property version; bumping the version orphans all cached months of the
// property at once and TTL reclaims them.
type CalendarCache struct {
	client   redis.UniversalClient
	ttl      time.Duration
	observer Observer
}

func NewCalendarCache(client redis.UniversalClient, ttl time.Duration, observer Observer) *CalendarCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CalendarCache{client: client, ttl: ttl, observer: observer}
}

func versionKey(propertyID uuid.UUID) string {
	return fmt.Sprintf("%s:version:%s", keyPrefix, propertyID)
}

func entryKey(version int64, propertyID, roomID uuid.UUID, month calendar.Month) string {
	return fmt.Sprintf("%s:v%d:%s:%s:%s", keyPrefix, version, propertyID, roomID, month)
}

func (c *CalendarCache) version(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(propertyID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Get returns the property version it looked under alongside the entry.
// On a miss that version is what Set must be given.
func (c *CalendarCache) Get(ctx context.Context, propertyID, roomID uuid.UUID, month calendar.Month) ([]queries.CalendarDayView, int64, bool, error) {
	version, err := c.version(ctx, propertyID)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.client.Get(ctx, entryKey(version, propertyID, roomID, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observe("miss")
		return nil, version, false, nil
	}
	if err != nil {
		return nil, 0, false, err
	}

	var days []queries.CalendarDayView
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, 0, false, fmt.Errorf("decode cached calendar: %w", err)
	}
	c.observe("hit")
	return days, version, true, nil
}

// Set stores days under version. An invalidation since that version was
// read leaves the entry unreachable.
func (c *CalendarCache) Set(ctx context.Context, version int64, propertyID, roomID uuid.UUID, month calendar.Month, days []queries.CalendarDayView) error {
	raw, err := json.Marshal(days)
	if err != nil {
		return err
	}
	c.observe("set")
	return c.client.Set(ctx, entryKey(version, propertyID, roomID, month), raw, c.ttl).Err()
}

func (c *CalendarCache) InvalidateProperty(ctx context.Context, propertyID uuid.UUID) error {
	c.observe("invalidate")
	return c.client.Incr(ctx, versionKey(propertyID)).Err()
}

func (c *CalendarCache) observe(event string) {
	if c.observer != nil {
		c.observer.ObserveCache(event)
	}
}

// Noop is used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID, uuid.UUID, calendar.Month) ([]queries.CalendarDayView, int64, bool, error) {
	return nil, 0, false, nil
}

func (Noop) Set(context.Context, int64, uuid.UUID, uuid.UUID, calendar.Month, []queries.CalendarDayView) error {
	return nil
}

func (Noop) InvalidateProperty(context.Context, uuid.UUID) error { return nil }
