package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/grocerymart/backoffice-go/internal/domain/roster"
	redis "github.com/redis/go-redis/v9"
)

type RedisCalendarCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ roster.CalendarCache = (*RedisCalendarCache)(nil)

func NewRedisCalendarCache(addr string, password string, db int, ttl time.Duration) *RedisCalendarCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCalendarCache{client: client, ttl: ttl}
}

func (c *RedisCalendarCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCalendarCache) Close() error {
	return c.client.Close()
}

func (c *RedisCalendarCache) Get(ctx context.Context, year int, month time.Month) (roster.CalendarResponse, bool, error) {
	val, err := c.client.Get(ctx, CalendarKey(year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return roster.CalendarResponse{}, false, nil
	}
	if err != nil {
		return roster.CalendarResponse{}, false, err
	}

	var cal roster.CalendarResponse
	if err := json.Unmarshal(val, &cal); err != nil {
		return roster.CalendarResponse{}, false, err
	}
	return cal, true, nil
}

func (c *RedisCalendarCache) Set(ctx context.Context, cal roster.CalendarResponse) error {
	payload, err := json.Marshal(cal)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, CalendarKey(cal.Year, time.Month(cal.Month)), payload, c.ttl).Err()
}

func (c *RedisCalendarCache) Invalidate(ctx context.Context, date time.Time) error {
	return c.client.Del(ctx, CalendarKey(date.Year(), date.Month())).Err()
}

func (c *RedisCalendarCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, calendarKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
