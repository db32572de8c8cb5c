package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"meetup-point-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const durationKeyPrefix = "meetup:durations:"

// RedisDurationCache stores distance-matrix answers for a limited time.
// Travel times depend on traffic and schedules, so entries always expire.
type RedisDurationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDurationCache(client *redis.Client, ttl time.Duration) *RedisDurationCache {
	return &RedisDurationCache{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return client, nil
}

type durationEntry struct {
	Text    string `json:"text"`
	Seconds int    `json:"seconds"`
}

func (c *RedisDurationCache) Get(ctx context.Context, key string) ([2]domain.TravelDuration, bool, error) {
	var out [2]domain.TravelDuration

	raw, err := c.client.Get(ctx, durationKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return out, false, nil
	}
	if err != nil {
		return out, false, fmt.Errorf("get duration cache %q: %w", key, err)
	}

	var entries [2]durationEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return out, false, fmt.Errorf("decode duration cache %q: %w", key, err)
	}

	for i, e := range entries {
		out[i] = domain.TravelDuration{Text: e.Text, Seconds: e.Seconds}
	}
	return out, true, nil
}

func (c *RedisDurationCache) Put(ctx context.Context, key string, durations [2]domain.TravelDuration) error {
	var entries [2]durationEntry
	for i, d := range durations {
		entries[i] = durationEntry{Text: d.Text, Seconds: d.Seconds}
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode duration cache %q: %w", key, err)
	}

	if err := c.client.Set(ctx, durationKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put duration cache %q: %w", key, err)
	}

	return nil
}
