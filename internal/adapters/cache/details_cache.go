package cache

import (
	"meetup-point-service/internal/domain"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DetailsCache is a size-bounded in-memory place-details cache with per-entry expiry.
type DetailsCache struct {
	lru *expirable.LRU[string, *domain.Details]
}

func NewDetailsCache(size int, ttl time.Duration) *DetailsCache {
	return &DetailsCache{lru: expirable.NewLRU[string, *domain.Details](size, nil, ttl)}
}

func (c *DetailsCache) Get(placeID string) (*domain.Details, bool) {
	return c.lru.Get(placeID)
}

func (c *DetailsCache) Put(placeID string, d *domain.Details) {
	if d == nil {
		return
	}
	c.lru.Add(placeID, d)
}

func (c *DetailsCache) Len() int { return c.lru.Len() }
