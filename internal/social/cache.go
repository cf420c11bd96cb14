package social

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"bersekolah/gateway/internal/cache"
	"bersekolah/gateway/internal/upstream"
)

const cacheKey = "bersekolah_social_links"

type linkFetcher interface {
	PublicSocialLinks(ctx context.Context) ([]upstream.SocialLink, error)
}

// Cache keeps the public campaign links warm so marketing pages never block
// on the core API. Served from the cached copy, refreshed by the scheduler,
// with a live fetch as fallback on a cold cache.
type Cache struct {
	api linkFetcher
	kv  cache.KV
	ttl time.Duration
	log zerolog.Logger
}

func NewCache(api linkFetcher, kv cache.KV, ttl time.Duration, log zerolog.Logger) *Cache {
	return &Cache{api: api, kv: kv, ttl: ttl, log: log}
}

func (c *Cache) Links(ctx context.Context) ([]upstream.SocialLink, error) {
	raw, err := c.kv.Get(ctx, cacheKey)
	if err == nil {
		var links []upstream.SocialLink
		if err := json.Unmarshal([]byte(raw), &links); err == nil {
			return links, nil
		}
	} else if !errors.Is(err, cache.ErrKeyNotFound) {
		c.log.Warn().Err(err).Msg("social cache read failed")
	}

	return c.Refresh(ctx)
}

func (c *Cache) Refresh(ctx context.Context) ([]upstream.SocialLink, error) {
	links, err := c.api.PublicSocialLinks(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(links); err == nil {
		if err := c.kv.Set(ctx, cacheKey, string(raw), c.ttl); err != nil {
			c.log.Warn().Err(err).Msg("social cache write failed")
		}
	}
	return links, nil
}
