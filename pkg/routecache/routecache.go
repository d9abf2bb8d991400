package routecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/hkmtr/pkg/resolver"
)

const DefaultExpiration = 24 * time.Hour

// Cache memoizes resolved routes. Keys include the network version and resolver fingerprint
// so a reload with different data or options never sees stale entries.
type Cache struct {
	Cache *cache.Cache[string]

	prefix string
}

func New(client *redis.Client, r *resolver.Resolver, expiration time.Duration) *Cache {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}

	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &Cache{
		Cache:  cache.New[string](redisStore),
		prefix: fmt.Sprintf("hkmtr:route:%s:%s", r.Network().Version(), r.Fingerprint()),
	}
}

func (c *Cache) key(origin string, destination string) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, origin, destination)
}

// Get returns the cached route or nil when there is none
func (c *Cache) Get(ctx context.Context, origin string, destination string) *resolver.Route {
	cached, err := c.Cache.Get(ctx, c.key(origin, destination))
	if err != nil {
		return nil
	}

	var route resolver.Route
	if err := json.Unmarshal([]byte(cached), &route); err != nil {
		log.Error().Err(err).Str("origin", origin).Str("destination", destination).Msg("Cached route is invalid")
		return nil
	}

	return &route
}

func (c *Cache) Set(ctx context.Context, route *resolver.Route) error {
	routeJSON, err := json.Marshal(route)
	if err != nil {
		return err
	}

	return c.Cache.Set(ctx, c.key(route.OriginID, route.DestinationID), string(routeJSON))
}

// ShortestPath answers from the cache and falls back to the resolver, storing what it computes
func (c *Cache) ShortestPath(ctx context.Context, r *resolver.Resolver, origin string, destination string) (*resolver.Route, error) {
	if route := c.Get(ctx, origin, destination); route != nil {
		log.Debug().Str("origin", origin).Str("destination", destination).Msg("Route cache hit")
		return route, nil
	}

	route, err := r.ShortestPath(origin, destination)
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, route); err != nil {
		log.Error().Err(err).Str("origin", origin).Str("destination", destination).Msg("Failed to cache route")
	}

	return route, nil
}
