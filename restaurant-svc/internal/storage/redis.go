package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Cache namespaces. Every key of a namespace starts with "<name>:".
const (
	PagingRestCache = "pagingRest"
	VotesCache      = "votes"
)

// TallyPrefix prefixes the daily vote tallies kept by agg-svc.
const TallyPrefix = "tally:daily:"

// CacheMetrics is satisfied by metrics.Collector.
type CacheMetrics interface {
	RecordCacheHit(cache string)
	RecordCacheMiss(cache string)
	RecordCacheEviction(cache string, keys int)
}

// RedisCache is a read-through cache without expiry unless TTL is set.
// Entries leave only through Clear.
type RedisCache struct {
	Client  *redis.Client
	TTL     time.Duration
	Metrics CacheMetrics
}

func NewRedisCache(client *redis.Client, ttl time.Duration, m CacheMetrics) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl, Metrics: m}
}

func (c *RedisCache) PagedKey(day time.Time, page domain.PageRequest) string {
	return PagingRestCache + ":" + day.Format(domain.DateLayout) + ":" +
		strconv.Itoa(page.Page) + ":" + strconv.Itoa(page.Size)
}

func (c *RedisCache) VotesKey(start, end time.Time) string {
	return VotesCache + ":" + start.Format(time.RFC3339Nano) + ":" + end.Format(time.RFC3339Nano)
}

func (c *RedisCache) get(ctx context.Context, cache, key string, dst any) (bool, error) {
	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.miss(cache)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.miss(cache)
		return false, err
	}
	c.hit(cache)
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}

// GetPage returns nil on a miss.
func (c *RedisCache) GetPage(ctx context.Context, key string) (*domain.Page, error) {
	var page domain.Page
	ok, err := c.get(ctx, PagingRestCache, key, &page)
	if err != nil || !ok {
		return nil, err
	}
	return &page, nil
}

func (c *RedisCache) SetPage(ctx context.Context, key string, page *domain.Page) error {
	return c.set(ctx, key, page)
}

func (c *RedisCache) GetVotes(ctx context.Context, key string) ([]domain.Vote, bool, error) {
	var votes []domain.Vote
	ok, err := c.get(ctx, VotesCache, key, &votes)
	if err != nil || !ok {
		return nil, false, err
	}
	if votes == nil {
		votes = []domain.Vote{}
	}
	return votes, true, nil
}

func (c *RedisCache) SetVotes(ctx context.Context, key string, votes []domain.Vote) error {
	return c.set(ctx, key, votes)
}

// Clear drops every entry of the named cache.
func (c *RedisCache) Clear(ctx context.Context, cache string) error {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := c.Client.Scan(ctx, cursor, cache+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.Client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			removed += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if c.Metrics != nil {
		c.Metrics.RecordCacheEviction(cache, removed)
	}
	return nil
}

// RemoveFromTallies drops the restaurant from every daily tally so that
// results stop listing it once its votes are gone.
func (c *RedisCache) RemoveFromTallies(ctx context.Context, restaurantID int64) error {
	member := strconv.FormatInt(restaurantID, 10)
	iter := c.Client.Scan(ctx, 0, TallyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.Client.ZRem(ctx, iter.Val(), member).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCache) hit(cache string) {
	if c.Metrics != nil {
		c.Metrics.RecordCacheHit(cache)
	}
}

func (c *RedisCache) miss(cache string) {
	if c.Metrics != nil {
		c.Metrics.RecordCacheMiss(cache)
	}
}
