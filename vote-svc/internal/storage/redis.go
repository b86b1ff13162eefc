package storage

import (
	"context"
	"sort"
	"strconv"
	"time"

	"lunch-vote/vote-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// TallyPrefix keys the per-day sorted sets written by agg-svc.
const TallyPrefix = "tally:daily:"

type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

func (c *RedisCache) MarkerKey(userID int64, day time.Time) string {
	return "vote:" + strconv.FormatInt(userID, 10) + ":" + day.Format(domain.DateLayout)
}

func (c *RedisCache) HasMarker(ctx context.Context, key string) (bool, error) {
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) SetMarker(ctx context.Context, key string, ttl time.Duration) error {
	return c.Client.Set(ctx, key, "1", ttl).Err()
}

func (c *RedisCache) TallyKey(day time.Time) string {
	return TallyPrefix + day.Format(domain.DateLayout)
}

// Tallies reads a day's sorted set. ok is false when the set does not exist.
func (c *RedisCache) Tallies(ctx context.Context, key string) ([]domain.Tally, bool, error) {
	members, err := c.Client.ZRangeWithScores(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, false, err
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	tallies := make([]domain.Tally, 0, len(members))
	for _, m := range members {
		member, _ := m.Member.(string)
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		tallies = append(tallies, domain.Tally{RestaurantID: id, Votes: int64(m.Score)})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Votes != tallies[j].Votes {
			return tallies[i].Votes > tallies[j].Votes
		}
		return tallies[i].RestaurantID < tallies[j].RestaurantID
	})
	return tallies, true, nil
}
