package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tallyPrefix = "tally:daily:"
	eventPrefix = "event:"

	// votesCache must match the namespace restaurant-svc caches vote windows under.
	votesCache = "votes"

	TallyTTL = 7 * 24 * time.Hour
)

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func TallyKey(day time.Time) string {
	return tallyPrefix + day.Format("2006-01-02")
}

// countVote bumps the tally and only then marks the event, so a failed
// ZINCRBY leaves the event free for redelivery. Scripts run without
// interleaving, which makes the EXISTS check safe. An empty event id skips
// the dedupe.
// KEYS: tally, event. ARGV: event id, member, ttl seconds.
var countVote = redis.NewScript(`
local dedupe = ARGV[1] ~= ""
if dedupe and redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("ZINCRBY", KEYS[1], 1, ARGV[2])
redis.call("EXPIRE", KEYS[1], ARGV[3])
if dedupe then
	redis.call("SET", KEYS[2], "1", "EX", ARGV[3])
end
return 1
`)

// CountVote adds one vote for restaurantID to the tally of day unless eventID
// was already counted. It reports whether the vote was counted.
func (s *Store) CountVote(ctx context.Context, eventID string, day time.Time, restaurantID int64) (bool, error) {
	keys := []string{TallyKey(day), eventPrefix + eventID}
	counted, err := countVote.Run(ctx, s.rdb, keys,
		eventID, strconv.FormatInt(restaurantID, 10), int64(TallyTTL/time.Second)).Int()
	if err != nil {
		return false, err
	}
	return counted == 1, nil
}

// ClearVotesCache drops every cached vote window so the next read goes to
// Postgres.
func (s *Store) ClearVotesCache(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, votesCache+":*", 100).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return removed, err
			}
			removed += len(keys)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}
