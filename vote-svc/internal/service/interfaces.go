package service

import (
	"context"
	"time"

	"lunch-vote/vote-svc/internal/domain"
	"lunch-vote/vote-svc/internal/storage"
)

type VoteServiceInterface interface {
	Cast(ctx context.Context, userID, restaurantID int64) (*domain.Vote, error)
	ForUserOnDate(ctx context.Context, userID int64, day time.Time) (*domain.Vote, error)
	ForRestaurant(ctx context.Context, restaurantID int64, day time.Time) ([]domain.Vote, error)
	Results(ctx context.Context, day time.Time) ([]domain.Tally, error)
}

type VoteRepository interface {
	RestaurantExists(ctx context.Context, restaurantID int64) (bool, error)
	InsertVote(ctx context.Context, vote *domain.Vote, day time.Time) error
	FindByUserAndCreatedAtBetween(ctx context.Context, userID int64, start, end time.Time) (*domain.Vote, error)
	FindByRestaurantAndCreatedAtBetween(ctx context.Context, restaurantID int64, start, end time.Time) ([]domain.Vote, error)
	FindAllByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Vote, error)
	CountBetween(ctx context.Context, start, end time.Time) (int64, error)
	CountByRestaurantBetween(ctx context.Context, start, end time.Time) ([]domain.Tally, error)
}

type VoteCache interface {
	MarkerKey(userID int64, day time.Time) string
	HasMarker(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string, ttl time.Duration) error
	TallyKey(day time.Time) string
	Tallies(ctx context.Context, key string) ([]domain.Tally, bool, error)
}

type VotePublisher interface {
	PublishVote(ctx context.Context, msg domain.VoteMessage) error
}

var (
	_ VoteServiceInterface = (*VoteService)(nil)
	_ VoteRepository       = (*storage.PostgresRepository)(nil)
	_ VoteCache            = (*storage.RedisCache)(nil)
	_ VotePublisher        = (*storage.KafkaPublisher)(nil)
)
