package service

import (
	"context"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"
	"lunch-vote/restaurant-svc/internal/storage"
)

// RestaurantRepository lookups return nil without error when nothing matches.
type RestaurantRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	FindByIDAndUpdatedAt(ctx context.Context, id int64, day time.Time) (*domain.Restaurant, error)
	FindAll(ctx context.Context, page domain.PageRequest) ([]domain.Restaurant, int64, error)
	FindPagedByDishDate(ctx context.Context, day time.Time, page domain.PageRequest) ([]domain.Restaurant, int64, error)
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	UpdateRestaurant(ctx context.Context, id int64, apply func(rest *domain.Restaurant) bool) (*domain.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id int64) (int64, error)
}

type VoteRepository interface {
	FindAllVotes(ctx context.Context) ([]domain.Vote, error)
	FindVotesBetween(ctx context.Context, start, end time.Time) ([]domain.Vote, error)
	FindVotesByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Vote, error)
}

// PageCache backs the "pagingRest" cache.
type PageCache interface {
	PagedKey(day time.Time, page domain.PageRequest) string
	GetPage(ctx context.Context, key string) (*domain.Page, error)
	SetPage(ctx context.Context, key string, page *domain.Page) error
	Clear(ctx context.Context, cache string) error
}

// VoteCache backs the "votes" cache.
type VoteCache interface {
	VotesKey(start, end time.Time) string
	GetVotes(ctx context.Context, key string) ([]domain.Vote, bool, error)
	SetVotes(ctx context.Context, key string, votes []domain.Vote) error
}

// TallyCleaner forgets a deleted restaurant in the daily vote tallies.
type TallyCleaner interface {
	RemoveFromTallies(ctx context.Context, restaurantID int64) error
}

type QRGenerator interface {
	Generate(restaurantID int64) ([]byte, error)
}

type VoteAggregatorInterface interface {
	VotesForDate(ctx context.Context, day time.Time) ([]domain.Vote, error)
	AttachVotes(restaurants []domain.Restaurant, votes []domain.Vote)
}

type RestaurantServiceInterface interface {
	GetPaged(ctx context.Context, day time.Time, page domain.PageRequest) (*domain.Page, error)
	GetAll(ctx context.Context, page domain.PageRequest) (*domain.Page, error)
	GetOne(ctx context.Context, id int64) (*domain.Restaurant, error)
	GetTodaysDishes(ctx context.Context, id int64) ([]domain.Dish, error)
	Create(ctx context.Context, rest *domain.Restaurant) (*domain.Restaurant, error)
	Update(ctx context.Context, id int64, patch domain.RestaurantPatch) (*domain.Restaurant, error)
	Delete(ctx context.Context, id int64) error
	VoteQRCode(ctx context.Context, id int64) ([]byte, error)
	Today() time.Time
}

var (
	_ RestaurantRepository       = (*storage.PostgresRepository)(nil)
	_ VoteRepository             = (*storage.PostgresRepository)(nil)
	_ PageCache                  = (*storage.RedisCache)(nil)
	_ VoteCache                  = (*storage.RedisCache)(nil)
	_ TallyCleaner               = (*storage.RedisCache)(nil)
	_ VoteAggregatorInterface    = (*VoteAggregator)(nil)
	_ RestaurantServiceInterface = (*RestaurantService)(nil)
)
