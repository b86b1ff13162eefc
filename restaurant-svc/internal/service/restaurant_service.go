package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"
	"lunch-vote/restaurant-svc/internal/storage"
)

type RestaurantService struct {
	repository RestaurantRepository
	votes      VoteRepository
	aggregator VoteAggregatorInterface
	cache      PageCache
	tallies    TallyCleaner
	qr         QRGenerator
	loc        *time.Location
	now        func() time.Time
}

type Option func(*RestaurantService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *RestaurantService) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *RestaurantService) { s.loc = loc }
}

func WithTallies(tallies TallyCleaner) Option {
	return func(s *RestaurantService) { s.tallies = tallies }
}

func WithQRGenerator(qr QRGenerator) Option {
	return func(s *RestaurantService) { s.qr = qr }
}

func NewRestaurantService(repository RestaurantRepository, votes VoteRepository, aggregator VoteAggregatorInterface, cache PageCache, opts ...Option) *RestaurantService {
	s := &RestaurantService{
		repository: repository,
		votes:      votes,
		aggregator: aggregator,
		cache:      cache,
		loc:        time.UTC,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is midnight of the current day in the service time zone.
func (s *RestaurantService) Today() time.Time {
	return domain.Day(s.now(), s.loc)
}

func (s *RestaurantService) GetPaged(ctx context.Context, day time.Time, page domain.PageRequest) (*domain.Page, error) {
	day = domain.DateOf(day, s.loc)
	page = page.Normalize()

	result, err := s.cachedPage(ctx, day, page)
	if err != nil {
		return nil, err
	}

	votes, err := s.aggregator.VotesForDate(ctx, day)
	if err != nil {
		return nil, err
	}
	s.aggregator.AttachVotes(result.Content, votes)
	return result, nil
}

func (s *RestaurantService) cachedPage(ctx context.Context, day time.Time, page domain.PageRequest) (*domain.Page, error) {
	key := s.cache.PagedKey(day, page)
	cached, err := s.cache.GetPage(ctx, key)
	if err != nil {
		log.Printf("[restaurant-svc] page cache read %s: %v", key, err)
	} else if cached != nil {
		return cached, nil
	}

	restaurants, total, err := s.repository.FindPagedByDishDate(ctx, day, page)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants for %s: %w", day.Format(domain.DateLayout), err)
	}
	result := domain.NewPage(restaurants, page, total)

	// Cached before votes are attached; votes have their own cache.
	if err := s.cache.SetPage(ctx, key, result); err != nil {
		log.Printf("[restaurant-svc] page cache write %s: %v", key, err)
	}
	return result, nil
}

func (s *RestaurantService) GetAll(ctx context.Context, page domain.PageRequest) (*domain.Page, error) {
	page = page.Normalize()

	restaurants, total, err := s.repository.FindAll(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}
	result := domain.NewPage(restaurants, page, total)

	votes, err := s.aggregator.VotesForDate(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	s.aggregator.AttachVotes(result.Content, votes)
	return result, nil
}

func (s *RestaurantService) GetOne(ctx context.Context, id int64) (*domain.Restaurant, error) {
	rest, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	votes, err := s.votes.FindVotesByRestaurant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes of restaurant %d: %w", id, err)
	}
	rest.Votes = votes
	return rest, nil
}

func (s *RestaurantService) GetTodaysDishes(ctx context.Context, id int64) ([]domain.Dish, error) {
	today := s.Today()

	rest, err := s.repository.FindByIDAndUpdatedAt(ctx, id, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu of restaurant %d: %w", id, err)
	}
	if rest == nil {
		return nil, &NoCurrentMenuError{ID: id}
	}
	if rest.Dishes == nil {
		return []domain.Dish{}, nil
	}
	return rest.Dishes, nil
}

func (s *RestaurantService) Create(ctx context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	today := s.Today()

	if rest.Dishes == nil {
		rest.Dishes = []domain.Dish{}
	}
	s.prepareDishes(rest.Dishes, today)
	rest.Votes = []domain.Vote{}
	rest.UpdatedAt = today

	if err := s.repository.CreateRestaurant(ctx, rest); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	s.evict(ctx, storage.PagingRestCache)
	log.Printf("[restaurant-svc] created restaurant %d with %d dishes", rest.ID, len(rest.Dishes))
	return rest, nil
}

// Update merges the non-nil fields of patch into the stored restaurant and
// persists the result. Replacing the dishes also moves the menu date to today.
// Load and write share one transaction holding the row lock.
func (s *RestaurantService) Update(ctx context.Context, id int64, patch domain.RestaurantPatch) (*domain.Restaurant, error) {
	if patch.Empty() {
		return s.load(ctx, id)
	}

	today := s.Today()
	rest, err := s.repository.UpdateRestaurant(ctx, id, func(rest *domain.Restaurant) bool {
		if patch.Name != nil {
			rest.Name = *patch.Name
		}
		if patch.Location != nil {
			rest.Location = *patch.Location
		}
		if patch.Dishes == nil {
			return false
		}
		rest.Dishes = append([]domain.Dish{}, patch.Dishes...)
		s.prepareDishes(rest.Dishes, today)
		rest.UpdatedAt = today
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update restaurant %d: %w", id, err)
	}
	if rest == nil {
		return nil, &RestaurantNotFoundError{ID: id}
	}

	s.evict(ctx, storage.PagingRestCache)
	return rest, nil
}

func (s *RestaurantService) Delete(ctx context.Context, id int64) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	affected, err := s.repository.DeleteRestaurant(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete restaurant %d: %w", id, err)
	}
	if affected == 0 {
		return &RestaurantNotFoundError{ID: id}
	}

	s.evict(ctx, storage.PagingRestCache)
	s.evict(ctx, storage.VotesCache)
	if s.tallies != nil {
		if err := s.tallies.RemoveFromTallies(ctx, id); err != nil {
			log.Printf("[restaurant-svc] failed to drop restaurant %d from tallies: %v", id, err)
		}
	}
	log.Printf("[restaurant-svc] deleted restaurant %d", id)
	return nil
}

func (s *RestaurantService) VoteQRCode(ctx context.Context, id int64) ([]byte, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	if s.qr == nil {
		return nil, fmt.Errorf("qr generator is not configured")
	}
	return s.qr.Generate(id)
}

func (s *RestaurantService) load(ctx context.Context, id int64) (*domain.Restaurant, error) {
	rest, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant %d: %w", id, err)
	}
	if rest == nil {
		return nil, &RestaurantNotFoundError{ID: id}
	}
	return rest, nil
}

func (s *RestaurantService) prepareDishes(dishes []domain.Dish, today time.Time) {
	for i := range dishes {
		dishes[i].ID = 0
		if dishes[i].CreatedAt.IsZero() {
			dishes[i].CreatedAt = today
		} else {
			dishes[i].CreatedAt = domain.DateOf(dishes[i].CreatedAt, s.loc)
		}
	}
}

func (s *RestaurantService) evict(ctx context.Context, cache string) {
	if err := s.cache.Clear(ctx, cache); err != nil {
		log.Printf("[restaurant-svc] failed to clear %s cache: %v", cache, err)
	}
}
