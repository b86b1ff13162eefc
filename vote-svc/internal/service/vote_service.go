package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lunch-vote/vote-svc/internal/domain"
	"lunch-vote/vote-svc/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrAlreadyVoted       = errors.New("user has already voted today")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrVoteNotFound       = errors.New("vote not found")
)

// publishTimeout bounds the Kafka write, which outlives the request.
const publishTimeout = 10 * time.Second

type VoteService struct {
	repository VoteRepository
	cache      VoteCache
	publisher  VotePublisher
	loc        *time.Location
	now        func() time.Time
}

type Option func(*VoteService)

func WithClock(now func() time.Time) Option {
	return func(s *VoteService) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *VoteService) { s.loc = loc }
}

func NewVoteService(repository VoteRepository, cache VoteCache, publisher VotePublisher, opts ...Option) *VoteService {
	s := &VoteService{
		repository: repository,
		cache:      cache,
		publisher:  publisher,
		loc:        time.UTC,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cast records the user's vote for today. The marker in Redis short-circuits
// repeat votes; the unique index in Postgres is authoritative.
func (s *VoteService) Cast(ctx context.Context, userID, restaurantID int64) (*domain.Vote, error) {
	now := s.now().In(s.loc)
	day := domain.Day(now, s.loc)

	exists, err := s.repository.RestaurantExists(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check restaurant %d: %w", restaurantID, err)
	}
	if !exists {
		return nil, ErrRestaurantNotFound
	}

	key := s.cache.MarkerKey(userID, day)
	if marked, err := s.cache.HasMarker(ctx, key); err != nil {
		log.Printf("[vote-svc] marker read %s: %v", key, err)
	} else if marked {
		return nil, ErrAlreadyVoted
	}

	vote := &domain.Vote{UserID: userID, RestaurantID: restaurantID, CreatedAt: now}
	err = s.repository.InsertVote(ctx, vote, day)
	switch {
	case errors.Is(err, storage.ErrDuplicateVote):
		s.mark(ctx, key, now, day)
		return nil, ErrAlreadyVoted
	case errors.Is(err, storage.ErrUnknownRestaurant):
		return nil, ErrRestaurantNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}

	s.mark(ctx, key, now, day)
	s.publish(ctx, vote)

	log.Printf("[vote-svc] user %d voted for restaurant %d", userID, restaurantID)
	return vote, nil
}

// mark keeps the marker until an hour past the end of day.
func (s *VoteService) mark(ctx context.Context, key string, now, day time.Time) {
	ttl := day.AddDate(0, 0, 1).Add(time.Hour).Sub(now)
	if err := s.cache.SetMarker(ctx, key, ttl); err != nil {
		log.Printf("[vote-svc] marker write %s: %v", key, err)
	}
}

// publish detaches from ctx so that a client hanging up after the insert
// does not drop the event.
func (s *VoteService) publish(ctx context.Context, vote *domain.Vote) {
	if s.publisher == nil {
		log.Printf("[vote-svc] no publisher configured, skipping vote %d", vote.ID)
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := s.publisher.PublishVote(ctx, domain.VoteMessage{
		Type:         domain.VoteCastType,
		EventID:      uuid.NewString(),
		VoteID:       vote.ID,
		UserID:       vote.UserID,
		RestaurantID: vote.RestaurantID,
		CreatedAt:    vote.CreatedAt,
	})
	if err != nil {
		log.Printf("[vote-svc] failed to publish vote %d: %v", vote.ID, err)
	}
}

func (s *VoteService) today() time.Time {
	return domain.Day(s.now(), s.loc)
}

// ForUserOnDate returns the user's vote on day, today when day is zero.
func (s *VoteService) ForUserOnDate(ctx context.Context, userID int64, day time.Time) (*domain.Vote, error) {
	if day.IsZero() {
		day = s.today()
	}
	start, end := domain.DayWindow(day)

	vote, err := s.repository.FindByUserAndCreatedAtBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load vote of user %d: %w", userID, err)
	}
	if vote == nil {
		return nil, ErrVoteNotFound
	}
	return vote, nil
}

// ForRestaurant returns the restaurant's votes on day, or every vote it ever
// received when day is zero.
func (s *VoteService) ForRestaurant(ctx context.Context, restaurantID int64, day time.Time) ([]domain.Vote, error) {
	exists, err := s.repository.RestaurantExists(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check restaurant %d: %w", restaurantID, err)
	}
	if !exists {
		return nil, ErrRestaurantNotFound
	}

	var votes []domain.Vote
	if day.IsZero() {
		votes, err = s.repository.FindAllByRestaurant(ctx, restaurantID)
	} else {
		start, end := domain.DayWindow(day)
		votes, err = s.repository.FindByRestaurantAndCreatedAtBetween(ctx, restaurantID, start, end)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load votes of restaurant %d: %w", restaurantID, err)
	}
	return votes, nil
}

// Results counts the day's votes per restaurant. The tally kept by agg-svc
// is used only while its total matches the votes stored in Postgres; a lost
// event, a lagging consumer or a deleted restaurant makes them differ and the
// counts then come from Postgres.
func (s *VoteService) Results(ctx context.Context, day time.Time) ([]domain.Tally, error) {
	if day.IsZero() {
		day = s.today()
	}
	start, end := domain.DayWindow(day)

	key := s.cache.TallyKey(day)
	tallies, ok, err := s.cache.Tallies(ctx, key)
	if err != nil {
		log.Printf("[vote-svc] tally read %s: %v", key, err)
	} else if ok {
		total, err := s.repository.CountBetween(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to count votes for %s: %w", day.Format(domain.DateLayout), err)
		}
		if sumVotes(tallies) == total {
			return tallies, nil
		}
		log.Printf("[vote-svc] tally %s holds %d votes, store has %d", key, sumVotes(tallies), total)
	}

	tallies, err = s.repository.CountByRestaurantBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes for %s: %w", day.Format(domain.DateLayout), err)
	}
	return tallies, nil
}

func sumVotes(tallies []domain.Tally) int64 {
	var total int64
	for _, t := range tallies {
		total += t.Votes
	}
	return total
}
