package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"lunch-vote/vote-svc/internal/domain"
	"lunch-vote/vote-svc/internal/mocks"
	"lunch-vote/vote-svc/internal/service"
	"lunch-vote/vote-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	castAt  = testDay.Add(11 * time.Hour)
)

func newService(repo *mocks.VoteRepository, cache *mocks.VoteCache, pub *mocks.VotePublisher) *service.VoteService {
	var publisher service.VotePublisher
	if pub != nil {
		publisher = pub
	}
	return service.NewVoteService(repo, cache, publisher,
		service.WithClock(func() time.Time { return castAt }),
		service.WithLocation(time.UTC),
	)
}

func TestVoteService_Cast(t *testing.T) {
	markerTTL := 14 * time.Hour

	tests := []struct {
		name         string
		prepareMocks func(repo *mocks.VoteRepository, cache *mocks.VoteCache, pub *mocks.VotePublisher)
		wantErr      error
	}{
		{
			name: "first vote of the day",
			prepareMocks: func(repo *mocks.VoteRepository, cache *mocks.VoteCache, pub *mocks.VotePublisher) {
				repo.On("RestaurantExists", mock.Anything, int64(2)).Return(true, nil).Once()
				cache.On("MarkerKey", int64(1), testDay).Return("vote:1:2024-03-15").Once()
				cache.On("HasMarker", mock.Anything, "vote:1:2024-03-15").Return(false, nil).Once()
				repo.On("InsertVote", mock.Anything, mock.AnythingOfType("*domain.Vote"), testDay).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.Vote).ID = 10 }).
					Return(nil).Once()
				cache.On("SetMarker", mock.Anything, "vote:1:2024-03-15", markerTTL).Return(nil).Once()
				pub.On("PublishVote", mock.Anything, mock.MatchedBy(func(m domain.VoteMessage) bool {
					return m.Type == domain.VoteCastType && m.VoteID == 10 && m.UserID == 1 &&
						m.RestaurantID == 2 && m.EventID != ""
				})).Return(nil).Once()
			},
		},
		{
			name: "unknown restaurant",
			prepareMocks: func(repo *mocks.VoteRepository, cache *mocks.VoteCache, pub *mocks.VotePublisher) {
				repo.On("RestaurantExists", mock.Anything, int64(2)).Return(false, nil).Once()
			},
			wantErr: service.ErrRestaurantNotFound,
		},
		{
			name: "marker present",
			prepareMocks: func(repo *mocks.VoteRepository, cache *mocks.VoteCache, pub *mocks.VotePublisher) {
				repo.On("RestaurantExists", mock.Anything, int64(2)).Return(true, nil).Once()
				cache.On("MarkerKey", int64(1), testDay).Return("vote:1:2024-03-15").Once()
				cache.On("HasMarker", mock.Anything, "vote:1:2024-03-15").Return(true, nil).Once()
			},
			wantErr: service.ErrAlreadyVoted,
		},
		{
			name: "unique index rejects second vote",
			prepareMocks: func(repo *mocks.VoteRepository, cache *mocks.VoteCache, pub *mocks.VotePublisher) {
				repo.On("RestaurantExists", mock.Anything, int64(2)).Return(true, nil).Once()
				cache.On("MarkerKey", int64(1), testDay).Return("vote:1:2024-03-15").Once()
				cache.On("HasMarker", mock.Anything, "vote:1:2024-03-15").Return(false, errors.New("redis down")).Once()
				repo.On("InsertVote", mock.Anything, mock.Anything, testDay).Return(storage.ErrDuplicateVote).Once()
				cache.On("SetMarker", mock.Anything, "vote:1:2024-03-15", markerTTL).Return(nil).Once()
			},
			wantErr: service.ErrAlreadyVoted,
		},
		{
			name: "restaurant deleted before insert",
			prepareMocks: func(repo *mocks.VoteRepository, cache *mocks.VoteCache, pub *mocks.VotePublisher) {
				repo.On("RestaurantExists", mock.Anything, int64(2)).Return(true, nil).Once()
				cache.On("MarkerKey", int64(1), testDay).Return("vote:1:2024-03-15").Once()
				cache.On("HasMarker", mock.Anything, "vote:1:2024-03-15").Return(false, nil).Once()
				repo.On("InsertVote", mock.Anything, mock.Anything, testDay).Return(storage.ErrUnknownRestaurant).Once()
			},
			wantErr: service.ErrRestaurantNotFound,
		},
		{
			name: "publish failure keeps the vote",
			prepareMocks: func(repo *mocks.VoteRepository, cache *mocks.VoteCache, pub *mocks.VotePublisher) {
				repo.On("RestaurantExists", mock.Anything, int64(2)).Return(true, nil).Once()
				cache.On("MarkerKey", int64(1), testDay).Return("vote:1:2024-03-15").Once()
				cache.On("HasMarker", mock.Anything, "vote:1:2024-03-15").Return(false, nil).Once()
				repo.On("InsertVote", mock.Anything, mock.Anything, testDay).Return(nil).Once()
				cache.On("SetMarker", mock.Anything, "vote:1:2024-03-15", markerTTL).Return(errors.New("redis down")).Once()
				pub.On("PublishVote", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
		},
		{
			name: "database error",
			prepareMocks: func(repo *mocks.VoteRepository, cache *mocks.VoteCache, pub *mocks.VotePublisher) {
				repo.On("RestaurantExists", mock.Anything, int64(2)).Return(false, assert.AnError).Once()
			},
			wantErr: assert.AnError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewVoteRepository(t)
			cache := mocks.NewVoteCache(t)
			pub := mocks.NewVotePublisher(t)
			testCase.prepareMocks(repo, cache, pub)

			vote, err := newService(repo, cache, pub).Cast(context.Background(), 1, 2)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, vote)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), vote.UserID)
			assert.Equal(t, int64(2), vote.RestaurantID)
			assert.True(t, vote.CreatedAt.Equal(castAt))
		})
	}
}

func TestVoteService_CastWithoutPublisher(t *testing.T) {
	repo := mocks.NewVoteRepository(t)
	cache := mocks.NewVoteCache(t)

	repo.On("RestaurantExists", mock.Anything, int64(2)).Return(true, nil).Once()
	cache.On("MarkerKey", int64(1), testDay).Return("k").Once()
	cache.On("HasMarker", mock.Anything, "k").Return(false, nil).Once()
	repo.On("InsertVote", mock.Anything, mock.Anything, testDay).Return(nil).Once()
	cache.On("SetMarker", mock.Anything, "k", mock.Anything).Return(nil).Once()

	_, err := newService(repo, cache, nil).Cast(context.Background(), 1, 2)

	assert.NoError(t, err)
}

func TestVoteService_CastPublishesAfterClientHangsUp(t *testing.T) {
	repo := mocks.NewVoteRepository(t)
	cache := mocks.NewVoteCache(t)
	pub := mocks.NewVotePublisher(t)

	ctx, cancel := context.WithCancel(context.Background())
	repo.On("RestaurantExists", mock.Anything, int64(2)).Return(true, nil).Once()
	cache.On("MarkerKey", int64(1), testDay).Return("k").Once()
	cache.On("HasMarker", mock.Anything, "k").Return(false, nil).Once()
	repo.On("InsertVote", mock.Anything, mock.Anything, testDay).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil).Once()
	cache.On("SetMarker", mock.Anything, "k", mock.Anything).Return(nil).Once()
	pub.On("PublishVote", mock.MatchedBy(func(c context.Context) bool {
		_, hasDeadline := c.Deadline()
		return c.Err() == nil && hasDeadline
	}), mock.Anything).Return(nil).Once()

	_, err := newService(repo, cache, pub).Cast(ctx, 1, 2)

	assert.NoError(t, err)
}

func TestVoteService_ForUserOnDate(t *testing.T) {
	start, end := domain.DayWindow(testDay)

	t.Run("defaults to today", func(t *testing.T) {
		repo := mocks.NewVoteRepository(t)
		repo.On("FindByUserAndCreatedAtBetween", mock.Anything, int64(1), start, end).
			Return(&domain.Vote{ID: 3, UserID: 1}, nil).Once()

		vote, err := newService(repo, nil, nil).ForUserOnDate(context.Background(), 1, time.Time{})

		require.NoError(t, err)
		assert.Equal(t, int64(3), vote.ID)
	})

	t.Run("no vote", func(t *testing.T) {
		repo := mocks.NewVoteRepository(t)
		repo.On("FindByUserAndCreatedAtBetween", mock.Anything, int64(1), start, end).Return(nil, nil).Once()

		_, err := newService(repo, nil, nil).ForUserOnDate(context.Background(), 1, testDay)

		assert.ErrorIs(t, err, service.ErrVoteNotFound)
	})
}

func TestVoteService_ForRestaurant(t *testing.T) {
	start, end := domain.DayWindow(testDay)

	t.Run("all time", func(t *testing.T) {
		repo := mocks.NewVoteRepository(t)
		repo.On("RestaurantExists", mock.Anything, int64(5)).Return(true, nil).Once()
		repo.On("FindAllByRestaurant", mock.Anything, int64(5)).Return([]domain.Vote{{ID: 1}, {ID: 2}}, nil).Once()

		votes, err := newService(repo, nil, nil).ForRestaurant(context.Background(), 5, time.Time{})

		require.NoError(t, err)
		assert.Len(t, votes, 2)
	})

	t.Run("single day", func(t *testing.T) {
		repo := mocks.NewVoteRepository(t)
		repo.On("RestaurantExists", mock.Anything, int64(5)).Return(true, nil).Once()
		repo.On("FindByRestaurantAndCreatedAtBetween", mock.Anything, int64(5), start, end).
			Return([]domain.Vote{{ID: 2}}, nil).Once()

		votes, err := newService(repo, nil, nil).ForRestaurant(context.Background(), 5, testDay)

		require.NoError(t, err)
		assert.Len(t, votes, 1)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		repo := mocks.NewVoteRepository(t)
		repo.On("RestaurantExists", mock.Anything, int64(5)).Return(false, nil).Once()

		_, err := newService(repo, nil, nil).ForRestaurant(context.Background(), 5, testDay)

		assert.ErrorIs(t, err, service.ErrRestaurantNotFound)
	})
}

func TestVoteService_Results(t *testing.T) {
	start, end := domain.DayWindow(testDay)

	t.Run("from tally", func(t *testing.T) {
		repo := mocks.NewVoteRepository(t)
		cache := mocks.NewVoteCache(t)
		cache.On("TallyKey", testDay).Return("tally:daily:2024-03-15").Once()
		cache.On("Tallies", mock.Anything, "tally:daily:2024-03-15").
			Return([]domain.Tally{{RestaurantID: 1, Votes: 4}, {RestaurantID: 3, Votes: 1}}, true, nil).Once()
		repo.On("CountBetween", mock.Anything, start, end).Return(int64(5), nil).Once()

		tallies, err := newService(repo, cache, nil).Results(context.Background(), time.Time{})

		require.NoError(t, err)
		assert.Equal(t, []domain.Tally{{RestaurantID: 1, Votes: 4}, {RestaurantID: 3, Votes: 1}}, tallies)
	})

	t.Run("tally behind the store", func(t *testing.T) {
		repo := mocks.NewVoteRepository(t)
		cache := mocks.NewVoteCache(t)
		cache.On("TallyKey", testDay).Return("tally:daily:2024-03-15").Once()
		cache.On("Tallies", mock.Anything, "tally:daily:2024-03-15").
			Return([]domain.Tally{{RestaurantID: 1, Votes: 1}}, true, nil).Once()
		repo.On("CountBetween", mock.Anything, start, end).Return(int64(2), nil).Once()
		repo.On("CountByRestaurantBetween", mock.Anything, start, end).
			Return([]domain.Tally{{RestaurantID: 1, Votes: 2}}, nil).Once()

		tallies, err := newService(repo, cache, nil).Results(context.Background(), testDay)

		require.NoError(t, err)
		assert.Equal(t, []domain.Tally{{RestaurantID: 1, Votes: 2}}, tallies)
	})

	t.Run("tally lists a deleted restaurant", func(t *testing.T) {
		repo := mocks.NewVoteRepository(t)
		cache := mocks.NewVoteCache(t)
		cache.On("TallyKey", testDay).Return("tally:daily:2024-03-15").Once()
		cache.On("Tallies", mock.Anything, "tally:daily:2024-03-15").
			Return([]domain.Tally{{RestaurantID: 9, Votes: 3}, {RestaurantID: 1, Votes: 1}}, true, nil).Once()
		repo.On("CountBetween", mock.Anything, start, end).Return(int64(1), nil).Once()
		repo.On("CountByRestaurantBetween", mock.Anything, start, end).
			Return([]domain.Tally{{RestaurantID: 1, Votes: 1}}, nil).Once()

		tallies, err := newService(repo, cache, nil).Results(context.Background(), testDay)

		require.NoError(t, err)
		assert.Equal(t, []domain.Tally{{RestaurantID: 1, Votes: 1}}, tallies)
	})

	t.Run("count error", func(t *testing.T) {
		repo := mocks.NewVoteRepository(t)
		cache := mocks.NewVoteCache(t)
		cache.On("TallyKey", testDay).Return("tally:daily:2024-03-15").Once()
		cache.On("Tallies", mock.Anything, "tally:daily:2024-03-15").
			Return([]domain.Tally{{RestaurantID: 1, Votes: 1}}, true, nil).Once()
		repo.On("CountBetween", mock.Anything, start, end).Return(int64(0), assert.AnError).Once()

		_, err := newService(repo, cache, nil).Results(context.Background(), testDay)

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("falls back to postgres", func(t *testing.T) {
		repo := mocks.NewVoteRepository(t)
		cache := mocks.NewVoteCache(t)
		cache.On("TallyKey", testDay).Return("tally:daily:2024-03-15").Once()
		cache.On("Tallies", mock.Anything, "tally:daily:2024-03-15").Return(nil, false, errors.New("redis down")).Once()
		repo.On("CountByRestaurantBetween", mock.Anything, start, end).
			Return([]domain.Tally{{RestaurantID: 2, Votes: 1}}, nil).Once()

		tallies, err := newService(repo, cache, nil).Results(context.Background(), testDay)

		require.NoError(t, err)
		assert.Equal(t, int64(2), tallies[0].RestaurantID)
	})
}
