package mocks

import (
	"context"
	"time"

	"lunch-vote/vote-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type VoteRepository struct {
	mock.Mock
}

func (_m *VoteRepository) RestaurantExists(ctx context.Context, restaurantID int64) (bool, error) {
	ret := _m.Called(ctx, restaurantID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *VoteRepository) InsertVote(ctx context.Context, vote *domain.Vote, day time.Time) error {
	ret := _m.Called(ctx, vote, day)
	return ret.Error(0)
}

func (_m *VoteRepository) FindByUserAndCreatedAtBetween(ctx context.Context, userID int64, start, end time.Time) (*domain.Vote, error) {
	ret := _m.Called(ctx, userID, start, end)

	var r0 *domain.Vote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Vote)
	}
	return r0, ret.Error(1)
}

func (_m *VoteRepository) FindByRestaurantAndCreatedAtBetween(ctx context.Context, restaurantID int64, start, end time.Time) ([]domain.Vote, error) {
	ret := _m.Called(ctx, restaurantID, start, end)

	var r0 []domain.Vote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Vote)
	}
	return r0, ret.Error(1)
}

func (_m *VoteRepository) FindAllByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Vote, error) {
	ret := _m.Called(ctx, restaurantID)

	var r0 []domain.Vote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Vote)
	}
	return r0, ret.Error(1)
}

func (_m *VoteRepository) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	ret := _m.Called(ctx, start, end)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *VoteRepository) CountByRestaurantBetween(ctx context.Context, start, end time.Time) ([]domain.Tally, error) {
	ret := _m.Called(ctx, start, end)

	var r0 []domain.Tally
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Tally)
	}
	return r0, ret.Error(1)
}

func NewVoteRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *VoteRepository {
	m := &VoteRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
