package mocks

import (
	"context"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type VoteRepository struct {
	mock.Mock
}

func (_m *VoteRepository) FindAllVotes(ctx context.Context) ([]domain.Vote, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Vote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Vote)
	}
	return r0, ret.Error(1)
}

func (_m *VoteRepository) FindVotesBetween(ctx context.Context, start, end time.Time) ([]domain.Vote, error) {
	ret := _m.Called(ctx, start, end)

	var r0 []domain.Vote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Vote)
	}
	return r0, ret.Error(1)
}

func (_m *VoteRepository) FindVotesByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Vote, error) {
	ret := _m.Called(ctx, restaurantID)

	var r0 []domain.Vote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Vote)
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
