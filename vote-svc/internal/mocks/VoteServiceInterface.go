package mocks

import (
	"context"
	"time"

	"lunch-vote/vote-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type VoteServiceInterface struct {
	mock.Mock
}

func (_m *VoteServiceInterface) Cast(ctx context.Context, userID, restaurantID int64) (*domain.Vote, error) {
	ret := _m.Called(ctx, userID, restaurantID)

	var r0 *domain.Vote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Vote)
	}
	return r0, ret.Error(1)
}

func (_m *VoteServiceInterface) ForUserOnDate(ctx context.Context, userID int64, day time.Time) (*domain.Vote, error) {
	ret := _m.Called(ctx, userID, day)

	var r0 *domain.Vote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Vote)
	}
	return r0, ret.Error(1)
}

func (_m *VoteServiceInterface) ForRestaurant(ctx context.Context, restaurantID int64, day time.Time) ([]domain.Vote, error) {
	ret := _m.Called(ctx, restaurantID, day)

	var r0 []domain.Vote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Vote)
	}
	return r0, ret.Error(1)
}

func (_m *VoteServiceInterface) Results(ctx context.Context, day time.Time) ([]domain.Tally, error) {
	ret := _m.Called(ctx, day)

	var r0 []domain.Tally
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Tally)
	}
	return r0, ret.Error(1)
}

func NewVoteServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *VoteServiceInterface {
	m := &VoteServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
