package mocks

import (
	"context"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type VoteCache struct {
	mock.Mock
}

func (_m *VoteCache) VotesKey(start, end time.Time) string {
	ret := _m.Called(start, end)
	return ret.String(0)
}

func (_m *VoteCache) GetVotes(ctx context.Context, key string) ([]domain.Vote, bool, error) {
	ret := _m.Called(ctx, key)

	var r0 []domain.Vote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Vote)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

func (_m *VoteCache) SetVotes(ctx context.Context, key string, votes []domain.Vote) error {
	ret := _m.Called(ctx, key, votes)
	return ret.Error(0)
}

func NewVoteCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *VoteCache {
	m := &VoteCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
