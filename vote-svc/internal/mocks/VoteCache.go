package mocks

import (
	"context"
	"time"

	"lunch-vote/vote-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type VoteCache struct {
	mock.Mock
}

func (_m *VoteCache) MarkerKey(userID int64, day time.Time) string {
	ret := _m.Called(userID, day)
	return ret.String(0)
}

func (_m *VoteCache) HasMarker(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func (_m *VoteCache) SetMarker(ctx context.Context, key string, ttl time.Duration) error {
	ret := _m.Called(ctx, key, ttl)
	return ret.Error(0)
}

func (_m *VoteCache) TallyKey(day time.Time) string {
	ret := _m.Called(day)
	return ret.String(0)
}

func (_m *VoteCache) Tallies(ctx context.Context, key string) ([]domain.Tally, bool, error) {
	ret := _m.Called(ctx, key)

	var r0 []domain.Tally
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Tally)
	}
	return r0, ret.Bool(1), ret.Error(2)
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
