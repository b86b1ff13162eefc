package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type StoreInterface struct {
	mock.Mock
}

func (_m *StoreInterface) CountVote(ctx context.Context, eventID string, day time.Time, restaurantID int64) (bool, error) {
	ret := _m.Called(ctx, eventID, day, restaurantID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *StoreInterface) ClearVotesCache(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)
	return ret.Int(0), ret.Error(1)
}

func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
