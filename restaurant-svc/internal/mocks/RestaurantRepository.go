package mocks

import (
	"context"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type RestaurantRepository struct {
	mock.Mock
}

func (_m *RestaurantRepository) FindByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantRepository) FindByIDAndUpdatedAt(ctx context.Context, id int64, day time.Time) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id, day)

	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantRepository) FindAll(ctx context.Context, page domain.PageRequest) ([]domain.Restaurant, int64, error) {
	ret := _m.Called(ctx, page)

	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Get(1).(int64), ret.Error(2)
}

func (_m *RestaurantRepository) FindPagedByDishDate(ctx context.Context, day time.Time, page domain.PageRequest) ([]domain.Restaurant, int64, error) {
	ret := _m.Called(ctx, day, page)

	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Get(1).(int64), ret.Error(2)
}

func (_m *RestaurantRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	ret := _m.Called(ctx, rest)
	return ret.Error(0)
}

func (_m *RestaurantRepository) UpdateRestaurant(ctx context.Context, id int64, apply func(rest *domain.Restaurant) bool) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id, apply)

	if rf, ok := ret.Get(0).(func(context.Context, int64, func(*domain.Restaurant) bool) (*domain.Restaurant, error)); ok {
		return rf(ctx, id, apply)
	}

	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantRepository) DeleteRestaurant(ctx context.Context, id int64) (int64, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(int64), ret.Error(1)
}

func NewRestaurantRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *RestaurantRepository {
	m := &RestaurantRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
