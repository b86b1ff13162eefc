package mocks

import (
	"context"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type RestaurantServiceInterface struct {
	mock.Mock
}

func (_m *RestaurantServiceInterface) GetPaged(ctx context.Context, day time.Time, page domain.PageRequest) (*domain.Page, error) {
	ret := _m.Called(ctx, day, page)

	var r0 *domain.Page
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Page)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) GetAll(ctx context.Context, page domain.PageRequest) (*domain.Page, error) {
	ret := _m.Called(ctx, page)

	var r0 *domain.Page
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Page)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) GetOne(ctx context.Context, id int64) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) GetTodaysDishes(ctx context.Context, id int64) ([]domain.Dish, error) {
	ret := _m.Called(ctx, id)

	var r0 []domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Dish)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) Create(ctx context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, rest)

	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) Update(ctx context.Context, id int64, patch domain.RestaurantPatch) (*domain.Restaurant, error) {
	ret := _m.Called(ctx, id, patch)

	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *RestaurantServiceInterface) VoteQRCode(ctx context.Context, id int64) ([]byte, error) {
	ret := _m.Called(ctx, id)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantServiceInterface) Today() time.Time {
	ret := _m.Called()
	return ret.Get(0).(time.Time)
}

func NewRestaurantServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *RestaurantServiceInterface {
	m := &RestaurantServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
