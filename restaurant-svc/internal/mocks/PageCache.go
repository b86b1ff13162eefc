package mocks

import (
	"context"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type PageCache struct {
	mock.Mock
}

func (_m *PageCache) PagedKey(day time.Time, page domain.PageRequest) string {
	ret := _m.Called(day, page)
	return ret.String(0)
}

func (_m *PageCache) GetPage(ctx context.Context, key string) (*domain.Page, error) {
	ret := _m.Called(ctx, key)

	var r0 *domain.Page
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Page)
	}
	return r0, ret.Error(1)
}

func (_m *PageCache) SetPage(ctx context.Context, key string, page *domain.Page) error {
	ret := _m.Called(ctx, key, page)
	return ret.Error(0)
}

func (_m *PageCache) Clear(ctx context.Context, cache string) error {
	ret := _m.Called(ctx, cache)
	return ret.Error(0)
}

func NewPageCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *PageCache {
	m := &PageCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
