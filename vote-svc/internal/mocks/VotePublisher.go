package mocks

import (
	"context"

	"lunch-vote/vote-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type VotePublisher struct {
	mock.Mock
}

func (_m *VotePublisher) PublishVote(ctx context.Context, msg domain.VoteMessage) error {
	ret := _m.Called(ctx, msg)
	return ret.Error(0)
}

func NewVotePublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *VotePublisher {
	m := &VotePublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
