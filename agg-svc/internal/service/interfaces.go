package service

import (
	"context"
	"time"

	"lunch-vote/agg-svc/internal/domain"
	"lunch-vote/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	CountVote(ctx context.Context, eventID string, day time.Time, restaurantID int64) (bool, error)
	ClearVotesCache(ctx context.Context) (int, error)
}

// MessageReader is satisfied by *kafka.Reader.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessVote(ctx context.Context, msg domain.VoteMessage)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
