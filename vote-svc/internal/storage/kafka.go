package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"lunch-vote/vote-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishVote keys the message by restaurant so a restaurant's votes stay in
// one partition.
func (p *KafkaPublisher) PublishVote(ctx context.Context, msg domain.VoteMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(msg.RestaurantID, 10)),
		Value: payload,
	})
}
