package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lunch-vote/agg-svc/internal/domain"
	"lunch-vote/agg-svc/internal/mocks"
	"lunch-vote/agg-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

var testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func voteMessage() domain.VoteMessage {
	return domain.VoteMessage{
		Type:         domain.VoteCastType,
		EventID:      "evt-1",
		VoteID:       1,
		UserID:       3,
		RestaurantID: 10,
		CreatedAt:    testDay.Add(13 * time.Hour),
	}
}

func TestConsumer_ProcessVote(t *testing.T) {
	tests := []struct {
		name           string
		inputMessage   domain.VoteMessage
		setupMockStore func(*mocks.StoreInterface)
	}{
		{
			name:         "success",
			inputMessage: voteMessage(),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("CountVote", mock.Anything, "evt-1", testDay, int64(10)).Return(true, nil).Once()
				mockStore.On("ClearVotesCache", mock.Anything).Return(2, nil).Once()
			},
		},
		{
			name:         "duplicate event",
			inputMessage: voteMessage(),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("CountVote", mock.Anything, "evt-1", testDay, int64(10)).Return(false, nil).Once()
			},
		},
		{
			name:         "CountVote error",
			inputMessage: voteMessage(),
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("CountVote", mock.Anything, "evt-1", testDay, int64(10)).Return(false, errors.New("redis error")).Once()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := service.NewConsumer(nil, mockStore, time.UTC)

			consumer.ProcessVote(context.Background(), testCase.inputMessage)
		})
	}
}

// A failed tally update must leave the event countable on redelivery.
func TestConsumer_RedeliveryAfterFailedCount(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	consumer := service.NewConsumer(nil, mockStore, time.UTC)

	mockStore.On("CountVote", mock.Anything, "evt-1", testDay, int64(10)).Return(false, errors.New("redis error")).Once()
	mockStore.On("CountVote", mock.Anything, "evt-1", testDay, int64(10)).Return(true, nil).Once()
	mockStore.On("ClearVotesCache", mock.Anything).Return(0, nil).Once()

	consumer.ProcessVote(context.Background(), voteMessage())
	consumer.ProcessVote(context.Background(), voteMessage())
}

func TestConsumer_DayFollowsLocation(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	tokyo := time.FixedZone("JST", 9*3600)
	msg := voteMessage()
	msg.EventID = ""
	msg.CreatedAt = testDay.Add(20 * time.Hour)

	mockStore.On("CountVote", mock.Anything, "", time.Date(2024, 3, 16, 0, 0, 0, 0, tokyo), int64(10)).Return(true, nil).Once()
	mockStore.On("ClearVotesCache", mock.Anything).Return(0, nil).Once()

	service.NewConsumer(nil, mockStore, tokyo).ProcessVote(context.Background(), msg)
}

func TestConsumer_InvalidMessageType(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	consumer := &service.Consumer{
		Store: mockStore,
	}

	message := voteMessage()
	message.Type = "unknown_type"

	consumer.ProcessVote(context.Background(), message)
	mockStore.AssertNotCalled(t, "CountVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "ClearVotesCache", mock.Anything)
}

type scriptedReader struct {
	msgs   []kafka.Message
	cancel context.CancelFunc
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func TestConsumer_StartStopsOnCancel(t *testing.T) {
	payload, _ := json.Marshal(voteMessage())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{
		msgs:   []kafka.Message{{Value: []byte("not json")}, {Value: payload}},
		cancel: cancel,
	}
	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("CountVote", mock.Anything, "evt-1", testDay, int64(10)).Return(true, nil).Once()
	mockStore.On("ClearVotesCache", mock.Anything).Return(1, nil).Once()

	service.NewConsumer(reader, mockStore, time.UTC).Start(ctx)
}
