package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"lunch-vote/agg-svc/internal/domain"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Loc    *time.Location
}

func NewConsumer(reader MessageReader, store StoreInterface, loc *time.Location) *Consumer {
	if loc == nil {
		loc = time.UTC
	}
	return &Consumer{
		Reader: reader,
		Store:  store,
		Loc:    loc,
	}
}

// Start reads until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Aggregation Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Aggregation Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var msg domain.VoteMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.ProcessVote(ctx, msg)
	}
}

// ProcessVote counts the vote towards its day and invalidates the cached vote
// windows. Redelivered events are counted once.
func (c *Consumer) ProcessVote(ctx context.Context, msg domain.VoteMessage) {
	if msg.Type != domain.VoteCastType {
		return
	}
	log.Printf("Processing vote: VoteID=%d, UserID=%d, RestaurantID=%d",
		msg.VoteID, msg.UserID, msg.RestaurantID)

	created := msg.CreatedAt.In(c.Loc)
	day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, c.Loc)
	counted, err := c.Store.CountVote(ctx, msg.EventID, day, msg.RestaurantID)
	if err != nil {
		log.Printf("Error updating tally: %v", err)
		return
	}
	if !counted {
		log.Printf("Skipping duplicate event %s", msg.EventID)
		return
	}

	removed, err := c.Store.ClearVotesCache(ctx)
	if err != nil {
		log.Printf("Error clearing votes cache: %v", err)
		return
	}

	log.Printf("Successfully processed vote %d (%d cached windows evicted)", msg.VoteID, removed)
}
