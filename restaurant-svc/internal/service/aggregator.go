package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"
)

// VoteAggregator loads the votes of a day and buckets them by restaurant.
type VoteAggregator struct {
	repository VoteRepository
	cache      VoteCache
}

func NewVoteAggregator(repository VoteRepository, cache VoteCache) *VoteAggregator {
	return &VoteAggregator{repository: repository, cache: cache}
}

// VotesForDate returns the votes cast within the closed window of day. A zero
// day means every vote ever cast; that scan is not cached.
func (a *VoteAggregator) VotesForDate(ctx context.Context, day time.Time) ([]domain.Vote, error) {
	if day.IsZero() {
		votes, err := a.repository.FindAllVotes(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load votes: %w", err)
		}
		return votes, nil
	}

	start, end := domain.DayWindow(day)

	var key string
	if a.cache != nil {
		key = a.cache.VotesKey(start, end)
		votes, ok, err := a.cache.GetVotes(ctx, key)
		if err != nil {
			log.Printf("[restaurant-svc] votes cache read %s: %v", key, err)
		} else if ok {
			return votes, nil
		}
	}

	votes, err := a.repository.FindVotesBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes for %s: %w", day.Format(domain.DateLayout), err)
	}

	if a.cache != nil {
		if err := a.cache.SetVotes(ctx, key, votes); err != nil {
			log.Printf("[restaurant-svc] votes cache write %s: %v", key, err)
		}
	}
	return votes, nil
}

// AttachVotes sets every restaurant's votes to those referencing it.
// Restaurants without votes get an empty, non-nil slice.
func (a *VoteAggregator) AttachVotes(restaurants []domain.Restaurant, votes []domain.Vote) {
	byRestaurant := make(map[int64][]domain.Vote, len(restaurants))
	for _, vote := range votes {
		byRestaurant[vote.RestaurantID] = append(byRestaurant[vote.RestaurantID], vote)
	}

	for i := range restaurants {
		bucket := byRestaurant[restaurants[i].ID]
		if bucket == nil {
			bucket = []domain.Vote{}
		}
		restaurants[i].Votes = bucket
	}
}
