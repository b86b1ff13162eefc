package domain

import "time"

const VoteCastType = "vote_cast"

// VoteMessage mirrors the event vote-svc publishes on the votes topic.
type VoteMessage struct {
	Type         string    `json:"type"`
	EventID      string    `json:"event_id"`
	VoteID       int64     `json:"vote_id"`
	UserID       int64     `json:"user_id"`
	RestaurantID int64     `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}
