package domain

import "time"

const DateLayout = "2006-01-02"

// VoteCastType is the only message type on the votes topic.
const VoteCastType = "vote_cast"

type Vote struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	RestaurantID int64     `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type CastRequest struct {
	UserID       int64 `json:"user_id"`
	RestaurantID int64 `json:"restaurant_id"`
}

// Tally is the number of votes a restaurant received on one day.
type Tally struct {
	RestaurantID int64 `json:"restaurant_id"`
	Votes        int64 `json:"votes"`
}

type VoteMessage struct {
	Type         string    `json:"type"`
	EventID      string    `json:"event_id"`
	VoteID       int64     `json:"vote_id"`
	UserID       int64     `json:"user_id"`
	RestaurantID int64     `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func Day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayWindow returns the closed interval [midnight, last instant] of day.
func DayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
