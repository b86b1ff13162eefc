package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lunch-vote/vote-svc/internal/domain"

	"github.com/lib/pq"
)

var (
	ErrDuplicateVote     = errors.New("user already has a vote for this day")
	ErrUnknownRestaurant = errors.New("vote references a missing restaurant")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type PostgresRepository struct {
	DB  *sql.DB
	Loc *time.Location
}

func NewPostgresRepository(db *sql.DB, loc *time.Location) *PostgresRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &PostgresRepository{DB: db, Loc: loc}
}

func (r *PostgresRepository) RestaurantExists(ctx context.Context, restaurantID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM restaurants WHERE id = $1)
	`, restaurantID).Scan(&exists)
	return exists, err
}

// InsertVote stores the vote under the calendar day it was cast on. The
// (user_id, vote_date) unique index turns a second vote into ErrDuplicateVote.
func (r *PostgresRepository) InsertVote(ctx context.Context, vote *domain.Vote, day time.Time) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO votes (user_id, restaurant_id, created_at, vote_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, vote.UserID, vote.RestaurantID, vote.CreatedAt, day.Format(domain.DateLayout)).
		Scan(&vote.ID, &vote.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return ErrDuplicateVote
		case foreignKeyViolation:
			return ErrUnknownRestaurant
		}
	}
	if err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	vote.CreatedAt = vote.CreatedAt.In(r.Loc)
	return nil
}

func (r *PostgresRepository) scanVotes(rows *sql.Rows) ([]domain.Vote, error) {
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.ID, &v.UserID, &v.RestaurantID, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		v.CreatedAt = v.CreatedAt.In(r.Loc)
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// FindByUserAndCreatedAtBetween returns nil when the user has no vote in the
// window.
func (r *PostgresRepository) FindByUserAndCreatedAtBetween(ctx context.Context, userID int64, start, end time.Time) (*domain.Vote, error) {
	var v domain.Vote
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, restaurant_id, created_at
		FROM votes
		WHERE user_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY id
		LIMIT 1
	`, userID, start, end.Truncate(time.Microsecond)).
		Scan(&v.ID, &v.UserID, &v.RestaurantID, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user vote: %w", err)
	}
	v.CreatedAt = v.CreatedAt.In(r.Loc)
	return &v, nil
}

func (r *PostgresRepository) FindByRestaurantAndCreatedAtBetween(ctx context.Context, restaurantID int64, start, end time.Time) ([]domain.Vote, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, restaurant_id, created_at
		FROM votes
		WHERE restaurant_id = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY id
	`, restaurantID, start, end.Truncate(time.Microsecond))
	if err != nil {
		return nil, fmt.Errorf("query restaurant votes: %w", err)
	}
	return r.scanVotes(rows)
}

func (r *PostgresRepository) FindAllByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Vote, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, restaurant_id, created_at
		FROM votes
		WHERE restaurant_id = $1
		ORDER BY id
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("query restaurant votes: %w", err)
	}
	return r.scanVotes(rows)
}

// CountBetween counts every vote in the window.
func (r *PostgresRepository) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM votes
		WHERE created_at BETWEEN $1 AND $2
	`, start, end.Truncate(time.Microsecond)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count votes: %w", err)
	}
	return total, nil
}

// CountByRestaurantBetween tallies the window, most voted first.
func (r *PostgresRepository) CountByRestaurantBetween(ctx context.Context, start, end time.Time) ([]domain.Tally, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT restaurant_id, COUNT(*) AS votes
		FROM votes
		WHERE created_at BETWEEN $1 AND $2
		GROUP BY restaurant_id
		ORDER BY votes DESC, restaurant_id
	`, start, end.Truncate(time.Microsecond))
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	defer rows.Close()

	tallies := []domain.Tally{}
	for rows.Next() {
		var t domain.Tally
		if err := rows.Scan(&t.RestaurantID, &t.Votes); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}
