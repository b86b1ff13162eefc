package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"

	"github.com/lib/pq"
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

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func dateArg(day time.Time) string {
	return day.Format(domain.DateLayout)
}

func (r *PostgresRepository) readTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) writeTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) scanRestaurants(rows *sql.Rows) ([]domain.Restaurant, error) {
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Location, &rest.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		rest.UpdatedAt = domain.DateOf(rest.UpdatedAt, r.Loc)
		rest.Dishes = []domain.Dish{}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) scanDishes(rows *sql.Rows) ([]domain.Dish, error) {
	defer rows.Close()

	dishes := []domain.Dish{}
	for rows.Next() {
		var dish domain.Dish
		if err := rows.Scan(&dish.ID, &dish.RestaurantID, &dish.Name, &dish.Price, &dish.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		dish.CreatedAt = domain.DateOf(dish.CreatedAt, r.Loc)
		dishes = append(dishes, dish)
	}
	return dishes, rows.Err()
}

// attachDishes loads dishes for the given restaurants in one query. A
// non-zero day restricts them to dishes created on that day.
func (r *PostgresRepository) attachDishes(ctx context.Context, q queryer, restaurants []domain.Restaurant, day time.Time) error {
	if len(restaurants) == 0 {
		return nil
	}

	ids := make([]int64, len(restaurants))
	index := make(map[int64]int, len(restaurants))
	for i, rest := range restaurants {
		ids[i] = rest.ID
		index[rest.ID] = i
	}

	var (
		rows *sql.Rows
		err  error
	)
	if day.IsZero() {
		rows, err = q.QueryContext(ctx, `
			SELECT id, restaurant_id, name, price, created_at
			FROM dishes
			WHERE restaurant_id = ANY($1)
			ORDER BY id`, pq.Array(ids))
	} else {
		rows, err = q.QueryContext(ctx, `
			SELECT id, restaurant_id, name, price, created_at
			FROM dishes
			WHERE restaurant_id = ANY($1) AND created_at = $2
			ORDER BY id`, pq.Array(ids), dateArg(day))
	}
	if err != nil {
		return fmt.Errorf("query dishes: %w", err)
	}

	dishes, err := r.scanDishes(rows)
	if err != nil {
		return err
	}
	for _, dish := range dishes {
		i := index[dish.RestaurantID]
		restaurants[i].Dishes = append(restaurants[i].Dishes, dish)
	}
	return nil
}

// FindByID returns the restaurant with all its dishes, or nil if absent.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	var found *domain.Restaurant
	err := r.readTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, name, location, updated_at
			FROM restaurants
			WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("query restaurant: %w", err)
		}
		restaurants, err := r.scanRestaurants(rows)
		if err != nil || len(restaurants) == 0 {
			return err
		}
		if err := r.attachDishes(ctx, tx, restaurants, time.Time{}); err != nil {
			return err
		}
		found = &restaurants[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// FindByIDAndUpdatedAt returns the restaurant only if its menu was set on
// day, with the dishes created on that day attached.
func (r *PostgresRepository) FindByIDAndUpdatedAt(ctx context.Context, id int64, day time.Time) (*domain.Restaurant, error) {
	var found *domain.Restaurant
	err := r.readTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, name, location, updated_at
			FROM restaurants
			WHERE id = $1 AND updated_at = $2`, id, dateArg(day))
		if err != nil {
			return fmt.Errorf("query restaurant menu: %w", err)
		}
		restaurants, err := r.scanRestaurants(rows)
		if err != nil || len(restaurants) == 0 {
			return err
		}
		if err := r.attachDishes(ctx, tx, restaurants, day); err != nil {
			return err
		}
		found = &restaurants[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context, page domain.PageRequest) ([]domain.Restaurant, int64, error) {
	var (
		restaurants []domain.Restaurant
		total       int64
	)
	err := r.readTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&total); err != nil {
			return fmt.Errorf("count restaurants: %w", err)
		}
		rows, err := tx.QueryContext(ctx, `
			SELECT id, name, location, updated_at
			FROM restaurants
			ORDER BY id
			LIMIT $1 OFFSET $2`, page.Size, page.Offset())
		if err != nil {
			return fmt.Errorf("query restaurants: %w", err)
		}
		if restaurants, err = r.scanRestaurants(rows); err != nil {
			return err
		}
		return r.attachDishes(ctx, tx, restaurants, time.Time{})
	})
	if err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

// FindPagedByDishDate pages restaurants having at least one dish created on
// day. Only the dishes of that day are attached.
func (r *PostgresRepository) FindPagedByDishDate(ctx context.Context, day time.Time, page domain.PageRequest) ([]domain.Restaurant, int64, error) {
	var (
		restaurants []domain.Restaurant
		total       int64
	)
	err := r.readTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(DISTINCT r.id)
			FROM restaurants r
			JOIN dishes d ON d.restaurant_id = r.id
			WHERE d.created_at = $1`, dateArg(day)).Scan(&total); err != nil {
			return fmt.Errorf("count restaurants by dish date: %w", err)
		}
		rows, err := tx.QueryContext(ctx, `
			SELECT DISTINCT r.id, r.name, r.location, r.updated_at
			FROM restaurants r
			JOIN dishes d ON d.restaurant_id = r.id
			WHERE d.created_at = $1
			ORDER BY r.id
			LIMIT $2 OFFSET $3`, dateArg(day), page.Size, page.Offset())
		if err != nil {
			return fmt.Errorf("query restaurants by dish date: %w", err)
		}
		if restaurants, err = r.scanRestaurants(rows); err != nil {
			return err
		}
		return r.attachDishes(ctx, tx, restaurants, day)
	})
	if err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

func (r *PostgresRepository) insertDishes(ctx context.Context, tx *sql.Tx, rest *domain.Restaurant) error {
	for i := range rest.Dishes {
		dish := &rest.Dishes[i]
		dish.RestaurantID = rest.ID
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO dishes (restaurant_id, name, price, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			dish.RestaurantID, dish.Name, dish.Price, dateArg(dish.CreatedAt)).Scan(&dish.ID); err != nil {
			return fmt.Errorf("insert dish: %w", err)
		}
	}
	return nil
}

// CreateRestaurant inserts the restaurant and its dishes in one transaction.
func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return r.writeTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO restaurants (name, location, updated_at)
			VALUES ($1, $2, $3)
			RETURNING id`,
			rest.Name, rest.Location, dateArg(rest.UpdatedAt)).Scan(&rest.ID); err != nil {
			return fmt.Errorf("insert restaurant: %w", err)
		}
		return r.insertDishes(ctx, tx, rest)
	})
}

// UpdateRestaurant locks the restaurant row, loads it with its dishes and
// hands it to apply. apply reports whether the dish collection must be
// replaced by rest.Dishes. The result is nil when the restaurant is absent.
func (r *PostgresRepository) UpdateRestaurant(ctx context.Context, id int64, apply func(rest *domain.Restaurant) bool) (*domain.Restaurant, error) {
	var updated *domain.Restaurant
	err := r.writeTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, name, location, updated_at
			FROM restaurants
			WHERE id = $1
			FOR UPDATE`, id)
		if err != nil {
			return fmt.Errorf("lock restaurant: %w", err)
		}
		restaurants, err := r.scanRestaurants(rows)
		if err != nil || len(restaurants) == 0 {
			return err
		}
		if err := r.attachDishes(ctx, tx, restaurants, time.Time{}); err != nil {
			return err
		}

		rest := &restaurants[0]
		replaceDishes := apply(rest)

		result, err := tx.ExecContext(ctx, `
			UPDATE restaurants
			SET name = $1, location = $2, updated_at = $3
			WHERE id = $4`,
			rest.Name, rest.Location, dateArg(rest.UpdatedAt), rest.ID)
		if err != nil {
			return fmt.Errorf("update restaurant: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update restaurant: %w", err)
		}
		if affected == 0 {
			return nil
		}

		if replaceDishes {
			if _, err := tx.ExecContext(ctx, `DELETE FROM dishes WHERE restaurant_id = $1`, rest.ID); err != nil {
				return fmt.Errorf("delete dishes: %w", err)
			}
			if err := r.insertDishes(ctx, tx, rest); err != nil {
				return err
			}
		}
		updated = rest
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRestaurant removes the restaurant; dishes and votes cascade.
func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := r.writeTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete restaurant: %w", err)
		}
		affected, err = result.RowsAffected()
		return err
	})
	return affected, err
}

func (r *PostgresRepository) scanVotes(rows *sql.Rows) ([]domain.Vote, error) {
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.ID, &vote.UserID, &vote.RestaurantID, &vote.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		vote.CreatedAt = vote.CreatedAt.In(r.Loc)
		votes = append(votes, vote)
	}
	return votes, rows.Err()
}

func (r *PostgresRepository) FindAllVotes(ctx context.Context) ([]domain.Vote, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, restaurant_id, created_at
		FROM votes
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	return r.scanVotes(rows)
}

// FindVotesBetween returns votes with start <= created_at <= end. The end
// bound is truncated to the store's microsecond precision so that the last
// instant of a day does not round into the next one.
func (r *PostgresRepository) FindVotesBetween(ctx context.Context, start, end time.Time) ([]domain.Vote, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, restaurant_id, created_at
		FROM votes
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY id`, start, end.Truncate(time.Microsecond))
	if err != nil {
		return nil, fmt.Errorf("query votes between: %w", err)
	}
	return r.scanVotes(rows)
}

func (r *PostgresRepository) FindVotesByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Vote, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, restaurant_id, created_at
		FROM votes
		WHERE restaurant_id = $1
		ORDER BY id`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("query restaurant votes: %w", err)
	}
	return r.scanVotes(rows)
}
