package tests

import (
	"context"
	"sort"
	"sync"
	"time"

	"lunch-vote/restaurant-svc/internal/domain"
)

// memoryRepo is an in-memory RestaurantRepository and VoteRepository used by
// the scenario tests.
type memoryRepo struct {
	mu          sync.Mutex
	restaurants map[int64]domain.Restaurant
	votes       []domain.Vote
	nextID      int64
	nextDish    int64
	pagedCalls  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{restaurants: map[int64]domain.Restaurant{}}
}

func (m *memoryRepo) addVote(userID, restaurantID int64, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.votes = append(m.votes, domain.Vote{
		ID:           int64(len(m.votes) + 1),
		UserID:       userID,
		RestaurantID: restaurantID,
		CreatedAt:    at,
	})
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (m *memoryRepo) copyOf(rest domain.Restaurant, day time.Time) domain.Restaurant {
	dishes := []domain.Dish{}
	for _, d := range rest.Dishes {
		if day.IsZero() || sameDay(d.CreatedAt, day) {
			dishes = append(dishes, d)
		}
	}
	rest.Dishes = dishes
	rest.Votes = nil
	return rest
}

func (m *memoryRepo) sortedIDs() []int64 {
	ids := make([]int64, 0, len(m.restaurants))
	for id := range m.restaurants {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *memoryRepo) FindByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rest, ok := m.restaurants[id]
	if !ok {
		return nil, nil
	}
	out := m.copyOf(rest, time.Time{})
	return &out, nil
}

func (m *memoryRepo) FindByIDAndUpdatedAt(_ context.Context, id int64, day time.Time) (*domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rest, ok := m.restaurants[id]
	if !ok || !sameDay(rest.UpdatedAt, day) {
		return nil, nil
	}
	out := m.copyOf(rest, day)
	return &out, nil
}

func page(all []domain.Restaurant, req domain.PageRequest) []domain.Restaurant {
	from := req.Offset()
	if from >= len(all) {
		return []domain.Restaurant{}
	}
	to := from + req.Size
	if to > len(all) {
		to = len(all)
	}
	return all[from:to]
}

func (m *memoryRepo) FindAll(_ context.Context, req domain.PageRequest) ([]domain.Restaurant, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []domain.Restaurant{}
	for _, id := range m.sortedIDs() {
		all = append(all, m.copyOf(m.restaurants[id], time.Time{}))
	}
	return page(all, req), int64(len(all)), nil
}

func (m *memoryRepo) FindPagedByDishDate(_ context.Context, day time.Time, req domain.PageRequest) ([]domain.Restaurant, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pagedCalls++
	all := []domain.Restaurant{}
	for _, id := range m.sortedIDs() {
		rest := m.copyOf(m.restaurants[id], day)
		if len(rest.Dishes) > 0 {
			all = append(all, rest)
		}
	}
	return page(all, req), int64(len(all)), nil
}

func (m *memoryRepo) storeDishes(rest *domain.Restaurant) {
	for i := range rest.Dishes {
		m.nextDish++
		rest.Dishes[i].ID = m.nextDish
		rest.Dishes[i].RestaurantID = rest.ID
	}
}

func (m *memoryRepo) CreateRestaurant(_ context.Context, rest *domain.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	rest.ID = m.nextID
	m.storeDishes(rest)
	stored := *rest
	stored.Dishes = append([]domain.Dish(nil), rest.Dishes...)
	m.restaurants[rest.ID] = stored
	return nil
}

func (m *memoryRepo) UpdateRestaurant(_ context.Context, id int64, apply func(rest *domain.Restaurant) bool) (*domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.restaurants[id]
	if !ok {
		return nil, nil
	}
	rest := m.copyOf(stored, time.Time{})
	if apply(&rest) {
		m.storeDishes(&rest)
	}
	kept := rest
	kept.Dishes = append([]domain.Dish(nil), rest.Dishes...)
	m.restaurants[id] = kept
	return &rest, nil
}

func (m *memoryRepo) DeleteRestaurant(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.restaurants[id]; !ok {
		return 0, nil
	}
	delete(m.restaurants, id)
	kept := m.votes[:0]
	for _, v := range m.votes {
		if v.RestaurantID != id {
			kept = append(kept, v)
		}
	}
	m.votes = kept
	return 1, nil
}

func (m *memoryRepo) FindAllVotes(_ context.Context) ([]domain.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Vote{}, m.votes...), nil
}

func (m *memoryRepo) FindVotesBetween(_ context.Context, start, end time.Time) ([]domain.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Vote{}
	for _, v := range m.votes {
		if !v.CreatedAt.Before(start) && !v.CreatedAt.After(end) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memoryRepo) FindVotesByRestaurant(_ context.Context, restaurantID int64) ([]domain.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Vote{}
	for _, v := range m.votes {
		if v.RestaurantID == restaurantID {
			out = append(out, v)
		}
	}
	return out, nil
}
