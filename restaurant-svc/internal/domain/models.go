package domain

import "time"

const DateLayout = "2006-01-02"

type Restaurant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	UpdatedAt time.Time `json:"updated_at"`
	Dishes    []Dish    `json:"dishes"`
	Votes     []Vote    `json:"votes"`
}

type Dish struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}

type Vote struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	RestaurantID int64     `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// RestaurantPatch carries a partial update. Nil fields are left untouched.
type RestaurantPatch struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Dishes   []Dish  `json:"dishes"`
}

func (p RestaurantPatch) Empty() bool {
	return p.Name == nil && p.Location == nil && p.Dishes == nil
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Normalize applies the default size and clamps out-of-range values.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

type Page struct {
	Content       []Restaurant `json:"content"`
	Page          int          `json:"page"`
	Size          int          `json:"size"`
	TotalElements int64        `json:"total_elements"`
	TotalPages    int          `json:"total_pages"`
}

func NewPage(content []Restaurant, req PageRequest, total int64) *Page {
	if content == nil {
		content = []Restaurant{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// Day truncates t to midnight of its calendar day in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DateOf reinterprets a DATE column value (midnight UTC from the driver) as
// the same calendar day in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayWindow returns the closed interval [midnight, last instant] of day.
func DayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}
