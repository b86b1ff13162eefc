package service

import (
	"errors"
	"fmt"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNoCurrentMenu      = errors.New("restaurant not found or has no menu for today")
)

type RestaurantNotFoundError struct {
	ID int64
}

func (e *RestaurantNotFoundError) Error() string {
	return fmt.Sprintf("restaurant %d not found", e.ID)
}

func (e *RestaurantNotFoundError) Is(target error) bool {
	return target == ErrRestaurantNotFound
}

// NoCurrentMenuError covers both a missing restaurant and one whose menu was
// not published today.
type NoCurrentMenuError struct {
	ID int64
}

func (e *NoCurrentMenuError) Error() string {
	return fmt.Sprintf("restaurant %d not found or has no menu for today", e.ID)
}

func (e *NoCurrentMenuError) Is(target error) bool {
	return target == ErrNoCurrentMenu
}
