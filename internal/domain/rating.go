package domain

import "time"

// Rating represents a single user's rating for a movie. One row exists per
// (movie, user) pair; repeated submissions update it in place.
type Rating struct {
	MovieID   string
	UserID    string
	Value     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingAggregate provides the live average and count for a movie's ratings,
// computed from current rating rows rather than the cached column.
type RatingAggregate struct {
	Average float64
	Count   int64
}

// ValidRating reports whether a rating value lies within the inclusive [0, 5]
// range.
func ValidRating(value float64) bool {
	return value >= 0 && value <= 5
}
