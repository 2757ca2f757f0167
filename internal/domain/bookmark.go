package domain

import "time"

// Bookmark marks a movie as saved by a user. It carries no payload beyond the
// (movie, user) pair.
type Bookmark struct {
	MovieID   string
	UserID    string
	CreatedAt time.Time
}
