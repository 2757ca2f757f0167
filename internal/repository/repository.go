package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FlorekPawel/movie-db/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicateTitle indicates a movie with the same title already exists.
var ErrDuplicateTitle = errors.New("repository: duplicate title")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Movies    *MoviesRepository
	Ratings   *RatingsRepository
	Bookmarks *BookmarksRepository
	Users     *UsersRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Movies:    &MoviesRepository{pool: pool},
		Ratings:   &RatingsRepository{pool: pool},
		Bookmarks: &BookmarksRepository{pool: pool},
		Users:     &UsersRepository{pool: pool},
	}
}
