package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FlorekPawel/movie-db/internal/domain"
)

// PageSize is the fixed number of movies per listing page.
const PageSize = 10

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    id,
    title,
    release_year,
    genre,
    duration,
    director,
    average_rating,
    created_at,
    updated_at
`

// MovieCreateParams bundles the fields required to create a movie.
type MovieCreateParams struct {
	Title       string
	ReleaseYear int
	Genre       string
	Duration    int
	Director    *string
}

// MovieListFilters encapsulates the optional listing predicates and page
// number. Nil fields do not constrain the result set.
type MovieListFilters struct {
	Title     *string
	Genre     *string
	Director  *string
	Year      *int
	MinRating *float64
	Page      int
}

// MovieListResult returns one page of movies plus pagination metadata.
type MovieListResult struct {
	Items      []domain.Movie
	Page       int
	TotalPages int
	TotalItems int64
}

// Create inserts a new movie row and returns the stored entity. The title
// uniqueness constraint is enforced by the database; violations surface as
// ErrDuplicateTitle.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	director := domain.DefaultDirector
	if params.Director != nil && strings.TrimSpace(*params.Director) != "" {
		director = strings.TrimSpace(*params.Director)
	}

	query := fmt.Sprintf(`
        INSERT INTO movies (title, release_year, genre, duration, director)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query, strings.TrimSpace(params.Title), params.ReleaseYear, params.Genre, params.Duration, director)
	movie, err := scanMovie(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Movie{}, ErrDuplicateTitle
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id string) (domain.Movie, error) {
	// The text-to-uuid cast happens server side so malformed ids fail as a
	// Postgres error we can map to ErrNotFound instead of a client encode error.
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = ($1::text)::uuid`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// GetByTitle fetches a movie by its unique title.
func (r *MoviesRepository) GetByTitle(ctx context.Context, title string) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE title = $1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// Delete removes a movie; ratings and bookmarks cascade at the storage layer.
func (r *MoviesRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = ($1::text)::uuid`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the requested page of movies matching the filters, ordered by
// insertion so pages stay stable across requests.
func (r *MoviesRepository) List(ctx context.Context, filters MovieListFilters) (MovieListResult, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}

	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Title != nil && strings.TrimSpace(*filters.Title) != "" {
		where = append(where, fmt.Sprintf("title ILIKE %s", arg("%"+strings.TrimSpace(*filters.Title)+"%")))
	}
	if filters.Genre != nil && strings.TrimSpace(*filters.Genre) != "" {
		where = append(where, fmt.Sprintf("genre = %s", arg(strings.TrimSpace(*filters.Genre))))
	}
	if filters.Director != nil && strings.TrimSpace(*filters.Director) != "" {
		where = append(where, fmt.Sprintf("director ILIKE %s", arg("%"+strings.TrimSpace(*filters.Director)+"%")))
	}
	if filters.Year != nil {
		where = append(where, fmt.Sprintf("release_year = %s", arg(*filters.Year)))
	}
	if filters.MinRating != nil {
		where = append(where, fmt.Sprintf("average_rating >= %s", arg(*filters.MinRating)))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(movieColumns)
	queryBuilder.WriteString(", count(*) OVER() AS total_items FROM movies")

	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY created_at, id")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", PageSize, (page-1)*PageSize))

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return MovieListResult{}, err
	}
	defer rows.Close()

	items := make([]domain.Movie, 0, PageSize)
	var total int64
	for rows.Next() {
		movie, rowTotal, err := scanMovieWithTotal(rows)
		if err != nil {
			return MovieListResult{}, err
		}
		total = rowTotal
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return MovieListResult{}, err
	}

	// An out-of-range page returns no rows, so the window total is lost;
	// fall back to a count query to keep the metadata accurate.
	if len(items) == 0 && page > 1 {
		countQuery := "SELECT count(*) FROM movies"
		if len(where) > 0 {
			countQuery += " WHERE " + strings.Join(where, " AND ")
		}
		if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return MovieListResult{}, err
		}
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	return MovieListResult{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

// TopByAverageRating returns the n movies with the highest persisted average
// rating, ties broken by insertion order. It intentionally reads the cached
// column rather than aggregating rating rows.
func (r *MoviesRepository) TopByAverageRating(ctx context.Context, n int) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies ORDER BY average_rating DESC, created_at, id LIMIT $1`, movieColumns)
	rows, err := r.pool.Query(ctx, query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Movie, 0, n)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, movie)
	}
	return items, rows.Err()
}

// recomputeAverageRating refreshes the cached average for a movie from its
// current rating rows, rounded to two decimals, zero when none remain. It runs
// inside the caller's transaction so rating writes and the recompute commit as
// one unit.
func recomputeAverageRating(ctx context.Context, tx pgx.Tx, movieID string) (float64, error) {
	const query = `
        UPDATE movies
        SET average_rating = COALESCE((
                SELECT ROUND(AVG(rating)::numeric, 2)::double precision
                FROM ratings
                WHERE movie_id = $1
            ), 0),
            updated_at = now()
        WHERE id = $1
        RETURNING average_rating
    `
	var average float64
	if err := tx.QueryRow(ctx, query, movieID).Scan(&average); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("recompute average rating: %w", err)
	}
	return average, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.ReleaseYear,
		&movie.Genre,
		&movie.Duration,
		&movie.Director,
		&movie.AverageRating,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

func scanMovieWithTotal(row pgx.Row) (domain.Movie, int64, error) {
	var movie domain.Movie
	var total int64
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.ReleaseYear,
		&movie.Genre,
		&movie.Duration,
		&movie.Director,
		&movie.AverageRating,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&total,
	)
	if err != nil {
		return domain.Movie{}, 0, err
	}
	return movie, total, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
