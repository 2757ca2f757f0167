// Command seed loads a JSON fixture (users, role grants, movies, ratings,
// bookmarks) into the catalog database. Ratings go through the regular submit
// path so each movie's cached average ends up consistent.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/FlorekPawel/movie-db/internal/config"
	"github.com/FlorekPawel/movie-db/internal/repository"
	"github.com/FlorekPawel/movie-db/internal/store"
)

type fixture struct {
	Users []struct {
		ID    string   `json:"id"`
		Roles []string `json:"roles"`
	} `json:"users"`
	Movies []struct {
		Title       string  `json:"title"`
		ReleaseYear int     `json:"releaseYear"`
		Genre       string  `json:"genre"`
		Duration    int     `json:"duration"`
		Director    *string `json:"director"`
	} `json:"movies"`
	Ratings []struct {
		MovieTitle string  `json:"movieTitle"`
		UserID     string  `json:"userId"`
		Rating     float64 `json:"rating"`
	} `json:"ratings"`
	Bookmarks []struct {
		MovieTitle string `json:"movieTitle"`
		UserID     string `json:"userId"`
	} `json:"bookmarks"`
}

func main() {
	var fixturePath = flag.String("fixture", "db/seed.json", "path to the fixture file")
	flag.Parse()

	payload, err := os.ReadFile(*fixturePath)
	if err != nil {
		log.Fatalf("read fixture: %v", err)
	}
	var fx fixture
	if err := json.Unmarshal(payload, &fx); err != nil {
		log.Fatalf("parse fixture: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[catalog-seed] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	st, err := store.New(ctx, cfg.DBURL, store.Options{Logger: logger})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	repo := repository.New(st)

	for _, u := range fx.Users {
		if err := repo.Users.Ensure(ctx, u.ID); err != nil {
			log.Fatalf("ensure user %s: %v", u.ID, err)
		}
		for _, role := range u.Roles {
			if err := repo.Users.GrantRole(ctx, u.ID, role); err != nil {
				log.Fatalf("grant role %s to %s: %v", role, u.ID, err)
			}
		}
	}
	logger.Printf("loaded %d users", len(fx.Users))

	for _, m := range fx.Movies {
		_, err := repo.Movies.Create(ctx, repository.MovieCreateParams{
			Title:       m.Title,
			ReleaseYear: m.ReleaseYear,
			Genre:       m.Genre,
			Duration:    m.Duration,
			Director:    m.Director,
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateTitle) {
				logger.Printf("movie %q already present, skipping", m.Title)
				continue
			}
			log.Fatalf("create movie %q: %v", m.Title, err)
		}
	}
	logger.Printf("loaded %d movies", len(fx.Movies))

	for _, rt := range fx.Ratings {
		movie, err := repo.Movies.GetByTitle(ctx, rt.MovieTitle)
		if err != nil {
			log.Fatalf("lookup movie %q: %v", rt.MovieTitle, err)
		}
		if _, err := repo.Ratings.Submit(ctx, repository.RatingSubmitParams{
			MovieID: movie.ID,
			UserID:  rt.UserID,
			Value:   rt.Rating,
		}); err != nil {
			log.Fatalf("submit rating for %q by %s: %v", rt.MovieTitle, rt.UserID, err)
		}
	}
	logger.Printf("loaded %d ratings", len(fx.Ratings))

	for _, b := range fx.Bookmarks {
		movie, err := repo.Movies.GetByTitle(ctx, b.MovieTitle)
		if err != nil {
			log.Fatalf("lookup movie %q: %v", b.MovieTitle, err)
		}
		if _, err := repo.Bookmarks.Add(ctx, b.UserID, movie.ID); err != nil {
			log.Fatalf("bookmark %q for %s: %v", b.MovieTitle, b.UserID, err)
		}
	}
	logger.Printf("loaded %d bookmarks", len(fx.Bookmarks))
}
