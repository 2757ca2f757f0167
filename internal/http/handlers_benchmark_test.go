package httpserver

import (
	"fmt"
	"net/http"
	"testing"
)

func BenchmarkHandleSubmitRating(b *testing.B) {
	srv := buildTestServer(b)
	movie := mustCreateMovieDirect(b, srv, "Benchmark Movie")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := doRequest(srv, http.MethodPost, "/movies/"+movie.ID+"/ratings",
			fmt.Sprintf("bench-%d", i), []byte(`{"rating":4.0}`))
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}

func BenchmarkHandleListMovies(b *testing.B) {
	srv := buildTestServer(b)
	for i := 0; i < 25; i++ {
		mustCreateMovieDirect(b, srv, fmt.Sprintf("Bench Movie %d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := doRequest(srv, http.MethodGet, "/movies?page=2", "", nil)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
