package statsclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

func init() {
	logger.Init(logger.ERROR, false, nil)
}

func TestClient_Distribution_Success(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","data":[{"rating_range":"0-2","count":5},{"rating_range":"2-4","count":10}]}`))
	}))
	defer server.Close()

	client := New(server.URL+"/", time.Second)
	points, err := client.Distribution(context.Background(), models.CategoryRating)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}

	if gotPath != "/api/movies/rating-distribution" {
		t.Errorf("expected rating endpoint, got %s", gotPath)
	}
	if len(points) != 2 || points[0].RatingRange != "0-2" || points[1].Count != 10 {
		t.Fatalf("unexpected points: %+v", points)
	}
}

func TestClient_Distribution_ClampsNegativeCounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":[{"decade":"2010s","count":-3},{"decade":"2000s","count":4}]}`))
	}))
	defer server.Close()

	points, err := New(server.URL, time.Second).Distribution(context.Background(), models.CategoryYear)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if points[0].Count != 0 || points[1].Count != 4 {
		t.Fatalf("expected counts [0 4], got %+v", points)
	}
}

func TestClient_Distribution_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","data":[]}`))
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second).Distribution(context.Background(), models.CategoryYear)
	if !errors.IsAPIError(err) {
		t.Fatalf("expected APIError, got %v", err)
	}
}

func TestClient_Distribution_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","message":"boom"}`))
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second).Distribution(context.Background(), models.CategoryCountry)
	if !errors.IsAPIError(err) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if errors.StatusCode(err) != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", errors.StatusCode(err))
	}
}

func TestClient_Distribution_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(url, time.Second).Distribution(context.Background(), models.CategoryRating)
	if !errors.IsServiceError(err) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}

func TestClient_Distribution_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second).Distribution(context.Background(), models.CategoryRating)
	if !errors.IsServiceError(err) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}

func TestMockSource_CountsRequests(t *testing.T) {
	m := NewMockSource()
	ctx := context.Background()

	if _, err := m.Distribution(ctx, models.CategoryYear); err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if m.Requests(models.CategoryYear.Endpoint()) != 1 {
		t.Errorf("expected 1 year request, got %d", m.Requests(models.CategoryYear.Endpoint()))
	}

	m.ShouldFailTransport = true
	if _, err := m.Distribution(ctx, models.CategoryYear); !errors.IsServiceError(err) {
		t.Errorf("expected ServiceError, got %v", err)
	}
	if m.TotalRequests() != 2 {
		t.Errorf("expected 2 total requests, got %d", m.TotalRequests())
	}
}
