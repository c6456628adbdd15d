package statsclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

// MockSource implements Source for testing
type MockSource struct {
	mu       sync.Mutex
	data     map[models.Category][]models.DataPoint
	requests map[string]int

	// Control flags for testing error scenarios
	ShouldFailStatus    bool
	ShouldFailTransport bool
}

// NewMockSource returns a source preloaded with one small dataset per category.
func NewMockSource() *MockSource {
	return &MockSource{
		data: map[models.Category][]models.DataPoint{
			models.CategoryRating: {
				models.NewDataPoint(models.CategoryRating, "0-2", 5),
				models.NewDataPoint(models.CategoryRating, "2-4", 10),
			},
			models.CategoryYear: {
				models.NewDataPoint(models.CategoryYear, "1990s", 12),
				models.NewDataPoint(models.CategoryYear, "2000s", 20),
			},
			models.CategoryCountry: {
				models.NewDataPoint(models.CategoryCountry, "USA", 40),
				models.NewDataPoint(models.CategoryCountry, "China", 25),
			},
		},
		requests: make(map[string]int),
	}
}

func (m *MockSource) SetData(c models.Category, points []models.DataPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[c] = points
}

func (m *MockSource) Distribution(ctx context.Context, category models.Category) ([]models.DataPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests[category.Endpoint()]++

	if m.ShouldFailTransport {
		return nil, errors.NewServiceError("request failed", serviceName, "distribution", fmt.Errorf("mock connection refused"))
	}
	if m.ShouldFailStatus {
		return nil, errors.NewAPIError("stats API status \"error\"", 200, nil)
	}

	points := m.data[category]
	out := make([]models.DataPoint, len(points))
	copy(out, points)
	return out, nil
}

// Requests returns how many times endpoint was requested.
func (m *MockSource) Requests(endpoint string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[endpoint]
}

func (m *MockSource) TotalRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.requests {
		total += n
	}
	return total
}
