package distribution

import (
	"context"
	"testing"

	"github.com/binhbb2204/movie-stats-viz/pkg/database"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

type seedMovie struct {
	id      string
	rating  interface{}
	year    string
	country string
}

var seedMovies = []seedMovie{
	{"1292052", 9.7, "1994", "美国"},
	{"1291546", 9.6, "1993", "中国大陆 中国香港"},
	{"1291561", 9.4, "2001", "日本"},
	{"3541415", 8.5, "2010", "美国 英国"},
	{"1292063", 7.2, "1975", "法国"},
	{"9999999", nil, "", ""},
}

func setupRepository(t *testing.T) *SQLRepository {
	t.Helper()
	logger.Init(logger.ERROR, false, nil)

	if err := database.InitDatabase(database.DriverSQLite, t.TempDir()+"/test.db"); err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	insert := database.Builder().
		Insert("douban_movies").
		Columns("title", "douban_id", "rating", "year", "country")
	for _, m := range seedMovies {
		insert = insert.Values("movie "+m.id, m.id, m.rating, m.year, m.country)
	}
	if _, err := insert.RunWith(database.DB).Exec(); err != nil {
		t.Fatalf("seed movies: %v", err)
	}

	return NewSQLRepository(database.DB, database.Builder())
}

func assertPoints(t *testing.T, c models.Category, got []models.DataPoint, wantLabels []string, wantCounts []int64) {
	t.Helper()
	if len(got) != len(wantLabels) {
		t.Fatalf("expected %d buckets, got %d: %+v", len(wantLabels), len(got), got)
	}
	for i := range got {
		if got[i].Label(c) != wantLabels[i] {
			t.Errorf("bucket %d: expected label %q, got %q", i, wantLabels[i], got[i].Label(c))
		}
		if got[i].Count != wantCounts[i] {
			t.Errorf("bucket %d: expected count %d, got %d", i, wantCounts[i], got[i].Count)
		}
	}
}

func TestSQLRepository_RatingDistribution(t *testing.T) {
	repo := setupRepository(t)

	points, err := repo.Distribution(context.Background(), models.CategoryRating)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}

	assertPoints(t, models.CategoryRating, points,
		[]string{"9.0-10.0", "8.0-8.9", "7.0-7.9"},
		[]int64{3, 1, 1})
}

func TestSQLRepository_YearDistribution(t *testing.T) {
	repo := setupRepository(t)

	points, err := repo.Distribution(context.Background(), models.CategoryYear)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}

	assertPoints(t, models.CategoryYear, points,
		[]string{"2010s", "2000s", "1990s", "before 1980"},
		[]int64{1, 1, 2, 1})
}

func TestSQLRepository_CountryDistribution(t *testing.T) {
	repo := setupRepository(t)

	points, err := repo.Distribution(context.Background(), models.CategoryCountry)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}

	assertPoints(t, models.CategoryCountry, points,
		[]string{"USA", "China", "France", "Japan"},
		[]int64{2, 1, 1, 1})
}

func TestSQLRepository_EmptyTable(t *testing.T) {
	logger.Init(logger.ERROR, false, nil)
	if err := database.InitDatabase(database.DriverSQLite, t.TempDir()+"/empty.db"); err != nil {
		t.Fatalf("init db: %v", err)
	}
	defer database.Close()

	repo := NewSQLRepository(database.DB, database.Builder())
	points, err := repo.Distribution(context.Background(), models.CategoryRating)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	if points == nil || len(points) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", points)
	}
}

func TestSQLRepository_UnknownCategory(t *testing.T) {
	repo := setupRepository(t)

	if _, err := repo.Distribution(context.Background(), models.Category("genre")); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestSQLRepository_CountryGroupsIgnoreEnglishLookalikes(t *testing.T) {
	repo := setupRepository(t)

	_, err := database.Builder().
		Insert("douban_movies").
		Columns("title", "douban_id", "country").
		Values("movie a", "8000001", "Ukraine").
		Values("movie b", "8000002", "Indochina").
		RunWith(database.DB).Exec()
	if err != nil {
		t.Fatalf("seed movies: %v", err)
	}

	points, err := repo.Distribution(context.Background(), models.CategoryCountry)
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}

	counts := make(map[string]int64)
	for _, p := range points {
		counts[p.CountryGroup] = p.Count
	}
	if counts["Other"] != 2 {
		t.Errorf("expected 2 movies in Other, got %d", counts["Other"])
	}
	if counts["UK"] != 1 || counts["China"] != 1 {
		t.Errorf("lookalikes leaked into groups: %v", counts)
	}
}
