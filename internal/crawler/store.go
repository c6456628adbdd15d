package crawler

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

// Store persists crawled movies.
type Store interface {
	SaveMovies(ctx context.Context, movies []models.Movie) (saved int, err error)
}

type SQLStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	log     *logger.Logger
}

func NewSQLStore(db *sql.DB, builder sq.StatementBuilderType) *SQLStore {
	return &SQLStore{
		db:      db,
		builder: builder,
		log:     logger.GetLogger().WithContext("component", "movie_store"),
	}
}

const upsertSuffix = `ON CONFLICT (douban_id) DO UPDATE SET
    rank_num = excluded.rank_num,
    title = excluded.title,
    title_en = excluded.title_en,
    director = excluded.director,
    actors = excluded.actors,
    year = excluded.year,
    country = excluded.country,
    genre = excluded.genre,
    rating = excluded.rating,
    rating_count = excluded.rating_count,
    poster_url = excluded.poster_url,
    summary = excluded.summary,
    douban_url = excluded.douban_url,
    crawl_time = excluded.crawl_time,
    updated_time = excluded.updated_time`

// SaveMovies upserts each movie by douban_id. A row that fails is logged and
// skipped; the error is only returned when nothing could be saved.
func (s *SQLStore) SaveMovies(ctx context.Context, movies []models.Movie) (int, error) {
	now := time.Now().UTC()
	saved := 0
	var lastErr error

	for _, m := range movies {
		var rating interface{}
		if m.Rating > 0 {
			rating = m.Rating
		}

		_, err := s.builder.
			Insert("douban_movies").
			Columns("rank_num", "title", "title_en", "director", "actors", "year",
				"country", "genre", "rating", "rating_count", "duration", "poster_url",
				"summary", "douban_id", "douban_url", "crawl_time", "created_time", "updated_time").
			Values(m.RankNum, m.Title, m.TitleEn, m.Director, m.Actors, m.Year,
				m.Country, m.Genre, rating, m.RatingCount, m.Duration, m.PosterURL,
				m.Summary, m.DoubanID, m.DoubanURL, now, now, now).
			Suffix(upsertSuffix).
			RunWith(s.db).
			ExecContext(ctx)
		if err != nil {
			lastErr = err
			s.log.Warn("movie_save_failed", "douban_id", m.DoubanID, "title", m.Title, "error", err.Error())
			continue
		}
		saved++
	}

	if saved == 0 && lastErr != nil {
		return 0, errors.NewStorageError("save movies", "upsert", lastErr)
	}
	return saved, nil
}
