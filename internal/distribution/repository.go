package distribution

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

const moviesTable = "douban_movies"

// Repository computes aggregate buckets over the movie table.
type Repository interface {
	Distribution(ctx context.Context, category models.Category) ([]models.DataPoint, error)
}

type threshold struct {
	label string
	min   interface{}
}

var ratingBuckets = []threshold{
	{"9.0-10.0", 9.0},
	{"8.0-8.9", 8.0},
	{"7.0-7.9", 7.0},
	{"6.0-6.9", 6.0},
}

const ratingFallback = "<6.0"

// years are stored as text, so decade boundaries compare as strings
var decadeBuckets = []threshold{
	{"2020s", "2020"},
	{"2010s", "2010"},
	{"2000s", "2000"},
	{"1990s", "1990"},
	{"1980s", "1980"},
}

const decadeFallback = "before 1980"

type countryGroup struct {
	label    string
	patterns []string
}

// Douban lists countries in Chinese; patterns have no letter case, so LIKE
// behaves the same on sqlite and postgres.
var countryGroups = []countryGroup{
	{"USA", []string{"美国"}},
	{"China", []string{"中国", "香港", "台湾"}},
	{"Japan", []string{"日本"}},
	{"UK", []string{"英国"}},
	{"France", []string{"法国"}},
	{"Italy", []string{"意大利"}},
	{"Germany", []string{"德国"}},
}

const (
	countryFallback = "Other"
	countryLimit    = 8
)

type SQLRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ Repository = (*SQLRepository)(nil)

func NewSQLRepository(db *sql.DB, builder sq.StatementBuilderType) *SQLRepository {
	return &SQLRepository{db: db, builder: builder}
}

func (r *SQLRepository) Distribution(ctx context.Context, category models.Category) ([]models.DataPoint, error) {
	query, err := r.query(category)
	if err != nil {
		return nil, err
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, errors.NewStorageError("build distribution query", string(category), err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, errors.NewStorageError("query distribution", string(category), err)
	}
	defer rows.Close()

	points := make([]models.DataPoint, 0)
	for rows.Next() {
		var label string
		var count int64
		if err := rows.Scan(&label, &count); err != nil {
			return nil, errors.NewStorageError("scan distribution row", string(category), err)
		}
		points = append(points, models.NewDataPoint(category, label, count))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("iterate distribution rows", string(category), err)
	}

	return points, nil
}

func (r *SQLRepository) query(category models.Category) (sq.SelectBuilder, error) {
	switch category {
	case models.CategoryRating:
		bucket := sq.Case()
		for _, b := range ratingBuckets {
			bucket = bucket.When(sq.GtOrEq{"rating": b.min}, quote(b.label))
		}
		bucket = bucket.Else(quote(ratingFallback))

		return r.builder.
			Select().
			Column(sq.Alias(bucket, "rating_range")).
			Column("COUNT(*) AS count").
			From(moviesTable).
			Where(sq.NotEq{"rating": nil}).
			GroupBy("rating_range").
			OrderBy("MIN(rating) DESC"), nil

	case models.CategoryYear:
		bucket := sq.Case()
		for _, b := range decadeBuckets {
			bucket = bucket.When(sq.GtOrEq{"year": b.min}, quote(b.label))
		}
		bucket = bucket.Else(quote(decadeFallback))

		return r.builder.
			Select().
			Column(sq.Alias(bucket, "decade")).
			Column("COUNT(*) AS count").
			From(moviesTable).
			Where(sq.And{sq.NotEq{"year": nil}, sq.NotEq{"year": ""}}).
			GroupBy("decade").
			OrderBy("MIN(year) DESC"), nil

	case models.CategoryCountry:
		bucket := sq.Case()
		for _, g := range countryGroups {
			match := sq.Or{}
			for _, p := range g.patterns {
				match = append(match, sq.Like{"country": "%" + p + "%"})
			}
			bucket = bucket.When(match, quote(g.label))
		}
		bucket = bucket.Else(quote(countryFallback))

		return r.builder.
			Select().
			Column(sq.Alias(bucket, "country_group")).
			Column("COUNT(*) AS count").
			From(moviesTable).
			Where(sq.And{sq.NotEq{"country": nil}, sq.NotEq{"country": ""}}).
			GroupBy("country_group").
			OrderBy("COUNT(*) DESC", "country_group").
			Limit(countryLimit), nil
	}

	return sq.SelectBuilder{}, errors.NewValidationError(fmt.Sprintf("unknown category %q", category), "type", string(category))
}

func quote(label string) string {
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}
