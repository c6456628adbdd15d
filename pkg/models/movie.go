package models

import "time"

// Movie is one Douban Top250 entry as stored in douban_movies.
type Movie struct {
	ID          int64     `json:"id" db:"id"`
	RankNum     int       `json:"rank_num" db:"rank_num"`
	Title       string    `json:"title" db:"title"`
	TitleEn     string    `json:"title_en" db:"title_en"`
	Director    string    `json:"director" db:"director"`
	Actors      string    `json:"actors" db:"actors"`
	Year        string    `json:"year" db:"year"`
	Country     string    `json:"country" db:"country"`
	Genre       string    `json:"genre" db:"genre"`
	Rating      float64   `json:"rating" db:"rating"`
	RatingCount int       `json:"rating_count" db:"rating_count"`
	Duration    string    `json:"duration" db:"duration"`
	PosterURL   string    `json:"poster_url" db:"poster_url"`
	Summary     string    `json:"summary" db:"summary"`
	DoubanID    string    `json:"douban_id" db:"douban_id"`
	DoubanURL   string    `json:"douban_url" db:"douban_url"`
	CrawlTime   time.Time `json:"crawl_time" db:"crawl_time"`
	CreatedTime time.Time `json:"created_time" db:"created_time"`
	UpdatedTime time.Time `json:"updated_time" db:"updated_time"`
}

type CrawlResult struct {
	Pages  int `json:"pages"`
	Parsed int `json:"parsed"`
	Saved  int `json:"saved"`
	Failed int `json:"failed"`
}
