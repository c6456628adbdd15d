package crawler

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/metrics"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

// PageSize is the number of entries on one Top250 list page.
const PageSize = 25

const (
	DefaultBaseURL = "https://movie.douban.com/top250"
	defaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type Config struct {
	BaseURL     string
	Pages       int
	Concurrency int
	Delay       time.Duration
}

type Crawler struct {
	cfg    Config
	client *http.Client
	store  Store
	log    *logger.Logger
}

func New(cfg Config, store Store) *Crawler {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Pages <= 0 {
		cfg.Pages = 4
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Crawler{
		cfg:    cfg,
		client: &http.Client{Timeout: defaultTimeout},
		store:  store,
		log:    logger.GetLogger().WithContext("component", "crawler"),
	}
}

type pageResult struct {
	movies []models.Movie
	failed int
	err    error
}

// Run crawls pages list pages (the configured default when pages <= 0) and
// saves everything parsed. Pages that fail to download are skipped.
func (c *Crawler) Run(ctx context.Context, pages int) (models.CrawlResult, error) {
	if pages <= 0 {
		pages = c.cfg.Pages
	}
	result := models.CrawlResult{Pages: pages}

	c.log.Info("crawl_started", "pages", pages, "concurrency", c.cfg.Concurrency, "base_url", c.cfg.BaseURL)

	results := make([]pageResult, pages)
	var resultsMu sync.Mutex

	p := pool.New().WithMaxGoroutines(c.cfg.Concurrency)
	for page := 0; page < pages; page++ {
		page := page
		p.Go(func() {
			movies, failed, err := c.fetchPage(ctx, page*PageSize)
			resultsMu.Lock()
			results[page] = pageResult{movies: movies, failed: failed, err: err}
			resultsMu.Unlock()
			c.wait(ctx)
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	all := make([]models.Movie, 0, pages*PageSize)
	pageErrors := 0
	var firstErr error
	for i, r := range results {
		if r.err != nil {
			pageErrors++
			if firstErr == nil {
				firstErr = r.err
			}
			c.log.Warn("page_fetch_failed", "page", i+1, "error", r.err.Error())
			continue
		}
		result.Failed += r.failed
		all = append(all, r.movies...)
		c.log.Debug("page_parsed", "page", i+1, "movies", len(r.movies))
	}
	result.Parsed = len(all)

	if len(all) == 0 {
		if pageErrors > 0 {
			return result, errors.NewServiceError("no page could be fetched", "douban", "crawl", firstErr)
		}
		c.log.Warn("crawl_found_nothing", "pages", pages)
		return result, nil
	}

	saved, err := c.store.SaveMovies(ctx, all)
	result.Saved = saved
	result.Failed += len(all) - saved
	metrics.AddMoviesCrawled(saved)
	if err != nil {
		return result, err
	}

	c.log.Info("crawl_finished",
		"parsed", result.Parsed,
		"saved", result.Saved,
		"failed", result.Failed,
		"page_errors", pageErrors)
	return result, nil
}

func (c *Crawler) fetchPage(ctx context.Context, start int) ([]models.Movie, int, error) {
	url := fmt.Sprintf("%s?start=%d&filter=", c.cfg.BaseURL, start)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	c.log.Debug("page_fetching", "url", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return ParsePage(resp.Body)
}

func (c *Crawler) wait(ctx context.Context) {
	if c.cfg.Delay <= 0 {
		return
	}
	t := time.NewTimer(c.cfg.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
