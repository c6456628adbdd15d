package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/binhbb2204/movie-stats-viz/internal/chart"
	"github.com/binhbb2204/movie-stats-viz/internal/statsclient"
	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

const (
	NoticeLoadFailed    = "failed to load data"
	NoticeRequestFailed = "request failed, check that the stats API is running"

	// shown by the page itself when the dashboard server does not answer
	NoticeDashboardUnreachable = "request failed, check that the dashboard server is running"
)

// Notice is a transient error message. Pages show each ID once.
type Notice struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Snapshot is everything a page needs to draw the dashboard.
type Snapshot struct {
	Selected models.Category    `json:"selected"`
	Shown    models.Category    `json:"shown"`
	Data     []models.DataPoint `json:"data"`
	Option   chart.Option       `json:"option"`
	Notice   *Notice            `json:"notice,omitempty"`
}

// Controller holds the selected category and the dataset on display.
// Every selection change issues exactly one fetch.
type Controller struct {
	source statsclient.Source
	log    *logger.Logger

	mu        sync.Mutex
	selected  models.Category
	shown     models.Category
	data      []models.DataPoint
	notice    *Notice
	noticeSeq int64
	pending   int
	listeners []func(Snapshot)
	now       func() time.Time
}

func NewController(source statsclient.Source) *Controller {
	return &Controller{
		source: source,
		log:    logger.GetLogger().WithContext("component", "dashboard"),
		now:    time.Now,
	}
}

// Subscribe registers fn to receive every snapshot change. fn runs on the
// goroutine that caused the change and must not block.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Start selects the default category.
func (c *Controller) Start(ctx context.Context) error {
	_, err := c.Select(ctx, models.DefaultCategory)
	return err
}

// Select switches to category. Re-selecting the category that is both
// selected and on screen does nothing. On failure the displayed dataset is
// kept and a notice is raised. Once no fetch is pending the selection falls
// back to what is on screen so any other category can be retried.
func (c *Controller) Select(ctx context.Context, category models.Category) (Snapshot, error) {
	if !category.Valid() {
		return c.Snapshot(), errors.NewValidationError("unknown category", "category", string(category))
	}

	c.mu.Lock()
	if category == c.selected && category == c.shown {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	}
	c.selected = category
	c.pending++
	c.mu.Unlock()

	points, err := c.source.Distribution(ctx, category)

	c.mu.Lock()
	c.pending--
	if err != nil {
		c.noticeSeq++
		c.notice = &Notice{ID: c.noticeSeq, Message: noticeFor(err), Time: c.now()}
		c.log.Warn("dashboard_fetch_failed", "category", category, "error", err.Error())
	} else {
		c.data = points
		c.shown = category
		c.notice = nil
		c.log.Info("dashboard_dataset_replaced", "category", category, "points", len(points))
	}
	if c.pending == 0 {
		c.selected = c.shown
	}
	snap := c.snapshotLocked()
	listeners := append([]func(Snapshot){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return snap, err
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	data := make([]models.DataPoint, len(c.data))
	copy(data, c.data)
	var notice *Notice
	if c.notice != nil {
		n := *c.notice
		notice = &n
	}
	return Snapshot{
		Selected: c.selected,
		Shown:    c.shown,
		Data:     data,
		Option:   chart.Build(c.shown, data),
		Notice:   notice,
	}
}

func noticeFor(err error) string {
	if errors.IsAPIError(err) {
		return NoticeLoadFailed
	}
	return NoticeRequestFailed
}
