package dashboard

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/binhbb2204/movie-stats-viz/internal/statsclient"
	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

func init() {
	logger.Init(logger.ERROR, false, nil)
}

func TestController_EachSelectionIssuesOneRequest(t *testing.T) {
	for _, c := range models.Categories {
		source := statsclient.NewMockSource()
		ctrl := NewController(source)

		if _, err := ctrl.Select(context.Background(), c); err != nil {
			t.Fatalf("%s: select: %v", c, err)
		}

		if got := source.Requests(c.Endpoint()); got != 1 {
			t.Errorf("%s: expected 1 request to %s, got %d", c, c.Endpoint(), got)
		}
		if got := source.TotalRequests(); got != 1 {
			t.Errorf("%s: expected 1 request in total, got %d", c, got)
		}
	}
}

func TestController_SwitchingThroughMenu(t *testing.T) {
	source := statsclient.NewMockSource()
	ctrl := NewController(source)
	ctx := context.Background()

	if err := ctrl.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, c := range []models.Category{models.CategoryYear, models.CategoryCountry, models.CategoryRating} {
		if _, err := ctrl.Select(ctx, c); err != nil {
			t.Fatalf("select %s: %v", c, err)
		}
	}

	if got := source.Requests(models.CategoryRating.Endpoint()); got != 2 {
		t.Errorf("expected 2 rating requests, got %d", got)
	}
	if got := source.TotalRequests(); got != 4 {
		t.Errorf("expected 4 requests, got %d", got)
	}
}

func TestController_ReselectIsNoop(t *testing.T) {
	source := statsclient.NewMockSource()
	ctrl := NewController(source)
	ctx := context.Background()

	ctrl.Select(ctx, models.CategoryYear)
	ctrl.Select(ctx, models.CategoryYear)

	if got := source.TotalRequests(); got != 1 {
		t.Fatalf("expected 1 request, got %d", got)
	}
}

func TestController_RatingSnapshotOption(t *testing.T) {
	ctrl := NewController(statsclient.NewMockSource())

	snap, err := ctrl.Select(context.Background(), models.CategoryRating)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	if !reflect.DeepEqual(snap.Option.Categories(), []string{"0-2", "2-4"}) {
		t.Errorf("unexpected categories: %v", snap.Option.Categories())
	}
	if !reflect.DeepEqual(snap.Option.Values(), []int64{5, 10}) {
		t.Errorf("unexpected values: %v", snap.Option.Values())
	}
	if snap.Shown != models.CategoryRating || snap.Notice != nil {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestController_FailureKeepsDisplayedDataset(t *testing.T) {
	source := statsclient.NewMockSource()
	ctrl := NewController(source)
	ctx := context.Background()

	before, err := ctrl.Select(ctx, models.CategoryRating)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	source.ShouldFailStatus = true
	after, err := ctrl.Select(ctx, models.CategoryCountry)
	if err == nil {
		t.Fatal("expected error")
	}

	if after.Shown != models.CategoryRating {
		t.Errorf("expected rating to stay on screen, got %s", after.Shown)
	}
	if after.Selected != models.CategoryRating {
		t.Errorf("expected selection to fall back to rating, got %s", after.Selected)
	}
	if !reflect.DeepEqual(after.Data, before.Data) {
		t.Errorf("dataset changed: %+v -> %+v", before.Data, after.Data)
	}
	if !reflect.DeepEqual(after.Option, before.Option) {
		t.Errorf("chart changed after failed fetch")
	}
	if after.Notice == nil || after.Notice.Message != NoticeLoadFailed {
		t.Fatalf("expected load-failed notice, got %+v", after.Notice)
	}

	source.ShouldFailStatus = false
	source.ShouldFailTransport = true
	again, _ := ctrl.Select(ctx, models.CategoryCountry)
	if again.Notice == nil || again.Notice.Message != NoticeRequestFailed {
		t.Fatalf("expected request-failed notice, got %+v", again.Notice)
	}
	if again.Notice.ID <= after.Notice.ID {
		t.Errorf("expected a new notice id, got %d after %d", again.Notice.ID, after.Notice.ID)
	}
	if got := source.Requests(models.CategoryCountry.Endpoint()); got != 2 {
		t.Errorf("expected retry to reach the API, got %d requests", got)
	}

	source.ShouldFailTransport = false
	ok, err := ctrl.Select(ctx, models.CategoryCountry)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if ok.Notice != nil || ok.Shown != models.CategoryCountry {
		t.Errorf("expected country chart without notice, got %+v", ok)
	}
}

func TestController_FailureBeforeAnyDataIsBlank(t *testing.T) {
	source := statsclient.NewMockSource()
	source.ShouldFailTransport = true
	ctrl := NewController(source)

	if err := ctrl.Start(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	snap := ctrl.Snapshot()
	if !snap.Option.IsEmpty() || len(snap.Data) != 0 {
		t.Errorf("expected blank chart, got %+v", snap)
	}
	if snap.Notice == nil {
		t.Error("expected notice")
	}
}

func TestController_EmptyDatasetYieldsEmptyOption(t *testing.T) {
	source := statsclient.NewMockSource()
	source.SetData(models.CategoryYear, nil)
	ctrl := NewController(source)

	snap, err := ctrl.Select(context.Background(), models.CategoryYear)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !snap.Option.IsEmpty() {
		t.Errorf("expected empty option, got %+v", snap.Option)
	}
}

func TestController_SubscribersSeeChanges(t *testing.T) {
	ctrl := NewController(statsclient.NewMockSource())
	var got []Snapshot
	ctrl.Subscribe(func(s Snapshot) { got = append(got, s) })

	ctrl.Select(context.Background(), models.CategoryYear)
	ctrl.Select(context.Background(), models.CategoryYear)

	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].Shown != models.CategoryYear {
		t.Errorf("expected year snapshot, got %s", got[0].Shown)
	}
}

func TestController_UnknownCategory(t *testing.T) {
	source := statsclient.NewMockSource()
	ctrl := NewController(source)

	if _, err := ctrl.Select(context.Background(), models.Category("genre")); err == nil {
		t.Fatal("expected error")
	}
	if source.TotalRequests() != 0 {
		t.Errorf("expected no request, got %d", source.TotalRequests())
	}
}

// gatedSource holds requests for gated categories until released and fails
// requests for the failing category.
type gatedSource struct {
	*statsclient.MockSource
	started chan models.Category
	release map[models.Category]chan struct{}
	failing models.Category
}

func (g *gatedSource) Distribution(ctx context.Context, category models.Category) ([]models.DataPoint, error) {
	if gate, ok := g.release[category]; ok {
		g.started <- category
		<-gate
	}
	if category == g.failing {
		g.MockSource.Distribution(ctx, category)
		return nil, errors.NewServiceError("request failed", "stats_api", "distribution", fmt.Errorf("connection refused"))
	}
	return g.MockSource.Distribution(ctx, category)
}

func TestController_OverlappingSelectsKeepMenuUsable(t *testing.T) {
	source := &gatedSource{
		MockSource: statsclient.NewMockSource(),
		started:    make(chan models.Category, 1),
		release:    map[models.Category]chan struct{}{models.CategoryYear: make(chan struct{})},
		failing:    models.CategoryCountry,
	}
	ctrl := NewController(source)
	ctx := context.Background()

	if err := ctrl.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Select(ctx, models.CategoryYear)
		done <- err
	}()
	<-source.started

	if _, err := ctrl.Select(ctx, models.CategoryCountry); err == nil {
		t.Fatal("expected country to fail")
	}

	close(source.release[models.CategoryYear])
	if err := <-done; err != nil {
		t.Fatalf("select year: %v", err)
	}

	snap := ctrl.Snapshot()
	if snap.Shown != models.CategoryYear || snap.Selected != models.CategoryYear {
		t.Fatalf("expected year selected and shown, got selected=%s shown=%s", snap.Selected, snap.Shown)
	}

	before := source.Requests(models.CategoryRating.Endpoint())
	snap, err := ctrl.Select(ctx, models.CategoryRating)
	if err != nil {
		t.Fatalf("select rating: %v", err)
	}
	if got := source.Requests(models.CategoryRating.Endpoint()); got != before+1 {
		t.Errorf("expected one more rating request, got %d -> %d", before, got)
	}
	if snap.Shown != models.CategoryRating {
		t.Errorf("expected rating on screen, got %s", snap.Shown)
	}
}
