package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/binhbb2204/movie-stats-viz/cli/config"
	"github.com/binhbb2204/movie-stats-viz/internal/chart"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

func TestSetConfigValue(t *testing.T) {
	cfg := config.Default(t.TempDir())

	cases := []struct {
		key, value string
		wantErr    bool
	}{
		{"server.api_port", "7000", false},
		{"server.timeout", "3s", false},
		{"crawler.concurrency", "3", false},
		{"database.driver", "postgres", false},
		{"logging.level", "debug", false},
		{"server.api_port", "abc", true},
		{"server.timeout", "soon", true},
		{"database.driver", "mysql", true},
		{"sync.auto_sync", "true", true},
		{"nodot", "x", true},
	}
	for _, tc := range cases {
		err := setConfigValue(cfg, tc.key, tc.value)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s=%s: err=%v, wantErr=%v", tc.key, tc.value, err, tc.wantErr)
		}
	}

	if cfg.Server.APIPort != 7000 || cfg.RequestTimeout() != 3*time.Second {
		t.Errorf("server section not updated: %+v", cfg.Server)
	}
	if cfg.Crawler.Concurrency != 3 || cfg.Database.Driver != "postgres" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestMaskSecret(t *testing.T) {
	if maskSecret("token", "abc") != "********" {
		t.Error("token should be masked")
	}
	if maskSecret("token", "") != "" {
		t.Error("empty token should stay empty")
	}
	if maskSecret("host", "localhost") != "localhost" {
		t.Error("host should not be masked")
	}
}

func TestExportCSV(t *testing.T) {
	all := map[models.Category][]models.DataPoint{
		models.CategoryRating:  {{RatingRange: "9.0-10.0", Count: 3}},
		models.CategoryYear:    {{Decade: "1990s", Count: 2}},
		models.CategoryCountry: {{CountryGroup: "USA", Count: 4}},
	}

	var buf bytes.Buffer
	if err := exportCSV(&buf, all); err != nil {
		t.Fatalf("export: %v", err)
	}

	want := "category,label,count\nrating,9.0-10.0,3\nyear,1990s,2\ncountry,USA,4\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%s", buf.String())
	}
}

func TestWriteChart(t *testing.T) {
	opt := chart.Build(models.CategoryRating, []models.DataPoint{{RatingRange: "0-2", Count: 5}})

	var buf bytes.Buffer
	if err := writeChart(&buf, opt, "json", 0, 0); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"0-2"`) {
		t.Errorf("json output missing label: %s", buf.String())
	}

	if err := writeChart(&buf, opt, "svg", 0, 0); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExportChart_FailedRenderLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	empty := chart.Build(models.CategoryYear, nil)

	pngPath := filepath.Join(dir, "year.png")
	if err := exportChart(nil, pngPath, empty, "png", 0, 0); err == nil {
		t.Fatal("expected error for empty png")
	}
	if _, err := os.Stat(pngPath); !os.IsNotExist(err) {
		t.Fatalf("expected no file after failed render, got %v", err)
	}

	svgPath := filepath.Join(dir, "year.svg")
	if err := exportChart(nil, svgPath, empty, "svg", 0, 0); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, err := os.Stat(svgPath); !os.IsNotExist(err) {
		t.Fatalf("expected no file for unknown format, got %v", err)
	}

	jsonPath := filepath.Join(dir, "year.json")
	if err := exportChart(nil, jsonPath, empty, "json", 0, 0); err != nil {
		t.Fatalf("json: %v", err)
	}
	raw, err := os.ReadFile(jsonPath)
	if err != nil || strings.TrimSpace(string(raw)) != "{}" {
		t.Fatalf("expected {} in %s, got %q (%v)", jsonPath, raw, err)
	}
}

func TestIsErrorLine(t *testing.T) {
	cases := map[string]bool{
		`{"level":"error","msg":"fetch_failed"}`:    true,
		`{"level":"info","msg":"error_budget_ok"}`:  false,
		`plain text with an ERROR in it`:            true,
		`{"level":"warn","msg":"cache_get_failed"}`: false,
	}
	for line, want := range cases {
		if got := isErrorLine(line); got != want {
			t.Errorf("%s: got %v, want %v", line, got, want)
		}
	}
}

func TestRotateLogs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"movieviz.log", "old.archive.20260101-000000.log", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	count, err := rotateLogs(dir, now)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 rotated file, got %d", count)
	}
	if _, err := os.Stat(filepath.Join(dir, "movieviz.archive.20261017-120000.log")); err != nil {
		t.Fatalf("archive missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "movieviz.log")); !os.IsNotExist(err) {
		t.Fatalf("current log should have moved")
	}
}
