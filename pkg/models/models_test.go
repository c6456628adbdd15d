package models

import (
	"encoding/json"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for _, in := range []string{"rating", "YEAR", " country "} {
		if _, err := ParseCategory(in); err != nil {
			t.Errorf("ParseCategory(%q) returned error: %v", in, err)
		}
	}
	if _, err := ParseCategory("genre"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestCategoryEndpoint(t *testing.T) {
	cases := map[Category]string{
		CategoryRating:  "/api/movies/rating-distribution",
		CategoryYear:    "/api/movies/year-distribution",
		CategoryCountry: "/api/movies/country-distribution",
	}
	for c, want := range cases {
		if got := c.Endpoint(); got != want {
			t.Errorf("%s.Endpoint() = %s, want %s", c, got, want)
		}
	}
}

func TestNewDataPoint_ShapePerCategory(t *testing.T) {
	p := NewDataPoint(CategoryYear, "1990s", 12)
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"decade":"1990s","count":12}` {
		t.Fatalf("unexpected json: %s", data)
	}
	if p.Label(CategoryYear) != "1990s" || p.Label(CategoryRating) != "" {
		t.Fatalf("label lookup mismatch: %+v", p)
	}
}

func TestNewDataPoint_ClampsNegativeCount(t *testing.T) {
	if p := NewDataPoint(CategoryRating, "9.0-10.0", -3); p.Count != 0 {
		t.Fatalf("expected count 0, got %d", p.Count)
	}
}
