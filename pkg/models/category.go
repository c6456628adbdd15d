package models

import (
	"fmt"
	"strings"
)

// Category is one of the three aggregate dimensions the dashboard can chart.
type Category string

const (
	CategoryRating  Category = "rating"
	CategoryYear    Category = "year"
	CategoryCountry Category = "country"
)

// DefaultCategory is selected when the dashboard first loads.
const DefaultCategory = CategoryRating

// Categories lists every category in menu order.
var Categories = []Category{CategoryRating, CategoryYear, CategoryCountry}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (want rating, year or country)", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryRating, CategoryYear, CategoryCountry:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Endpoint is the stats API path serving this category.
func (c Category) Endpoint() string {
	return "/api/movies/" + string(c) + "-distribution"
}

// LabelKey is the JSON field holding the bucket label for this category.
func (c Category) LabelKey() string {
	switch c {
	case CategoryRating:
		return "rating_range"
	case CategoryYear:
		return "decade"
	case CategoryCountry:
		return "country_group"
	}
	return ""
}

// MenuLabel is the sidebar text for the category.
func (c Category) MenuLabel() string {
	switch c {
	case CategoryRating:
		return "Rating distribution"
	case CategoryYear:
		return "Decade distribution"
	case CategoryCountry:
		return "Country distribution"
	}
	return string(c)
}
