// Package chart turns distribution data into chart descriptions.
package chart

import (
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

const (
	TypeBar  = "bar"
	TypeLine = "line"
	TypePie  = "pie"

	countAxisName = "Movies"
)

// TypeFor returns the chart type used to draw category c.
func TypeFor(c models.Category) string {
	switch c {
	case models.CategoryRating:
		return TypeBar
	case models.CategoryYear:
		return TypeLine
	case models.CategoryCountry:
		return TypePie
	}
	return ""
}

// TitleFor returns the chart title shown for category c.
func TitleFor(c models.Category) string {
	switch c {
	case models.CategoryRating:
		return "Douban Movie Rating Distribution"
	case models.CategoryYear:
		return "Douban Movie Decade Distribution"
	case models.CategoryCountry:
		return "Douban Movie Country Distribution"
	}
	return ""
}

// Build maps (category, dataset) to a chart option. It never fails: an empty
// dataset or an unknown category yields the empty Option.
func Build(c models.Category, data []models.DataPoint) Option {
	if len(data) == 0 {
		return Option{}
	}

	switch c {
	case models.CategoryRating:
		return Option{
			Title: &Title{Text: TitleFor(c), Left: "center"},
			Tooltip: &Tooltip{
				Trigger:     "axis",
				AxisPointer: &AxisPointer{Type: "shadow"},
			},
			XAxis: &Axis{Type: "category", Data: labels(c, data)},
			YAxis: &Axis{Type: "value", Name: countAxisName},
			Series: []Series{{
				Type:      TypeBar,
				Data:      counts(data),
				ItemStyle: &ItemStyle{Color: "#1890ff"},
			}},
		}

	case models.CategoryYear:
		return Option{
			Title:   &Title{Text: TitleFor(c), Left: "center"},
			Tooltip: &Tooltip{Trigger: "axis"},
			XAxis:   &Axis{Type: "category", Data: labels(c, data)},
			YAxis:   &Axis{Type: "value", Name: countAxisName},
			Series: []Series{{
				Type:      TypeLine,
				Data:      counts(data),
				Smooth:    true,
				ItemStyle: &ItemStyle{Color: "#52c41a"},
			}},
		}

	case models.CategoryCountry:
		items := make([]any, 0, len(data))
		for _, p := range data {
			items = append(items, PieItem{Name: p.CountryGroup, Value: p.Count})
		}
		return Option{
			Title: &Title{Text: TitleFor(c), Left: "center"},
			Tooltip: &Tooltip{
				Trigger:   "item",
				Formatter: "{a} <br/>{b}: {c} ({d}%)",
			},
			Series: []Series{{
				Name:   countAxisName,
				Type:   TypePie,
				Radius: "50%",
				Data:   items,
				Emphasis: &Emphasis{ItemStyle: &ItemStyle{
					ShadowBlur:  10,
					ShadowColor: "rgba(0, 0, 0, 0.5)",
				}},
			}},
		}
	}

	return Option{}
}

func labels(c models.Category, data []models.DataPoint) []string {
	out := make([]string, 0, len(data))
	for _, p := range data {
		out = append(out, p.Label(c))
	}
	return out
}

func counts(data []models.DataPoint) []any {
	out := make([]any, 0, len(data))
	for _, p := range data {
		out = append(out, p.Count)
	}
	return out
}
