package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 500
)

// RenderPNG draws opt as a PNG image. It is the offline counterpart of the
// browser renderer and understands the same three chart types.
func RenderPNG(opt Option, w io.Writer, width, height int) error {
	if opt.IsEmpty() {
		return fmt.Errorf("nothing to render: empty chart option")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	title := ""
	if opt.Title != nil {
		title = opt.Title.Text
	}
	labels := opt.Categories()
	values := opt.Values()
	if len(values) == 0 {
		return fmt.Errorf("nothing to render: no values")
	}

	series := opt.Series[0]
	switch series.Type {
	case TypeBar:
		return renderBars(title, labels, values, series, w, width, height)

	case TypeLine:
		// go-chart needs two x values for a line; a lone decade is drawn as a bar
		if len(values) < 2 {
			return renderBars(title, labels, values, series, w, width, height)
		}
		xs := make([]float64, len(values))
		ys := make([]float64, len(values))
		ticks := make([]gochart.Tick, len(values))
		for i, v := range values {
			xs[i] = float64(i)
			ys[i] = float64(v)
			ticks[i] = gochart.Tick{Value: float64(i), Label: labelAt(labels, i)}
		}
		style := gochart.Style{StrokeWidth: 3}
		if series.ItemStyle != nil && series.ItemStyle.Color != "" {
			style.StrokeColor = drawing.ColorFromHex(trimHash(series.ItemStyle.Color))
		}
		graph := gochart.Chart{
			Title:  title,
			Width:  width,
			Height: height,
			Background: gochart.Style{
				Padding: gochart.Box{Top: 40},
			},
			XAxis: gochart.XAxis{
				Ticks: ticks,
				Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(values)) - 0.5},
			},
			YAxis: gochart.YAxis{Name: countAxisName, Range: valueRange(values)},
			Series: []gochart.Series{
				gochart.ContinuousSeries{Name: countAxisName, XValues: xs, YValues: ys, Style: style},
			},
		}
		return graph.Render(gochart.PNG, w)

	case TypePie:
		slices := make([]gochart.Value, 0, len(values))
		var total int64
		for i, v := range values {
			total += v
			slices = append(slices, gochart.Value{Label: labelAt(labels, i), Value: float64(v)})
		}
		if total == 0 {
			return fmt.Errorf("nothing to render: all slices are zero")
		}
		graph := gochart.PieChart{
			Title:  title,
			Width:  width,
			Height: height,
			Values: slices,
		}
		return graph.Render(gochart.PNG, w)
	}

	return fmt.Errorf("unsupported chart type %q", series.Type)
}

func renderBars(title string, labels []string, values []int64, series Series, w io.Writer, width, height int) error {
	bars := make([]gochart.Value, 0, len(values))
	for i, v := range values {
		bars = append(bars, gochart.Value{Label: labelAt(labels, i), Value: float64(v)})
	}
	graph := gochart.BarChart{
		Title:    title,
		Width:    width,
		Height:   height,
		BarWidth: barWidth(width, len(bars)),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		YAxis: gochart.YAxis{Range: valueRange(values)},
		Bars:  bars,
	}
	if series.ItemStyle != nil && series.ItemStyle.Color != "" {
		color := drawing.ColorFromHex(trimHash(series.ItemStyle.Color))
		for i := range graph.Bars {
			graph.Bars[i].Style = gochart.Style{FillColor: color, StrokeColor: color}
		}
	}
	return graph.Render(gochart.PNG, w)
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

func trimHash(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}

func barWidth(width, n int) int {
	if n == 0 {
		return 0
	}
	bw := width / (n * 2)
	if bw > 80 {
		bw = 80
	}
	if bw < 10 {
		bw = 10
	}
	return bw
}

// valueRange pins the y axis at zero and keeps it non-degenerate when every
// bucket holds the same count.
func valueRange(values []int64) *gochart.ContinuousRange {
	var max int64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	top := float64(max) * 1.1
	if top < 1 {
		top = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: top}
}
