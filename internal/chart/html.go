package chart

import (
	"html/template"
	"io"
)

var htmlTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="https://cdn.jsdelivr.net/npm/echarts@5/dist/echarts.min.js"></script>
</head>
<body style="margin:0">
  <div id="chart" style="width:{{.Width}}px;height:{{.Height}}px"></div>
  <script>
    var option = {{.Option}};
    echarts.init(document.getElementById('chart')).setOption(option);
  </script>
</body>
</html>
`))

// RenderHTML writes a standalone page that draws opt with ECharts.
func RenderHTML(opt Option, w io.Writer, width, height int) error {
	title := "chart"
	if opt.Title != nil && opt.Title.Text != "" {
		title = opt.Title.Text
	}
	return htmlTemplate.Execute(w, struct {
		Title         string
		Width, Height int
		Option        Option
	}{title, width, height, opt})
}
