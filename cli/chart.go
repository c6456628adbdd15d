package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/binhbb2204/movie-stats-viz/internal/chart"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

var (
	chartFormat string
	chartOutput string
	chartWidth  int
	chartHeight int
)

var chartCmd = &cobra.Command{
	Use:   "chart [rating|year|country]",
	Short: "Export a chart",
	Long: `Fetch one aggregate and export it as a chart.
Formats: json (ECharts option), html (standalone page), png (rendered image).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := models.ParseCategory(args[0])
		if err != nil {
			return err
		}
		if err := checkChartFormat(chartFormat); err != nil {
			return err
		}
		if chartFormat == "png" && chartOutput == "" {
			return fmt.Errorf("--output is required for png")
		}

		points, err := fetchDistribution(cmd.Context(), category)
		if err != nil {
			printError("Failed to fetch " + category.MenuLabel())
			return err
		}
		opt := chart.Build(category, points)

		if err := exportChart(os.Stdout, chartOutput, opt, chartFormat, chartWidth, chartHeight); err != nil {
			return err
		}

		if chartOutput != "" {
			printSuccess(fmt.Sprintf("Wrote %s chart to %s", chartFormat, chartOutput))
		}
		return nil
	},
}

func checkChartFormat(format string) error {
	switch format {
	case "json", "html", "png":
		return nil
	}
	return fmt.Errorf("unknown format %q (want json, html or png)", format)
}

// exportChart renders opt fully before touching output, so a failed render
// never leaves an empty file. An empty output writes to stdout.
func exportChart(stdout io.Writer, output string, opt chart.Option, format string, width, height int) error {
	var buf bytes.Buffer
	if err := writeChart(&buf, opt, format, width, height); err != nil {
		return err
	}
	if output == "" {
		_, err := buf.WriteTo(stdout)
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}

func writeChart(w io.Writer, opt chart.Option, format string, width, height int) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(opt)
	case "html":
		return chart.RenderHTML(opt, w, width, height)
	case "png":
		return chart.RenderPNG(opt, w, width, height)
	}
	return checkChartFormat(format)
}

func init() {
	chartCmd.Flags().StringVarP(&chartFormat, "format", "f", "html", "output format: json, html or png")
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "output file (default stdout)")
	chartCmd.Flags().IntVar(&chartWidth, "width", 800, "chart width in pixels")
	chartCmd.Flags().IntVar(&chartHeight, "height", 500, "chart height in pixels")
}
