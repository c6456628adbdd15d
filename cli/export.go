package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export data",
	Long:  `Export aggregate statistics to a file.`,
}

var exportStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Export all distributions",
	Long:  `Fetch the rating, decade and country distributions and write them as JSON or CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := make(map[models.Category][]models.DataPoint, len(models.Categories))
		for _, c := range models.Categories {
			points, err := fetchDistribution(cmd.Context(), c)
			if err != nil {
				printError("Failed to fetch " + c.MenuLabel())
				return err
			}
			all[c] = points
		}

		var w io.Writer = os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		var err error
		switch exportFormat {
		case "json":
			err = exportJSON(w, all)
		case "csv":
			err = exportCSV(w, all)
		default:
			return fmt.Errorf("unsupported format: %s", exportFormat)
		}
		if err != nil {
			return err
		}

		if exportOutput != "" {
			printSuccess(fmt.Sprintf("Exported statistics to %s", exportOutput))
		}
		return nil
	},
}

func exportJSON(w io.Writer, all map[models.Category][]models.DataPoint) error {
	out := make(map[string][]models.DataPoint, len(all))
	for c, points := range all {
		out[string(c)] = points
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// exportCSV writes one row per bucket: category,label,count.
func exportCSV(w io.Writer, all map[models.Category][]models.DataPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "label", "count"}); err != nil {
		return err
	}
	for _, c := range models.Categories {
		for _, p := range all[c] {
			if err := cw.Write([]string{string(c), p.Label(c), strconv.FormatInt(p.Count, 10)}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func init() {
	exportStatsCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (json, csv)")
	exportStatsCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.AddCommand(exportStatsCmd)
}
