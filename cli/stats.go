package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/binhbb2204/movie-stats-viz/cli/config"
	"github.com/binhbb2204/movie-stats-viz/internal/statsclient"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

var statsJSON bool

const barWidth = 40

var statsCmd = &cobra.Command{
	Use:       "stats [rating|year|country]",
	Short:     "Show a distribution",
	Long:      `Fetch one aggregate from the stats API and print it as a table.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"rating", "year", "country"},
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := models.ParseCategory(args[0])
		if err != nil {
			return err
		}

		points, err := fetchDistribution(cmd.Context(), category)
		if err != nil {
			printError("Failed to fetch " + category.MenuLabel())
			return err
		}

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(points)
		}

		fmt.Println(category.MenuLabel())
		fmt.Println(strings.Repeat("-", len(category.MenuLabel())))
		printDistribution(category, points)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print raw JSON")
}

func newStatsClient() (*statsclient.Client, error) {
	url, err := serverURL()
	if err != nil {
		return nil, err
	}
	timeout := 10 * time.Second
	if cfg, err := config.Load(); err == nil {
		timeout = cfg.RequestTimeout()
	}
	return statsclient.New(url, timeout), nil
}

func fetchDistribution(ctx context.Context, category models.Category) ([]models.DataPoint, error) {
	client, err := newStatsClient()
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return client.Distribution(ctx, category)
}

func printDistribution(category models.Category, points []models.DataPoint) {
	if len(points) == 0 {
		printInfo("No data")
		return
	}

	var max int64
	labelWidth := 0
	for _, p := range points {
		if p.Count > max {
			max = p.Count
		}
		if l := len([]rune(p.Label(category))); l > labelWidth {
			labelWidth = l
		}
	}

	for _, p := range points {
		label := p.Label(category)
		n := 0
		if max > 0 {
			n = int(p.Count * barWidth / max)
		}
		pad := strings.Repeat(" ", labelWidth-len([]rune(label)))
		fmt.Printf("%s%s  %6d  %s\n", label, pad, p.Count, strings.Repeat("█", n))
	}
}
