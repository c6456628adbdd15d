package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/binhbb2204/movie-stats-viz/cli/config"
	"github.com/binhbb2204/movie-stats-viz/internal/crawler"
	"github.com/binhbb2204/movie-stats-viz/pkg/database"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

var (
	crawlPages  int
	crawlRemote bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the Douban Top250",
	Long: `Fetch Douban Top250 list pages and store the movies.
By default the crawler writes to the configured database directly; with --remote
the stats API runs the crawl (requires an admin token, see: movieviz admin token).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: movieviz init")
			return err
		}

		var result models.CrawlResult
		if crawlRemote {
			result, err = crawlRemotely(cfg)
		} else {
			result, err = crawlLocally(cmd, cfg)
		}
		if err != nil {
			printError("Crawl failed")
			return err
		}

		printSuccess(fmt.Sprintf("Crawled %d pages: %d parsed, %d saved, %d failed",
			result.Pages, result.Parsed, result.Saved, result.Failed))
		return nil
	},
}

func crawlLocally(cmd *cobra.Command, cfg *config.Config) (models.CrawlResult, error) {
	if err := database.InitDatabase(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		return models.CrawlResult{}, err
	}
	defer database.Close()

	c := crawler.New(crawler.Config{
		BaseURL:     cfg.Crawler.BaseURL,
		Pages:       cfg.Crawler.Pages,
		Concurrency: cfg.Crawler.Concurrency,
		Delay:       cfg.CrawlDelay(),
	}, crawler.NewSQLStore(database.DB, database.Builder()))

	printInfo(fmt.Sprintf("Crawling into %s (%s)...", cfg.Database.DSN, cfg.Database.Driver))
	return c.Run(cmd.Context(), crawlPages)
}

func crawlRemotely(cfg *config.Config) (models.CrawlResult, error) {
	var result models.CrawlResult
	if cfg.Auth.Token == "" {
		return result, fmt.Errorf("no admin token configured (run: movieviz admin token)")
	}

	url, err := serverURL()
	if err != nil {
		return result, err
	}

	body, _ := json.Marshal(map[string]int{"pages": crawlPages})
	req, err := http.NewRequest(http.MethodPost, url+"/api/admin/crawl", bytes.NewReader(body))
	if err != nil {
		return result, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.Auth.Token)

	printInfo("Asking " + url + " to crawl...")
	// crawls take several seconds per page
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return result, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Error  string             `json:"error"`
		Result models.CrawlResult `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return payload.Result, fmt.Errorf("server returned %d: %s", resp.StatusCode, payload.Error)
	}
	return payload.Result, nil
}

func init() {
	crawlCmd.Flags().IntVarP(&crawlPages, "pages", "p", 0, "number of list pages (25 movies each); 0 uses the config")
	crawlCmd.Flags().BoolVar(&crawlRemote, "remote", false, "run the crawl on the stats API")
}
