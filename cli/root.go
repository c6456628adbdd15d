package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/binhbb2204/movie-stats-viz/cli/config"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
)

const version = "1.0.0"

var (
	apiURLFlag string
	verbose    bool
	logFile    *os.File
)

var rootCmd = &cobra.Command{
	Use:     "movieviz",
	Short:   "Douban movie statistics from the terminal",
	Long:    `movieviz queries the movie stats API, exports charts and runs the Douban Top250 crawler.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.GetLogger().Sync()
		if logFile != nil {
			logFile.Close()
		}
	},
	SilenceUsage: true,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create ~/.movieviz with a default config.yaml, data and logs directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			printError("Failed to initialize configuration")
			return err
		}
		path, _ := config.GetConfigPath()
		printSuccess("Configuration written to " + path)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api", "", "stats API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr at debug level")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(systemCmd)
}

// setupLogging sends JSON logs to the configured log directory, or to stderr
// with --verbose. Without a config nothing is logged.
func setupLogging() {
	if verbose {
		logger.Init(logger.DEBUG, false, os.Stderr)
		return
	}

	var w io.Writer
	level := logger.INFO
	if cfg, err := config.Load(); err == nil && cfg.Logging.Path != "" {
		level = logger.ParseLevel(cfg.Logging.Level)
		if err := os.MkdirAll(cfg.Logging.Path, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(cfg.Logging.Path, "movieviz.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				logFile = f
				w = f
			}
		}
	}
	logger.Init(level, true, w)
}

// serverURL prefers --api over the configured host and port.
func serverURL() (string, error) {
	if apiURLFlag != "" {
		return apiURLFlag, nil
	}
	url, err := config.GetServerURL()
	if err != nil {
		return "", fmt.Errorf("configuration not initialized (run: movieviz init, or pass --api): %w", err)
	}
	return url, nil
}

func colorEnabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
}

func paint(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func printSuccess(msg string) {
	fmt.Println(paint("32", "✓ ") + msg)
}

func printError(msg string) {
	fmt.Fprintln(os.Stderr, paint("31", "✗ ")+msg)
}

func printInfo(msg string) {
	fmt.Println(paint("36", "ℹ ") + msg)
}
