package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/binhbb2204/movie-stats-viz/cli/config"
	"github.com/binhbb2204/movie-stats-viz/pkg/discovery"
)

var discoverTimeout time.Duration

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "System information",
	Long:  `Display system information and diagnostics.`,
}

var systemInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show system info",
	Long:  `Display runtime information, configuration and stats API health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("System Information:")
		fmt.Println("-------------------")
		fmt.Printf("movieviz: %s\n", version)
		fmt.Printf("OS: %s\n", runtime.GOOS)
		fmt.Printf("Architecture: %s\n", runtime.GOARCH)
		fmt.Printf("Go Version: %s\n", runtime.Version())
		fmt.Printf("CPUs: %d\n", runtime.NumCPU())

		cfg, err := config.Load()
		if err != nil {
			fmt.Println("\nConfiguration: Not initialized")
		} else {
			path, _ := config.GetConfigPath()
			fmt.Println("\nConfiguration:")
			fmt.Printf("  Config Path: %s\n", path)
			fmt.Printf("  Stats API: %s\n", cfg.ServerURL())
			fmt.Printf("  Database: %s (%s)\n", cfg.Database.DSN, cfg.Database.Driver)
			fmt.Printf("  Admin Token: %v\n", cfg.Auth.Token != "")
		}

		fmt.Println("\nStats API:")
		client, err := newStatsClient()
		if err != nil {
			fmt.Println("  Status: Unknown (Config error)")
			return nil
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
		defer cancel()
		if body, err := client.Health(ctx); err != nil {
			fmt.Printf("  Status: ✗ Unreachable (%s)\n", err.Error())
		} else {
			fmt.Printf("  Status: ✓ Online (%v)\n", body["status"])
		}
		return nil
	},
}

var systemDiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find a stats API on the LAN",
	Long:  `Listen for the UDP announcement the API server broadcasts and print the advertised services.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), discoverTimeout)
		defer cancel()

		printInfo(fmt.Sprintf("Listening on udp :%d for %s...", discovery.DefaultPort, discoverTimeout))
		a, err := discovery.Listen(ctx, fmt.Sprintf(":%d", discovery.DefaultPort))
		if err != nil {
			printError("No announcement received")
			return err
		}

		printSuccess("Found movieviz at " + a.LocalIP)
		for name, url := range a.Services {
			fmt.Printf("  %s: %s\n", name, url)
		}
		return nil
	},
}

func init() {
	systemDiscoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", 10*time.Second, "how long to listen")
	systemCmd.AddCommand(systemInfoCmd)
	systemCmd.AddCommand(systemDiscoverCmd)
}
