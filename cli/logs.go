package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/binhbb2204/movie-stats-viz/cli/config"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Manage logs",
	Long:  `View, search, and manage movieviz CLI logs.`,
}

func logDir() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Logging.Path, nil
}

// eachLogLine calls fn for every line of every .log file in dir.
func eachLogLine(dir string, fn func(file string, lineNum int, line string)) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".log") {
			continue
		}
		f, err := os.Open(filepath.Join(dir, file.Name()))
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			fn(file.Name(), lineNum, scanner.Text())
		}
		f.Close()
	}
	return nil
}

func isErrorLine(line string) bool {
	var entry struct {
		Level string `json:"level"`
	}
	if err := json.Unmarshal([]byte(line), &entry); err == nil && entry.Level != "" {
		return entry.Level == "error"
	}
	return strings.Contains(strings.ToLower(line), "error")
}

var logsErrorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Show error logs",
	Long:  `Display error entries from the log files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := logDir()
		if err != nil {
			return err
		}

		fmt.Println("Error Logs:")
		fmt.Println("-----------")

		found := false
		err = eachLogLine(dir, func(file string, _ int, line string) {
			if isErrorLine(line) {
				fmt.Printf("[%s] %s\n", file, line)
				found = true
			}
		})
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("No errors found in logs.")
		}
		return nil
	},
}

var logsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search logs",
	Long:  `Search for a specific string in the log files.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.ToLower(args[0])
		dir, err := logDir()
		if err != nil {
			return err
		}

		fmt.Printf("Searching for \"%s\" in logs...\n", query)
		fmt.Println("-----------------------------------")

		found := false
		err = eachLogLine(dir, func(file string, lineNum int, line string) {
			if strings.Contains(strings.ToLower(line), query) {
				fmt.Printf("[%s:%d] %s\n", file, lineNum, line)
				found = true
			}
		})
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("No matches found.")
		}
		return nil
	},
}

var logsCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean old logs",
	Long:  `Delete archived log files, or all of them with --all.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := logDir()
		if err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")

		files, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to read log directory: %w", err)
		}

		count := 0
		for _, file := range files {
			name := file.Name()
			if file.IsDir() || !strings.HasSuffix(name, ".log") {
				continue
			}
			if !all && !strings.Contains(name, ".archive.") {
				continue
			}
			if err := os.Remove(filepath.Join(dir, name)); err == nil {
				count++
			}
		}

		printSuccess(fmt.Sprintf("Deleted %d log files", count))
		return nil
	},
}

var logsRotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate logs",
	Long:  `Archive current logs and start fresh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := logDir()
		if err != nil {
			return err
		}
		count, err := rotateLogs(dir, time.Now())
		if err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("Rotated %d log files", count))
		return nil
	},
}

func rotateLogs(dir string, now time.Time) (int, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	timestamp := now.Format("20060102-150405")
	count := 0
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, ".log") || strings.Contains(name, ".archive.") {
			continue
		}
		archived := fmt.Sprintf("%s.archive.%s.log", strings.TrimSuffix(name, ".log"), timestamp)
		if err := os.Rename(filepath.Join(dir, name), filepath.Join(dir, archived)); err == nil {
			count++
		}
	}
	return count, nil
}

func init() {
	logsCleanCmd.Flags().Bool("all", false, "delete current logs too")
	logsCmd.AddCommand(logsErrorsCmd)
	logsCmd.AddCommand(logsSearchCmd)
	logsCmd.AddCommand(logsCleanCmd)
	logsCmd.AddCommand(logsRotateCmd)
}
