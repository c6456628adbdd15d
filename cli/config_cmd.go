package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/binhbb2204/movie-stats-viz/cli/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify movieviz CLI configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: movieviz init")
			return err
		}

		fmt.Println("Current Configuration:")
		fmt.Println("----------------------")

		v := reflect.ValueOf(*cfg)
		t := v.Type()

		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			typeField := t.Field(i)

			fmt.Printf("[%s]\n", typeField.Name)
			if field.Kind() == reflect.Struct {
				for j := 0; j < field.NumField(); j++ {
					subTypeField := field.Type().Field(j)
					tag := subTypeField.Tag.Get("yaml")
					if tag == "" {
						tag = subTypeField.Name
					}
					fmt.Printf("  %s: %v\n", tag, maskSecret(tag, field.Field(j).Interface()))
				}
			}
			fmt.Println()
		}

		return nil
	},
}

func maskSecret(key string, value interface{}) interface{} {
	if s, ok := value.(string); ok && s != "" && (key == "token" || key == "jwt_secret") {
		return "********"
	}
	return value
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long:  `Set a configuration value. Key should be in format 'section.key' (e.g., logging.level).`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		cfg, err := config.Load()
		if err != nil {
			printError("Configuration not initialized")
			return err
		}

		if err := setConfigValue(cfg, key, value); err != nil {
			return err
		}

		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		printSuccess(fmt.Sprintf("Updated %s to %s", key, value))
		return nil
	},
}

func setConfigValue(cfg *config.Config, key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid key format. Use 'section.key'")
	}

	section := strings.ToLower(parts[0])
	k := strings.ToLower(parts[1])

	atoi := func(dst *int) error {
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid integer for %s", k)
		}
		*dst = v
		return nil
	}
	duration := func(dst *string) error {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s", k)
		}
		*dst = value
		return nil
	}

	switch section {
	case "server":
		switch k {
		case "host":
			cfg.Server.Host = value
			return nil
		case "api_port":
			return atoi(&cfg.Server.APIPort)
		case "dashboard_port":
			return atoi(&cfg.Server.DashboardPort)
		case "timeout":
			return duration(&cfg.Server.Timeout)
		}
	case "database":
		switch k {
		case "driver":
			if value != "sqlite" && value != "postgres" {
				return fmt.Errorf("driver must be sqlite or postgres")
			}
			cfg.Database.Driver = value
			return nil
		case "dsn":
			cfg.Database.DSN = value
			return nil
		}
	case "crawler":
		switch k {
		case "pages":
			return atoi(&cfg.Crawler.Pages)
		case "concurrency":
			return atoi(&cfg.Crawler.Concurrency)
		case "delay":
			return duration(&cfg.Crawler.Delay)
		case "base_url":
			cfg.Crawler.BaseURL = value
			return nil
		}
	case "auth":
		switch k {
		case "jwt_secret":
			cfg.Auth.JWTSecret = value
			return nil
		case "token":
			cfg.Auth.Token = value
			return nil
		}
	case "logging":
		switch k {
		case "level":
			cfg.Logging.Level = value
			return nil
		case "path":
			cfg.Logging.Path = value
			return nil
		}
	}

	return fmt.Errorf("unknown configuration key: %s", key)
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
