package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host          string `yaml:"host"`
		APIPort       int    `yaml:"api_port"`
		DashboardPort int    `yaml:"dashboard_port"`
		Timeout       string `yaml:"timeout"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Crawler struct {
		Pages       int    `yaml:"pages"`
		Concurrency int    `yaml:"concurrency"`
		Delay       string `yaml:"delay"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"crawler"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		Token     string `yaml:"token"`
	} `yaml:"auth"`
	Logging struct {
		Level string `yaml:"level"`
		Path  string `yaml:"path"`
	} `yaml:"logging"`
}

var GlobalConfig *Config

// GetConfigDir is ~/.movieviz unless MOVIEVIZ_HOME is set.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("MOVIEVIZ_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".movieviz"), nil
}

func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	GlobalConfig = &config
	return &config, nil
}

func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// the file may hold the admin token and jwt secret
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	GlobalConfig = config
	return nil
}

// Default returns the configuration written by Init.
func Default(configDir string) *Config {
	config := &Config{}
	config.Server.Host = "localhost"
	config.Server.APIPort = 6000
	config.Server.DashboardPort = 3000
	config.Server.Timeout = "10s"
	config.Database.Driver = "sqlite"
	config.Database.DSN = filepath.Join(configDir, "data", "movies.db")
	config.Crawler.Pages = 4
	config.Crawler.Concurrency = 2
	config.Crawler.Delay = "2s"
	config.Crawler.BaseURL = "https://movie.douban.com/top250"
	config.Logging.Level = "info"
	config.Logging.Path = filepath.Join(configDir, "logs")
	return config
}

func Init() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	for _, dir := range []string{configDir, filepath.Join(configDir, "data"), filepath.Join(configDir, "logs")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return Save(Default(configDir))
}

func UpdateToken(token string) error {
	config, err := Load()
	if err != nil {
		return err
	}
	config.Auth.Token = token
	return Save(config)
}

func GetServerURL() (string, error) {
	config, err := Load()
	if err != nil {
		return "", err
	}
	return config.ServerURL(), nil
}

func (c *Config) ServerURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.APIPort)
}

// RequestTimeout parses Server.Timeout, defaulting to 10s.
func (c *Config) RequestTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Server.Timeout); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}

// CrawlDelay parses Crawler.Delay, defaulting to 2s.
func (c *Config) CrawlDelay() time.Duration {
	if d, err := time.ParseDuration(c.Crawler.Delay); err == nil && d >= 0 {
		return d
	}
	return 2 * time.Second
}
