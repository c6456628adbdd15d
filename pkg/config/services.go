package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/binhbb2204/movie-stats-viz/pkg/utils"
)

type Service struct {
	Host     string
	Port     string
	Protocol string
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type CrawlerConfig struct {
	Pages       int
	Concurrency int
	Delay       time.Duration
	BaseURL     string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// ServicesConfig is the env-driven configuration shared by the server binaries.
type ServicesConfig struct {
	LocalIP        string
	API            Service
	Dashboard      Service
	StatsAPIURL    string
	FetchTimeout   time.Duration
	AllowedOrigins []string
	JWTSecret      string
	Database       DatabaseConfig
	Redis          RedisConfig
	Crawler        CrawlerConfig
	Logging        LoggingConfig
}

func LoadServicesConfig() *ServicesConfig {
	localIP := utils.GetLocalIP()

	cfg := &ServicesConfig{
		LocalIP: localIP,
		API: Service{
			Host:     getEnvOrDefault("API_HOST", localIP),
			Port:     getEnvOrDefault("API_PORT", "6000"),
			Protocol: "http",
		},
		Dashboard: Service{
			Host:     getEnvOrDefault("DASHBOARD_HOST", localIP),
			Port:     getEnvOrDefault("DASHBOARD_PORT", "3000"),
			Protocol: "http",
		},
		FetchTimeout:   GetEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		AllowedOrigins: parseCommaSeparated(getEnvOrDefault("CORS_ORIGINS", "*")),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Database: DatabaseConfig{
			Driver: getEnvOrDefault("DB_DRIVER", "sqlite"),
			DSN:    getEnvOrDefault("DB_DSN", "./data/movies.db"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       GetEnvInt("REDIS_DB", 0),
			TTL:      GetEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Crawler: CrawlerConfig{
			Pages:       GetEnvInt("CRAWL_PAGES", 4),
			Concurrency: GetEnvInt("CRAWL_CONCURRENCY", 2),
			Delay:       GetEnvDuration("CRAWL_DELAY", 2*time.Second),
			BaseURL:     getEnvOrDefault("CRAWL_BASE_URL", "https://movie.douban.com/top250"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}
	cfg.StatsAPIURL = getEnvOrDefault("STATS_API_URL", fmt.Sprintf("http://localhost:%s", cfg.API.Port))

	return cfg
}

func (s *Service) URL() string {
	return fmt.Sprintf("%s://%s:%s", s.Protocol, s.Host, s.Port)
}

// Validate checks the settings every server binary depends on.
func (cfg *ServicesConfig) Validate() error {
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if _, err := strconv.Atoi(cfg.API.Port); err != nil {
		return fmt.Errorf("API_PORT must be numeric: %w", err)
	}
	if _, err := strconv.Atoi(cfg.Dashboard.Port); err != nil {
		return fmt.Errorf("DASHBOARD_PORT must be numeric: %w", err)
	}
	if cfg.Crawler.Pages < 1 || cfg.Crawler.Pages > 10 {
		return fmt.Errorf("CRAWL_PAGES must be between 1 and 10")
	}
	return nil
}

func (cfg *ServicesConfig) GetDiscoveryResponse() map[string]interface{} {
	return map[string]interface{}{
		"local_ip": cfg.LocalIP,
		"services": map[string]interface{}{
			"api":       cfg.API.URL(),
			"dashboard": cfg.Dashboard.URL(),
		},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func GetEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// GetEnvDuration accepts Go durations ("1500ms") or plain seconds ("2").
func GetEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
