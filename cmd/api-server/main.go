package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/binhbb2204/movie-stats-viz/internal/auth"
	"github.com/binhbb2204/movie-stats-viz/internal/cache"
	"github.com/binhbb2204/movie-stats-viz/internal/crawler"
	"github.com/binhbb2204/movie-stats-viz/internal/distribution"
	"github.com/binhbb2204/movie-stats-viz/internal/health"
	"github.com/binhbb2204/movie-stats-viz/pkg/config"
	"github.com/binhbb2204/movie-stats-viz/pkg/database"
	"github.com/binhbb2204/movie-stats-viz/pkg/discovery"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/metrics"
	"github.com/binhbb2204/movie-stats-viz/pkg/utils"
)

func main() {
	// Load environment variables from .env if present (optional)
	_ = godotenv.Load()

	cfg := config.LoadServicesConfig()
	logger.Init(logger.ParseLevel(cfg.Logging.Level), cfg.Logging.Format == "json", os.Stdout)
	defer logger.GetLogger().Sync()

	log := logger.GetLogger().WithContext("component", "api_server")
	log.Info("starting_api_server", "version", "1.0.0")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid_configuration", "error", err.Error())
		os.Exit(1)
	}

	if err := database.InitDatabase(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		log.Error("failed_to_initialize_database", "error", err.Error(), "driver", cfg.Database.Driver)
		os.Exit(1)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional; without it every request hits the database.
	var statsCache distribution.Cache
	var readiness health.Pinger
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, "movieviz:")
		if err != nil {
			log.Warn("redis_unavailable", "addr", cfg.Redis.Addr, "error", err.Error())
		} else {
			defer rc.Close()
			statsCache = rc
			readiness = rc
		}
	}

	if cfg.JWTSecret == "" {
		secret, err := utils.GenerateID(32)
		if err != nil {
			log.Error("failed_to_generate_jwt_secret", "error", err.Error())
			os.Exit(1)
		}
		cfg.JWTSecret = secret
		log.Warn("using_ephemeral_jwt_secret", "message", "Set JWT_SECRET to mint admin tokens with the CLI")
	}

	repo := distribution.NewSQLRepository(database.DB, database.Builder())
	statsService := distribution.NewService(repo, statsCache, cfg.Redis.TTL)
	statsHandler := distribution.NewHandler(statsService)

	movieCrawler := crawler.New(crawler.Config{
		BaseURL:     cfg.Crawler.BaseURL,
		Pages:       cfg.Crawler.Pages,
		Concurrency: cfg.Crawler.Concurrency,
		Delay:       cfg.Crawler.Delay,
	}, crawler.NewSQLStore(database.DB, database.Builder()))
	crawlHandler := crawler.NewHandler(movieCrawler, statsService)

	healthHandler := health.NewHandler(readiness)
	metricsHandler := metrics.NewHandler()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)
	router.GET("/metrics", metricsHandler.Metrics)
	router.GET("/discovery", func(c *gin.Context) {
		c.JSON(http.StatusOK, cfg.GetDiscoveryResponse())
	})

	statsHandler.RegisterRoutes(router.Group("/api/movies"))

	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware(cfg.JWTSecret), auth.RequireRole(utils.RoleAdmin))
	{
		admin.POST("/crawl", crawlHandler.Crawl)
	}

	broadcaster := discovery.NewBroadcaster(cfg.LocalIP, map[string]string{
		"api":       cfg.API.URL(),
		"dashboard": cfg.Dashboard.URL(),
	}, "")
	broadcaster.Start()
	defer broadcaster.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.API.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.StdLogger(),
	}

	go func() {
		log.Info("api_server_listening", "port", cfg.API.Port, "driver", cfg.Database.Driver, "cache", statsCache != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed_to_start_api_server", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown_signal_received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("api_server_shutdown_failed", "error", err.Error())
	}
	log.Info("api_server_stopped")
}
