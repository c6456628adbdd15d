package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/binhbb2204/movie-stats-viz/internal/dashboard"
	"github.com/binhbb2204/movie-stats-viz/internal/statsclient"
	"github.com/binhbb2204/movie-stats-viz/internal/websocket"
	"github.com/binhbb2204/movie-stats-viz/pkg/config"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadServicesConfig()
	logger.Init(logger.ParseLevel(cfg.Logging.Level), cfg.Logging.Format == "json", os.Stdout)
	defer logger.GetLogger().Sync()

	log := logger.GetLogger().WithContext("component", "dashboard_server")
	log.Info("starting_dashboard", "stats_api", cfg.StatsAPIURL, "fetch_timeout", cfg.FetchTimeout.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := websocket.NewManager()
	go manager.Run(ctx)

	controller := dashboard.NewController(statsclient.New(cfg.StatsAPIURL, cfg.FetchTimeout))
	handler := dashboard.NewHandler(controller, websocket.NewServer(manager))

	// A failed first load only raises a notice; the page can retry.
	if err := controller.Start(ctx); err != nil {
		log.Warn("initial_load_failed", "error", err.Error())
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Dashboard.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.StdLogger(),
	}

	go func() {
		log.Info("dashboard_listening", "url", cfg.Dashboard.URL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed_to_start_dashboard", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown_signal_received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("dashboard_shutdown_failed", "error", err.Error())
	}
}
