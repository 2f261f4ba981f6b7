package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/sbrlabs/lookup-dashboard/api/internal/config"
	"github.com/sbrlabs/lookup-dashboard/api/internal/database"
	"github.com/sbrlabs/lookup-dashboard/api/internal/handler"
	"github.com/sbrlabs/lookup-dashboard/api/internal/logging"
	middlewarepkg "github.com/sbrlabs/lookup-dashboard/api/internal/middleware"
	"github.com/sbrlabs/lookup-dashboard/api/internal/repository"
	"github.com/sbrlabs/lookup-dashboard/api/internal/router"
	"github.com/sbrlabs/lookup-dashboard/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Fatal("failed to load config", "err", err)
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect database", "err", err)
	}
	defer pool.Close()

	jobsRepo := repository.NewPGXJobsRepository(pool)
	logsRepo := repository.NewPGXLogsRepository(pool)
	systemRepo := repository.NewPGXSystemRepository(pool)

	statsService := service.NewStatsService(jobsRepo)
	numbersService := service.NewNumbersService(jobsRepo, cfg.PhoneRegion)
	jobsService := service.NewJobsService(jobsRepo)
	systemService := service.NewSystemService(systemRepo, logsRepo)

	handlers := router.Handlers{
		Stats:   handler.NewStatsHandler(statsService),
		Numbers: handler.NewNumbersHandler(numbersService),
		Jobs:    handler.NewJobsHandler(jobsService),
		System:  handler.NewSystemHandler(systemService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	log.Info("dashboard api listening", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("received signal, shutting down", "signal", sig.String())
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", "err", err)
	}
}
