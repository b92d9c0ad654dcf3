package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Domenick1991/flightdash/config"
	"github.com/Domenick1991/flightdash/internal/bootstrap"
	"github.com/Domenick1991/flightdash/internal/cache"
	"github.com/Domenick1991/flightdash/internal/logging"
	"github.com/Domenick1991/flightdash/internal/repository"
	"github.com/Domenick1991/flightdash/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx database/sql driver for the startup listing
	"github.com/pkg/browser"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	logger, err := logging.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	logger.Info("registered SQL drivers", zap.Strings("drivers", sql.Drivers()))
	if cfg.Database.IntegratedAuth() {
		logger.Info("database auth mode: integrated (no user configured)")
	} else {
		logger.Info("database auth mode: password", zap.String("user", cfg.Database.User))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	var flightCache flights.FlightCache
	if cfg.Redis.Addr != "" {
		flightCache = cache.NewRedisCache(cfg.Redis)
	}

	flightRepo := repository.NewFlightRepository(pool)
	flightService := flights.NewFlightService(flightRepo, flightCache)

	url := dashboardURL(cfg.HTTP.Address)
	logger.Info("dashboard available", zap.String("url", url))
	if cfg.HTTP.OpenBrowser {
		if err := browser.OpenURL(url); err != nil {
			logger.Warn("open browser", zap.Error(err))
		}
	}

	if err := bootstrap.Run(ctx, cfg, logger, flightService); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func dashboardURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr + "/dashboard.html"
	}
	return "http://" + addr + "/dashboard.html"
}
