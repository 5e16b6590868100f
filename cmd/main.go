package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "vehicle_dashboard/docs"
	"vehicle_dashboard/internal/config"
	"vehicle_dashboard/internal/handlers"
	"vehicle_dashboard/internal/logger"
	"vehicle_dashboard/internal/page"
	"vehicle_dashboard/internal/repository"
	"vehicle_dashboard/internal/repository/db"
	"vehicle_dashboard/internal/server"
	"vehicle_dashboard/internal/service"
	"vehicle_dashboard/internal/socket"
)

const shutdownTimeout = 10 * time.Second

// @title        Vehicle Dashboard API
// @version      1.0
// @description  Live view of vehicle telemetry with cruise control and accelerator input.
// @BasePath     /
func main() {
	configPath := flag.String("config", "", "path to config file (default configs/config.yml)")
	flag.Parse()

	// load config.yml
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := openDB(cfg.DB.Path, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	journal := service.NewJournal(repos.EventRepo, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		telemetry page.Conn
		simulator service.Simulator
		client    *socket.Client
	)
	if cfg.TestMode {
		sim := service.NewSimulatorService(log)
		telemetry, simulator = sim, sim
	} else {
		client = socket.NewClient(cfg.Telemetry.URL, log)
		telemetry = client
	}

	controller := page.NewController(telemetry, page.Options{
		PollInterval:  cfg.Telemetry.PollInterval,
		FrameInterval: cfg.Telemetry.FrameInterval,
		Lifecycle:     journal.Lifecycle,
	}, log)
	services := service.NewService(repos, journal, controller, simulator)
	apiHandler := handlers.NewHandler(services, log, cfg.StaticDir)

	go func() {
		if err := controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("page controller stopped", "err", err)
		}
	}()

	if simulator != nil {
		log.Infow("test mode: serving simulated telemetry", "tick", cfg.SimTick)
		go simulator.Run(ctx, cfg.SimTick)
	} else {
		log.Infow("connecting to telemetry server", "url", cfg.Telemetry.URL)
		go func() {
			if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorw("telemetry client stopped", "err", err)
			}
		}()
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite journal, falling back to a local file.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "dashboard.db")
		path = "dashboard.db"
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
