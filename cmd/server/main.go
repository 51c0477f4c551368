package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mariana/linguaflash/internal/api"
	"github.com/mariana/linguaflash/internal/catalog"
	"github.com/mariana/linguaflash/internal/config"
	"github.com/mariana/linguaflash/internal/db"
	"github.com/mariana/linguaflash/internal/jobs"
	"github.com/mariana/linguaflash/internal/logger"
	"github.com/mariana/linguaflash/internal/repository/sqlite"
	"github.com/mariana/linguaflash/internal/services"
	"github.com/mariana/linguaflash/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
	logger.SetDefault(log)

	log.Info("LinguaFlash server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("catalog_path=%s", cfg.CatalogPath)
	log.Debug("reminder_hour=%d", cfg.ReminderHour)
	log.Debug("provision_worker_count=%d", cfg.ProvisionWorkerCount)
	log.Debug("provision_queue_size=%d", cfg.ProvisionQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Topic catalog: xlsx file when configured, built-in set otherwise.
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadXLSX(cfg.CatalogPath)
		if err != nil {
			log.Error("failed to load topic catalog from %s: %v", cfg.CatalogPath, err)
			os.Exit(1)
		}
		log.Info("loaded topic catalog from %s (%d entries)", cfg.CatalogPath, cat.Len())
	}

	cardRepo := sqlite.NewCardRepository(database.DB)

	cardService := services.NewCardService(cardRepo)
	practiceService := services.NewPracticeService(cardRepo, cardService)
	provisionService := services.NewProvisionService(cardRepo, cat)
	importService := services.NewImportService(cardRepo)

	provisionPool := worker.NewPool(cfg.ProvisionWorkerCount, cfg.ProvisionQueueSize)

	reminder, err := jobs.NewDueReminder(cardRepo, cfg.ReminderHour)
	if err != nil {
		log.Error("failed to create reminder job: %v", err)
		os.Exit(1)
	}

	srv := api.NewServer(cardService, practiceService, provisionService, importService, provisionPool)

	ctx, cancel := context.WithCancel(context.Background())
	provisionPool.Start(ctx)
	reminder.Start()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping background jobs")
	reminder.Stop()
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping provision pool")
	provisionPool.Stop()

	log.Info("LinguaFlash server stopped")
}
