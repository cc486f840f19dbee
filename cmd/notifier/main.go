package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scan_review_notifier/internal/app"
	"scan_review_notifier/internal/infra/config"
	idb "scan_review_notifier/internal/infra/database"
	"scan_review_notifier/internal/infra/httpapi"
	"scan_review_notifier/internal/infra/logger"
	"scan_review_notifier/internal/infra/metrics"
	"scan_review_notifier/internal/infra/push"
	"scan_review_notifier/internal/infra/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet; fall back to a bare one.
		logger.New(&config.AppConfig{LogLevel: "info"}).Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	log := logger.New(cfg)
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, HTTPAddr: %s", cfg.LogLevel, cfg.Environment, cfg.HTTPAddr)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	if err := idb.EnsureSchema(db); err != nil {
		log.Fatalf("FATAL: Could not ensure database schema: %v", err)
	}
	log.Info("Database connection established.")

	// Initialize Repositories
	scanRepo := idb.NewPostgresScanRepository(db)
	accountRepo := idb.NewPostgresAccountRepository(db)

	// Initialize Push Transport
	ctx := context.Background()
	pushClient, err := push.NewFCMAdapter(ctx, cfg.FirebaseCredentialsFile)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize push transport: %v", err)
	}
	log.Info("Push transport initialized.")

	// Initialize Services
	counters := metrics.NewCounters()
	notifierService := app.NewNotifierServiceImpl(scanRepo, accountRepo, pushClient, counters, log)
	accountService := app.NewAccountService(accountRepo, log)

	// Periodic delivery-stats reporting
	statsReporter := scheduler.NewStatsReporter(counters, log, cfg.StatsCronSpec)
	if err := statsReporter.Start(); err != nil {
		log.Fatalf("FATAL: Could not start stats reporter: %v", err)
	}

	// HTTP event intake
	apiServer := httpapi.NewServer(notifierService, accountService, db, log)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Event intake listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown: %v", err)
	}
	statsReporter.Stop()
	log.Info("Shut down gracefully.")
}
