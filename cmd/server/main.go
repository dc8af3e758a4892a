package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/miro-trifonov/teya-tinyLedger/internal/config"
	"github.com/miro-trifonov/teya-tinyLedger/internal/events/kafka"
	"github.com/miro-trifonov/teya-tinyLedger/internal/events/noop"
	"github.com/miro-trifonov/teya-tinyLedger/internal/handler"
	"github.com/miro-trifonov/teya-tinyLedger/internal/interfaces"
	"github.com/miro-trifonov/teya-tinyLedger/internal/ledger"
	"github.com/miro-trifonov/teya-tinyLedger/internal/storage/memory"
	"github.com/miro-trifonov/teya-tinyLedger/internal/storage/postgres"
)

func main() {
	cfg := config.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	var store interfaces.LedgerStore
	switch cfg.StorageBackend {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		store = postgres.NewPostgresLedgerStore(db)
	case "memory":
		store = memory.NewMemoryLedgerStore()
	default:
		logger.Fatalf("Unknown storage backend %q", cfg.StorageBackend)
	}

	var publisher interfaces.EventPublisher = noop.NewPublisher()
	if cfg.EventsEnabled() {
		publisher = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.WithFields(logrus.Fields{
			"brokers": cfg.KafkaBrokers,
			"topic":   cfg.KafkaTopic,
		}).Info("kafka event publishing enabled")
	}
	defer publisher.Close()

	ledgerService := ledger.NewLedger(store, publisher, logger)
	h := handler.NewHandler(ledgerService, logger)

	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      h.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    addr,
			"backend": cfg.StorageBackend,
		}).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}
}
