package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skypulse-engine/internal/infrastructure/config"
	"skypulse-engine/internal/infrastructure/persistence"
	"skypulse-engine/internal/interface/httpapi"
	"skypulse-engine/internal/interface/repository"
	"skypulse-engine/internal/usecase"
	"skypulse-engine/pkg/logger"
	"skypulse-engine/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting SkyPulse Engine", "version", cfg.AppVersion)

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(cfg.MetricsNamespace, registry)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoDatabase(ctx, persistence.MongoConfig{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDB,
		Username: cfg.MongoUser,
		Password: cfg.MongoPassword,
	})
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL connection
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI, &repository.Subscriptions{}, &repository.DealMatches{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	dealRepo := repository.NewMongoDealRepository(db)
	observationRepo := repository.NewMongoPriceObservationRepository(db)
	subscriptionRepo := repository.NewGormSubscriptionRepository(gormDB)
	matchRepo := repository.NewGormMatchRepository(gormDB)
	summarizer := repository.NewOllamaRepository(repository.OllamaConfig{
		BaseURL:           cfg.OllamaBaseURL,
		Model:             cfg.OllamaModel,
		Timeout:           cfg.OllamaTimeout,
		RequestsPerSecond: cfg.OllamaRPS,
	}, log.With("component", "ollama"))

	// Set up use cases
	matcher := usecase.NewDealMatcher(summarizer, log.With("component", "matcher"), appMetrics)
	prices := usecase.NewPriceIntelligence(log.With("component", "prices"), appMetrics)
	processor := usecase.NewDealProcessor(dealRepo, subscriptionRepo, matchRepo, observationRepo, matcher, prices, cfg.DealBatchSize, log.With("component", "processor"))

	if _, err := processor.Warmup(ctx); err != nil {
		log.Error("Failed to restore price history", "error", err)
	}

	// Start deal processor in a goroutine
	go func() {
		processTicker := time.NewTicker(cfg.DealPollInterval)
		defer processTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Deal processor stopped")
				return
			case <-processTicker.C:
				if _, err := processor.ProcessPendingDeals(ctx); err != nil {
					log.Error("Error processing deals", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server
	handler := httpapi.NewHandler(prices, observationRepo, log.With("component", "http"), cfg.AppVersion)
	handler.AddHealthCheck("mongodb", httpapi.HealthCheckFunc(func(ctx context.Context) bool {
		return mongoClient.Ping(ctx, readpref.Primary()) == nil
	}))
	handler.AddHealthCheck("postgres", httpapi.HealthCheckFunc(func(ctx context.Context) bool {
		sqlDB, err := gormDB.DB()
		return err == nil && sqlDB.PingContext(ctx) == nil
	}))
	handler.AddHealthCheck("ollama", summarizer)
	router := httpapi.NewRouter(handler, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), log.With("component", "http"))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	// Close PostgreSQL pool
	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("SkyPulse Engine stopped")
}
