package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/redis/v3"

	"newscheck/internal/classifier"
	"newscheck/internal/config"
	"newscheck/internal/db"
	"newscheck/internal/detector"
	"newscheck/internal/jobs"
	"newscheck/internal/metrics"
	"newscheck/internal/newsapi"
	"newscheck/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	manifest, err := config.LoadManifest(cfg.ModelManifest)
	if err != nil {
		log.Fatalf("Failed to load model manifest: %v", err)
	}
	cfg.ApplyManifest(manifest)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Load the frozen classifier; there is nothing to serve without it
	vectorizerPath, modelPath := manifest.ArtifactPaths(cfg.ModelDir)
	vectorizer, model, err := classifier.LoadArtifacts(vectorizerPath, modelPath)
	if err != nil {
		log.Fatalf("Failed to load model artifacts: %v", err)
	}
	predictor := classifier.NewPredictor(vectorizer, model)
	newsClient := newsapi.NewClient(cfg.NewsAPIURL, cfg.NewsAPIKey, cfg.NewsAPITimeout,
		newsapi.WithLanguage(cfg.NewsAPILanguage))
	svc := detector.NewService(predictor, newsClient, cfg.Threshold)
	log.Printf("Loaded model (%d features, threshold %.2f)", vectorizer.Dim(), svc.Threshold())

	// Optional outcome counters
	var database *db.DB
	if cfg.HasDatabase() {
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")
	} else {
		log.Println("DATABASE_URL not set, outcome counters are kept in memory only")
	}

	metrics.Init(database)

	// Optional shared rate-limit storage
	var storage fiber.Storage
	if cfg.RedisURL != "" {
		storage = redis.New(redis.Config{URL: cfg.RedisURL})
		defer storage.Close()
	}

	srv := server.New(cfg, storage)
	srv.RegisterRoutes(svc, database)

	if cfg.UpstreamCheckInterval > 0 {
		checker := jobs.NewUpstreamChecker(cfg.NewsAPIURL, cfg.UpstreamCheckInterval, metrics.SetUpstreamUp)
		go checker.Start(ctx)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
