package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/mention-comb/app/api"
	"github.com/lysyi3m/mention-comb/app/cfg"
	"github.com/lysyi3m/mention-comb/app/collectors"
	"github.com/lysyi3m/mention-comb/app/database"
	"github.com/lysyi3m/mention-comb/app/monitor"
	"github.com/lysyi3m/mention-comb/app/notifications"
	"github.com/lysyi3m/mention-comb/app/sheet"
	"github.com/lysyi3m/mention-comb/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("Starting Mention Comb server (version %s)...", appCfg.Version)

	// Database connection
	log.Printf("Opening database at %s...", appCfg.DBPath)
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Printf("Database ready (schema version %d, dirty: %t)", version, dirty)

	// Load topic configurations
	log.Printf("Loading topic configurations from %s...", appCfg.TopicsDir)
	topicCache := monitor.NewTopicCache(appCfg.TopicsDir)
	if err := topicCache.Run(); err != nil {
		log.Fatal("Failed to load topic configurations:", err)
	}
	log.Printf("Loaded %d topic configurations", topicCache.GetConfigCount())

	// Initialize repositories
	seenRepo := database.NewSeenItemRepository(db)
	runRepo := database.NewCollectionRunRepository(db)

	// Initialize collectors; each disables itself when its topic or
	// credentials say so.
	httpClient := &http.Client{Timeout: 60 * time.Second}
	collectorList := []collectors.Collector{
		collectors.NewNewsCollector(httpClient, appCfg.NewsAPIKey, appCfg.UserAgent),
		collectors.NewGoogleNewsCollector(httpClient, appCfg.UserAgent),
		collectors.NewRedditCollector(httpClient, appCfg.UserAgent),
		collectors.NewXCollector(httpClient, appCfg.XBearerToken, appCfg.UserAgent),
		collectors.NewLinkedInCollector(httpClient, appCfg.GoogleAPIKey, appCfg.GoogleCSEID, appCfg.UserAgent),
	}

	writer := sheet.NewWebhookWriter(httpClient, appCfg.SheetWebhookURL, appCfg.UserAgent)
	notifier := notifications.NewTelegramNotifier(appCfg.TelegramBotToken, appCfg.TelegramChatID)

	// Initialize and start scheduler
	log.Printf("Starting background scheduler with %d workers...", appCfg.WorkerCount)
	scheduler := tasks.NewScheduler(topicCache, collectorList, seenRepo, runRepo, writer, notifier)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(seenRepo, runRepo, topicCache, collectorList, writer, notifier, scheduler, appCfg.DryRun)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)
		log.Printf("  Statistics:    http://localhost:%s/stats", appCfg.Port)

		if appCfg.APIAccessKey != "" {
			log.Printf("  List topics:   http://localhost:%s/api/topics (requires API key)", appCfg.Port)
			log.Printf("  Recent runs:   http://localhost:%s/api/runs (requires API key)", appCfg.Port)
			log.Printf("  Collect:       http://localhost:%s/api/topics/<name>/collect (POST, requires API key)", appCfg.Port)
		} else {
			log.Printf("  API endpoints: DISABLED (API_ACCESS_KEY not set)")
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Mention Comb server started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	log.Println("Background scheduler stopped")

	log.Println("Mention Comb server shutdown complete")
}
