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

	"github.com/lysyi3m/grocery-comb/app/api"
	"github.com/lysyi3m/grocery-comb/app/cache"
	"github.com/lysyi3m/grocery-comb/app/cfg"
	"github.com/lysyi3m/grocery-comb/app/database"
	"github.com/lysyi3m/grocery-comb/app/extract"
	"github.com/lysyi3m/grocery-comb/app/normalize"
	"github.com/lysyi3m/grocery-comb/app/price"
	"github.com/lysyi3m/grocery-comb/app/resolver"
	"github.com/lysyi3m/grocery-comb/app/search"
	"github.com/lysyi3m/grocery-comb/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
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

	log.Printf("Starting Grocery Comb server (version %s)...", appCfg.Version)

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
	log.Printf("Database ready (schema version %d, dirty: %v)", version, dirty)

	recipeRepo := database.NewRecipeRepository(db)

	// Cache backend selection: the sqlite repository doubles as the default
	// cache; Redis is used when several instances share one cache.
	var recipeCache cache.RecipeCache = recipeRepo
	if appCfg.CacheBackend == "redis" {
		redisCache, err := cache.NewRedisCache(appCfg.RedisAddr, time.Duration(appCfg.RecipeTTL)*time.Hour)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisCache.Close()
		recipeCache = redisCache
		log.Printf("Using Redis cache backend at %s", appCfg.RedisAddr)
	}

	// Pattern table for the CSS fallback extraction strategy
	patterns := extract.DefaultPatternTable()
	if appCfg.PatternTablePath != "" {
		patterns, err = extract.LoadPatternTable(appCfg.PatternTablePath)
		if err != nil {
			log.Fatal("Failed to load pattern table:", err)
		}
		log.Printf("Loaded pattern table version %d from %s", patterns.Version, appCfg.PatternTablePath)
	}

	// Initialize core components
	httpTimeout := time.Duration(appCfg.HTTPTimeout) * time.Second
	httpClient := &http.Client{Timeout: httpTimeout}

	searchClient := search.NewClient(appCfg.SearchEndpoint, appCfg.MaxCandidates, httpTimeout, appCfg.UserAgent)
	extractor := extract.NewExtractor(patterns)
	normalizer := normalize.NewNormalizer(appCfg.ExtractionEndpoints, httpTimeout)

	recipeResolver := resolver.NewResolver(searchClient, extractor, normalizer,
		recipeCache, httpClient, appCfg.UserAgent, httpTimeout)

	var priceClient api.PriceLookupInterface
	if appCfg.PriceEndpoint != "" {
		priceClient = price.NewClient(appCfg.PriceEndpoint, httpTimeout)
		log.Printf("Price lookup enabled via %s", appCfg.PriceEndpoint)
	}

	// Initialize and start scheduler. With the Redis backend staleness is
	// covered by key TTLs, so background refreshing only runs on sqlite.
	var scheduler tasks.TaskSchedulerInterface
	var stats api.StatsInterface
	if appCfg.CacheBackend == "sqlite" {
		stats = recipeRepo

		log.Printf("Starting background scheduler with %d workers...", appCfg.WorkerCount)
		scheduler = tasks.NewScheduler(recipeRepo, recipeResolver)
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(recipeResolver, priceClient, stats, recipeResolver, scheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	// Create HTTP server with timeouts
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Shopping list: http://localhost:%s/shopping-list (POST)", appCfg.Port)
		log.Printf("  Recipe:        http://localhost:%s/recipes/<dish>", appCfg.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)
		log.Printf("  Statistics:    http://localhost:%s/stats", appCfg.Port)

		if appCfg.APIAccessKey != "" {
			log.Printf("  Refresh:       http://localhost:%s/api/recipes/<dish>/refresh (POST, requires API key)", appCfg.Port)
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

	log.Println("Grocery Comb server started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	log.Println("Grocery Comb server shutdown complete")
}
