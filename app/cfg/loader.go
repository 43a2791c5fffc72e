package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath       string `long:"db-path" env:"DB_PATH" default:"./grocery.db" description:"Path to the sqlite database file"`
	CacheBackend string `long:"cache-backend" env:"CACHE_BACKEND" default:"sqlite" choice:"sqlite" choice:"redis" description:"Recipe cache backend"`
	RedisAddr    string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"Redis address (cache-backend=redis)"`

	// Collaborator services
	SearchEndpoint      string   `long:"search-endpoint" env:"SEARCH_ENDPOINT" default:"http://localhost:8888/search" description:"SearxNG-compatible search endpoint"`
	ExtractionEndpoints []string `long:"extraction-endpoint" env:"EXTRACTION_ENDPOINTS" env-delim:"," default:"http://localhost:9090/extract" description:"Structured extraction service endpoints, tried in order"`
	PriceEndpoint       string   `long:"price-endpoint" env:"PRICE_ENDPOINT" description:"Price lookup endpoint (optional)"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	HTTPTimeout       int    `long:"http-timeout" env:"HTTP_TIMEOUT" default:"10" description:"Timeout in seconds for outbound HTTP requests"`
	MaxCandidates     int    `long:"max-candidates" env:"MAX_CANDIDATES" default:"5" description:"Maximum candidate pages tried per dish"`
	RecipeTTL         int    `long:"recipe-ttl" env:"RECIPE_TTL" default:"168" description:"Hours before a cached recipe is considered stale"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for recipe refreshing"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"300" description:"Scheduler interval in seconds"`
	PatternTablePath  string `long:"pattern-table" env:"PATTERN_TABLE" description:"Path to a CSS pattern table file (default: embedded table)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:              raw.DBPath,
		CacheBackend:        raw.CacheBackend,
		RedisAddr:           raw.RedisAddr,
		SearchEndpoint:      raw.SearchEndpoint,
		ExtractionEndpoints: raw.ExtractionEndpoints,
		PriceEndpoint:       raw.PriceEndpoint,
		Port:                raw.Port,
		APIAccessKey:        raw.APIAccessKey,
		HTTPTimeout:         raw.HTTPTimeout,
		MaxCandidates:       raw.MaxCandidates,
		RecipeTTL:           raw.RecipeTTL,
		WorkerCount:         raw.WorkerCount,
		SchedulerInterval:   raw.SchedulerInterval,
		PatternTablePath:    raw.PatternTablePath,
		UserAgent:           raw.UserAgent,
		Timezone:            raw.Timezone,
		Debug:               raw.Debug,
		Version:             GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
