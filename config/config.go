package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Catalog configuration
	BaseURL   string
	PageLimit int

	// HTTP API configuration
	HTTPAddr string

	// Cache configuration
	CacheBackend string
	RedisAddr    string
	RedisDB      int
	MemcacheAddr string
	CacheTTL     time.Duration

	// Storage configuration
	StorageBackend string
	DataFile       string
	SQLitePath     string
	PostgresDSN    string

	// Notifier configuration
	NotifyBackend      string
	NotifyStream       string
	NotifyStreamMaxLen int64

	// Fetch configuration
	FetchTimeout     time.Duration
	FetchMaxAttempts int
	FetchBackoff     time.Duration

	// Selectors for the catalog markup
	CardSelector  string
	TitleSelector string
	PriceSelector string
	ImageSelector string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	pageLimit, _ := strconv.Atoi(getEnv("PAGE_LIMIT", "5"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL, _ := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "3600"))
	streamMaxLen, _ := strconv.ParseInt(getEnv("NOTIFY_STREAM_MAXLEN", "1000"), 10, 64)
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "10"))
	fetchAttempts, _ := strconv.Atoi(getEnv("FETCH_MAX_ATTEMPTS", "3"))
	fetchBackoff, _ := strconv.Atoi(getEnv("FETCH_BACKOFF_SECONDS", "1"))

	return &Config{
		BaseURL:            getEnv("BASE_URL", "https://dentalstall.com/shop/"),
		PageLimit:          pageLimit,
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CacheBackend:       getEnv("CACHE_BACKEND", "redis"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            redisDB,
		MemcacheAddr:       getEnv("MEMCACHE_ADDR", "localhost:11211"),
		CacheTTL:           time.Duration(cacheTTL) * time.Second,
		StorageBackend:     getEnv("STORAGE_BACKEND", "jsonfile"),
		DataFile:           getEnv("DATA_FILE", "data/products.json"),
		SQLitePath:         getEnv("SQLITE_PATH", "data/products.db"),
		PostgresDSN:        getEnv("POSTGRES_DSN", ""),
		NotifyBackend:      getEnv("NOTIFY_BACKEND", "log"),
		NotifyStream:       getEnv("NOTIFY_STREAM", "scraper_runs"),
		NotifyStreamMaxLen: streamMaxLen,
		FetchTimeout:       time.Duration(fetchTimeout) * time.Second,
		FetchMaxAttempts:   fetchAttempts,
		FetchBackoff:       time.Duration(fetchBackoff) * time.Second,
		CardSelector:       getEnv("SELECTOR_CARD", ".product-card"),
		TitleSelector:      getEnv("SELECTOR_TITLE", ".product-title"),
		PriceSelector:      getEnv("SELECTOR_PRICE", ".product-price"),
		ImageSelector:      getEnv("SELECTOR_IMAGE", ".product-image"),
		Environment:        getEnv("SCRAPER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BASE_URL %q", c.BaseURL)
	}
	if c.PageLimit < 1 {
		return fmt.Errorf("PAGE_LIMIT must be at least 1, got %d", c.PageLimit)
	}
	if c.FetchMaxAttempts < 1 {
		return fmt.Errorf("FETCH_MAX_ATTEMPTS must be at least 1, got %d", c.FetchMaxAttempts)
	}
	if c.FetchBackoff <= 0 {
		return fmt.Errorf("FETCH_BACKOFF_SECONDS must be positive, got %v", c.FetchBackoff)
	}
	switch c.CacheBackend {
	case "redis", "memcache":
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	switch c.StorageBackend {
	case "jsonfile", "sqlite":
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORAGE_BACKEND is postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.NotifyBackend {
	case "log", "redis":
	default:
		return fmt.Errorf("unknown NOTIFY_BACKEND %q", c.NotifyBackend)
	}
	if c.CardSelector == "" || c.TitleSelector == "" || c.PriceSelector == "" || c.ImageSelector == "" {
		return fmt.Errorf("catalog selectors must not be empty")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
