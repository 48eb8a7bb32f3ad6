package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel        slog.Level
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	ValhallaURL     string
	ValhallaTimeout time.Duration
	RouteAlternates int

	RouteTTL           time.Duration
	RoutePruneInterval time.Duration
	DefaultLocale      string
	TileZoomLevel      int

	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	CacheFlushOnStart bool

	// CacheFlushAt is the daily flush time as an offset from local
	// midnight. Zero disables the daily flush.
	CacheFlushAt time.Duration

	RateLimitPerWindow int
	RateLimitWindow    time.Duration
	RateLimitWhitelist []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; variables already set
// in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	valhallaURL := getEnv("VALHALLA_URL", "http://localhost:8002")
	u, err := url.Parse(valhallaURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("VALHALLA_URL must be an absolute URL, got %q", valhallaURL)
	}

	cfg := &Config{
		LogLevel:        getLogLevelEnv("LOG_LEVEL", slog.LevelInfo),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:     getDurationEnv("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getDurationEnv("WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		ValhallaURL:     strings.TrimRight(valhallaURL, "/"),
		ValhallaTimeout: getDurationEnv("VALHALLA_TIMEOUT", 15*time.Second),
		RouteAlternates: getIntEnv("ROUTE_ALTERNATES", 3),

		RouteTTL:           getDurationEnv("ROUTE_TTL", 30*time.Minute),
		RoutePruneInterval: getDurationEnv("ROUTE_PRUNE_INTERVAL", time.Minute),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "en"),
		TileZoomLevel:      getIntEnv("TILE_ZOOM_LEVEL", 14),

		RedisEnabled:  getBoolEnv("REDIS_ENABLED", false),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		CacheTTL:      getDurationEnv("CACHE_TTL", 10*time.Minute),

		CacheFlushOnStart: getBoolEnv("CACHE_FLUSH_ON_START", false),
		CacheFlushAt:      getDurationEnv("CACHE_FLUSH_AT", 0),

		RateLimitPerWindow: getIntEnv("RATE_LIMIT_PER_WINDOW", 120),
		RateLimitWindow:    getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		RateLimitWhitelist: getCSVEnv("RATE_LIMIT_WHITELIST"),
	}

	if cfg.RouteAlternates < 0 {
		cfg.RouteAlternates = 0
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// getDurationEnv falls back to defaultVal for zero or negative values;
// every duration here feeds a timeout, a ticker or a TTL.
func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getLogLevelEnv(key string, defaultVal slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}

	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return defaultVal
	}
}

func getCSVEnv(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}

	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			result = append(result, t)
		}
	}
	return result
}
