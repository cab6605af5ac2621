package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Upstream fetch
	YouTubeBaseURL string
	FetchTimeout   time.Duration
	UserAgent      string

	// Link scraping
	MaxScrapeLinks int

	// Clip suggestion defaults
	MinClipSec  float64
	MaxClipSec  float64
	DefaultTopK int

	// Fetch latency stats
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8000"),

		YouTubeBaseURL: envOr("YOUTUBE_BASE_URL", "https://www.youtube.com"),
		FetchTimeout:   envDuration("FETCH_TIMEOUT", 10*time.Second),
		UserAgent:      envOr("USER_AGENT", "Mozilla/5.0 (compatible; ClipSuggester/1.0)"),

		MaxScrapeLinks: envInt("MAX_SCRAPE_LINKS", 50),

		MinClipSec:  envFloat64("MIN_CLIP_SEC", 20),
		MaxClipSec:  envFloat64("MAX_CLIP_SEC", 60),
		DefaultTopK: envInt("DEFAULT_TOP_K", 3),

		StatsWindow: envDuration("STATS_WINDOW", time.Hour),
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.MaxScrapeLinks <= 0 {
		cfg.MaxScrapeLinks = 50
	}
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = 3
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.MinClipSec <= 0 {
		return fmt.Errorf("MIN_CLIP_SEC must be > 0")
	}
	if c.MaxClipSec < c.MinClipSec {
		return fmt.Errorf("MAX_CLIP_SEC must be >= MIN_CLIP_SEC")
	}
	if c.YouTubeBaseURL == "" {
		return fmt.Errorf("YOUTUBE_BASE_URL must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat64(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
