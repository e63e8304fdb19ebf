// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration.
type Config struct {
	// Market API
	APIKey string
	APIURL string

	// Chat platform
	BotToken  string
	ChannelID string

	// Initial item list, used only when the store holds no list yet.
	Items []string

	// Monitor loop
	CheckInterval     time.Duration
	RequestTimeout    time.Duration
	DiscountThreshold float64

	// Item persistence: dotenv file by default, Postgres when DatabaseURL
	// is set.
	ItemsFile   string
	DatabaseURL string
}

// FromEnv builds a Config from environment variables, applies defaults,
// and validates it.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIKey:      os.Getenv("API_KEY"),
		APIURL:      os.Getenv("API_URL"),
		BotToken:    os.Getenv("BOT_TOKEN"),
		ChannelID:   os.Getenv("CHANNEL_ID"),
		ItemsFile:   os.Getenv("ITEMS_FILE"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Items:       splitItems(os.Getenv("ITEMS")),
	}

	var err error
	if cfg.CheckInterval, err = durationEnv("CHECK_INTERVAL"); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = durationEnv("REQUEST_TIMEOUT"); err != nil {
		return nil, err
	}
	if raw := os.Getenv("DISCOUNT_THRESHOLD"); raw != "" {
		if cfg.DiscountThreshold, err = strconv.ParseFloat(raw, 64); err != nil {
			return nil, fmt.Errorf("DISCOUNT_THRESHOLD: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// durationEnv parses an optional duration variable. Bare integers are
// taken as seconds.
func durationEnv(name string) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

func splitItems(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
