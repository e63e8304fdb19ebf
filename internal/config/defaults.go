package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAPIURL            = "https://open.api.nexon.com/mabinogi/v1"
	DefaultCheckInterval     = 1 * time.Second
	DefaultRequestTimeout    = 10 * time.Second
	DefaultDiscountThreshold = 0.1
	DefaultItemsFile         = ".env"
)

func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.CheckInterval == 0 {
		c.CheckInterval = DefaultCheckInterval
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.DiscountThreshold == 0 {
		c.DiscountThreshold = DefaultDiscountThreshold
	}
	if c.ItemsFile == "" {
		c.ItemsFile = DefaultItemsFile
	}
}
