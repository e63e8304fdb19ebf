package config

import (
	"errors"
	"fmt"
)

// Validate checks that required fields are set and values are sane.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("API_KEY is required")
	}
	if c.BotToken == "" {
		return errors.New("BOT_TOKEN is required")
	}
	if c.ChannelID == "" {
		return errors.New("CHANNEL_ID is required")
	}
	if c.CheckInterval < 0 {
		return fmt.Errorf("CHECK_INTERVAL (%s) cannot be negative", c.CheckInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT (%s) cannot be negative", c.RequestTimeout)
	}
	if c.DiscountThreshold <= 0 || c.DiscountThreshold >= 1 {
		return fmt.Errorf("DISCOUNT_THRESHOLD (%g) must be between 0 and 1", c.DiscountThreshold)
	}
	return nil
}
