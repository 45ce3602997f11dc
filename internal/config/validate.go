package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be > 0 (got %d)", c.RateLimit.Burst)
	}

	if err := c.PriceFeed.validate(); err != nil {
		return fmt.Errorf("price_feed: %w", err)
	}

	return nil
}

func (p *PriceFeedConfig) validate() error {
	if p.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", p.Timeout)
	}
	if p.RetryMax < 0 {
		return fmt.Errorf("retry_max must be >= 0 (got %d)", p.RetryMax)
	}

	p.SyncSets = ParseSetList(p.SyncSetsRaw)

	return nil
}

// ParseSetList parses a comma-separated list of set ids, trimming
// whitespace and dropping empty entries. An empty string returns nil.
func ParseSetList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var sets []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			sets = append(sets, part)
		}
	}
	return sets
}
