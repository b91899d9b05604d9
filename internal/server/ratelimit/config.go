package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets unused this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns an enabled configuration with the default endpoint limits.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Analysis calls the classifier twice per request
		{Path: "/api/analysis", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},
		{Path: "/api/resumes/upload", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
	}
}

// NewIPSet builds a lookup set from a list of client IDs, skipping blanks.
func NewIPSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
