package ratelimit

import (
	"strings"
)

// unlimitedPaths are never rate limited.
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/api/jobs/" matches "/api/jobs/{id}").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && unlimitedPaths[path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && strings.EqualFold(config.Method, method) {
			return config
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if strings.EqualFold(config.Method, method) && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	return nil
}
