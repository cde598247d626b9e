// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package rest

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/reia-project/reia-console/pkg/constants"
)

// Config holds the configuration for the backend API client
type Config struct {
	// BaseURL is the API root every endpoint is resolved against (default: http://localhost:5000/api/v1)
	BaseURL string

	// Timeout is the HTTP client timeout for API requests; zero means none
	Timeout time.Duration

	// UserAgent is sent with every request
	UserAgent string
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:   constants.DefaultBaseURL,
		Timeout:   30 * time.Second,
		UserAgent: constants.DefaultUserAgent,
	}
}

// NewConfig creates a new backend API configuration with the provided parameters
func NewConfig(baseURL, timeout string) (Config, error) {
	config := DefaultConfig()

	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return Config{}, fmt.Errorf("invalid base URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return Config{}, fmt.Errorf("base URL must be http or https, got %q", baseURL)
		}
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}

	if timeout != "" {
		timeoutDuration, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout duration: %w", err)
		}
		config.Timeout = timeoutDuration
	}

	return config, nil
}
