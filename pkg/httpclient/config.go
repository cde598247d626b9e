// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"time"

	"github.com/reia-project/reia-console/pkg/constants"
)

// Config holds the configuration for the HTTP client
type Config struct {
	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests.
	// Zero sends every request exactly once.
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration

	// RetryBackoff enables exponential backoff for retries
	RetryBackoff bool

	// UserAgent is sent with every request
	UserAgent string
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		MaxRetries:   0,
		RetryDelay:   1 * time.Second,
		RetryBackoff: true,
		UserAgent:    constants.DefaultUserAgent,
	}
}
