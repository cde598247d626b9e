// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package constants

// RequestIDHeader is the header name for the request ID
const RequestIDHeader = "X-REQUEST-ID"

const (
	// ContentTypeJSON is sent with JSON bodies and expected back from the backend
	ContentTypeJSON = "application/json"

	// DefaultBaseURL is where the loss-modeling backend API is mounted by default
	DefaultBaseURL = "http://localhost:5000/api/v1"

	// DefaultUserAgent identifies the console to the backend
	DefaultUserAgent = "reia-console/1.0"
)
