// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reia-project/reia-console/pkg/constants"
	"github.com/reia-project/reia-console/pkg/log"
)

// Client represents a generic HTTP client with optional retry logic
type Client struct {
	config     Config
	httpClient *http.Client
}

// Request represents an HTTP request configuration
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body is called once per attempt so that a retried request sends the full payload again.
	Body func() (io.Reader, error)
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte
}

// StatusError is returned for any response outside the 2xx range
type StatusError struct {
	StatusCode int
	StatusText string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, e.StatusText)
}

// Do executes an HTTP request, retrying when configured to
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	var (
		response *Response
		lastErr  error
	)

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.config.RetryDelay
			if c.config.RetryBackoff {
				delay = time.Duration(int64(delay) * int64(1<<(attempt-1)))
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		response, lastErr = c.doRequest(ctx, req)
		if lastErr == nil {
			return response, nil
		}

		if !c.shouldRetry(ctx, lastErr) {
			break
		}
	}

	slog.DebugContext(ctx, "request failed",
		"method", req.Method,
		"url", req.URL,
		"error", lastErr,
	)

	return response, lastErr
}

// doRequest performs a single HTTP request
func (c *Client) doRequest(ctx context.Context, reqConfig Request) (*Response, error) {
	var body io.Reader
	if reqConfig.Body != nil {
		b, err := reqConfig.Body()
		if err != nil {
			return nil, fmt.Errorf("failed to build request body: %w", err)
		}
		body = b
	}

	httpReq, err := http.NewRequestWithContext(ctx, reqConfig.Method, reqConfig.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	for key, value := range reqConfig.Headers {
		httpReq.Header.Set(key, value)
	}

	requestID := httpReq.Header.Get(constants.RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
		httpReq.Header.Set(constants.RequestIDHeader, requestID)
	}
	ctx = log.AppendCtx(ctx, slog.String(constants.RequestIDHeader, requestID))

	slog.DebugContext(ctx, "sending request",
		"method", reqConfig.Method,
		"url", reqConfig.URL,
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       respBody,
	}

	slog.DebugContext(ctx, "received response",
		"status", resp.StatusCode,
		"bytes", len(respBody),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return response, &StatusError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Body:       respBody,
		}
	}

	return response, nil
}

// statusText returns the reason phrase the server sent, falling back to the
// standard text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// shouldRetry determines if a request should be retried based on the error
func (c *Client) shouldRetry(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError || statusErr.StatusCode == http.StatusTooManyRequests
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// Request performs an HTTP request with the specified verb and a static body
func (c *Client) Request(ctx context.Context, verb, url string, body []byte, headers map[string]string) (*Response, error) {
	req := Request{
		Method:  verb,
		URL:     url,
		Headers: headers,
	}
	if body != nil {
		req.Body = func() (io.Reader, error) {
			return bytes.NewReader(body), nil
		}
	}
	return c.Do(ctx, req)
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}
