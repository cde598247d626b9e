// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package rest

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/pkg/errors"
	"github.com/reia-project/reia-console/pkg/httpclient"
)

// Client is the backend API client. It implements port.ResourceClient.
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// FetchCollection GETs the collection at endpoint
func (c *Client) FetchCollection(ctx context.Context, endpoint string) (json.RawMessage, error) {
	slog.DebugContext(ctx, "fetching collection", "endpoint", endpoint)

	resp, err := c.httpClient.Request(ctx, http.MethodGet, c.resolve(endpoint), nil, nil)
	return c.decode(ctx, resp, err)
}

// SubmitResource POSTs fields to endpoint as multipart or JSON
func (c *Client) SubmitResource(ctx context.Context, endpoint string, fields model.Fields) (json.RawMessage, error) {
	body, err := encodeFields(fields)
	if err != nil {
		return nil, errors.NewValidation("failed to encode submission", err)
	}

	slog.DebugContext(ctx, "submitting resource",
		"endpoint", endpoint,
		"content_type", body.contentType,
		"fields", len(fields.Values),
	)

	resp, err := c.httpClient.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.resolve(endpoint),
		Headers: map[string]string{"Content-Type": body.contentType},
		Body:    body.build,
	})
	return c.decode(ctx, resp, err)
}

// decode maps transport and status failures onto the error taxonomy and
// checks the body is JSON.
func (c *Client) decode(ctx context.Context, resp *httpclient.Response, err error) (json.RawMessage, error) {
	if err != nil {
		var statusErr *httpclient.StatusError
		if stderrors.As(err, &statusErr) {
			return nil, errors.NewRequestError(statusErr.StatusCode, statusErr.StatusText)
		}
		if ctx.Err() != nil {
			return nil, errors.NewUnexpected("request cancelled", ctx.Err())
		}
		return nil, errors.NewUnexpected("request failed", err)
	}

	if !json.Valid(resp.Body) {
		slog.WarnContext(ctx, "backend returned a non JSON body",
			"status", resp.StatusCode,
			"bytes", len(resp.Body),
		)
		return nil, errors.NewDecodeError("response body is not valid JSON")
	}

	return json.RawMessage(resp.Body), nil
}

// IsReady checks if the backend API is reachable
func (c *Client) IsReady(ctx context.Context) error {
	resp, err := c.httpClient.Request(ctx, http.MethodGet, c.config.BaseURL, nil, nil)
	if resp == nil {
		return errors.NewServiceUnavailable("backend API is not reachable", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return errors.NewServiceUnavailable("backend API is not healthy", fmt.Errorf("status code: %d", resp.StatusCode))
	}

	return nil
}

// resolve joins endpoint onto the base URL unless it is already absolute.
func (c *Client) resolve(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return c.config.BaseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// NewClient creates a new backend API client
func NewClient(config Config) *Client {
	httpConfig := httpclient.DefaultConfig()
	httpConfig.Timeout = config.Timeout
	if config.UserAgent != "" {
		httpConfig.UserAgent = config.UserAgent
	}

	return &Client{
		config:     config,
		httpClient: httpclient.NewClient(httpConfig),
	}
}
