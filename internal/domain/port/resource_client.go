// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"encoding/json"

	"github.com/reia-project/reia-console/internal/domain/model"
)

// ResourceClient defines the network boundary to the loss-modeling backend.
// Implementations return the response body verbatim as JSON; non-2xx
// statuses surface as errors.RequestError and malformed bodies as
// errors.DecodeError.
type ResourceClient interface {
	// FetchCollection issues a GET against endpoint
	FetchCollection(ctx context.Context, endpoint string) (json.RawMessage, error)

	// SubmitResource issues a POST against endpoint, encoding fields as
	// multipart when any of them is a file and as a JSON object otherwise
	SubmitResource(ctx context.Context, endpoint string, fields model.Fields) (json.RawMessage, error)

	// IsReady checks if the backend is reachable
	IsReady(ctx context.Context) error
}
