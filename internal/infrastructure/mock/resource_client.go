// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/pkg/errors"
)

// Call is one request received by MockResourceClient
type Call struct {
	Method   string
	Endpoint string
	Fields   model.Fields
}

// MockResourceClient is an in-memory port.ResourceClient for testing.
// Responses and failures are configured per endpoint.
type MockResourceClient struct {
	mu          sync.Mutex
	collections map[string]json.RawMessage
	submissions map[string]json.RawMessage
	failures    map[string]error
	calls       []Call

	gate    chan struct{}
	started chan struct{}
}

// NewMockResourceClient creates a client with no configured responses;
// unknown endpoints answer with an empty list.
func NewMockResourceClient() *MockResourceClient {
	return &MockResourceClient{
		collections: make(map[string]json.RawMessage),
		submissions: make(map[string]json.RawMessage),
		failures:    make(map[string]error),
	}
}

// SetCollection sets the body returned by FetchCollection for endpoint.
func (m *MockResourceClient) SetCollection(endpoint, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[endpoint] = json.RawMessage(body)
}

// SetSubmitResponse sets the body returned by SubmitResource for endpoint.
func (m *MockResourceClient) SetSubmitResponse(endpoint, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[endpoint] = json.RawMessage(body)
}

// FailWith makes every call against endpoint return err; nil clears it.
func (m *MockResourceClient) FailWith(endpoint string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, endpoint)
		return
	}
	m.failures[endpoint] = err
}

// Block holds every SubmitResource call until release is called. started
// receives one value per call that reached the client.
func (m *MockResourceClient) Block() (started <-chan struct{}, release func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gate = make(chan struct{})
	m.started = make(chan struct{}, 16)
	gate := m.gate

	var once sync.Once
	return m.started, func() { once.Do(func() { close(gate) }) }
}

// Calls returns the requests received so far.
func (m *MockResourceClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// FetchCollection implements port.ResourceClient.
func (m *MockResourceClient) FetchCollection(ctx context.Context, endpoint string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Method: "GET", Endpoint: endpoint})
	slog.DebugContext(ctx, "mock fetch", "endpoint", endpoint)

	if err, ok := m.failures[endpoint]; ok {
		return nil, err
	}
	if body, ok := m.collections[endpoint]; ok {
		return body, nil
	}
	return json.RawMessage(`[]`), nil
}

// SubmitResource implements port.ResourceClient.
func (m *MockResourceClient) SubmitResource(ctx context.Context, endpoint string, fields model.Fields) (json.RawMessage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Method: "POST", Endpoint: endpoint, Fields: fields})
	gate, started := m.gate, m.started
	m.mu.Unlock()

	slog.DebugContext(ctx, "mock submit", "endpoint", endpoint)

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, errors.NewUnexpected("request cancelled", ctx.Err())
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.failures[endpoint]; ok {
		return nil, err
	}
	if body, ok := m.submissions[endpoint]; ok {
		return body, nil
	}
	return json.RawMessage(`[]`), nil
}

// IsReady implements port.ResourceClient.
func (m *MockResourceClient) IsReady(ctx context.Context) error {
	return nil
}
