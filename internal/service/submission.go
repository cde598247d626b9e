// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/internal/domain/port"
	"github.com/reia-project/reia-console/pkg/errors"
	"github.com/reia-project/reia-console/pkg/log"
)

// ErrClosed is returned by a controller after Close.
var ErrClosed = stderrors.New("submission controller closed")

// State is the lifecycle state of a submission controller
type State int

const (
	// StateIdle means every field holds its default
	StateIdle State = iota
	// StateEditing means at least one field was set and nothing is in flight
	StateEditing
	// StateSubmitting means a request is in flight
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SubmissionController holds the pending values of one upload form and
// drives a single submission at a time against the resource client,
// notifying the sink that owns the displayed collection.
type SubmissionController struct {
	spec   model.ResourceSpec
	client port.ResourceClient
	sink   port.CollectionSink

	lifetime context.Context
	cancel   context.CancelFunc

	mu      sync.Mutex
	state   State
	values  map[string]model.FieldValue
	touched map[string]bool
	err     error
	closed  bool
}

// NewSubmissionController creates a controller for spec. It fails when the
// resource does not accept submissions.
func NewSubmissionController(spec model.ResourceSpec, client port.ResourceClient, sink port.CollectionSink) (*SubmissionController, error) {
	if !spec.Submittable() {
		return nil, errors.NewValidation(fmt.Sprintf("resource %q does not accept submissions", spec.Name))
	}

	lifetime, cancel := context.WithCancel(context.Background())
	c := &SubmissionController{
		spec:     spec,
		client:   client,
		sink:     sink,
		lifetime: lifetime,
		cancel:   cancel,
	}
	c.resetLocked()
	return c, nil
}

// resetLocked puts every field back to its default.
func (c *SubmissionController) resetLocked() {
	c.values = make(map[string]model.FieldValue, len(c.spec.Fields))
	c.touched = make(map[string]bool, len(c.spec.Fields))
	for _, f := range c.spec.Fields {
		if f.Default != "" {
			c.values[f.Name] = model.TextValue(f.Default)
		}
	}
	c.state = StateIdle
}

// SetField stores value under a declared field name.
func (c *SubmissionController) SetField(name string, value model.FieldValue) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.state == StateSubmitting {
		return errors.NewValidation("cannot change fields while a submission is in flight")
	}

	field, ok := c.spec.Field(name)
	if !ok {
		return errors.NewValidation(fmt.Sprintf("resource %q has no field %q (accepted: %s)",
			c.spec.Name, name, strings.Join(c.spec.FieldNames(), ", ")))
	}
	if value.Kind() != field.Kind {
		return errors.NewValidation(fmt.Sprintf("field %q expects a %s value", name, field.Kind))
	}

	c.values[name] = value
	c.touched[name] = true
	c.state = StateEditing
	return nil
}

// ClearField puts a field back to its default. The controller returns to
// idle once no field remains set.
func (c *SubmissionController) ClearField(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.state == StateSubmitting {
		return errors.NewValidation("cannot change fields while a submission is in flight")
	}

	field, ok := c.spec.Field(name)
	if !ok {
		return errors.NewValidation(fmt.Sprintf("resource %q has no field %q", c.spec.Name, name))
	}

	delete(c.values, name)
	delete(c.touched, name)
	if field.Default != "" {
		c.values[name] = model.TextValue(field.Default)
	}
	if len(c.touched) == 0 {
		c.state = StateIdle
	}
	return nil
}

// Submit sends the pending fields. It is only valid while editing; calling it
// while a submission is in flight does nothing. On success the sink receives
// the server response and the fields reset; on failure the sink receives the
// error and the fields are kept for another attempt.
func (c *SubmissionController) Submit(ctx context.Context) error {
	ctx = log.AppendCtx(ctx, slog.String("resource", c.spec.Name))

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		slog.DebugContext(ctx, "submission already in flight, ignoring")
		return nil
	case StateIdle:
		c.mu.Unlock()
		return errors.NewValidation("nothing to submit: no field has been set")
	}
	if missing := c.missingLocked(); len(missing) > 0 {
		c.mu.Unlock()
		return errors.NewValidation("missing required fields: " + strings.Join(missing, ", "))
	}
	fields := c.fieldsLocked()
	c.state = StateSubmitting
	c.err = nil
	c.mu.Unlock()

	c.sink.SetLoading(ctx)

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.lifetime, cancel)
	defer stop()

	slog.InfoContext(ctx, "submitting resource", "endpoint", c.spec.SubmitEndpoint)

	body, err := c.client.SubmitResource(reqCtx, c.spec.SubmitEndpoint, fields)
	if err == nil && c.spec.RefetchAfterSubmit {
		body, err = c.client.FetchCollection(reqCtx, c.spec.CollectionEndpoint)
	}

	if c.lifetime.Err() != nil {
		// closed mid-flight: the outcome is dropped, only loading is cleared
		c.settle(err)
		c.sink.Abandon(ctx)
		return ErrClosed
	}

	if err != nil {
		slog.WarnContext(ctx, "submission failed", "error", err)
		c.settle(err)
		c.sink.Fail(ctx, err)
		return err
	}

	if err := c.sink.Refresh(ctx, body); err != nil {
		slog.WarnContext(ctx, "submission response rejected", "error", err)
		c.settle(err)
		return err
	}

	c.settle(nil)
	slog.InfoContext(ctx, "submission completed")
	return nil
}

// settle leaves the submitting state.
func (c *SubmissionController) settle(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.err = err
		c.state = StateEditing
		return
	}
	c.err = nil
	c.resetLocked()
}

func (c *SubmissionController) missingLocked() []string {
	var missing []string
	for _, f := range c.spec.Fields {
		if !f.Required {
			continue
		}
		v, ok := c.values[f.Name]
		if !ok || (!v.IsFile() && v.Text == "") {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

func (c *SubmissionController) fieldsLocked() model.Fields {
	values := make(map[string]model.FieldValue, len(c.values))
	for k, v := range c.values {
		values[k] = v
	}
	return model.Fields{
		Order:  c.spec.FieldNames(),
		Values: values,
	}
}

// Close cancels any in-flight submission. The sink only has its loading
// flag cleared, never the outcome, and every later call returns ErrClosed.
func (c *SubmissionController) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// State returns the current lifecycle state.
func (c *SubmissionController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error of the last failed submission, if any.
func (c *SubmissionController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Value returns the current value of a field.
func (c *SubmissionController) Value(name string) (model.FieldValue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[name]
	return v, ok
}

// Fields returns a copy of the pending fields.
func (c *SubmissionController) Fields() model.Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldsLocked()
}
