// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/internal/domain/port"
	"github.com/reia-project/reia-console/pkg/errors"
	"github.com/reia-project/reia-console/pkg/log"
)

// CollectionView owns the displayed state of one resource collection. It
// implements port.CollectionSink so submission controllers can push fresh
// data into it.
type CollectionView[T any] struct {
	spec       model.ResourceSpec
	client     port.ResourceClient
	decodeItem func(json.RawMessage) (T, error)
	keyOf      func(T) string

	mu          sync.Mutex
	state       model.CollectionResult[T]
	subscribers []func(model.CollectionResult[T])
}

// NewCollectionView creates a view decoding each record with decodeItem and
// identifying records with keyOf.
func NewCollectionView[T any](spec model.ResourceSpec, client port.ResourceClient,
	decodeItem func(json.RawMessage) (T, error), keyOf func(T) string) *CollectionView[T] {
	return &CollectionView[T]{
		spec:       spec,
		client:     client,
		decodeItem: decodeItem,
		keyOf:      keyOf,
	}
}

// NewRecordView creates a view over untyped records keyed by the spec's key field.
func NewRecordView(spec model.ResourceSpec, client port.ResourceClient) *CollectionView[model.Record] {
	decode := func(raw json.RawMessage) (model.Record, error) {
		return model.Record{
			Key: gjson.GetBytes(raw, spec.KeyField).String(),
			Raw: append(json.RawMessage(nil), raw...),
		}, nil
	}
	return NewCollectionView(spec, client, decode, model.Record.RecordKey)
}

// NewTypedView creates a view decoding records into T.
func NewTypedView[T model.Keyed](spec model.ResourceSpec, client port.ResourceClient) *CollectionView[T] {
	decode := func(raw json.RawMessage) (T, error) {
		var item T
		err := json.Unmarshal(raw, &item)
		return item, err
	}
	return NewCollectionView(spec, client, decode, func(item T) string { return item.RecordKey() })
}

// Spec returns the resource spec the view displays.
func (v *CollectionView[T]) Spec() model.ResourceSpec {
	return v.spec
}

// Subscribe registers fn to receive a snapshot after every state change.
func (v *CollectionView[T]) Subscribe(fn func(model.CollectionResult[T])) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.subscribers = append(v.subscribers, fn)
}

// Snapshot returns a copy of the current state.
func (v *CollectionView[T]) Snapshot() model.CollectionResult[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *CollectionView[T]) snapshotLocked() model.CollectionResult[T] {
	res := v.state
	if v.state.Items != nil {
		res.Items = append([]T(nil), v.state.Items...)
	}
	return res
}

// update applies fn under the lock and notifies subscribers with the result.
func (v *CollectionView[T]) update(fn func(state *model.CollectionResult[T])) {
	v.mu.Lock()
	fn(&v.state)
	snap := v.snapshotLocked()
	subscribers := slices.Clone(v.subscribers)
	v.mu.Unlock()

	for _, s := range subscribers {
		s(snap)
	}
}

// Load fetches the collection and replaces the displayed items. On failure the
// previous items are kept and the error is recorded.
func (v *CollectionView[T]) Load(ctx context.Context) error {
	ctx = log.AppendCtx(ctx, slog.String("resource", v.spec.Name))

	v.SetLoading(ctx)

	body, err := v.client.FetchCollection(ctx, v.spec.CollectionEndpoint)
	if err != nil {
		slog.WarnContext(ctx, "failed to load collection", "error", err)
		v.Fail(ctx, err)
		return err
	}

	return v.Refresh(ctx, body)
}

// Poll loads the collection now and then every interval until ctx is done.
// Failed loads are recorded on the view and do not stop polling.
func (v *CollectionView[T]) Poll(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		_ = v.Load(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SetLoading implements port.CollectionSink.
func (v *CollectionView[T]) SetLoading(ctx context.Context) {
	v.update(func(state *model.CollectionResult[T]) {
		state.Loading = true
	})
}

// Abandon implements port.CollectionSink.
func (v *CollectionView[T]) Abandon(ctx context.Context) {
	v.update(func(state *model.CollectionResult[T]) {
		state.Loading = false
	})
}

// Fail implements port.CollectionSink.
func (v *CollectionView[T]) Fail(ctx context.Context, err error) {
	v.update(func(state *model.CollectionResult[T]) {
		state.Loading = false
		state.Err = err
	})
}

// Refresh implements port.CollectionSink. An array body replaces the
// collection; a single object is upserted by key.
func (v *CollectionView[T]) Refresh(ctx context.Context, body json.RawMessage) error {
	parsed := gjson.ParseBytes(body)

	switch {
	case parsed.IsArray():
		items, err := v.decodeList(body)
		if err != nil {
			v.Fail(ctx, err)
			return err
		}
		v.update(func(state *model.CollectionResult[T]) {
			state.Items = items
			state.Loading = false
			state.Err = nil
		})

	case parsed.IsObject():
		item, err := v.decodeItem(body)
		if err != nil {
			err = errors.NewDecodeError("failed to decode "+v.spec.Name+" record", err)
			v.Fail(ctx, err)
			return err
		}
		v.update(func(state *model.CollectionResult[T]) {
			state.Items = v.upsert(state.Items, item)
			state.Loading = false
			state.Err = nil
		})

	default:
		err := errors.NewDecodeError(v.spec.Name + " response is neither a list nor a record")
		v.Fail(ctx, err)
		return err
	}

	slog.DebugContext(ctx, "collection refreshed", "resource", v.spec.Name)
	return nil
}

func (v *CollectionView[T]) decodeList(body json.RawMessage) ([]T, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, errors.NewDecodeError("failed to decode "+v.spec.Name+" collection", err)
	}

	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		item, err := v.decodeItem(raw)
		if err != nil {
			return nil, errors.NewDecodeError(fmt.Sprintf("failed to decode %s record at index %d", v.spec.Name, i), err)
		}
		items = append(items, item)
	}
	return items, nil
}

// upsert replaces the item sharing a key with item or appends it.
func (v *CollectionView[T]) upsert(items []T, item T) []T {
	key := v.keyOf(item)
	if key != "" {
		for i := range items {
			if v.keyOf(items[i]) == key {
				out := append([]T(nil), items...)
				out[i] = item
				return out
			}
		}
	}
	return append(append([]T(nil), items...), item)
}

var _ port.CollectionSink = (*CollectionView[model.Record])(nil)
