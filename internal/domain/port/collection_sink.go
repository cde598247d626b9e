// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"encoding/json"
)

// CollectionSink is the owner of a displayed collection. A submission
// controller notifies it around each round-trip.
type CollectionSink interface {
	// SetLoading marks the collection as being refreshed
	SetLoading(ctx context.Context)

	// Abandon clears loading after a round-trip whose outcome was dropped;
	// items and error stay as they were
	Abandon(ctx context.Context)

	// Fail clears loading and records err; items stay as they were
	Fail(ctx context.Context, err error)

	// Refresh clears loading and replaces the collection with the
	// authoritative server response
	Refresh(ctx context.Context, body json.RawMessage) error
}
