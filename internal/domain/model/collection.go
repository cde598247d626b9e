// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package model

import "encoding/json"

// CollectionResult is what a collection view displays
type CollectionResult[T any] struct {
	Items   []T
	Loading bool
	// Err is the last failure; nil after a successful load
	Err error
}

// Record is an untyped backend record together with its identifying key
type Record struct {
	Key string
	Raw json.RawMessage
}

// MarshalJSON emits the record exactly as the backend sent it.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}

// Keyed is implemented by records that expose their identifying key
type Keyed interface {
	RecordKey() string
}

// RecordKey returns the record key.
func (r Record) RecordKey() string {
	return r.Key
}
