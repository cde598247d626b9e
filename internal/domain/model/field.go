// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// FileHandle is a file selected for upload. Open may be called once per
// submission attempt, so a failed upload can be resent without reselecting.
type FileHandle struct {
	// Name is the file name sent in the multipart part
	Name string
	// Open returns a fresh reader over the file content
	Open func() (io.ReadCloser, error)
}

// FileFromPath returns a handle reading the file at path on every Open.
func FileFromPath(path string) *FileHandle {
	return &FileHandle{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// FileFromBytes returns a handle over in-memory content.
func FileFromBytes(name string, content []byte) *FileHandle {
	return &FileHandle{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

// FieldValue is the current value of a form field: either text or a file.
type FieldValue struct {
	Text string
	File *FileHandle
}

// TextValue wraps a scalar field value.
func TextValue(s string) FieldValue {
	return FieldValue{Text: s}
}

// FileValue wraps a file field value.
func FileValue(f *FileHandle) FieldValue {
	return FieldValue{File: f}
}

// IsFile reports whether the value carries a file handle.
func (v FieldValue) IsFile() bool {
	return v.File != nil
}

// Kind returns the field kind the value satisfies.
func (v FieldValue) Kind() FieldKind {
	if v.IsFile() {
		return FieldKindFile
	}
	return FieldKindText
}

// Fields is an ordered set of field values keyed by declared field name.
// Order follows the resource's field declaration, not insertion.
type Fields struct {
	Order  []string
	Values map[string]FieldValue
}

// HasFile reports whether any field carries a file handle.
func (f Fields) HasFile() bool {
	for _, v := range f.Values {
		if v.IsFile() {
			return true
		}
	}
	return false
}

// Each calls fn for every present field in declaration order.
func (f Fields) Each(fn func(name string, value FieldValue) error) error {
	for _, name := range f.Order {
		v, ok := f.Values[name]
		if !ok {
			continue
		}
		if err := fn(name, v); err != nil {
			return err
		}
	}
	return nil
}
