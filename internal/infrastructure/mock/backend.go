// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	goahttp "goa.design/goa/v3/http"

	"github.com/reia-project/reia-console/internal/catalog"
	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/pkg/constants"
)

const maxUploadMemory = 32 << 20

// Backend is an in-memory stand-in for the loss-modeling API. It serves every
// catalog resource: GET lists the stored records, POST stores one record built
// from the submitted fields and answers with the refreshed list.
type Backend struct {
	catalog *catalog.Catalog

	mu       sync.Mutex
	records  map[string][]map[string]any
	nextID   int
	failNext int
	now      func() time.Time
}

// NewBackend creates an empty backend for the resources of c.
func NewBackend(c *catalog.Catalog) *Backend {
	b := &Backend{
		catalog: c,
		records: make(map[string][]map[string]any),
		nextID:  1,
		now:     time.Now,
	}
	for _, name := range c.Names() {
		b.records[name] = []map[string]any{}
	}
	return b
}

// Seed stores records for a resource, assigning ids where missing.
func (b *Backend) Seed(resource string, records ...map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range records {
		b.storeLocked(resource, r)
	}
}

// FailNext makes the next request answer with status.
func (b *Backend) FailNext(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = status
}

// Serves reports whether resource is part of the backend's catalog.
func (b *Backend) Serves(resource string) bool {
	_, err := b.catalog.Lookup(resource)
	return err == nil
}

// Records returns a copy of the stored records of a resource.
func (b *Backend) Records(resource string) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	records := make([]map[string]any, len(b.records[resource]))
	copy(records, b.records[resource])
	return records
}

// Mount registers the collection and submission endpoints under prefix.
func (b *Backend) Mount(mux goahttp.Muxer, prefix string) {
	prefix = strings.TrimRight(prefix, "/")
	for _, spec := range b.catalog.Resources() {
		mux.Handle(http.MethodGet, prefix+spec.CollectionEndpoint, b.list(spec))
		if spec.Submittable() {
			mux.Handle(http.MethodPost, prefix+spec.SubmitEndpoint, b.submit(spec))
		}
		slog.Debug("mock endpoint mounted",
			"resource", spec.Name,
			"collection", prefix+spec.CollectionEndpoint,
			"submit", prefix+spec.SubmitEndpoint,
		)
	}
}

// NewHandler returns the backend mounted on a fresh goa muxer.
func (b *Backend) NewHandler(prefix string) http.Handler {
	mux := goahttp.NewMuxer()
	b.Mount(mux, prefix)
	return mux
}

func (b *Backend) list(spec model.ResourceSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if b.injectFailure(w, r) {
			return
		}
		b.writeJSON(w, r, http.StatusOK, b.Records(spec.Name))
	}
}

func (b *Backend) submit(spec model.ResourceSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if b.injectFailure(w, r) {
			return
		}

		record, err := readFields(r, spec)
		if err != nil {
			slog.WarnContext(r.Context(), "rejected submission", "resource", spec.Name, "error", err)
			b.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		b.mu.Lock()
		if spec.RefetchAfterSubmit {
			record["timestamp_starttime"] = b.now().UTC().Format(time.RFC3339)
		}
		stored := b.storeLocked(spec.Name, record)
		b.mu.Unlock()

		slog.InfoContext(r.Context(), "stored record", "resource", spec.Name, constants.DefaultKeyField, stored[constants.DefaultKeyField])

		if spec.RefetchAfterSubmit {
			b.writeJSON(w, r, http.StatusOK, stored)
			return
		}
		b.writeJSON(w, r, http.StatusOK, b.Records(spec.Name))
	}
}

func (b *Backend) storeLocked(resource string, record map[string]any) map[string]any {
	if _, ok := record[constants.DefaultKeyField]; !ok {
		record[constants.DefaultKeyField] = b.nextID
		b.nextID++
	}
	b.records[resource] = append(b.records[resource], record)
	return record
}

func (b *Backend) injectFailure(w http.ResponseWriter, r *http.Request) bool {
	b.mu.Lock()
	status := b.failNext
	b.failNext = 0
	b.mu.Unlock()

	if status == 0 {
		return false
	}
	b.writeJSON(w, r, status, map[string]string{"error": http.StatusText(status)})
	return true
}

func (b *Backend) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	enc := goahttp.ResponseEncoder(r.Context(), w)
	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

// readFields parses a multipart or JSON submission into a record, accepting
// only the declared fields.
func readFields(r *http.Request, spec model.ResourceSpec) (map[string]any, error) {
	record := make(map[string]any, len(spec.Fields))

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, fmt.Errorf("invalid multipart body: %w", err)
		}
		for name := range r.MultipartForm.Value {
			if _, ok := spec.Field(name); !ok {
				return nil, fmt.Errorf("unexpected field %q", name)
			}
		}
		for name := range r.MultipartForm.File {
			if _, ok := spec.Field(name); !ok {
				return nil, fmt.Errorf("unexpected field %q", name)
			}
		}
		for _, f := range spec.Fields {
			if f.Kind == model.FieldKindFile {
				if headers := r.MultipartForm.File[f.Name]; len(headers) > 0 {
					record[f.Name] = headers[0].Filename
					record[f.Name+"_size"] = headers[0].Size
				}
				continue
			}
			if values := r.MultipartForm.Value[f.Name]; len(values) > 0 {
				record[f.Name] = values[0]
			}
		}
	} else {
		var body map[string]any
		if err := goahttp.RequestDecoder(r).Decode(&body); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		for name, value := range body {
			f, ok := spec.Field(name)
			if !ok {
				return nil, fmt.Errorf("unexpected field %q", name)
			}
			if f.Kind == model.FieldKindFile {
				return nil, fmt.Errorf("field %q must be uploaded as a file", name)
			}
			record[name] = value
		}
	}

	for _, f := range spec.Fields {
		if _, ok := record[f.Name]; f.Required && !ok {
			return nil, fmt.Errorf("missing field %q", f.Name)
		}
	}
	return record, nil
}
