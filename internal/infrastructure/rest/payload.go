// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package rest

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/pkg/constants"
)

// payload is an encoded request body. build is called once per attempt.
type payload struct {
	contentType string
	build       func() (io.Reader, error)
}

// encodeFields picks multipart when any field is a file, JSON otherwise.
func encodeFields(fields model.Fields) (payload, error) {
	if fields.HasFile() {
		return encodeMultipart(fields), nil
	}
	return encodeJSON(fields)
}

// encodeJSON writes the fields as a flat JSON object, keys in declared order.
func encodeJSON(fields model.Fields) (payload, error) {
	body := []byte(`{}`)
	err := fields.Each(func(name string, value model.FieldValue) error {
		var err error
		body, err = sjson.SetBytes(body, escapePath(name), value.Text)
		return err
	})
	if err != nil {
		return payload{}, fmt.Errorf("failed to encode JSON body: %w", err)
	}

	return payload{
		contentType: constants.ContentTypeJSON,
		build: func() (io.Reader, error) {
			return bytes.NewReader(body), nil
		},
	}, nil
}

// encodeMultipart writes one part per field. The boundary is fixed up front so
// the content type stays valid across attempts.
func encodeMultipart(fields model.Fields) payload {
	probe := multipart.NewWriter(io.Discard)
	boundary := probe.Boundary()

	return payload{
		contentType: probe.FormDataContentType(),
		build: func() (io.Reader, error) {
			var buf bytes.Buffer
			w := multipart.NewWriter(&buf)
			if err := w.SetBoundary(boundary); err != nil {
				return nil, err
			}

			err := fields.Each(func(name string, value model.FieldValue) error {
				if !value.IsFile() {
					return w.WriteField(name, value.Text)
				}
				return writeFilePart(w, name, value.File)
			})
			if err != nil {
				return nil, fmt.Errorf("failed to encode multipart body: %w", err)
			}

			if err := w.Close(); err != nil {
				return nil, err
			}
			return &buf, nil
		},
	}
}

func writeFilePart(w *multipart.Writer, name string, file *model.FileHandle) error {
	r, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file for field %s: %w", name, err)
	}
	defer r.Close()

	part, err := w.CreateFormFile(name, file.Name)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`, ":", `\:`)

// escapePath turns a field name into a literal sjson key.
func escapePath(name string) string {
	return pathEscaper.Replace(name)
}
