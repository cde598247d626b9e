// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reia-project/reia-console/internal/infrastructure/mock"
)

// seedBackend preloads records from a YAML or JSON file shaped as
// resource name -> list of records.
func seedBackend(backend *mock.Backend, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed map[string][]map[string]any
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for resource, records := range seed {
		if !backend.Serves(resource) {
			return fmt.Errorf("seed file references unknown resource %q", resource)
		}
		backend.Seed(resource, records...)
		slog.Info("seeded resource", "resource", resource, "records", len(records))
	}
	return nil
}
