// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/reia-project/reia-console/internal/catalog"
	"github.com/reia-project/reia-console/internal/infrastructure/rest"
)

// client builds the backend API client from the resolved configuration.
func (o *options) client() (*rest.Client, error) {
	config, err := rest.NewConfig(o.v.GetString("url"), o.v.GetString("timeout"))
	if err != nil {
		return nil, err
	}

	slog.Debug("backend API client configured",
		"base_url", config.BaseURL,
		"timeout", config.Timeout,
	)
	return rest.NewClient(config), nil
}

// catalog returns the built-in catalog, or the one loaded from --catalog.
func (o *options) catalog() (*catalog.Catalog, error) {
	path := o.v.GetString("catalog")
	if path == "" {
		return catalog.Default(), nil
	}

	c, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("resource catalog loaded", "path", path, "resources", c.Names())
	return c, nil
}
