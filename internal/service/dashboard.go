// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/reia-project/reia-console/internal/catalog"
	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/internal/domain/port"
	"github.com/reia-project/reia-console/pkg/errors"
)

// Dashboard is the set of collection views shown together, one per catalog
// resource.
type Dashboard struct {
	client port.ResourceClient
	views  []*CollectionView[model.Record]
	byName map[string]*CollectionView[model.Record]
}

// NewDashboard creates a record view for every resource in the catalog.
func NewDashboard(c *catalog.Catalog, client port.ResourceClient) *Dashboard {
	d := &Dashboard{
		client: client,
		byName: make(map[string]*CollectionView[model.Record]),
	}
	for _, spec := range c.Resources() {
		view := NewRecordView(spec, client)
		d.views = append(d.views, view)
		d.byName[spec.Name] = view
	}
	return d
}

// LoadAll fetches every collection concurrently. Failures stay on their own
// view; the number of failed loads is returned.
func (d *Dashboard) LoadAll(ctx context.Context) int {
	var g errgroup.Group
	failed := make([]bool, len(d.views))

	for i, view := range d.views {
		g.Go(func() error {
			if err := view.Load(ctx); err != nil {
				failed[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	count := 0
	for _, f := range failed {
		if f {
			count++
		}
	}
	slog.DebugContext(ctx, "dashboard loaded", "views", len(d.views), "failed", count)
	return count
}

// Views returns the views in catalog order.
func (d *Dashboard) Views() []*CollectionView[model.Record] {
	return append([]*CollectionView[model.Record](nil), d.views...)
}

// View returns the view for a resource.
func (d *Dashboard) View(name string) (*CollectionView[model.Record], bool) {
	v, ok := d.byName[name]
	return v, ok
}

// Controller creates a submission controller feeding the named view.
func (d *Dashboard) Controller(name string) (*SubmissionController, error) {
	view, ok := d.byName[name]
	if !ok {
		return nil, errNotInDashboard(name)
	}
	return NewSubmissionController(view.Spec(), d.client, view)
}

func errNotInDashboard(name string) error {
	return errors.NewNotFound("resource " + name + " is not part of the dashboard")
}
