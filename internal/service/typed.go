// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"

	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/internal/domain/port"
	"github.com/reia-project/reia-console/pkg/constants"
	"github.com/reia-project/reia-console/pkg/errors"
)

type typedLoader func(ctx context.Context, spec model.ResourceSpec, client port.ResourceClient) (any, error)

var typedLoaders = map[string]typedLoader{
	constants.ResourceExposure:        loadTyped[model.ExposureRecord],
	constants.ResourceVulnerability:   loadTyped[model.VulnerabilityRecord],
	constants.ResourceLossModel:       loadTyped[model.LossModelRecord],
	constants.ResourceLossConfig:      loadTyped[model.LossConfigRecord],
	constants.ResourceLossCalculation: loadTyped[model.LossCalculationRecord],
}

// HasTypedRecords reports whether resource has its own record type.
func HasTypedRecords(resource string) bool {
	_, ok := typedLoaders[resource]
	return ok
}

// LoadTyped fetches the collection of spec and decodes every record into the
// resource's record type, returned as a slice of that type.
func LoadTyped(ctx context.Context, spec model.ResourceSpec, client port.ResourceClient) (any, error) {
	load, ok := typedLoaders[spec.Name]
	if !ok {
		return nil, errors.NewNotFound("resource " + spec.Name + " has no typed record shape")
	}
	return load(ctx, spec, client)
}

func loadTyped[T model.Keyed](ctx context.Context, spec model.ResourceSpec, client port.ResourceClient) (any, error) {
	view := NewTypedView[T](spec, client)
	if err := view.Load(ctx); err != nil {
		return nil, err
	}

	items := view.Snapshot().Items
	if items == nil {
		items = []T{}
	}
	return items, nil
}
