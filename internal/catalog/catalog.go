// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

// Package catalog holds the mapping from resource names to backend endpoints
// and submission fields. The mapping is configuration: a YAML file may
// override any built-in resource or add new ones.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/pkg/constants"
	"github.com/reia-project/reia-console/pkg/errors"
)

// Catalog is an ordered, read-only set of resource specs
type Catalog struct {
	order     []string
	resources map[string]model.ResourceSpec
}

type file struct {
	Resources []model.ResourceSpec `yaml:"resources"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultResources())
	if err != nil {
		// built-in resources are static and covered by tests
		panic(err)
	}
	return c
}

// New builds a catalog from specs, validating each one.
func New(specs []model.ResourceSpec) (*Catalog, error) {
	c := &Catalog{
		resources: make(map[string]model.ResourceSpec, len(specs)),
	}
	for _, spec := range specs {
		if err := c.put(spec); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load returns the built-in catalog with the resources of the YAML file at
// path applied on top. A resource with a known name replaces the built-in one.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	return c.Merge(data)
}

// Merge returns a copy of the catalog with the YAML document applied.
func (c *Catalog) Merge(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewValidation("invalid catalog file", err)
	}

	merged := &Catalog{
		order:     append([]string(nil), c.order...),
		resources: make(map[string]model.ResourceSpec, len(c.resources)+len(f.Resources)),
	}
	for name, spec := range c.resources {
		merged.resources[name] = spec
	}
	for _, spec := range f.Resources {
		if err := merged.put(spec); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func (c *Catalog) put(spec model.ResourceSpec) error {
	spec, err := normalize(spec)
	if err != nil {
		return err
	}
	if _, exists := c.resources[spec.Name]; !exists {
		c.order = append(c.order, spec.Name)
	}
	c.resources[spec.Name] = spec
	return nil
}

// normalize fills defaults and rejects inconsistent specs.
func normalize(spec model.ResourceSpec) (model.ResourceSpec, error) {
	spec.Name = strings.TrimSpace(spec.Name)
	if spec.Name == "" {
		return spec, errors.NewValidation("resource name is required")
	}
	if spec.CollectionEndpoint == "" {
		return spec, errors.NewValidation(fmt.Sprintf("resource %q has no collection endpoint", spec.Name))
	}
	if spec.KeyField == "" {
		spec.KeyField = constants.DefaultKeyField
	}
	if spec.Title == "" {
		spec.Title = spec.Name
	}

	seen := make(map[string]struct{}, len(spec.Fields))
	fields := make([]model.FieldSpec, len(spec.Fields))
	for i, f := range spec.Fields {
		if f.Name == "" {
			return spec, errors.NewValidation(fmt.Sprintf("resource %q has a field without a name", spec.Name))
		}
		if _, dup := seen[f.Name]; dup {
			return spec, errors.NewValidation(fmt.Sprintf("resource %q declares field %q twice", spec.Name, f.Name))
		}
		seen[f.Name] = struct{}{}
		if f.Kind == "" {
			f.Kind = model.FieldKindText
		}
		if !f.Kind.Valid() {
			return spec, errors.NewValidation(fmt.Sprintf("resource %q field %q has unknown kind %q", spec.Name, f.Name, f.Kind))
		}
		if f.Kind == model.FieldKindFile && f.Default != "" {
			return spec, errors.NewValidation(fmt.Sprintf("resource %q file field %q cannot have a default", spec.Name, f.Name))
		}
		fields[i] = f
	}
	spec.Fields = fields

	if len(spec.Fields) > 0 && spec.SubmitEndpoint == "" {
		return spec, errors.NewValidation(fmt.Sprintf("resource %q declares fields but no submit endpoint", spec.Name))
	}

	return spec, nil
}

// Lookup returns the spec registered under name.
func (c *Catalog) Lookup(name string) (model.ResourceSpec, error) {
	spec, ok := c.resources[name]
	if !ok {
		return model.ResourceSpec{}, errors.NewNotFound(
			fmt.Sprintf("unknown resource %q (known: %s)", name, strings.Join(c.order, ", ")))
	}
	return spec, nil
}

// Names returns the resource names in registration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Resources returns every spec in registration order.
func (c *Catalog) Resources() []model.ResourceSpec {
	specs := make([]model.ResourceSpec, 0, len(c.order))
	for _, name := range c.order {
		specs = append(specs, c.resources[name])
	}
	return specs
}
