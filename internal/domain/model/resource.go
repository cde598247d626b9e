// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package model

// FieldKind is the kind of value a form field accepts
type FieldKind string

const (
	// FieldKindText accepts a scalar string
	FieldKindText FieldKind = "text"
	// FieldKindFile accepts a single file handle
	FieldKindFile FieldKind = "file"
)

// Valid reports whether the kind is known.
func (k FieldKind) Valid() bool {
	return k == FieldKindText || k == FieldKindFile
}

// FieldSpec declares one field of a resource submission
type FieldSpec struct {
	Name     string    `yaml:"name"`
	Kind     FieldKind `yaml:"kind"`
	Required bool      `yaml:"required"`
	// Default is the text value a field resets to; empty means absent
	Default string `yaml:"default"`
}

// ResourceSpec declares how a resource type is fetched and submitted
type ResourceSpec struct {
	// Name identifies the resource, e.g. "exposure"
	Name string `yaml:"name"`
	// Title is the human readable heading
	Title string `yaml:"title"`
	// CollectionEndpoint is the GET path relative to the API base URL
	CollectionEndpoint string `yaml:"collection"`
	// SubmitEndpoint is the POST path; empty when the resource is read-only
	SubmitEndpoint string `yaml:"submit"`
	// Fields are the accepted submission fields in wire order
	Fields []FieldSpec `yaml:"fields"`
	// KeyField is the gjson path of the identifying field of each record
	KeyField string `yaml:"key"`
	// Columns are the gjson paths printed as table columns
	Columns []string `yaml:"columns"`
	// RefetchAfterSubmit makes a successful submission reload the collection
	// instead of using the POST response as the new collection
	RefetchAfterSubmit bool `yaml:"refetch_after_submit"`
}

// Field returns the declared field with the given name.
func (r ResourceSpec) Field(name string) (FieldSpec, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// FieldNames returns the declared field names in wire order.
func (r ResourceSpec) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Submittable reports whether the resource accepts submissions.
func (r ResourceSpec) Submittable() bool {
	return r.SubmitEndpoint != ""
}
