// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package field

import (
	"slices"
)

// Names owned by the layout mechanism, in both the historical spelling and the
// Go method spelling
var reservedNames = []string{
	"_fields",
	"load_fields",
	"save_fields",
	"Fields",
	"LoadFields",
	"SaveFields",
}

// Layout is the ordered set of fields declared by a record type. It is built
// once, typically in a package level var, and is read-only afterwards.
type Layout struct {
	record string
	fields []Descriptor
}

// NewLayout binds the descriptors, in declaration order, to the named record
// type. A descriptor may only belong to a single layout, and names and keys
// must be unique.
func NewLayout(record string, fields ...Descriptor) (*Layout, error) {
	names := make(map[string]struct{}, len(fields))
	keys := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		conflict := &LayoutConflictError{Record: record, Name: f.Name()}
		switch {
		case slices.Contains(reservedNames, f.Name()):
			conflict.Reason = "name is reserved"
		case f.boundTo() != "":
			conflict.Reason = "descriptor already belongs to " + f.boundTo()
		default:
			if _, ok := names[f.Name()]; ok {
				conflict.Reason = "duplicate field name"
			} else if _, ok := keys[f.Key()]; ok {
				conflict.Reason = "duplicate key"
			}
		}
		if conflict.Reason != "" {
			return nil, conflict
		}
		names[f.Name()] = struct{}{}
		keys[f.Key()] = struct{}{}
	}
	for idx, f := range fields {
		if err := f.bind(record, uint(idx)); err != nil {
			return nil, err
		}
	}
	return &Layout{
		record: record,
		fields: slices.Clone(fields),
	}, nil
}

// MustLayout is like NewLayout but panics on conflicts. It is meant for
// package level layout definitions.
func MustLayout(record string, fields ...Descriptor) *Layout {
	l, err := NewLayout(record, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Layout) Record() string {
	return l.record
}

// Fields returns the descriptors in declaration order
func (l *Layout) Fields() []Descriptor {
	return slices.Clone(l.fields)
}

// Field returns the descriptor with the specified name
func (l *Layout) Field(name string) (Descriptor, bool) {
	for _, f := range l.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// LoadFields reloads every field from the backing mapping. Fields loaded as a
// side effect of loading an earlier field are not loaded again, since their
// key has already been taken out of the mapping.
func (l *Layout) LoadFields(r Record) error {
	r.FieldState().resetLoaded()
	for _, f := range l.fields {
		if f.Loaded(r) {
			continue
		}
		if err := f.LoadFrom(r); err != nil {
			return err
		}
	}
	return nil
}

// SaveFields writes every field back to the backing mapping
func (l *Layout) SaveFields(r Record) error {
	for _, f := range l.fields {
		if err := f.SaveTo(r); err != nil {
			return err
		}
	}
	return nil
}
