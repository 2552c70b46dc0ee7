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
	"fmt"
)

type Kind uint8

const (
	KindInteger Kind = iota + 1
	KindBytes
	KindString
	KindURL
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindURL:
		return "url"
	case KindTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Descriptor is the type-erased view of a Field used by Layout
type Descriptor interface {
	Name() string
	Key() string
	Kind() Kind
	// Loaded reports whether the field was loaded from the backing mapping
	// since the last LoadFields
	Loaded(r Record) bool
	LoadFrom(r Record) error
	SaveTo(r Record) error
	// GetValue is Get without the static type
	GetValue(r Record) (any, bool, error)
	// Clear sets the field to none
	Clear(r Record) error
	bind(record string, idx uint) error
	boundTo() string
}

// conversion translates between the raw value held by the backing mapping
// and the typed field value
type conversion[T any] struct {
	fromRaw func(r Record, raw any) (T, error)
	toRaw   func(r Record, v T) (any, error)
	// clone copies values of mutable types so cached state never aliases a
	// caller's value. Nil for value types.
	clone func(v T) T
}

func (c conversion[T]) copyOf(v T) T {
	if c.clone == nil {
		return v
	}
	return c.clone(v)
}

// Field mediates typed, validated access to one entry of a record's backing
// mapping. A Field is shared by every instance of its record type and keeps
// no per-instance data; cached values live in the record's State.
type Field[T any] struct {
	name       string
	key        string
	kind       Kind
	conv       conversion[T]
	validators []Validator[T]
	record     string
	index      uint
}

func newField[T any](
	name string,
	key string,
	kind Kind,
	conv conversion[T],
	validators []Validator[T],
) *Field[T] {
	return &Field[T]{
		name:       name,
		key:        key,
		kind:       kind,
		conv:       conv,
		validators: validators,
	}
}

func (f *Field[T]) Name() string { return f.name }

func (f *Field[T]) Key() string { return f.key }

func (f *Field[T]) Kind() Kind { return f.kind }

func (f *Field[T]) String() string {
	return fmt.Sprintf("%s field %q (key %q)", f.kind, f.name, f.key)
}

func (f *Field[T]) bind(record string, idx uint) error {
	if f.record != "" {
		return &LayoutConflictError{
			Record: record,
			Name:   f.name,
			Reason: fmt.Sprintf("descriptor already belongs to %q", f.record),
		}
	}
	f.record = record
	f.index = idx
	return nil
}

func (f *Field[T]) boundTo() string {
	return f.record
}

func (f *Field[T]) state(r Record) (*State, error) {
	if f.record == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnbound, f)
	}
	return r.FieldState(), nil
}

// Get returns the field value and whether it is set. The value is loaded from
// the backing mapping on first access. Byte slices are returned as copies.
func (f *Field[T]) Get(r Record) (T, bool, error) {
	var zero T
	st, err := f.state(r)
	if err != nil {
		return zero, false, err
	}
	v, ok := st.value(f.index)
	if !ok {
		if err := f.LoadFrom(r); err != nil {
			return zero, false, err
		}
		v, _ = st.value(f.index)
	}
	if v == nil {
		return zero, false, nil
	}
	return f.conv.copyOf(v.(T)), true, nil
}

func (f *Field[T]) GetValue(r Record) (any, bool, error) {
	v, ok, err := f.Get(r)
	if err != nil || !ok {
		return nil, ok, err
	}
	return v, true, nil
}

// Set validates and caches v. The backing mapping is not touched until SaveTo.
func (f *Field[T]) Set(r Record, v T) error {
	st, err := f.state(r)
	if err != nil {
		return err
	}
	if err := f.validate(r, v); err != nil {
		return err
	}
	st.store(f.index, f.conv.copyOf(v))
	return nil
}

func (f *Field[T]) Clear(r Record) error {
	st, err := f.state(r)
	if err != nil {
		return err
	}
	st.store(f.index, nil)
	return nil
}

func (f *Field[T]) Loaded(r Record) bool {
	st, err := f.state(r)
	if err != nil {
		return false
	}
	return st.isLoaded(f.index)
}

// LoadFrom takes the field value out of the backing mapping. A missing key
// yields none. A present value is converted and validated, and only then
// removed from the mapping; a rejected value leaves the mapping untouched.
func (f *Field[T]) LoadFrom(r Record) error {
	st, err := f.state(r)
	if err != nil {
		return err
	}
	data := r.Data()
	raw, ok := data[f.key]
	if !ok {
		st.store(f.index, nil)
		st.markLoaded(f.index)
		return nil
	}
	v, err := f.conv.fromRaw(r, raw)
	if err != nil {
		return &ValidationError{Field: f.name, Value: raw, Err: err}
	}
	if err := f.check(v); err != nil {
		return err
	}
	delete(data, f.key)
	st.store(f.index, v)
	st.markLoaded(f.index)
	return nil
}

// SaveTo writes the cached value back to the backing mapping. A field which
// was never loaded or assigned leaves the mapping alone, and a field set to
// none removes its key.
func (f *Field[T]) SaveTo(r Record) error {
	st, err := f.state(r)
	if err != nil {
		return err
	}
	v, ok := st.value(f.index)
	if !ok {
		return nil
	}
	data := r.Data()
	if v == nil {
		delete(data, f.key)
		return nil
	}
	if data == nil {
		return fmt.Errorf("%w: saving %s", ErrNoBackingData, f)
	}
	raw, err := f.conv.toRaw(r, v.(T))
	if err != nil {
		return &ValidationError{Field: f.name, Value: v, Err: err}
	}
	data[f.key] = raw
	return nil
}

// check runs the validators in order
func (f *Field[T]) check(v T) error {
	for _, validator := range f.validators {
		if err := validator.Validate(v); err != nil {
			return &ValidationError{Field: f.name, Value: v, Err: err}
		}
	}
	return nil
}

// validate runs the validators, then makes sure the value can be stored
func (f *Field[T]) validate(r Record, v T) error {
	if err := f.check(v); err != nil {
		return err
	}
	if _, err := f.conv.toRaw(r, v); err != nil {
		return &ValidationError{Field: f.name, Value: v, Err: err}
	}
	return nil
}
