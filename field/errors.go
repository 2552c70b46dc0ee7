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
	"errors"
	"fmt"
)

// Sentinel errors so callers can use errors.Is
var (
	ErrValidation     = errors.New("field: validation failed")
	ErrLayoutConflict = errors.New("field: layout conflict")
	ErrUnbound        = errors.New("field: descriptor is not part of a layout")
	ErrNoBackingData  = errors.New("field: record has no backing mapping")
)

// ValidationError indicates a loaded or assigned value rejected by a field
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"field %q: invalid value %s: %v",
		e.Field,
		formatValue(e.Value),
		e.Err,
	)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (*ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LayoutConflictError indicates a layout that cannot be built from the
// provided descriptors
type LayoutConflictError struct {
	Record string
	Name   string
	Reason string
}

func (e *LayoutConflictError) Error() string {
	return fmt.Sprintf(
		"field: layout for %q conflicts on %q: %s",
		e.Record,
		e.Name,
		e.Reason,
	)
}

func (*LayoutConflictError) Is(target error) bool {
	return target == ErrLayoutConflict
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []byte:
		return fmt.Sprintf("%q", val)
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%v (%T)", val, val)
	}
}
