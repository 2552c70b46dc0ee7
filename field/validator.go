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
	"cmp"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Validator checks a candidate field value
type Validator[T any] interface {
	Validate(v T) error
}

// ValidatorFunc adapts a function to the Validator interface
type ValidatorFunc[T any] func(v T) error

func (fn ValidatorFunc[T]) Validate(v T) error {
	return fn(v)
}

var (
	errEmpty        = errors.New("must not be empty")
	errZeroTime     = errors.New("timestamp must be set")
	errSubSecond    = errors.New("timestamp must have whole second precision")
	errMissingURL   = errors.New("URL must have a scheme and a host")
	errOutOfRange   = errors.New("out of range")
	errWrongRawType = errors.New("unexpected type")
)

// Range requires min <= v <= max
func Range[T cmp.Ordered](minVal, maxVal T) Validator[T] {
	return ValidatorFunc[T](func(v T) error {
		if v < minVal || v > maxVal {
			return fmt.Errorf("%w: %v not in [%v, %v]", errOutOfRange, v, minVal, maxVal)
		}
		return nil
	})
}

// AtLeast requires v >= min
func AtLeast[T cmp.Ordered](minVal T) Validator[T] {
	return ValidatorFunc[T](func(v T) error {
		if v < minVal {
			return fmt.Errorf("%w: %v below minimum %v", errOutOfRange, v, minVal)
		}
		return nil
	})
}

// AtMost requires v <= max
func AtMost[T cmp.Ordered](maxVal T) Validator[T] {
	return ValidatorFunc[T](func(v T) error {
		if v > maxVal {
			return fmt.Errorf("%w: %v above maximum %v", errOutOfRange, v, maxVal)
		}
		return nil
	})
}

// TimeRange requires min <= v <= max. A zero bound is open.
func TimeRange(minVal, maxVal time.Time) Validator[time.Time] {
	return ValidatorFunc[time.Time](func(v time.Time) error {
		if !minVal.IsZero() && v.Before(minVal) {
			return fmt.Errorf(
				"%w: %s before %s",
				errOutOfRange,
				v.Format(time.RFC3339),
				minVal.Format(time.RFC3339),
			)
		}
		if !maxVal.IsZero() && v.After(maxVal) {
			return fmt.Errorf(
				"%w: %s after %s",
				errOutOfRange,
				v.Format(time.RFC3339),
				maxVal.Format(time.RFC3339),
			)
		}
		return nil
	})
}

// NonEmpty rejects empty strings and byte strings
func NonEmpty[T ~string | ~[]byte]() Validator[T] {
	return ValidatorFunc[T](func(v T) error {
		if len(v) == 0 {
			return errEmpty
		}
		return nil
	})
}

// URLShape requires an absolute URL with a non-empty scheme and host
func URLShape() Validator[string] {
	return ValidatorFunc[string](func(v string) error {
		u, err := url.Parse(v)
		if err != nil {
			return err
		}
		if u.Scheme == "" || u.Hostname() == "" {
			return errMissingURL
		}
		return nil
	})
}

// UnixEpoch requires a set timestamp which converts to Unix seconds without loss
func UnixEpoch() Validator[time.Time] {
	return ValidatorFunc[time.Time](func(v time.Time) error {
		if v.IsZero() {
			return errZeroTime
		}
		if v.Nanosecond() != 0 {
			return errSubSecond
		}
		return nil
	})
}
