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
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"time"
	"unicode/utf8"

	"github.com/blinklabs-io/gotorrent/bencode"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Charsetter is implemented by records whose text fields are stored in a
// charset other than UTF-8
type Charsetter interface {
	Charset() (encoding.Encoding, error)
}

// NewInteger returns an integer field. Bounds are expressed as validators,
// e.g. Range[int64](0, 10).
func NewInteger(name, key string, validators ...Validator[int64]) *Field[int64] {
	return newField(name, key, KindInteger, integerConversion, validators)
}

// NewBytes returns a non-empty byte string field
func NewBytes(name, key string, validators ...Validator[[]byte]) *Field[[]byte] {
	return newField(
		name,
		key,
		KindBytes,
		bytesConversion,
		append([]Validator[[]byte]{NonEmpty[[]byte]()}, validators...),
	)
}

// NewString returns a non-empty text field stored as bytes in the charset of
// the record
func NewString(name, key string, validators ...Validator[string]) *Field[string] {
	return newField(
		name,
		key,
		KindString,
		stringConversion,
		append([]Validator[string]{NonEmpty[string]()}, validators...),
	)
}

// NewURL returns a text field which must hold an absolute URL
func NewURL(name, key string, validators ...Validator[string]) *Field[string] {
	return newField(
		name,
		key,
		KindURL,
		stringConversion,
		append([]Validator[string]{NonEmpty[string](), URLShape()}, validators...),
	)
}

// NewTimestamp returns a time field stored as Unix seconds. Loaded values are
// in UTC; assigned values keep their location.
func NewTimestamp(name, key string, validators ...Validator[time.Time]) *Field[time.Time] {
	return newField(
		name,
		key,
		KindTimestamp,
		timestampConversion,
		append([]Validator[time.Time]{UnixEpoch()}, validators...),
	)
}

var integerConversion = conversion[int64]{
	fromRaw: func(_ Record, raw any) (int64, error) {
		return rawInteger(raw)
	},
	toRaw: func(_ Record, v int64) (any, error) {
		return v, nil
	},
}

var bytesConversion = conversion[[]byte]{
	fromRaw: func(_ Record, raw any) ([]byte, error) {
		return rawBytes(raw)
	},
	toRaw: func(_ Record, v []byte) (any, error) {
		return bytes.Clone(v), nil
	},
	clone: bytes.Clone,
}

var stringConversion = conversion[string]{
	fromRaw: func(r Record, raw any) (string, error) {
		data, err := rawBytes(raw)
		if err != nil {
			return "", err
		}
		charset, err := recordCharset(r)
		if err != nil {
			return "", err
		}
		text, err := charset.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		// Decoders substitute invalid input rather than failing
		again, err := charset.NewEncoder().Bytes(text)
		if err != nil || !bytes.Equal(again, data) {
			return "", errNotInCharset
		}
		return string(text), nil
	},
	toRaw: func(r Record, v string) (any, error) {
		if !utf8.ValidString(v) {
			return nil, errInvalidText
		}
		charset, err := recordCharset(r)
		if err != nil {
			return nil, err
		}
		data, err := charset.NewEncoder().Bytes([]byte(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errNotInCharset, err)
		}
		return data, nil
	},
}

var timestampConversion = conversion[time.Time]{
	fromRaw: func(_ Record, raw any) (time.Time, error) {
		secs, err := rawInteger(raw)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(secs, 0).UTC(), nil
	},
	toRaw: func(_ Record, v time.Time) (any, error) {
		return v.Unix(), nil
	},
}

var (
	errNotInCharset = errors.New("text not representable in the record charset")
	errInvalidText  = errors.New("text is not valid UTF-8")
)

func recordCharset(r Record) (encoding.Encoding, error) {
	if cs, ok := r.(Charsetter); ok {
		charset, err := cs.Charset()
		if err != nil {
			return nil, err
		}
		if charset != nil {
			return charset, nil
		}
	}
	return unicode.UTF8, nil
}

func rawInteger(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case *big.Int:
		if v != nil && v.IsInt64() {
			return v.Int64(), nil
		}
		return 0, fmt.Errorf("%w: integer does not fit in 64 bits", errOutOfRange)
	default:
		return 0, fmt.Errorf("%w %T, expected integer", errWrongRawType, raw)
	}
}

func rawBytes(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case []byte:
		return v, nil
	case bencode.ByteString:
		return v.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w %T, expected byte string", errWrongRawType, raw)
	}
}
