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

package bencode

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// MaxNestingDepth limits how deeply lists and dicts may nest in decoded input
const MaxNestingDepth = 256

// Decode parses a single bencoded value spanning all of data.
//
// Integers decode to int64, or *big.Int when they do not fit. Byte strings
// decode to []byte, lists to []any and dictionaries to Dict. Integers and
// string lengths must be in canonical form and dictionary keys must be
// unique. Key order is not enforced, since files in the wild often carry
// unsorted keys; re-encoding restores canonical order.
func Decode(data []byte) (any, error) {
	d := &decoder{data: data}
	v, err := d.value(0)
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, d.errorf("trailing data after value")
	}
	return v, nil
}

// DecodeDict is like Decode, but requires the top level value to be a dictionary
func DecodeDict(data []byte) (Dict, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	dict, ok := v.(Dict)
	if !ok {
		return nil, &SyntaxError{
			Offset: 0,
			Msg:    fmt.Sprintf("expected dictionary, found %s", typeName(v)),
		}
	}
	return dict, nil
}

// DecodeDictSpans is like DecodeDict, but also returns the encoded bytes of
// each top level value as they appear in data. The spans alias data.
func DecodeDictSpans(data []byte) (Dict, map[string][]byte, error) {
	d := &decoder{
		data:  data,
		spans: map[string][]byte{},
	}
	if len(data) == 0 || data[0] != 'd' {
		// Anything not starting with 'd' fails to decode as a dictionary
		_, err := DecodeDict(data)
		return nil, nil, err
	}
	v, err := d.value(0)
	if err != nil {
		return nil, nil, err
	}
	if d.pos != len(d.data) {
		return nil, nil, d.errorf("trailing data after value")
	}
	return v.(Dict), d.spans, nil
}

type decoder struct {
	data []byte
	pos  int
	// Encoded top level dictionary values, when requested
	spans map[string][]byte
}

func (d *decoder) errorf(format string, args ...any) error {
	return &SyntaxError{
		Offset: d.pos,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (d *decoder) value(depth int) (any, error) {
	if d.pos >= len(d.data) {
		return nil, d.errorf("unexpected end of input")
	}
	switch c := d.data[d.pos]; {
	case c == 'i':
		return d.integer()
	case c == 'l':
		if depth >= MaxNestingDepth {
			return nil, d.errorf("maximum nesting depth exceeded")
		}
		return d.list(depth + 1)
	case c == 'd':
		if depth >= MaxNestingDepth {
			return nil, d.errorf("maximum nesting depth exceeded")
		}
		return d.dict(depth + 1)
	case c >= '0' && c <= '9':
		return d.bytes()
	default:
		return nil, d.errorf("invalid token %q", c)
	}
}

// digits consumes an optionally signed run of decimal digits terminated by
// the specified byte and returns the digits without the terminator
func (d *decoder) digits(term byte, signed bool) (string, error) {
	start := d.pos
	if signed && d.pos < len(d.data) && d.data[d.pos] == '-' {
		d.pos++
	}
	digitStart := d.pos
	for d.pos < len(d.data) && d.data[d.pos] >= '0' && d.data[d.pos] <= '9' {
		d.pos++
	}
	if d.pos >= len(d.data) {
		return "", d.errorf("unexpected end of input")
	}
	if d.data[d.pos] != term {
		return "", d.errorf("expected %q, found %q", term, d.data[d.pos])
	}
	if d.pos == digitStart {
		return "", d.errorf("missing digits")
	}
	if d.data[digitStart] == '0' && d.pos-digitStart > 1 {
		return "", &SyntaxError{Offset: digitStart, Msg: "leading zero"}
	}
	if digitStart > start && d.data[digitStart] == '0' {
		return "", &SyntaxError{Offset: start, Msg: "negative zero"}
	}
	ret := string(d.data[start:d.pos])
	// Skip terminator
	d.pos++
	return ret, nil
}

func (d *decoder) integer() (any, error) {
	// Skip 'i'
	d.pos++
	start := d.pos
	text, err := d.digits('e', true)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, strconv.ErrRange) {
		return nil, &SyntaxError{Offset: start, Msg: err.Error()}
	}
	bigVal, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, &SyntaxError{Offset: start, Msg: "invalid integer"}
	}
	return bigVal, nil
}

func (d *decoder) bytes() ([]byte, error) {
	start := d.pos
	text, err := d.digits(':', false)
	if err != nil {
		return nil, err
	}
	length, err := strconv.Atoi(text)
	if err != nil || length > len(d.data)-d.pos {
		return nil, &SyntaxError{
			Offset: start,
			Msg:    fmt.Sprintf("byte string length %s exceeds input", text),
		}
	}
	ret := make([]byte, length)
	copy(ret, d.data[d.pos:d.pos+length])
	d.pos += length
	return ret, nil
}

func (d *decoder) list(depth int) ([]any, error) {
	// Skip 'l'
	d.pos++
	ret := []any{}
	for {
		if d.pos >= len(d.data) {
			return nil, d.errorf("unterminated list")
		}
		if d.data[d.pos] == 'e' {
			d.pos++
			return ret, nil
		}
		item, err := d.value(depth)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
}

func (d *decoder) dict(depth int) (Dict, error) {
	// Skip 'd'
	d.pos++
	ret := Dict{}
	for {
		if d.pos >= len(d.data) {
			return nil, d.errorf("unterminated dictionary")
		}
		c := d.data[d.pos]
		if c == 'e' {
			d.pos++
			return ret, nil
		}
		if c < '0' || c > '9' {
			return nil, d.errorf("dictionary key must be a byte string")
		}
		keyStart := d.pos
		key, err := d.bytes()
		if err != nil {
			return nil, err
		}
		if _, exists := ret[string(key)]; exists {
			return nil, &SyntaxError{
				Offset: keyStart,
				Msg:    fmt.Sprintf("duplicate key %q", key),
			}
		}
		valueStart := d.pos
		item, err := d.value(depth)
		if err != nil {
			return nil, err
		}
		ret[string(key)] = item
		if depth == 1 && d.spans != nil {
			d.spans[string(key)] = d.data[valueStart:d.pos:d.pos]
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case int64, *big.Int:
		return "integer"
	case []byte:
		return "byte string"
	case []any:
		return "list"
	case Dict:
		return "dictionary"
	default:
		return fmt.Sprintf("%T", v)
	}
}
