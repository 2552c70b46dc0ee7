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
	"strconv"
	"strings"
)

// Sentinel errors so callers can use errors.Is
var (
	ErrEncode = errors.New("bencode: encode failure")
	ErrSyntax = errors.New("bencode: syntax error")
)

// Location identifies a value inside a value tree. Each element is either an
// int (list index) or the original mapping key. Keys of a Dict are reported
// as []byte, since Dict keys are byte strings.
type Location []any

func (l Location) String() string {
	if len(l) == 0 {
		return "<root>"
	}
	var sb strings.Builder
	for _, elem := range l {
		sb.WriteByte('[')
		switch e := elem.(type) {
		case int:
			sb.WriteString(strconv.Itoa(e))
		default:
			sb.WriteString(formatKey(e))
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

func (l Location) clone() Location {
	ret := make(Location, len(l))
	copy(ret, l)
	return ret
}

func formatKey(key any) string {
	switch k := key.(type) {
	case []byte:
		return "b" + strconv.Quote(string(k))
	case ByteString:
		return "b" + strconv.Quote(k.data)
	case string:
		return strconv.Quote(k)
	default:
		return fmt.Sprintf("%#v", k)
	}
}

// UnsupportedTypeError indicates a value with no encoding rule in the current mode
type UnsupportedTypeError struct {
	Location Location
	Value    any
	Strict   bool
}

func (e *UnsupportedTypeError) Error() string {
	mode := ""
	if e.Strict {
		mode = " in strict mode"
	}
	return fmt.Sprintf(
		"bencode: cannot encode value of type %T%s at %s",
		e.Value,
		mode,
		e.Location,
	)
}

func (*UnsupportedTypeError) Is(target error) bool {
	return target == ErrEncode
}

// InvalidKeyTypeError indicates a mapping key that is neither a byte string nor,
// in lenient mode, text
type InvalidKeyTypeError struct {
	Location Location
	Key      any
	Strict   bool
}

func (e *InvalidKeyTypeError) Error() string {
	if s, ok := e.Key.(string); ok && e.Strict {
		return fmt.Sprintf(
			"bencode: text key %s not allowed in strict mode at %s",
			strconv.Quote(s),
			e.Location,
		)
	}
	return fmt.Sprintf(
		"bencode: invalid key type %T at %s",
		e.Key,
		e.Location,
	)
}

func (*InvalidKeyTypeError) Is(target error) bool {
	return target == ErrEncode
}

// DuplicateKeyError indicates two mapping entries with the same canonical key.
// Key is the original key of the later entry, which is the text key when a
// byte string key and a text key collide.
type DuplicateKeyError struct {
	Location Location
	Key      any
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf(
		"bencode: duplicate key %s at %s",
		formatKey(e.Key),
		e.Location,
	)
}

func (*DuplicateKeyError) Is(target error) bool {
	return target == ErrEncode
}

// SyntaxError indicates malformed or non-canonical input to Decode
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Msg, e.Offset)
}

func (*SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
