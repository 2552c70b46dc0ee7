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
	"bytes"
	"errors"
	"io"
	"iter"
	"math/big"
	"slices"
	"strconv"
)

var (
	chunkInt   = []byte("i")
	chunkList  = []byte("l")
	chunkDict  = []byte("d")
	chunkEnd   = []byte("e")
	chunkTrue  = []byte("i1e")
	chunkFalse = []byte("i0e")
)

// errStopped is returned internally when the consumer of Chunks stops early
var errStopped = errors.New("bencode: iteration stopped")

// Encode returns the canonical encoding of v in lenient mode, where text
// strings and tuples are accepted and encoded as byte strings and lists
func Encode(v any) ([]byte, error) {
	return encode(v, false)
}

// EncodeStrict returns the canonical encoding of v, rejecting text strings,
// text keys and tuples
func EncodeStrict(v any) ([]byte, error) {
	return encode(v, true)
}

func encode(v any, strict bool) ([]byte, error) {
	var buf bytes.Buffer
	for chunk, err := range Chunks(v, strict) {
		if err != nil {
			return nil, err
		}
		buf.Write(chunk)
	}
	return buf.Bytes(), nil
}

// Chunks yields the encoding of v piece by piece. On failure the final pair
// carries the error and any chunks already yielded must be discarded. Byte
// string chunks alias the input and must not be modified.
func Chunks(v any, strict bool) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		s := &encodeState{
			strict: strict,
			yield: func(chunk []byte) bool {
				return yield(chunk, nil)
			},
		}
		if err := s.encode(v); err != nil && !errors.Is(err, errStopped) {
			yield(nil, err)
		}
	}
}

// Encoder writes canonical encodings to an io.Writer
type Encoder struct {
	w      io.Writer
	strict bool
}

func NewEncoder(w io.Writer, strict bool) *Encoder {
	return &Encoder{
		w:      w,
		strict: strict,
	}
}

// Encode writes the encoding of v. A failure may leave a partial encoding in
// the underlying writer.
func (e *Encoder) Encode(v any) error {
	for chunk, err := range Chunks(v, e.strict) {
		if err != nil {
			return err
		}
		if _, err := e.w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

type encodeState struct {
	strict bool
	path   Location
	yield  func([]byte) bool
}

func (s *encodeState) emit(chunks ...[]byte) error {
	for _, chunk := range chunks {
		if !s.yield(chunk) {
			return errStopped
		}
	}
	return nil
}

func (s *encodeState) unsupported(v any) error {
	return &UnsupportedTypeError{
		Location: s.path.clone(),
		Value:    v,
		Strict:   s.strict,
	}
}

func (s *encodeState) encode(v any) error {
	// bool must be handled before any integer kind
	switch val := v.(type) {
	case bool:
		if val {
			return s.emit(chunkTrue)
		}
		return s.emit(chunkFalse)
	case int:
		return s.encodeInt(int64(val))
	case int8:
		return s.encodeInt(int64(val))
	case int16:
		return s.encodeInt(int64(val))
	case int32:
		return s.encodeInt(int64(val))
	case int64:
		return s.encodeInt(val)
	case uint:
		return s.encodeUint(uint64(val))
	case uint8:
		return s.encodeUint(uint64(val))
	case uint16:
		return s.encodeUint(uint64(val))
	case uint32:
		return s.encodeUint(uint64(val))
	case uint64:
		return s.encodeUint(val)
	case *big.Int:
		if val == nil {
			return s.unsupported(v)
		}
		return s.emit(chunkInt, val.Append(nil, 10), chunkEnd)
	case []byte:
		return s.encodeBytes(val)
	case ByteString:
		return s.encodeBytes([]byte(val.data))
	case string:
		if s.strict {
			return s.unsupported(v)
		}
		return s.encodeBytes([]byte(val))
	case []any:
		return s.encodeList(val)
	case List:
		return s.encodeList(val)
	case Tuple:
		if s.strict {
			return s.unsupported(v)
		}
		return s.encodeList(val)
	case Dict:
		entries := make([]dictEntry, 0, len(val))
		for k, item := range val {
			entries = append(
				entries,
				dictEntry{key: []byte(k), value: item},
			)
		}
		return s.encodeDict(entries)
	case map[string]any:
		entries := make([]dictEntry, 0, len(val))
		for k, item := range val {
			entries = append(entries, dictEntry{key: k, value: item})
		}
		return s.encodeDict(entries)
	case map[any]any:
		entries := make([]dictEntry, 0, len(val))
		for k, item := range val {
			entries = append(entries, dictEntry{key: k, value: item})
		}
		return s.encodeDict(entries)
	case Pairs:
		entries := make([]dictEntry, 0, len(val))
		for _, p := range val {
			entries = append(entries, dictEntry{key: p.Key, value: p.Value})
		}
		return s.encodeDict(entries)
	default:
		return s.unsupported(v)
	}
}

func (s *encodeState) encodeInt(v int64) error {
	return s.emit(chunkInt, strconv.AppendInt(nil, v, 10), chunkEnd)
}

func (s *encodeState) encodeUint(v uint64) error {
	return s.emit(chunkInt, strconv.AppendUint(nil, v, 10), chunkEnd)
}

func (s *encodeState) encodeBytes(v []byte) error {
	header := strconv.AppendInt(nil, int64(len(v)), 10)
	header = append(header, ':')
	if len(v) == 0 {
		return s.emit(header)
	}
	return s.emit(header, v)
}

func (s *encodeState) encodeList(values []any) error {
	if err := s.emit(chunkList); err != nil {
		return err
	}
	for idx, item := range values {
		s.path = append(s.path, idx)
		if err := s.encode(item); err != nil {
			return err
		}
		s.path = s.path[:len(s.path)-1]
	}
	return s.emit(chunkEnd)
}

type dictEntry struct {
	encoded []byte
	// Byte string keys rank before text keys with the same encoding so that
	// duplicate errors always name the text key
	text  bool
	key   any
	value any
}

// canonicalize fills in the encoded form of each key. Text keys rejected in
// strict mode are reported in canonical order so the error does not depend
// on map iteration order.
func (s *encodeState) canonicalize(entries []dictEntry) error {
	var rejected *dictEntry
	for i := range entries {
		entry := &entries[i]
		switch k := entry.key.(type) {
		case []byte:
			entry.encoded = k
		case ByteString:
			entry.encoded = []byte(k.data)
		case string:
			entry.encoded = []byte(k)
			entry.text = true
			if s.strict &&
				(rejected == nil || bytes.Compare(entry.encoded, rejected.encoded) < 0) {
				rejected = entry
			}
		default:
			return &InvalidKeyTypeError{
				Location: s.path.clone(),
				Key:      entry.key,
				Strict:   s.strict,
			}
		}
	}
	if rejected != nil {
		return &InvalidKeyTypeError{
			Location: s.path.clone(),
			Key:      rejected.key,
			Strict:   s.strict,
		}
	}
	return nil
}

func (s *encodeState) encodeDict(entries []dictEntry) error {
	if err := s.canonicalize(entries); err != nil {
		return err
	}
	slices.SortStableFunc(entries, func(a, b dictEntry) int {
		if c := bytes.Compare(a.encoded, b.encoded); c != 0 {
			return c
		}
		switch {
		case a.text == b.text:
			return 0
		case a.text:
			return 1
		default:
			return -1
		}
	})
	for i := 1; i < len(entries); i++ {
		if bytes.Equal(entries[i-1].encoded, entries[i].encoded) {
			return &DuplicateKeyError{
				Location: s.path.clone(),
				Key:      entries[i].key,
			}
		}
	}
	if err := s.emit(chunkDict); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := s.encodeBytes(entry.encoded); err != nil {
			return err
		}
		s.path = append(s.path, entry.key)
		if err := s.encode(entry.value); err != nil {
			return err
		}
		s.path = s.path[:len(s.path)-1]
	}
	return s.emit(chunkEnd)
}
