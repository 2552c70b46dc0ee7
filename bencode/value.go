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
	"encoding/hex"
	"math/big"
	"sort"
)

// Wrapper for byte strings that allows them to be used as keys for a map
type ByteString struct {
	// We use a string because []byte isn't comparable, which means it can't be used as a map key
	data string
}

func NewByteString(data []byte) ByteString {
	return ByteString{
		data: string(data),
	}
}

func (bs ByteString) Bytes() []byte {
	return []byte(bs.data)
}

func (bs ByteString) Len() int {
	return len(bs.data)
}

func (bs ByteString) String() string {
	return hex.EncodeToString([]byte(bs.data))
}

// List is a bencode list. A plain []any is accepted everywhere a List is
type List []any

// Tuple is a fixed-size sequence. It encodes like a List, but only in lenient mode
type Tuple []any

// Dict is a mapping whose keys are raw byte strings. This is the type produced
// by Decode and the backing mapping used by records in the field package.
// Go strings hold arbitrary bytes, so a Dict key is never treated as text.
type Dict map[string]any

// Get returns the value stored under key
func (d Dict) Get(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

// Set stores value under key
func (d Dict) Set(key string, value any) {
	d[key] = value
}

// Delete removes key if present
func (d Dict) Delete(key string) {
	delete(d, key)
}

// Keys returns the keys of the dict in canonical order
func (d Dict) Keys() []string {
	ret := make([]string, 0, len(d))
	for k := range d {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Pair is a single key/value entry of Pairs
type Pair struct {
	Key   any
	Value any
}

// Pairs is an ordered mapping which may mix byte string and text keys.
// Unlike the map types, it can hold entries whose keys collide once
// canonicalized, which the encoder reports as duplicates.
type Pairs []Pair

// Clone returns a deep copy of a value tree. Scalars are returned as-is and
// values of unknown types are shared, not copied.
func Clone(v any) any {
	switch val := v.(type) {
	case []byte:
		if val == nil {
			return val
		}
		ret := make([]byte, len(val))
		copy(ret, val)
		return ret
	case *big.Int:
		if val == nil {
			return val
		}
		return new(big.Int).Set(val)
	case []any:
		return cloneSlice(val)
	case List:
		return List(cloneSlice(val))
	case Tuple:
		return Tuple(cloneSlice(val))
	case Dict:
		ret := make(Dict, len(val))
		for k, item := range val {
			ret[k] = Clone(item)
		}
		return ret
	case map[string]any:
		ret := make(map[string]any, len(val))
		for k, item := range val {
			ret[k] = Clone(item)
		}
		return ret
	case map[any]any:
		ret := make(map[any]any, len(val))
		for k, item := range val {
			ret[k] = Clone(item)
		}
		return ret
	case Pairs:
		ret := make(Pairs, 0, len(val))
		for _, p := range val {
			ret = append(ret, Pair{Key: Clone(p.Key), Value: Clone(p.Value)})
		}
		return ret
	default:
		return v
	}
}

func cloneSlice(values []any) []any {
	if values == nil {
		return nil
	}
	ret := make([]any, 0, len(values))
	for _, item := range values {
		ret = append(ret, Clone(item))
	}
	return ret
}
