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

package cbor

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/blinklabs-io/gotorrent/bencode"
)

var ErrUnsupportedType = errors.New("cbor: type has no bencode equivalent")

// Decode decodes a single CBOR item into dest and returns the number of bytes
// read
func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// ToBencode converts CBOR produced by Encode back into a bencode value tree.
// Only integers, byte strings, arrays and maps keyed by byte strings are
// accepted, and the whole input must be consumed.
func ToBencode(data []byte) (any, error) {
	var tmp any
	n, err := Decode(data, &tmp)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("cbor: %d trailing bytes", len(data)-n)
	}
	return fromCbor(tmp)
}

func fromCbor(v any) (any, error) {
	switch val := v.(type) {
	case uint64:
		if val > math.MaxInt64 {
			return new(big.Int).SetUint64(val), nil
		}
		return int64(val), nil
	case int64:
		return val, nil
	case big.Int:
		return normalizeBigInt(&val), nil
	case *big.Int:
		return normalizeBigInt(val), nil
	case []byte:
		return val, nil
	case []any:
		ret := make([]any, len(val))
		for i, item := range val {
			tmp, err := fromCbor(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			ret[i] = tmp
		}
		return ret, nil
	case map[any]any:
		ret := make(bencode.Dict, len(val))
		for k, item := range val {
			key, ok := k.(ByteString)
			if !ok {
				return nil, fmt.Errorf("%w: map key %T", ErrUnsupportedType, k)
			}
			tmp, err := fromCbor(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", string(key), err)
			}
			ret[string(key)] = tmp
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

func normalizeBigInt(v *big.Int) any {
	if v.IsInt64() {
		return v.Int64()
	}
	return v
}
