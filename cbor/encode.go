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
	"fmt"
	"math/big"

	"github.com/blinklabs-io/gotorrent/bencode"
)

// Encode converts a bencode value tree to deterministic CBOR. The tree is
// first put through the strict bencode encoder, so the same values are
// rejected here as there. Integers become CBOR integers (bignums beyond 64
// bits), byte strings stay byte strings, lists become arrays and dictionaries
// become maps keyed by byte strings.
func Encode(v any) ([]byte, error) {
	data, err := bencode.EncodeStrict(v)
	if err != nil {
		return nil, err
	}
	return FromBencode(data)
}

// FromBencode converts encoded bencode data to deterministic CBOR
func FromBencode(data []byte) ([]byte, error) {
	tree, err := bencode.Decode(data)
	if err != nil {
		return nil, err
	}
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	enc := em.NewEncoder(buf)
	if err := enc.Encode(toCbor(tree)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toCbor maps a decoded bencode tree onto the types the CBOR library encodes
// the way we want. Decoded trees only hold the kinds handled here.
func toCbor(v any) any {
	switch val := v.(type) {
	case int64:
		return val
	case *big.Int:
		return val
	case []byte:
		return val
	case []any:
		ret := make([]any, len(val))
		for i, item := range val {
			ret[i] = toCbor(item)
		}
		return ret
	case bencode.Dict:
		ret := make(map[ByteString]any, len(val))
		for k, item := range val {
			ret[ByteString(k)] = toCbor(item)
		}
		return ret
	default:
		panic(fmt.Sprintf("unexpected decoded bencode type %T", v))
	}
}
