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

// Package cbor exports bencode value trees as deterministic CBOR and imports
// them back.
//
// It wraps github.com/fxamacker/cbor/v2 with cached encode and decode modes:
// maps use core deterministic key order, indefinite lengths and duplicate map
// keys are rejected on decode.
//
// Dictionary keys are CBOR byte strings, so the mapping between the two
// formats is lossless:
//
//	data, err := cbor.Encode(bencode.Dict{"a": int64(1)})
//	// data = a1 41 61 01
//	tree, err := cbor.ToBencode(data)
//	// tree = bencode.Dict{"a": int64(1)}
package cbor
