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

// Package bencode implements the canonical bencoding used by torrent
// metainfo files.
//
// # Value Model
//
// Values are plain Go values dispatched by an exhaustive type switch:
//   - Integers: int, int8..int64, uint..uint64, *big.Int
//   - Booleans: bool, encoded as i1e / i0e
//   - Byte strings: []byte, ByteString
//   - Text: string (lenient mode only, encoded as its UTF-8 bytes)
//   - Lists: []any, List, and Tuple (lenient mode only)
//   - Mappings: Dict (byte string keys), map[string]any (text keys),
//     map[any]any and Pairs (ByteString/[]byte or string keys)
//
// # Canonical Form
//
// Mapping entries are written in ascending order of their encoded key bytes
// regardless of the source order. Two entries whose keys encode to the same
// bytes are an error. When a byte string key and a text key collide, the
// error names the text key.
//
// # Errors
//
// Every encode error carries a Location: the list indices and original
// mapping keys leading from the root to the failing value. All encode errors
// match ErrEncode and all decode errors match ErrSyntax via errors.Is.
//
// # Strict Mode
//
// EncodeStrict rejects text strings, text keys and tuples instead of
// converting them, so the output reflects exactly what was provided.
package bencode
