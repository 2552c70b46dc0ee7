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

// Package utils provides debugging helpers for decoded bencode data
package utils

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/blinklabs-io/gotorrent/bencode"
)

// Byte strings longer than this are summarized instead of printed
const maxPrintableLength = 80

// DumpBencodeStructure generates an indented string representing a decoded
// bencode tree for debugging purposes. Dictionary keys are printed in
// canonical order.
func DumpBencodeStructure(data any, prefix string) string {
	var ret bytes.Buffer
	dumpValue(&ret, data, prefix, "")
	return ret.String()
}

func dumpValue(ret *bytes.Buffer, data any, prefix string, label string) {
	switch v := data.(type) {
	case int, int64:
		fmt.Fprintf(ret, "%s%s%d,\n", prefix, label, v)
	case *big.Int:
		fmt.Fprintf(ret, "%s%s%s (bignum),\n", prefix, label, v.String())
	case []byte:
		fmt.Fprintf(ret, "%s%s%s,\n", prefix, label, describeBytes(v))
	case []any:
		fmt.Fprintf(ret, "%s%s[\n", prefix, label)
		for _, val := range v {
			dumpValue(ret, val, prefix+"  ", "")
		}
		ret.WriteString(prefix + "],\n")
	case bencode.Dict:
		fmt.Fprintf(ret, "%s%s{\n", prefix, label)
		for _, key := range v.Keys() {
			dumpValue(ret, v[key], prefix+"  ", strconv.Quote(key)+" => ")
		}
		ret.WriteString(prefix + "},\n")
	default:
		fmt.Fprintf(ret, "%s%s%#v,\n", prefix, label, v)
	}
}

func describeBytes(data []byte) string {
	if len(data) <= maxPrintableLength && isPrintable(data) {
		return fmt.Sprintf("%q (length %d)", data, len(data))
	}
	return fmt.Sprintf("<bytes> (length %d)", len(data))
}

func isPrintable(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	for _, r := range string(data) {
		if !strconv.IsPrint(r) {
			return false
		}
	}
	return true
}
