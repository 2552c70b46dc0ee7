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

package bencode_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/blinklabs-io/gotorrent/bencode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	bigVal, _ := new(big.Int).SetString("-1180591620717411303424", 10)
	testDefs := []struct {
		name     string
		data     string
		expected any
	}{
		{name: "Int", data: "i42e", expected: int64(42)},
		{name: "Zero", data: "i0e", expected: int64(0)},
		{name: "Negative", data: "i-3e", expected: int64(-3)},
		{name: "BigInt", data: "i-1180591620717411303424e", expected: bigVal},
		{name: "Bytes", data: "4:spam", expected: []byte("spam")},
		{name: "EmptyBytes", data: "0:", expected: []byte{}},
		{name: "List", data: "li1e1:xe", expected: []any{int64(1), []byte("x")}},
		{name: "EmptyList", data: "le", expected: []any{}},
		{
			name:     "Dict",
			data:     "d1:ai1e1:bli2eee",
			expected: bencode.Dict{"a": int64(1), "b": []any{int64(2)}},
		},
		{
			name:     "UnsortedDict",
			data:     "d1:bi2e1:ai1ee",
			expected: bencode.Dict{"a": int64(1), "b": int64(2)},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			v, err := bencode.Decode([]byte(testDef.data))
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, v)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	testDefs := []struct {
		name   string
		data   string
		offset int
		msg    string
	}{
		{name: "Empty", data: "", offset: 0, msg: "unexpected end of input"},
		{name: "LeadingZero", data: "i03e", offset: 1, msg: "leading zero"},
		{name: "NegativeZero", data: "i-0e", offset: 1, msg: "negative zero"},
		{name: "EmptyInt", data: "ie", offset: 1, msg: "missing digits"},
		{name: "UnterminatedInt", data: "i12", offset: 3, msg: "unexpected end of input"},
		{name: "BadIntChar", data: "i1xe", offset: 2, msg: `expected 'e', found 'x'`},
		{name: "ShortString", data: "5:abc", offset: 0, msg: "exceeds input"},
		{name: "LengthLeadingZero", data: "03:abc", offset: 0, msg: "leading zero"},
		{name: "UnterminatedList", data: "li1e", offset: 4, msg: "unterminated list"},
		{name: "IntKey", data: "di1ei2ee", offset: 1, msg: "key must be a byte string"},
		{name: "DuplicateKey", data: "d1:ai1e1:ai2ee", offset: 7, msg: "duplicate key"},
		{name: "Trailing", data: "i1ei2e", offset: 3, msg: "trailing data"},
		{name: "InvalidToken", data: "x", offset: 0, msg: "invalid token"},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := bencode.Decode([]byte(testDef.data))
			var syntaxErr *bencode.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, testDef.offset, syntaxErr.Offset)
			assert.Contains(t, syntaxErr.Msg, testDef.msg)
			assert.ErrorIs(t, err, bencode.ErrSyntax)
		})
	}
}

func TestDecodeNestingLimit(t *testing.T) {
	depth := bencode.MaxNestingDepth + 1
	data := strings.Repeat("l", depth) + strings.Repeat("e", depth)
	_, err := bencode.Decode([]byte(data))
	assert.ErrorIs(t, err, bencode.ErrSyntax)

	data = strings.Repeat("l", depth-1) + strings.Repeat("e", depth-1)
	_, err = bencode.Decode([]byte(data))
	assert.NoError(t, err)
}

func TestDecodeDict(t *testing.T) {
	dict, err := bencode.DecodeDict([]byte("de"))
	require.NoError(t, err)
	assert.Empty(t, dict)

	_, err = bencode.DecodeDict([]byte("le"))
	assert.ErrorIs(t, err, bencode.ErrSyntax)
	assert.Contains(t, err.Error(), "expected dictionary, found list")
}

func TestDecodeDictSpans(t *testing.T) {
	data := []byte("d4:infod4:name5:hello6:lengthi5ee1:zli1ei2ee1:ai0ee")
	dict, spans, err := bencode.DecodeDictSpans(data)
	require.NoError(t, err)
	assert.Equal(t, bencode.Dict{
		"info": bencode.Dict{"name": []byte("hello"), "length": int64(5)},
		"z":    []any{int64(1), int64(2)},
		"a":    int64(0),
	}, dict)
	// Spans keep the input order of nested keys
	assert.Equal(t, map[string][]byte{
		"info": []byte("d4:name5:hello6:lengthi5ee"),
		"z":    []byte("li1ei2ee"),
		"a":    []byte("i0e"),
	}, spans)

	for _, bad := range []string{"", "le", "d1:ai1e", "d1:ai1eex"} {
		_, _, err := bencode.DecodeDictSpans([]byte(bad))
		assert.ErrorIs(t, err, bencode.ErrSyntax, bad)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []any{
		int64(0),
		int64(-9223372036854775808),
		[]byte("hello"),
		[]any{},
		[]any{int64(1), []any{[]byte("x"), bencode.Dict{}}},
		bencode.Dict{
			"announce": []byte("udp://tracker.example:80"),
			"info": bencode.Dict{
				"piece length": int64(65536),
				"pieces":       []byte{0x00, 0xff, 0x10},
				"private":      int64(1),
			},
		},
	}
	for _, v := range values {
		data, err := bencode.EncodeStrict(v)
		require.NoError(t, err)
		decoded, err := bencode.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := bencode.Dict{
		"list": []any{[]byte("abc")},
		"dict": bencode.Dict{"n": int64(1)},
	}
	clone := bencode.Clone(orig).(bencode.Dict)
	clone["list"].([]any)[0].([]byte)[0] = 'z'
	clone["dict"].(bencode.Dict)["n"] = int64(2)
	clone["new"] = int64(3)

	assert.Equal(t, []byte("abc"), orig["list"].([]any)[0])
	assert.Equal(t, int64(1), orig["dict"].(bencode.Dict)["n"])
	assert.NotContains(t, orig, "new")
}

func FuzzRoundTrip(f *testing.F) {
	for _, seed := range []string{"i42e", "4:spam", "li1e1:xe", "d1:ai1e1:bi2ee", "de"} {
		f.Add([]byte(seed))
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		v, err := bencode.Decode(data)
		if err != nil {
			return
		}
		encoded, err := bencode.EncodeStrict(v)
		if err != nil {
			t.Fatalf("decoded value failed to encode: %s", err)
		}
		again, err := bencode.Decode(encoded)
		if err != nil {
			t.Fatalf("canonical output failed to decode: %s", err)
		}
		reencoded, err := bencode.EncodeStrict(again)
		if err != nil {
			t.Fatalf("second encode failed: %s", err)
		}
		if string(encoded) != string(reencoded) {
			t.Fatalf("encoding not stable: %q != %q", encoded, reencoded)
		}
	})
}
