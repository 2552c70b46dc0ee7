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

package utils_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/blinklabs-io/gotorrent/bencode"
	"github.com/blinklabs-io/gotorrent/internal/test"
	"github.com/blinklabs-io/gotorrent/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpBencodeStructure(t *testing.T) {
	tree := bencode.Dict{
		"b": []any{int64(1), []byte("x")},
		"a": new(big.Int).Lsh(big.NewInt(1), 70),
		"c": bencode.Dict{"d": []byte{0xff, 0x00}},
	}
	expected := strings.Join([]string{
		"{",
		`  "a" => 1180591620717411303424 (bignum),`,
		`  "b" => [`,
		`    1,`,
		`    "x" (length 1),`,
		`  ],`,
		`  "c" => {`,
		`    "d" => <bytes> (length 2),`,
		`  },`,
		"},",
		"",
	}, "\n")
	assert.Equal(t, expected, utils.DumpBencodeStructure(tree, ""))
}

func TestDumpBencodeStructurePrefix(t *testing.T) {
	assert.Equal(t, "> 5,\n", utils.DumpBencodeStructure(int64(5), "> "))
	assert.Equal(
		t,
		"<bytes> (length 100),\n",
		utils.DumpBencodeStructure(make([]byte, 100), ""),
	)
}

func TestDumpSampleTorrent(t *testing.T) {
	tree, err := bencode.Decode(test.SampleTorrent())
	require.NoError(t, err)
	out := utils.DumpBencodeStructure(tree, "")
	assert.Contains(t, out, `"announce" => "`+test.SampleAnnounce+`"`)
	assert.Contains(t, out, `"pieces" => <bytes> (length 20),`)
	assert.Contains(t, out, `"piece length" => 16384,`)
}
