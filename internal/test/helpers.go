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

package test

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blinklabs-io/gotorrent/bencode"
)

// SampleAnnounce is the tracker URL of SampleTorrent
const SampleAnnounce = "http://tracker.example.com:6969/announce"

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.Join(strings.Fields(hexData), "")
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// SampleInfo returns the info dictionary of a single file torrent with one
// piece
func SampleInfo() bencode.Dict {
	return bencode.Dict{
		"length":       int64(11),
		"name":         []byte("hello.txt"),
		"piece length": int64(16384),
		// SHA-1 of "hello world"
		"pieces": DecodeHexString("2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"),
	}
}

// SampleTorrent returns the canonical encoding of a metainfo file wrapping
// SampleInfo
func SampleTorrent() []byte {
	data, err := bencode.EncodeStrict(bencode.Dict{
		"announce":      []byte(SampleAnnounce),
		"comment":       []byte("sample torrent"),
		"created by":    []byte("gotorrent"),
		"creation date": int64(1700000000),
		"info":          SampleInfo(),
	})
	if err != nil {
		panic(fmt.Sprintf("error encoding sample torrent: %s", err))
	}
	return data
}

// WriteTempFile writes data to a new file in a per-test temporary directory
// and returns its path
func WriteTempFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %s", path, err)
	}
	return path
}
