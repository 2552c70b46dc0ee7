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

package metainfo_test

import (
	"bytes"
	"crypto/sha1" //nolint:gosec
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blinklabs-io/gotorrent/bencode"
	"github.com/blinklabs-io/gotorrent/field"
	"github.com/blinklabs-io/gotorrent/internal/test"
	"github.com/blinklabs-io/gotorrent/metainfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSample(t *testing.T) {
	raw := test.SampleTorrent()
	m, err := metainfo.Parse(raw)
	require.NoError(t, err)

	announce, ok, err := m.Announce()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, test.SampleAnnounce, announce)
	comment, _, err := m.Comment()
	require.NoError(t, err)
	assert.Equal(t, "sample torrent", comment)
	createdBy, _, err := m.CreatedBy()
	require.NoError(t, err)
	assert.Equal(t, "gotorrent", createdBy)
	created, ok, err := m.CreationDate()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), created)
	_, ok, err = m.Publisher()
	require.NoError(t, err)
	assert.False(t, ok)

	// Only unknown keys stay behind in the backing mapping
	assert.Equal(t, []string{"info"}, m.Data().Keys())

	out, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestBytesIsCanonical(t *testing.T) {
	m, err := metainfo.Parse([]byte("d1:bi1e1:ai2ee"))
	require.NoError(t, err)
	out, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "d1:ai2e1:bi1ee", string(out))
}

func TestParseErrors(t *testing.T) {
	testDefs := []struct {
		name       string
		raw        []byte
		validation bool
	}{
		{name: "NotADict", raw: []byte("li1ee")},
		{name: "Truncated", raw: []byte("d8:announce")},
		{name: "DuplicateKey", raw: []byte("d1:ai1e1:ai2ee")},
		{
			name:       "NegativeCreationDate",
			raw:        []byte("d13:creation datei-5ee"),
			validation: true,
		},
		{
			name:       "RelativeAnnounce",
			raw:        []byte("d8:announce9:/announcee"),
			validation: true,
		},
		{
			name:       "CodepageRange",
			raw:        []byte("d8:codepagei70000ee"),
			validation: true,
		},
		{
			name:       "EmptyComment",
			raw:        []byte("d7:comment0:e"),
			validation: true,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := metainfo.Parse(testDef.raw)
			require.Error(t, err)
			if testDef.validation {
				assert.ErrorIs(t, err, field.ErrValidation)
			} else {
				assert.ErrorIs(t, err, bencode.ErrSyntax)
			}
		})
	}
}

func TestCodepageCharset(t *testing.T) {
	raw, err := bencode.EncodeStrict(bencode.Dict{
		"codepage": int64(936),
		// "中文" in GBK
		"comment": []byte{0xd6, 0xd0, 0xce, 0xc4},
	})
	require.NoError(t, err)

	m, err := metainfo.Parse(raw)
	require.NoError(t, err)
	comment, _, err := m.Comment()
	require.NoError(t, err)
	assert.Equal(t, "中文", comment)
	codepage, ok, err := m.Codepage()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(936), codepage)

	out, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, raw, out)

	// Switching to UTF-8 re-encodes text fields on save
	require.NoError(t, m.SetEncoding("UTF-8"))
	out, err = m.Bytes()
	require.NoError(t, err)
	reparsed, err := bencode.DecodeDict(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("中文"), reparsed["comment"])
	assert.Equal(t, []byte("UTF-8"), reparsed["encoding"])
}

func TestEncodingWinsOverCodepage(t *testing.T) {
	m, err := metainfo.Parse([]byte("d8:codepagei936e7:comment6:\xe4\xb8\xad\xe6\x96\x878:encoding5:UTF-8e"))
	require.NoError(t, err)
	comment, _, err := m.Comment()
	require.NoError(t, err)
	assert.Equal(t, "中文", comment)
}

func TestUnknownEncodingFallsBack(t *testing.T) {
	testDefs := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "ToCodepage",
			raw:      "d8:codepagei1252e7:comment4:caf\xe98:encoding8:nonsensee",
			expected: "café",
		},
		{
			name:     "ToUTF8",
			raw:      "d7:comment5:caf\xc3\xa98:encoding8:nonsensee",
			expected: "café",
		},
		{
			name:     "UnknownCodepage",
			raw:      "d8:codepagei1e7:comment5:caf\xc3\xa9e",
			expected: "café",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			m, err := metainfo.Parse([]byte(testDef.raw))
			require.NoError(t, err)
			comment, _, err := m.Comment()
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, comment)
		})
	}
}

func TestLookupCharset(t *testing.T) {
	for _, name := range []string{"UTF-8", "utf8", "GBK", "Shift_JIS", " big5 ", "ISO-8859-2"} {
		assert.NotNil(t, metainfo.LookupCharset(name), name)
	}
	assert.Nil(t, metainfo.LookupCharset(""))
	assert.Nil(t, metainfo.LookupCharset("no-such-charset"))
	assert.NotNil(t, metainfo.LookupCodepage(65001))
	assert.Nil(t, metainfo.LookupCodepage(12345))
}

func TestInfoHash(t *testing.T) {
	m, err := metainfo.Parse([]byte("d4:infod4:name1:aee"))
	require.NoError(t, err)
	hash, err := m.InfoHash()
	require.NoError(t, err)
	assert.Equal(t, sha1.Sum([]byte("d4:name1:ae")), hash) //nolint:gosec

	// Records built in memory hash the canonical form
	m = metainfo.New()
	m.Data()["info"] = bencode.Dict{"name": []byte("a"), "0": int64(0)}
	hash, err = m.InfoHash()
	require.NoError(t, err)
	assert.Equal(t, sha1.Sum([]byte("d1:0i0e4:name1:ae")), hash) //nolint:gosec
}

func TestInfoHashUnsortedKeys(t *testing.T) {
	m, err := metainfo.Parse([]byte("d4:infod4:name5:hello6:lengthi5eee"))
	require.NoError(t, err)
	hash, err := m.InfoHash()
	require.NoError(t, err)
	// Hashed as stored, not as re-encoded
	assert.Equal(t, sha1.Sum([]byte("d4:name5:hello6:lengthi5ee")), hash) //nolint:gosec

	// Saving writes canonical order, which is what a reload then hashes
	canonical, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("d4:infod6:lengthi5e4:name5:helloee"), canonical)
	reloaded, err := metainfo.Parse(canonical)
	require.NoError(t, err)
	hash, err = reloaded.InfoHash()
	require.NoError(t, err)
	assert.Equal(t, sha1.Sum([]byte("d6:lengthi5e4:name5:helloe")), hash) //nolint:gosec
}

func TestLoadFieldsDropsUnsavedValues(t *testing.T) {
	m, err := metainfo.Parse([]byte("d7:comment5:helloe"))
	require.NoError(t, err)
	comment, ok, err := m.Comment()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", comment)

	// The comment was taken out of the dictionary by the first load
	require.NoError(t, m.LoadFields())
	_, ok, err = m.Comment()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.SetComment("again"))
	require.NoError(t, m.SaveFields())
	require.NoError(t, m.LoadFields())
	comment, ok, err = m.Comment()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "again", comment)
}

func TestInfoHashMissing(t *testing.T) {
	_, err := metainfo.New().InfoHash()
	assert.ErrorIs(t, err, metainfo.ErrNoInfo)

	m, err := metainfo.Parse([]byte("d4:info3:abce"))
	require.NoError(t, err)
	_, err = m.InfoHash()
	assert.ErrorIs(t, err, metainfo.ErrNoInfo)
}

func TestNewSetAndSave(t *testing.T) {
	m := metainfo.New()
	require.NoError(t, m.SetAnnounce("udp://tracker.example.org:1337"))
	require.NoError(t, m.SetComment("built from scratch"))
	require.NoError(t, m.SetCreationDate(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.NoError(t, m.SetPublisher("Blink Labs"))
	require.NoError(t, m.SetPublisherURL("https://blinklabs.io/"))
	require.NoError(t, m.SetCodepage(65001))
	m.Data()["info"] = test.SampleInfo()

	assert.ErrorIs(t, m.SetCreationDate(time.Unix(-1, 0)), field.ErrValidation)
	assert.ErrorIs(t, m.SetPublisherURL("blinklabs.io"), field.ErrValidation)
	assert.ErrorIs(t, m.SetCodepage(-1), field.ErrValidation)

	path := filepath.Join(t.TempDir(), "new.torrent")
	require.NoError(t, m.Save(path))

	loaded, err := metainfo.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.Path())
	publisher, _, err := loaded.Publisher()
	require.NoError(t, err)
	assert.Equal(t, "Blink Labs", publisher)
	created, _, err := loaded.CreationDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), created)

	expected, err := m.InfoHash()
	require.NoError(t, err)
	actual, err := loaded.InfoHash()
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestClear(t *testing.T) {
	m, err := metainfo.Parse(test.SampleTorrent())
	require.NoError(t, err)

	require.NoError(t, m.Clear("Comment"))
	require.NoError(t, m.Clear("CreationDate"))
	assert.ErrorIs(t, m.Clear("Bogus"), metainfo.ErrUnknownName)

	out, err := m.Bytes()
	require.NoError(t, err)
	reparsed, err := bencode.DecodeDict(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"announce", "created by", "info"}, reparsed.Keys())
}

func TestFieldsOrder(t *testing.T) {
	names := []string{}
	for _, f := range metainfo.New().Fields() {
		names = append(names, f.Name())
	}
	assert.Equal(
		t,
		[]string{
			"Announce",
			"Comment",
			"CreatedBy",
			"CreationDate",
			"Encoding",
			"Codepage",
			"Publisher",
			"PublisherURL",
		},
		names,
	)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := metainfo.Load(filepath.Join(t.TempDir(), "missing.torrent"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadNamesPath(t *testing.T) {
	path := test.WriteTempFile(t, "bad.torrent", []byte("d7:comment0:e"))
	_, err := metainfo.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := metainfo.Parse(test.SampleTorrent(), metainfo.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "parsed metainfo")
}
