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

package metainfo

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // info hashes are defined as SHA-1
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/blinklabs-io/gotorrent/bencode"
	"github.com/blinklabs-io/gotorrent/field"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const InfoHashSize = sha1.Size

var (
	ErrNoInfo      = errors.New("metainfo: missing info dictionary")
	ErrUnknownName = errors.New("metainfo: unknown field name")
)

var (
	fieldAnnounce     = field.NewURL("Announce", "announce")
	fieldComment      = field.NewString("Comment", "comment")
	fieldCreatedBy    = field.NewString("CreatedBy", "created by")
	fieldCreationDate = field.NewTimestamp(
		"CreationDate",
		"creation date",
		field.TimeRange(time.Unix(0, 0).UTC(), time.Time{}),
	)
	fieldEncoding     = field.NewBytes("Encoding", "encoding")
	fieldCodepage     = field.NewInteger("Codepage", "codepage", field.Range[int64](0, 65535))
	fieldPublisher    = field.NewString("Publisher", "publisher")
	fieldPublisherURL = field.NewURL("PublisherURL", "publisher-url")

	metainfoLayout = field.MustLayout(
		"Metainfo",
		fieldAnnounce,
		fieldComment,
		fieldCreatedBy,
		fieldCreationDate,
		fieldEncoding,
		fieldCodepage,
		fieldPublisher,
		fieldPublisherURL,
	)
)

// Metainfo is a torrent metainfo file. Known top level keys are exposed as
// typed fields; everything else stays in the backing dictionary and is
// written back untouched.
type Metainfo struct {
	data  bencode.Dict
	state field.State
	// Encoded info dictionary as parsed, which may not be canonical
	rawInfo []byte
	path    string
	logger  *slog.Logger
}

type MetainfoOptionFunc func(*Metainfo)

func WithLogger(logger *slog.Logger) MetainfoOptionFunc {
	return func(m *Metainfo) {
		m.logger = logger
	}
}

func newMetainfo(data bencode.Dict, opts ...MetainfoOptionFunc) *Metainfo {
	m := &Metainfo{data: data}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// New returns an empty metainfo
func New(opts ...MetainfoOptionFunc) *Metainfo {
	return newMetainfo(bencode.Dict{}, opts...)
}

// Parse decodes raw metainfo bytes and loads all fields
func Parse(raw []byte, opts ...MetainfoOptionFunc) (*Metainfo, error) {
	data, spans, err := bencode.DecodeDictSpans(raw)
	if err != nil {
		return nil, fmt.Errorf("parse metainfo: %w", err)
	}
	m := newMetainfo(data, opts...)
	if info, ok := spans["info"]; ok {
		m.rawInfo = bytes.Clone(info)
	}
	if err := m.LoadFields(); err != nil {
		return nil, fmt.Errorf("parse metainfo: %w", err)
	}
	m.logger.Debug(
		"parsed metainfo",
		"size", len(raw),
		"fields", m.state.Cached(),
	)
	return m, nil
}

// Load reads and parses the metainfo file at path
func Load(path string, opts ...MetainfoOptionFunc) (*Metainfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load metainfo: %w", err)
	}
	m, err := Parse(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.path = path
	return m, nil
}

// Path returns the file path the metainfo was loaded from, if any
func (m *Metainfo) Path() string {
	return m.path
}

func (m *Metainfo) Data() bencode.Dict {
	return m.data
}

func (m *Metainfo) FieldState() *field.State {
	return &m.state
}

// Charset returns the text encoding of string fields. Loading it pulls the
// "encoding" and "codepage" fields out of the backing dictionary, so these
// are loaded before the first text field which needs them. A recognized
// "encoding" label wins over the code page; UTF-8 is the default.
func (m *Metainfo) Charset() (encoding.Encoding, error) {
	name, hasName, err := fieldEncoding.Get(m)
	if err != nil {
		return nil, err
	}
	codepage, hasCodepage, err := fieldCodepage.Get(m)
	if err != nil {
		return nil, err
	}
	if hasName {
		if enc := LookupCharset(string(name)); enc != nil {
			return enc, nil
		}
		m.logger.Debug("ignoring unknown metainfo encoding", "encoding", string(name))
	}
	if hasCodepage {
		if enc := LookupCodepage(codepage); enc != nil {
			return enc, nil
		}
		m.logger.Debug("ignoring unknown metainfo codepage", "codepage", codepage)
	}
	return unicode.UTF8, nil
}

// LoadFields reloads every field from the backing dictionary. Cached values
// are dropped first, so fields already taken out of the dictionary and not
// saved since come back as none.
func (m *Metainfo) LoadFields() error {
	return metainfoLayout.LoadFields(m)
}

// SaveFields writes every field back to the backing dictionary
func (m *Metainfo) SaveFields() error {
	return metainfoLayout.SaveFields(m)
}

// Fields returns the field descriptors in declaration order
func (m *Metainfo) Fields() []field.Descriptor {
	return metainfoLayout.Fields()
}

// Clear sets the named field to none
func (m *Metainfo) Clear(name string) error {
	f, ok := metainfoLayout.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownName, name)
	}
	return f.Clear(m)
}

// Bytes saves all fields and returns the canonical encoding of the metainfo
func (m *Metainfo) Bytes() ([]byte, error) {
	if err := m.SaveFields(); err != nil {
		return nil, fmt.Errorf("save metainfo fields: %w", err)
	}
	data, err := bencode.EncodeStrict(m.data)
	if err != nil {
		return nil, fmt.Errorf("encode metainfo: %w", err)
	}
	return data, nil
}

// Save writes the canonical encoding of the metainfo to path
func (m *Metainfo) Save(path string) error {
	data, err := m.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("save metainfo: %w", err)
	}
	m.logger.Debug("saved metainfo", "path", path, "size", len(data))
	return nil
}

// Info returns the info dictionary
func (m *Metainfo) Info() (bencode.Dict, error) {
	raw, ok := m.data["info"]
	if !ok {
		return nil, ErrNoInfo
	}
	info, ok := raw.(bencode.Dict)
	if !ok {
		return nil, fmt.Errorf("%w: found %T", ErrNoInfo, raw)
	}
	return info, nil
}

// InfoHash returns the SHA-1 hash of the info dictionary. For parsed
// metainfo this is the info dictionary exactly as it appeared in the input,
// even when its keys were not sorted. Otherwise the canonical encoding is
// hashed. Save always writes the canonical encoding.
func (m *Metainfo) InfoHash() ([InfoHashSize]byte, error) {
	info, err := m.Info()
	if err != nil {
		return [InfoHashSize]byte{}, err
	}
	if m.rawInfo != nil {
		return sha1.Sum(m.rawInfo), nil //nolint:gosec
	}
	data, err := bencode.EncodeStrict(info)
	if err != nil {
		return [InfoHashSize]byte{}, fmt.Errorf("encode info dictionary: %w", err)
	}
	return sha1.Sum(data), nil //nolint:gosec
}

func (m *Metainfo) Announce() (string, bool, error) {
	return fieldAnnounce.Get(m)
}

func (m *Metainfo) SetAnnounce(v string) error {
	return fieldAnnounce.Set(m, v)
}

func (m *Metainfo) Comment() (string, bool, error) {
	return fieldComment.Get(m)
}

func (m *Metainfo) SetComment(v string) error {
	return fieldComment.Set(m, v)
}

func (m *Metainfo) CreatedBy() (string, bool, error) {
	return fieldCreatedBy.Get(m)
}

func (m *Metainfo) SetCreatedBy(v string) error {
	return fieldCreatedBy.Set(m, v)
}

func (m *Metainfo) CreationDate() (time.Time, bool, error) {
	return fieldCreationDate.Get(m)
}

func (m *Metainfo) SetCreationDate(v time.Time) error {
	return fieldCreationDate.Set(m, v)
}

// Encoding returns the charset label stored in the "encoding" key
func (m *Metainfo) Encoding() (string, bool, error) {
	v, ok, err := fieldEncoding.Get(m)
	return string(v), ok, err
}

// SetEncoding changes the charset label. Text fields already loaded keep their
// value and are stored in the new charset on save.
func (m *Metainfo) SetEncoding(v string) error {
	return fieldEncoding.Set(m, []byte(v))
}

func (m *Metainfo) Codepage() (int64, bool, error) {
	return fieldCodepage.Get(m)
}

func (m *Metainfo) SetCodepage(v int64) error {
	return fieldCodepage.Set(m, v)
}

func (m *Metainfo) Publisher() (string, bool, error) {
	return fieldPublisher.Get(m)
}

func (m *Metainfo) SetPublisher(v string) error {
	return fieldPublisher.Set(m, v)
}

func (m *Metainfo) PublisherURL() (string, bool, error) {
	return fieldPublisherURL.Get(m)
}

func (m *Metainfo) SetPublisherURL(v string) error {
	return fieldPublisherURL.Set(m, v)
}
