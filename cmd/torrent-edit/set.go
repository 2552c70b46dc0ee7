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

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blinklabs-io/gotorrent/field"
	"github.com/blinklabs-io/gotorrent/metainfo"
)

type setFlags struct {
	announce     string
	comment      string
	createdBy    string
	creationDate string
	encoding     string
	publisher    string
	publisherURL string
	clear        []string
	output       string
}

func (a *app) set(args []string) error {
	var opts setFlags
	flagset := a.newCommandFlags("set", "FILE")
	flagset.StringVar(&opts.announce, "announce", "", "tracker announce URL")
	flagset.StringVar(&opts.comment, "comment", "", "free form comment")
	flagset.StringVar(&opts.createdBy, "created-by", "", "name of the creating program")
	flagset.StringVar(
		&opts.creationDate,
		"creation-date",
		"",
		`creation time as RFC 3339, Unix seconds or "now"`,
	)
	flagset.StringVar(&opts.encoding, "encoding", "", "charset label for text fields, e.g. UTF-8")
	flagset.StringVar(&opts.publisher, "publisher", "", "publisher name")
	flagset.StringVar(&opts.publisherURL, "publisher-url", "", "publisher URL")
	flagset.StringSliceVar(
		&opts.clear,
		"clear",
		nil,
		"remove a field by name or key (repeatable)",
	)
	flagset.StringVarP(&opts.output, "output", "o", "", "write to this path instead of FILE")
	if err := parseCommandFlags(flagset, args, 1, 1); err != nil {
		return err
	}
	path := flagset.Arg(0)
	m, err := a.load(path)
	if err != nil {
		return err
	}

	// The charset goes first so text fields are checked against it
	if flagset.Changed("encoding") {
		if metainfo.LookupCharset(opts.encoding) == nil {
			return fmt.Errorf("unknown encoding: %s", opts.encoding)
		}
		if err := m.SetEncoding(opts.encoding); err != nil {
			return err
		}
	}
	setters := []struct {
		flag   string
		value  string
		setter func(string) error
	}{
		{flag: "announce", value: opts.announce, setter: m.SetAnnounce},
		{flag: "comment", value: opts.comment, setter: m.SetComment},
		{flag: "created-by", value: opts.createdBy, setter: m.SetCreatedBy},
		{flag: "publisher", value: opts.publisher, setter: m.SetPublisher},
		{flag: "publisher-url", value: opts.publisherURL, setter: m.SetPublisherURL},
	}
	for _, s := range setters {
		if !flagset.Changed(s.flag) {
			continue
		}
		if err := s.setter(s.value); err != nil {
			return fmt.Errorf("--%s: %w", s.flag, err)
		}
	}
	if flagset.Changed("creation-date") {
		created, err := parseCreationDate(opts.creationDate, time.Now())
		if err != nil {
			return fmt.Errorf("--creation-date: %w", err)
		}
		if err := m.SetCreationDate(created); err != nil {
			return fmt.Errorf("--creation-date: %w", err)
		}
	}
	for _, name := range opts.clear {
		f, ok := lookupField(m, name)
		if !ok {
			return fmt.Errorf("--clear: %w: %s", metainfo.ErrUnknownName, name)
		}
		if err := m.Clear(f.Name()); err != nil {
			return err
		}
	}
	if err := a.applyDefaults(m); err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = path
	}
	if err := m.Save(output); err != nil {
		return err
	}
	attrs := []any{"path", output}
	if infoHash, err := m.InfoHash(); err == nil {
		attrs = append(attrs, "info_hash", hex.EncodeToString(infoHash[:]))
	}
	a.logger.Info("wrote torrent", attrs...)
	return nil
}

// applyDefaults stamps the configured creator and charset into a torrent
// which has none
func (a *app) applyDefaults(m *metainfo.Metainfo) error {
	if a.cfg.CreatedBy != "" {
		_, ok, err := m.CreatedBy()
		if err != nil {
			return err
		}
		if !ok {
			if err := m.SetCreatedBy(a.cfg.CreatedBy); err != nil {
				return err
			}
		}
	}
	if a.cfg.DefaultEncoding != "" {
		_, hasEncoding, err := m.Encoding()
		if err != nil {
			return err
		}
		_, hasCodepage, err := m.Codepage()
		if err != nil {
			return err
		}
		if !hasEncoding && !hasCodepage {
			if err := m.SetEncoding(a.cfg.DefaultEncoding); err != nil {
				return err
			}
		}
	}
	return nil
}

// lookupField matches a field by name or by dictionary key, ignoring case
func lookupField(m *metainfo.Metainfo, name string) (field.Descriptor, bool) {
	for _, f := range m.Fields() {
		if strings.EqualFold(f.Name(), name) || strings.EqualFold(f.Key(), name) {
			return f, true
		}
	}
	return nil, false
}

func parseCreationDate(value string, now time.Time) (time.Time, error) {
	if value == "now" {
		return time.Unix(now.Unix(), 0).UTC(), nil
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, value)
}
