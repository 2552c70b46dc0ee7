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
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/blinklabs-io/gotorrent/bencode"
	"github.com/blinklabs-io/gotorrent/metainfo"
	"github.com/blinklabs-io/gotorrent/pipeline"
)

// Each piece is covered by one SHA-1 hash in "pieces"
const pieceHashSize = 20

func (a *app) show(args []string) error {
	flagset := a.newCommandFlags("show", "FILE...")
	jobs := addJobsFlag(flagset)
	if err := parseCommandFlags(flagset, args, 1, -1); err != nil {
		return err
	}
	// Files are loaded in parallel and printed in argument order
	pool := pipeline.NewWorkerPool(
		func(_ context.Context, path string) (string, error) {
			m, err := a.load(path)
			if err != nil {
				return "", err
			}
			var buf bytes.Buffer
			if err := showMetainfo(&buf, path, m); err != nil {
				return "", err
			}
			return buf.String(), nil
		},
		*jobs,
	)
	return pool.Run(
		context.Background(),
		flagset.Args(),
		func(item *pipeline.Item[string, string]) error {
			if item.Err != nil {
				return item.Err
			}
			if item.Seq > 0 {
				fmt.Fprintln(a.stdout)
			}
			fmt.Fprint(a.stdout, item.Output)
			return nil
		},
	)
}

func showMetainfo(w io.Writer, path string, m *metainfo.Metainfo) error {
	printRow := func(name string, value string) {
		fmt.Fprintf(w, "%-14s %s\n", name+":", value)
	}
	printRow("File", path)
	for _, f := range m.Fields() {
		v, ok, err := f.GetValue(m)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !ok {
			continue
		}
		printRow(f.Name(), formatValue(v))
	}
	info, err := m.Info()
	if err != nil {
		printRow("InfoHash", "-")
		return nil
	}
	infoHash, err := m.InfoHash()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	printRow("InfoHash", hex.EncodeToString(infoHash[:]))
	if name, ok := info["name"].([]byte); ok {
		printRow("Name", string(name))
	}
	if size, ok := totalSize(info); ok {
		printRow("Size", fmt.Sprintf("%d", size))
	}
	if pieceLength, ok := info["piece length"].(int64); ok {
		printRow("PieceLength", fmt.Sprintf("%d", pieceLength))
	}
	if pieces, ok := info["pieces"].([]byte); ok {
		printRow("Pieces", fmt.Sprintf("%d", len(pieces)/pieceHashSize))
	}
	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// totalSize returns the content size of a single or multi file torrent
func totalSize(info bencode.Dict) (int64, bool) {
	if length, ok := info["length"].(int64); ok {
		return length, true
	}
	files, ok := info["files"].([]any)
	if !ok {
		return 0, false
	}
	var total int64
	for _, file := range files {
		entry, ok := file.(bencode.Dict)
		if !ok {
			return 0, false
		}
		length, ok := entry["length"].(int64)
		if !ok {
			return 0, false
		}
		total += length
	}
	return total, true
}
