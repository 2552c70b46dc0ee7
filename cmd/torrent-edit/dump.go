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
	"encoding/hex"
	"fmt"
	"os"

	"github.com/blinklabs-io/gotorrent/bencode"
	"github.com/blinklabs-io/gotorrent/cbor"
	"github.com/blinklabs-io/gotorrent/utils"
)

func (a *app) dump(args []string) error {
	flagset := a.newCommandFlags("dump", "FILE")
	format := flagset.String("format", "text", "output format (text or cbor)")
	asHex := flagset.Bool("hex", false, "write CBOR output as hex")
	if err := parseCommandFlags(flagset, args, 1, 1); err != nil {
		return err
	}
	path := flagset.Arg(0)
	// Any bencode file can be dumped, metainfo fields are not validated
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tree, err := bencode.Decode(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if a.cfg.Strict {
		canonical, err := bencode.EncodeStrict(tree)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !bytes.Equal(canonical, raw) {
			return fmt.Errorf("%s: %w", path, errNotCanonical)
		}
	}
	switch *format {
	case "text":
		fmt.Fprint(a.stdout, utils.DumpBencodeStructure(tree, ""))
	case "cbor":
		data, err := cbor.FromBencode(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if *asHex {
			fmt.Fprintln(a.stdout, hex.EncodeToString(data))
			return nil
		}
		if _, err := a.stdout.Write(data); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown dump format: %s", *format)
	}
	return nil
}
