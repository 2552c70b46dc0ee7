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
	"context"
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/gotorrent/metainfo"
	"github.com/blinklabs-io/gotorrent/pipeline"
)

func (a *app) hash(args []string) error {
	flagset := a.newCommandFlags("hash", "FILE...")
	jobs := addJobsFlag(flagset)
	if err := parseCommandFlags(flagset, args, 1, -1); err != nil {
		return err
	}
	pool := pipeline.NewWorkerPool(
		func(_ context.Context, path string) ([metainfo.InfoHashSize]byte, error) {
			m, err := a.load(path)
			if err != nil {
				return [metainfo.InfoHashSize]byte{}, err
			}
			infoHash, err := m.InfoHash()
			if err != nil {
				return infoHash, fmt.Errorf("%s: %w", path, err)
			}
			return infoHash, nil
		},
		*jobs,
	)
	return pool.Run(
		context.Background(),
		flagset.Args(),
		func(item *pipeline.Item[string, [metainfo.InfoHashSize]byte]) error {
			if item.Err != nil {
				return item.Err
			}
			fmt.Fprintf(a.stdout, "%s  %s\n", hex.EncodeToString(item.Output[:]), item.Input)
			return nil
		},
	)
}
