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

package field

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/blinklabs-io/gotorrent/bencode"
)

// Record is implemented by types whose fields are described by a Layout.
// A record is not safe for concurrent use.
type Record interface {
	// Data returns the backing mapping. Fields consume entries from it on
	// load and write entries back on save.
	Data() bencode.Dict
	// FieldState returns the per-instance field cache
	FieldState() *State
}

// State holds the cached field values of one record instance, indexed by the
// position of each descriptor in its layout. The zero value is ready to use.
type State struct {
	values []any
	// present marks fields with a cached value, which may be "none"
	present bitset.BitSet
	// loaded marks fields loaded from the backing mapping since the last reset
	loaded bitset.BitSet
}

func (s *State) value(idx uint) (any, bool) {
	if !s.present.Test(idx) {
		return nil, false
	}
	return s.values[idx], true
}

func (s *State) store(idx uint, v any) {
	if int(idx) >= len(s.values) {
		grown := make([]any, idx+1)
		copy(grown, s.values)
		s.values = grown
	}
	s.values[idx] = v
	s.present.Set(idx)
}

func (s *State) markLoaded(idx uint) {
	s.loaded.Set(idx)
}

func (s *State) isLoaded(idx uint) bool {
	return s.loaded.Test(idx)
}

func (s *State) resetLoaded() {
	s.loaded.ClearAll()
}

// Reset forgets all cached values, so the next access of each field loads it
// from the backing mapping again
func (s *State) Reset() {
	s.values = nil
	s.present.ClearAll()
	s.loaded.ClearAll()
}

// Cached returns the number of fields holding a cached value
func (s *State) Cached() uint {
	return s.present.Count()
}
