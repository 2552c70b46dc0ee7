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

// Package field maps typed, validated attributes onto entries of a decoded
// bencode dictionary.
//
// A record type owns a backing bencode.Dict and a State, and declares its
// fields once in a Layout:
//
//	var (
//	    fieldComment = field.NewString("Comment", "comment")
//	    fieldPieces  = field.NewInteger("Pieces", "pieces", field.AtLeast[int64](1))
//	    layout       = field.MustLayout("Example", fieldComment, fieldPieces)
//	)
//
//	type Example struct {
//	    data  bencode.Dict
//	    state field.State
//	}
//
//	func (e *Example) Data() bencode.Dict        { return e.data }
//	func (e *Example) FieldState() *field.State  { return &e.state }
//
// The backing mapping is the source of truth. The first Get of a field takes
// its entry out of the mapping, validates it and caches the typed value. Set
// only updates the cache; SaveTo (or Layout.SaveFields) writes cached values
// back, removing the key of any field set to none.
//
// Validators run in declaration order: the capability of the field kind
// first (non-empty, URL shape, Unix epoch), then any extra validators. An
// assigned value must also convert to its stored form, which for text fields
// means being representable in the record charset.
package field
