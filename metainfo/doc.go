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

// Package metainfo reads and edits BitTorrent metainfo (.torrent) files.
//
// The well-known top level keys are typed fields declared with the field
// package. Text fields are decoded with the charset named by the "encoding"
// key, or by the BitComet "codepage" key, so torrents written by legacy
// clients keep their original bytes when saved.
package metainfo
