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
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// Windows code pages written by BitComet in the "codepage" key
var codepageNames = map[int64]string{
	874:   "windows-874",
	932:   "shift_jis",
	936:   "gbk",
	949:   "euc-kr",
	950:   "big5",
	1250:  "windows-1250",
	1251:  "windows-1251",
	1252:  "windows-1252",
	1253:  "windows-1253",
	1254:  "windows-1254",
	1255:  "windows-1255",
	1256:  "windows-1256",
	1257:  "windows-1257",
	1258:  "windows-1258",
	20866: "koi8-r",
	21866: "koi8-u",
	28591: "iso-8859-1",
	28592: "iso-8859-2",
	28595: "iso-8859-5",
	54936: "gb18030",
	65001: "utf-8",
}

// LookupCharset returns the text encoding for a charset label such as
// "UTF-8" or "GBK". It returns nil for unknown or unsupported labels.
func LookupCharset(name string) encoding.Encoding {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc
	}
	// ianaindex knows a few labels the WHATWG index does not, and returns a
	// nil encoding for labels it recognizes but cannot handle
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc
	}
	return nil
}

// LookupCodepage returns the text encoding for a Windows code page number, or
// nil if the code page is unknown
func LookupCodepage(codepage int64) encoding.Encoding {
	name, ok := codepageNames[codepage]
	if !ok {
		return nil
	}
	return LookupCharset(name)
}
