// Copyright 2017-2018 DigitalOcean.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package structures

import (
	"github.com/yywing/go-smbios/smbios"
	"github.com/yywing/go-smbios/smbios/bitfield"
)

// LanguageFlags is the layout of the BIOS Language Flags byte.
var LanguageFlags = bitfield.New(8,
	bitfield.SigLong(
		"Current Language strings use the abbreviated format",
		"If the bit is 0, each language string is in the form \"ISO 639-1 Language Name | "+
			"ISO 3166-1-alpha-2 Territory Name | Encoding Method\". If the bit is 1, each "+
			"language string consists of the two-character \"ISO 639-1 Language Name\" directly "+
			"followed by the two-character \"ISO 3166-1-alpha-2 Territory Name\".",
	),
	bitfield.Res("Reserved", 7),
)

// BIOSLanguage is a BIOS Language Information (type 13) structure.
type BIOSLanguage struct {
	Handle               uint16
	InstallableLanguages []string
	InstallableCount     uint8
	CurrentLanguageIndex uint8
	CurrentLanguage      string
	Flags                *bitfield.Field[uint8]
}

// NewBIOSLanguage decodes a BIOS Language Information structure. The Flags
// byte was added in SMBIOS 2.1 and shifts the current language field by one.
func NewBIOSLanguage(s *smbios.Structure) (*BIOSLanguage, error) {
	if err := checkType(s, smbios.TypeBIOSLanguage); err != nil {
		return nil, err
	}

	r := &reader{s: s}
	l := &BIOSLanguage{
		Handle:               s.Handle(),
		InstallableLanguages: s.AllStrings(),
		InstallableCount:     r.u8(0x04),
	}

	current := 0x14
	if s.Version.AtLeast(2, 1) {
		f := bitfield.NewField(r.u8(0x05), LanguageFlags)
		l.Flags = &f
		current = 0x15
	}

	l.CurrentLanguageIndex = r.u8(current)
	l.CurrentLanguage = r.str(current)

	if r.err != nil {
		return nil, r.err
	}

	return l, nil
}
