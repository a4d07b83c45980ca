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

// Package structures decodes the formatted sections of individual SMBIOS
// structure types.
//
// Each decoder accepts a *smbios.Structure of its own type and returns a
// typed value; fields introduced by later SMBIOS versions are only decoded
// when the structure's version includes them.
//
// Field offsets in this package are written as they appear in the DMTF
// SMBIOS specification, counting from the start of the structure header.
package structures

import (
	"fmt"

	"github.com/yywing/go-smbios/smbios"
)

// headerLen is subtracted from specification offsets to address the
// formatted section.
const headerLen = 4

// Decode decodes s into the typed value for its structure type, such as a
// *BIOS or a *MemoryDevice. Structures of types this package does not
// decode are returned as is.
func Decode(s *smbios.Structure) (any, error) {
	switch s.Type() {
	case smbios.TypeBIOS:
		return NewBIOS(s)
	case smbios.TypeSystem:
		return NewSystem(s)
	case smbios.TypeBaseBoard:
		return NewBaseBoard(s)
	case smbios.TypeProcessor:
		return NewProcessor(s)
	case smbios.TypeOEMStrings:
		return NewOEMStrings(s)
	case smbios.TypeSystemConfigurationOptions:
		return NewSystemConfigurationOptions(s)
	case smbios.TypeBIOSLanguage:
		return NewBIOSLanguage(s)
	case smbios.TypeGroupAssociations:
		return NewGroupAssociations(s)
	case smbios.TypePhysicalMemoryArray:
		return NewPhysicalMemoryArray(s)
	case smbios.TypeMemoryDevice:
		return NewMemoryDevice(s)
	case smbios.TypePortableBattery:
		return NewPortableBattery(s)
	default:
		return s, nil
	}
}

// checkType verifies that s is a structure of type want.
func checkType(s *smbios.Structure, want smbios.InfoType) error {
	if got := s.Type(); got != want {
		return &smbios.TypeMismatchError{Want: want, Got: got, Handle: s.Handle()}
	}

	return nil
}

// minLength verifies that s declares at least length bytes, header
// included.
func minLength(s *smbios.Structure, length int) error {
	if s.Len() < length || len(s.Formatted) < length-headerLen {
		return &smbios.FormattedLengthError{Type: s.Type(), Handle: s.Handle(), Want: length}
	}

	return nil
}

// A reader reads fields at specification offsets and keeps the first error
// it encounters, so decoders can read a run of fields and check once.
type reader struct {
	s   *smbios.Structure
	err error
}

// has reports whether width bytes at off are present in the structure.
func (r *reader) has(off, width int) bool {
	_, ok := r.s.Slice(off-headerLen, width)
	return ok
}

func (r *reader) u8(off int) uint8 {
	return read[uint8](r, off)
}

func (r *reader) u16(off int) uint16 {
	return read[uint16](r, off)
}

func (r *reader) u32(off int) uint32 {
	return read[uint32](r, off)
}

func (r *reader) u64(off int) uint64 {
	return read[uint64](r, off)
}

// str resolves the string referenced by the byte at off. A reference of 0
// means no string is present and yields "".
func (r *reader) str(off int) string {
	i := r.u8(off)
	if r.err != nil || i == 0 {
		return ""
	}

	s, err := r.s.FindString(i)
	if err != nil {
		r.err = err
	}

	return s
}

// bytes returns n bytes starting at off.
func (r *reader) bytes(off, n int) []byte {
	if r.err != nil {
		return nil
	}

	b, ok := r.s.Slice(off-headerLen, n)
	if !ok {
		r.err = &smbios.SliceError{Offset: off - headerLen, Width: n}
	}

	return b
}

func read[T smbios.Unsigned](r *reader, off int) T {
	if r.err != nil {
		return 0
	}

	v, err := smbios.Read[T](r.s, off-headerLen)
	if err != nil {
		r.err = err
	}

	return v
}

// optional returns a pointer to v, or nil if v is the field's "not
// provided" marker.
func optional[T comparable](v, none T) *T {
	if v == none {
		return nil
	}

	return &v
}

// enumString returns names[v], or a placeholder for values without a name.
func enumString(names []string, v uint8) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}

	return fmt.Sprintf("Undefined: %d", v)
}
