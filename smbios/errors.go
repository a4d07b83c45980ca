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

package smbios

import (
	"errors"
	"fmt"
)

// Sentinel errors for each class of failure. Errors returned by this package
// wrap one of these values; use errors.Is to classify them and errors.As to
// recover the diagnostic details.
var (
	ErrAnchorNotFound      = errors.New("smbios: entry point anchor not found")
	ErrEntrySize           = errors.New("smbios: invalid entry point size")
	ErrEntryChecksum       = errors.New("smbios: invalid entry point checksum")
	ErrEntryVersion        = errors.New("smbios: unsupported entry point version")
	ErrStructureSize       = errors.New("smbios: structure extends beyond table")
	ErrUnterminatedStrings = errors.New("smbios: unterminated string set")
	ErrStringIndex         = errors.New("smbios: invalid string index")
	ErrStringEncoding      = errors.New("smbios: string is not valid UTF-8")
	ErrFormattedLength     = errors.New("smbios: invalid formatted section length")
	ErrSliceConversion     = errors.New("smbios: field out of bounds")
	ErrTypeMismatch        = errors.New("smbios: structure type mismatch")
)

// An EntrySizeError reports an entry point whose declared length is
// inconsistent with the minimum header size or with the bytes available.
type EntrySizeError struct {
	Size int
}

func (e *EntrySizeError) Error() string {
	return fmt.Sprintf("%v: %d", ErrEntrySize, e.Size)
}

func (e *EntrySizeError) Unwrap() error { return ErrEntrySize }

// A ChecksumError reports the byte sum computed over an entry point window
// that did not add up to zero.
type ChecksumError struct {
	Sum uint8
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%v: sum %#02x", ErrEntryChecksum, e.Sum)
}

func (e *ChecksumError) Unwrap() error { return ErrEntryChecksum }

// An EntryVersionError reports an entry point older than SMBIOS 2.0.
type EntryVersionError struct {
	Major uint8
}

func (e *EntryVersionError) Error() string {
	return fmt.Sprintf("%v: major version %d is below 2", ErrEntryVersion, e.Major)
}

func (e *EntryVersionError) Unwrap() error { return ErrEntryVersion }

// A StructureSizeError reports a structure whose declared length runs past
// the end of the structure table, or is shorter than its own header.
type StructureSizeError struct {
	Offset int
	Length uint8
}

func (e *StructureSizeError) Error() string {
	return fmt.Sprintf("smbios: structure at offset %d with length %d extends beyond table", e.Offset, e.Length)
}

func (e *StructureSizeError) Unwrap() error { return ErrStructureSize }

// An UnterminatedStringsError reports a structure whose string set has no
// double NUL terminator before the end of the table.
type UnterminatedStringsError struct {
	Offset int
}

func (e *UnterminatedStringsError) Error() string {
	return fmt.Sprintf("smbios: structure at offset %d with unterminated strings", e.Offset)
}

func (e *UnterminatedStringsError) Unwrap() error { return ErrUnterminatedStrings }

// A StringIndexError reports a string reference that is zero or beyond the
// number of strings present in a structure.
type StringIndexError struct {
	Type   InfoType
	Handle uint16
	Index  uint8
}

func (e *StringIndexError) Error() string {
	return fmt.Sprintf("smbios: structure %v with handle %#04x has invalid string index %d", e.Type, e.Handle, e.Index)
}

func (e *StringIndexError) Unwrap() error { return ErrStringIndex }

// A StringEncodingError reports a string whose bytes are not valid UTF-8.
type StringEncodingError struct {
	Type   InfoType
	Handle uint16
	Index  uint8
}

func (e *StringEncodingError) Error() string {
	return fmt.Sprintf("smbios: structure %v with handle %#04x has non UTF-8 string %d", e.Type, e.Handle, e.Index)
}

func (e *StringEncodingError) Unwrap() error { return ErrStringEncoding }

// A FormattedLengthError reports a structure whose formatted section length
// does not match what its version requires.
type FormattedLengthError struct {
	Type   InfoType
	Handle uint16
	Want   int
}

func (e *FormattedLengthError) Error() string {
	return fmt.Sprintf("smbios: structure %v with handle %#04x has invalid formatted section length, expected %d", e.Type, e.Handle, e.Want)
}

func (e *FormattedLengthError) Unwrap() error { return ErrFormattedLength }

// A SliceError reports a field read of Width bytes at Offset that does not
// fit within a structure's formatted section.
type SliceError struct {
	Offset int
	Width  int
}

func (e *SliceError) Error() string {
	return fmt.Sprintf("smbios: cannot read %d bytes at offset %d", e.Width, e.Offset)
}

func (e *SliceError) Unwrap() error { return ErrSliceConversion }

// A TypeMismatchError is returned by structure decoders handed a structure
// of a different type than they decode.
type TypeMismatchError struct {
	Want   InfoType
	Got    InfoType
	Handle uint16
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("smbios: expected structure %v, but got %v with handle %#04x", e.Want, e.Got, e.Handle)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }
