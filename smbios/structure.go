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
	"bytes"
	"encoding/binary"
	"iter"
	"unicode/utf8"
)

// A Header is a Structure's header.
type Header struct {
	Type   uint8
	Length uint8
	Handle uint16
}

// A Structure is an SMBIOS structure.
//
// Formatted and Strings are views into the table buffer the Structure was
// decoded from; they must not be modified and are only valid as long as that
// buffer is.
type Structure struct {
	Header  Header
	Version Version

	// Formatted holds the formatted section, excluding the header.
	Formatted []byte

	// Strings holds the raw string set, including its terminating NUL pair.
	Strings []byte
}

// Type returns the structure's type code.
func (s *Structure) Type() InfoType { return InfoType(s.Header.Type) }

// Handle returns the structure's handle.
func (s *Structure) Handle() uint16 { return s.Header.Handle }

// Len returns the declared length of the structure, which includes the
// header but not the string set.
func (s *Structure) Len() int { return int(s.Header.Length) }

// An Unsigned is a fixed width unsigned integer that can be read from a
// structure's formatted section.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Read reads a little-endian T at offset within the formatted section of s.
// Offsets are relative to the end of the 4 byte header, so the DMTF offset
// 04h is offset 0 here.
func Read[T Unsigned](s *Structure, offset int) (T, error) {
	var v T
	width := sizeOf(v)
	if offset < 0 || offset > len(s.Formatted)-width {
		return v, &SliceError{Offset: offset, Width: width}
	}

	b := s.Formatted[offset : offset+width]
	switch width {
	case 1:
		v = T(b[0])
	case 2:
		v = T(binary.LittleEndian.Uint16(b))
	case 4:
		v = T(binary.LittleEndian.Uint32(b))
	default:
		v = T(binary.LittleEndian.Uint64(b))
	}

	return v, nil
}

// sizeOf returns the width of T in bytes.
func sizeOf[T Unsigned](T) int {
	n := 0
	for m := ^T(0); m != 0; m >>= 8 {
		n++
	}
	return n
}

// Byte reads the byte at offset.
func (s *Structure) Byte(offset int) (uint8, error) { return Read[uint8](s, offset) }

// Word reads the little-endian 16-bit value at offset.
func (s *Structure) Word(offset int) (uint16, error) { return Read[uint16](s, offset) }

// Dword reads the little-endian 32-bit value at offset.
func (s *Structure) Dword(offset int) (uint32, error) { return Read[uint32](s, offset) }

// Qword reads the little-endian 64-bit value at offset.
func (s *Structure) Qword(offset int) (uint64, error) { return Read[uint64](s, offset) }

// Slice returns length bytes of the formatted section starting at offset,
// or false if they are not all present. The returned slice aliases the
// table buffer.
func (s *Structure) Slice(offset, length int) ([]byte, bool) {
	if offset < 0 || length < 0 || offset > len(s.Formatted)-length {
		return nil, false
	}

	return s.Formatted[offset : offset+length : offset+length], true
}

// FindString returns the string at 1-based index in the structure's string set.
// An index of 0 means "no string" and, like an index past the last string,
// is reported as an error. Decoders that treat 0 as empty check for it
// first.
func (s *Structure) FindString(index uint8) (string, error) {
	if index == 0 {
		return "", s.stringIndexError(index)
	}

	var n uint8
	for b := range s.rawStrings() {
		n++
		if n != index {
			continue
		}
		if !utf8.Valid(b) {
			return "", &StringEncodingError{Type: s.Type(), Handle: s.Header.Handle, Index: index}
		}
		return string(b), nil
	}

	return "", s.stringIndexError(index)
}

// StringAt reads the string index stored in the byte at offset and resolves
// it with FindString.
func (s *Structure) StringAt(offset int) (string, error) {
	index, err := s.Byte(offset)
	if err != nil {
		return "", err
	}

	return s.FindString(index)
}

// AllStrings returns every string of the string set in order.
func (s *Structure) AllStrings() []string {
	var ss []string
	for b := range s.rawStrings() {
		ss = append(ss, string(b))
	}

	return ss
}

// rawStrings yields each non-empty NUL separated fragment of the string set
// without copying.
func (s *Structure) rawStrings() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		b := s.Strings
		for len(b) > 0 {
			var frag []byte
			if i := bytes.IndexByte(b, 0x00); i >= 0 {
				frag, b = b[:i], b[i+1:]
			} else {
				frag, b = b, nil
			}

			if len(frag) == 0 {
				continue
			}
			if !yield(frag) {
				return
			}
		}
	}
}

func (s *Structure) stringIndexError(index uint8) error {
	return &StringIndexError{Type: s.Type(), Handle: s.Header.Handle, Index: index}
}
