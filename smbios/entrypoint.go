// Copyright 2017 DigitalOcean.
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
	"fmt"
	"io"
)

// Anchor strings used to detect entry points.
var (
	magic32 = []byte("_SM_")
	magic64 = []byte("_SM3_")
)

const (
	// Entry points are aligned on paragraph (16 byte) boundaries.
	paragraph = 16

	// Minimum entry point lengths as of SMBIOS 3.1.1.
	expLen32 = 31
	expLen64 = 24

	// Indices of the checksum byte within each entry point.
	chkIndex32 = 4
	chkIndex64 = 5

	// Indices of the entry point length byte.
	lenIndex32 = 5
	lenIndex64 = 6
)

// An EntryPoint is an SMBIOS entry point.  EntryPoints contain various
// properties about SMBIOS, including its major, minor, and revision version
// numbers, and the location and size of the structure table.
//
// Use a type assertion to access detailed EntryPoint information.
type EntryPoint interface {
	// Version returns the SMBIOS version numbers.
	Version() (major, minor, revision int)
	// Table returns the structure table address and its length in bytes.
	Table() (address, size int)
	// NumberStructures returns the declared number of structures in the
	// table, or 0 if the entry point does not bound it.
	NumberStructures() int
}

// VersionOf returns the comparable SMBIOS version of an EntryPoint.
func VersionOf(ep EntryPoint) Version {
	major, minor, _ := ep.Version()
	return Version{Major: uint8(major), Minor: uint8(minor)}
}

// FindAnchor scans b on 16 byte boundaries for an entry point anchor string
// and returns the offset of the first one found.
func FindAnchor(b []byte) (int, bool) {
	for off := 0; off < len(b); off += paragraph {
		chunk := b[off:]
		if bytes.HasPrefix(chunk, magic32) || bytes.HasPrefix(chunk, magic64) {
			return off, true
		}
	}

	return 0, false
}

// FindEntryPoint locates and validates the first entry point in b, returning
// it along with its offset.
func FindEntryPoint(b []byte) (EntryPoint, int, error) {
	off, ok := FindAnchor(b)
	if !ok {
		return nil, 0, ErrAnchorNotFound
	}

	ep, err := Validate(b, off)
	if err != nil {
		return nil, 0, err
	}

	return ep, off, nil
}

// Validate parses and validates the entry point whose anchor begins at
// offset off in b.
//
// The entry point's declared length must be at least the minimum header size
// for its format and fit within b, and the bytes it covers must sum to zero.
func Validate(b []byte, off int) (EntryPoint, error) {
	if off < 0 || off > len(b) {
		return nil, ErrAnchorNotFound
	}
	sub := b[off:]

	var minLen, lenIndex int
	switch {
	case bytes.HasPrefix(sub, magic32):
		minLen, lenIndex = expLen32, lenIndex32
	case bytes.HasPrefix(sub, magic64):
		minLen, lenIndex = expLen64, lenIndex64
	default:
		return nil, ErrAnchorNotFound
	}

	if len(sub) < minLen {
		return nil, &EntrySizeError{Size: len(sub)}
	}

	length := int(sub[lenIndex])
	if length < minLen {
		return nil, &EntrySizeError{Size: length}
	}
	if len(sub) < length {
		return nil, &EntrySizeError{Size: len(sub)}
	}

	if sum := checksum(sub[:length]); sum != 0 {
		return nil, &ChecksumError{Sum: sum}
	}

	if minLen == expLen32 {
		ep := parse32(sub)
		if ep.Major < 2 {
			return nil, &EntryVersionError{Major: ep.Major}
		}
		return ep, nil
	}

	ep := parse64(sub)
	if ep.Major < 2 {
		return nil, &EntryVersionError{Major: ep.Major}
	}
	return ep, nil
}

// ParseEntryPoint parses an EntryPoint from the input stream. The anchor
// must be at the start of the stream, as it is in sysfs.
func ParseEntryPoint(r io.Reader) (EntryPoint, error) {
	// Prevent unbounded reads since this structure should be small.
	b, err := io.ReadAll(io.LimitReader(r, 64))
	if err != nil {
		return nil, err
	}

	if l := len(b); l < 4 {
		return nil, fmt.Errorf("too few bytes for SMBIOS entry point magic: %d: %w", l, ErrAnchorNotFound)
	}

	return Validate(b, 0)
}

var _ EntryPoint = &EntryPoint32Bit{}

// EntryPoint32Bit is the SMBIOS 32-bit Entry Point structure, used starting
// in SMBIOS 2.1.
type EntryPoint32Bit struct {
	Anchor                string
	Checksum              uint8
	Length                uint8
	Major                 uint8
	Minor                 uint8
	MaxStructureSize      uint16
	EntryPointRevision    uint8
	FormattedArea         [5]byte
	IntermediateAnchor    string
	IntermediateChecksum  uint8
	StructureTableLength  uint16
	StructureTableAddress uint32
	NumberOfStructures    uint16
	BCDRevision           uint8
}

// Version implements EntryPoint.
func (e *EntryPoint32Bit) Version() (major, minor, revision int) {
	return int(e.Major), int(e.Minor), 0
}

// Table implements EntryPoint.
func (e *EntryPoint32Bit) Table() (address, size int) {
	return int(e.StructureTableAddress), int(e.StructureTableLength)
}

// NumberStructures implements EntryPoint.
func (e *EntryPoint32Bit) NumberStructures() int {
	return int(e.NumberOfStructures)
}

// parse32 parses an EntryPoint32Bit from b, which must already be validated.
func parse32(b []byte) *EntryPoint32Bit {
	ep := &EntryPoint32Bit{
		Anchor:                string(b[0:4]),
		Checksum:              b[chkIndex32],
		Length:                b[lenIndex32],
		Major:                 b[6],
		Minor:                 b[7],
		MaxStructureSize:      binary.LittleEndian.Uint16(b[8:10]),
		EntryPointRevision:    b[10],
		IntermediateAnchor:    string(b[16:21]),
		IntermediateChecksum:  b[21],
		StructureTableLength:  binary.LittleEndian.Uint16(b[22:24]),
		StructureTableAddress: binary.LittleEndian.Uint32(b[24:28]),
		NumberOfStructures:    binary.LittleEndian.Uint16(b[28:30]),
		BCDRevision:           b[30],
	}
	copy(ep.FormattedArea[:], b[11:16])

	return ep
}

var _ EntryPoint = &EntryPoint64Bit{}

// EntryPoint64Bit is the SMBIOS 64-bit Entry Point structure, used starting
// in SMBIOS 3.0.
type EntryPoint64Bit struct {
	Anchor                string
	Checksum              uint8
	Length                uint8
	Major                 uint8
	Minor                 uint8
	Revision              uint8
	EntryPointRevision    uint8
	Reserved              uint8
	StructureTableMaxSize uint32
	StructureTableAddress uint64
}

// Version implements EntryPoint.
func (e *EntryPoint64Bit) Version() (major, minor, revision int) {
	return int(e.Major), int(e.Minor), int(e.Revision)
}

// Table implements EntryPoint.
func (e *EntryPoint64Bit) Table() (address, size int) {
	return int(e.StructureTableAddress), int(e.StructureTableMaxSize)
}

// NumberStructures implements EntryPoint. The 64-bit entry point carries no
// structure count; the table ends with its End-of-Table structure.
func (e *EntryPoint64Bit) NumberStructures() int {
	return 0
}

// parse64 parses an EntryPoint64Bit from b, which must already be validated.
func parse64(b []byte) *EntryPoint64Bit {
	return &EntryPoint64Bit{
		Anchor:                string(b[0:5]),
		Checksum:              b[chkIndex64],
		Length:                b[lenIndex64],
		Major:                 b[7],
		Minor:                 b[8],
		Revision:              b[9],
		EntryPointRevision:    b[10],
		Reserved:              b[11],
		StructureTableMaxSize: binary.LittleEndian.Uint32(b[12:16]),
		StructureTableAddress: binary.LittleEndian.Uint64(b[16:24]),
	}
}

// checksum returns the modulo 256 sum of every byte in b. A valid entry point
// sums to zero, since its checksum byte is chosen to make it so.
func checksum(b []byte) uint8 {
	var chk uint8
	for _, v := range b {
		chk += v
	}

	return chk
}
