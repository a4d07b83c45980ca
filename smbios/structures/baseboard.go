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
	"encoding/binary"
	"iter"

	"github.com/yywing/go-smbios/smbios"
	"github.com/yywing/go-smbios/smbios/bitfield"
)

// BaseBoardFeatures is the layout of the baseboard Feature Flags byte.
var BaseBoardFeatures = bitfield.New(8,
	bitfield.SigLong("Board is a hosting board", "The board is a hosting board (for example, a motherboard)"),
	bitfield.SigLong("Board requires at least one daughter board", "The board requires at least one daughter board or auxiliary card to function properly"),
	bitfield.SigLong("Board is removable", "The board is removable"),
	bitfield.SigLong("Board is replaceable", "The board is replaceable"),
	bitfield.SigLong("Board is hot swappable", "The board is hot swappable"),
	bitfield.Res("Reserved", 3),
)

// A BoardType is the kind of board a baseboard structure describes.
type BoardType uint8

var boardTypes = []string{
	1:  "Unknown",
	2:  "Other",
	3:  "Server Blade",
	4:  "Connectivity Switch",
	5:  "System Management Module",
	6:  "Processor Module",
	7:  "I/O Module",
	8:  "Memory Module",
	9:  "Daughter board",
	10: "Motherboard (includes processor, memory, and I/O)",
	11: "Processor/Memory Module",
	12: "Processor/IO Module",
	13: "Interconnect board",
}

func (b BoardType) String() string { return enumString(boardTypes, uint8(b)) }

// MarshalText implements encoding.TextMarshaler.
func (b BoardType) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// BaseBoard is a Baseboard Information (type 2) structure. Every field after
// the serial number is optional and present only if the structure is long
// enough to hold it.
type BaseBoard struct {
	Handle       uint16
	Manufacturer string
	Product      string
	Version      string
	SerialNumber string

	AssetTag          *string
	Features          *bitfield.Field[uint8]
	LocationInChassis *string
	ChassisHandle     *uint16
	BoardType         *BoardType
	ContainedHandles  []uint16
}

// NewBaseBoard decodes a Baseboard Information structure.
func NewBaseBoard(s *smbios.Structure) (*BaseBoard, error) {
	if err := checkType(s, smbios.TypeBaseBoard); err != nil {
		return nil, err
	}

	r := &reader{s: s}
	b := &BaseBoard{
		Handle:       s.Handle(),
		Manufacturer: r.str(0x04),
		Product:      r.str(0x05),
		Version:      r.str(0x06),
		SerialNumber: r.str(0x07),
	}

	if r.has(0x08, 1) {
		asset := r.str(0x08)
		b.AssetTag = &asset
	}
	if r.has(0x09, 1) {
		f := bitfield.NewField(r.u8(0x09), BaseBoardFeatures)
		b.Features = &f
	}
	if r.has(0x0a, 1) {
		loc := r.str(0x0a)
		b.LocationInChassis = &loc
	}
	if r.has(0x0b, 2) {
		h := r.u16(0x0b)
		b.ChassisHandle = &h
	}
	if r.has(0x0d, 1) {
		t := BoardType(r.u8(0x0d))
		b.BoardType = &t
	}
	if r.has(0x0e, 1) {
		n := int(r.u8(0x0e))
		for h := range words(r.bytes(0x0f, 2*n)) {
			b.ContainedHandles = append(b.ContainedHandles, h)
		}
	}

	if r.err != nil {
		return nil, r.err
	}

	return b, nil
}

// words yields the little-endian words of b.
func words(b []byte) iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		for ; len(b) >= 2; b = b[2:] {
			if !yield(binary.LittleEndian.Uint16(b)) {
				return
			}
		}
	}
}
