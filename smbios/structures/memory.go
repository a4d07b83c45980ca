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

// A MemoryArrayLocation is the physical location of a memory array.
type MemoryArrayLocation uint8

var memoryArrayLocations = []string{
	1:  "Other",
	2:  "Unknown",
	3:  "System board or motherboard",
	4:  "ISA add-on card",
	5:  "EISA add-on card",
	6:  "PCI add-on card",
	7:  "MCA add-on card",
	8:  "PCMCIA add-on card",
	9:  "Proprietary add-on card",
	10: "NuBus",
	11: "PC-98/C20 add-on card",
	12: "PC-98/C24 add-on card",
	13: "PC-98/E add-on card",
	14: "PC-98/Local bus add-on card",
	15: "CXL add-on card",
}

func (l MemoryArrayLocation) String() string { return enumString(memoryArrayLocations, uint8(l)) }

// MarshalText implements encoding.TextMarshaler.
func (l MemoryArrayLocation) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// A MemoryArrayUse is the function a memory array serves.
type MemoryArrayUse uint8

var memoryArrayUses = []string{
	1: "Other",
	2: "Unknown",
	3: "System memory",
	4: "Video memory",
	5: "Flash memory",
	6: "Non-volatile RAM",
	7: "Cache memory",
}

func (u MemoryArrayUse) String() string { return enumString(memoryArrayUses, uint8(u)) }

// MarshalText implements encoding.TextMarshaler.
func (u MemoryArrayUse) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// A MemoryErrorCorrection is the error correction scheme of a memory array.
type MemoryErrorCorrection uint8

var memoryErrorCorrections = []string{
	1: "Other",
	2: "Unknown",
	3: "None",
	4: "Parity",
	5: "Single-bit ECC",
	6: "Multi-bit ECC",
	7: "CRC",
}

func (c MemoryErrorCorrection) String() string { return enumString(memoryErrorCorrections, uint8(c)) }

// MarshalText implements encoding.TextMarshaler.
func (c MemoryErrorCorrection) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// PhysicalMemoryArray is a Physical Memory Array (type 16) structure.
type PhysicalMemoryArray struct {
	Handle          uint16
	Location        MemoryArrayLocation
	Use             MemoryArrayUse
	ErrorCorrection MemoryErrorCorrection

	// MaximumCapacity is in kilobytes. It is nil when the capacity is only
	// given by ExtendedMaximumCapacity.
	MaximumCapacity *uint32

	// ErrorInformationHandle is nil if no error information is provided.
	ErrorInformationHandle *uint16
	NumberOfDevices        uint16

	// ExtendedMaximumCapacity is in bytes and available since SMBIOS 2.7.
	ExtendedMaximumCapacity *uint64
}

// Capacity returns the maximum capacity of the array in bytes.
func (a *PhysicalMemoryArray) Capacity() uint64 {
	if a.MaximumCapacity != nil {
		return uint64(*a.MaximumCapacity) << 10
	}
	if a.ExtendedMaximumCapacity != nil {
		return *a.ExtendedMaximumCapacity
	}

	return 0
}

// NewPhysicalMemoryArray decodes a Physical Memory Array structure.
func NewPhysicalMemoryArray(s *smbios.Structure) (*PhysicalMemoryArray, error) {
	if err := checkType(s, smbios.TypePhysicalMemoryArray); err != nil {
		return nil, err
	}

	r := &reader{s: s}
	a := &PhysicalMemoryArray{
		Handle:                 s.Handle(),
		Location:               MemoryArrayLocation(r.u8(0x04)),
		Use:                    MemoryArrayUse(r.u8(0x05)),
		ErrorCorrection:        MemoryErrorCorrection(r.u8(0x06)),
		MaximumCapacity:        optional(r.u32(0x07), 0x80000000),
		ErrorInformationHandle: optional(r.u16(0x0b), 0xfffe),
		NumberOfDevices:        r.u16(0x0d),
	}

	if s.Version.AtLeast(2, 7) && a.MaximumCapacity == nil && r.has(0x0f, 8) {
		a.ExtendedMaximumCapacity = optional(r.u64(0x0f), 0)
	}

	if r.err != nil {
		return nil, r.err
	}

	return a, nil
}

// MemoryTypeDetail is the layout of the Memory Device Type Detail word.
var MemoryTypeDetail = bitfield.New(16,
	bitfield.Res("Reserved", 1),
	bitfield.Sig("Other"),
	bitfield.Sig("Unknown"),
	bitfield.Sig("Fast-paged"),
	bitfield.Sig("Static column"),
	bitfield.Sig("Pseudo-static"),
	bitfield.Sig("RAMBUS"),
	bitfield.Sig("Synchronous"),
	bitfield.Sig("CMOS"),
	bitfield.Sig("EDO"),
	bitfield.Sig("Window DRAM"),
	bitfield.Sig("Cache DRAM"),
	bitfield.Sig("Non-volatile"),
	bitfield.SigLong("Registered", "Registered (Buffered)"),
	bitfield.SigLong("Unbuffered", "Unbuffered (Unregistered)"),
	bitfield.Sig("LRDIMM"),
)

// A MemoryFormFactor is the implementation form of a memory device.
type MemoryFormFactor uint8

var memoryFormFactors = []string{
	1:  "Other",
	2:  "Unknown",
	3:  "SIMM",
	4:  "SIP",
	5:  "Chip",
	6:  "DIP",
	7:  "ZIP",
	8:  "Proprietary Card",
	9:  "DIMM",
	10: "TSOP",
	11: "Row of chips",
	12: "RIMM",
	13: "SODIMM",
	14: "SRIMM",
	15: "FB-DIMM",
	16: "Die",
}

func (f MemoryFormFactor) String() string { return enumString(memoryFormFactors, uint8(f)) }

// MarshalText implements encoding.TextMarshaler.
func (f MemoryFormFactor) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// A MemoryType is the memory technology of a memory device.
type MemoryType uint8

var memoryTypes = []string{
	1:  "Other",
	2:  "Unknown",
	3:  "DRAM",
	4:  "EDRAM",
	5:  "VRAM",
	6:  "SRAM",
	7:  "RAM",
	8:  "ROM",
	9:  "Flash",
	10: "EEPROM",
	11: "FEPROM",
	12: "EPROM",
	13: "CDRAM",
	14: "3DRAM",
	15: "SDRAM",
	16: "SGRAM",
	17: "RDRAM",
	18: "DDR",
	19: "DDR2",
	20: "DDR2 FB-DIMM",
	24: "DDR3",
	25: "FBD2",
	26: "DDR4",
	27: "LPDDR",
	28: "LPDDR2",
	29: "LPDDR3",
	30: "LPDDR4",
	31: "Logical non-volatile device",
	32: "HBM",
	33: "HBM2",
	34: "DDR5",
	35: "LPDDR5",
	36: "HBM3",
}

func (t MemoryType) String() string { return enumString(memoryTypes, uint8(t)) }

// MarshalText implements encoding.TextMarshaler.
func (t MemoryType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// MemoryDevice is a Memory Device (type 17) structure. Fields after the
// type detail are optional and decoded only when the structure is long
// enough to hold them.
type MemoryDevice struct {
	Handle               uint16
	PhysicalMemoryHandle uint16

	// ErrorInformationHandle is nil if no error information is provided.
	ErrorInformationHandle *uint16

	// Widths are in bits and nil when unknown.
	TotalWidth *uint16
	DataWidth  *uint16

	// RawSize is the Size field, nil when unknown. Use Size to interpret it.
	RawSize *uint16

	FormFactor    MemoryFormFactor
	DeviceSet     uint8
	DeviceLocator string
	BankLocator   string
	Type          MemoryType
	TypeDetail    bitfield.Field[uint16]

	// Speeds are in MT/s.
	Speed           *uint16
	Manufacturer    string
	SerialNumber    string
	AssetTag        string
	PartNumber      string
	Attributes      *uint8
	ExtendedSize    *uint32
	ConfiguredSpeed *uint16

	// Voltages are in millivolts.
	MinimumVoltage    *uint16
	MaximumVoltage    *uint16
	ConfiguredVoltage *uint16
}

// memoryDeviceMinLen is the length of an SMBIOS 2.1 memory device.
const memoryDeviceMinLen = 0x15

// Size returns the size of the memory device in bytes. It returns false if
// the size is unknown. A size of 0 means no module is installed.
func (d *MemoryDevice) Size() (uint64, bool) {
	if d.RawSize == nil {
		return 0, false
	}

	size := *d.RawSize
	switch {
	case size == 0x7fff && d.ExtendedSize != nil:
		// The extended size is always in megabytes.
		return uint64(*d.ExtendedSize&0x7fffffff) << 20, true
	case size&0x8000 != 0:
		return uint64(size&0x7fff) << 10, true
	default:
		return uint64(size) << 20, true
	}
}

// NewMemoryDevice decodes a Memory Device structure.
func NewMemoryDevice(s *smbios.Structure) (*MemoryDevice, error) {
	if err := checkType(s, smbios.TypeMemoryDevice); err != nil {
		return nil, err
	}
	if err := minLength(s, memoryDeviceMinLen); err != nil {
		return nil, err
	}

	r := &reader{s: s}
	d := &MemoryDevice{
		Handle:                 s.Handle(),
		PhysicalMemoryHandle:   r.u16(0x04),
		ErrorInformationHandle: optional(r.u16(0x06), 0xfffe),
		TotalWidth:             optional(r.u16(0x08), 0xffff),
		DataWidth:              optional(r.u16(0x0a), 0xffff),
		RawSize:                optional(r.u16(0x0c), 0xffff),
		FormFactor:             MemoryFormFactor(r.u8(0x0e)),
		DeviceSet:              r.u8(0x0f),
		DeviceLocator:          r.str(0x10),
		BankLocator:            r.str(0x11),
		Type:                   MemoryType(r.u8(0x12)),
		TypeDetail:             bitfield.NewField(r.u16(0x13), MemoryTypeDetail),
	}

	if r.has(0x15, 2) {
		d.Speed = optional(r.u16(0x15), 0)
	}
	if r.has(0x17, 4) {
		d.Manufacturer = r.str(0x17)
		d.SerialNumber = r.str(0x18)
		d.AssetTag = r.str(0x19)
		d.PartNumber = r.str(0x1a)
	}
	if r.has(0x1b, 1) {
		attr := r.u8(0x1b)
		d.Attributes = &attr
	}
	if r.has(0x1c, 4) {
		ext := r.u32(0x1c)
		d.ExtendedSize = &ext
	}
	if r.has(0x20, 2) {
		d.ConfiguredSpeed = optional(r.u16(0x20), 0)
	}
	if r.has(0x22, 6) {
		d.MinimumVoltage = optional(r.u16(0x22), 0)
		d.MaximumVoltage = optional(r.u16(0x24), 0)
		d.ConfiguredVoltage = optional(r.u16(0x26), 0)
	}

	if r.err != nil {
		return nil, r.err
	}

	return d, nil
}
