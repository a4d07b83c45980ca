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
	"fmt"
	"strings"

	"github.com/yywing/go-smbios/smbios"
	"github.com/yywing/go-smbios/smbios/bitfield"
)

// ProcessorCharacteristics is the layout of the Processor Characteristics
// word.
var ProcessorCharacteristics = bitfield.New(16,
	bitfield.Res("Reserved", 1),
	bitfield.Sig("Unknown"),
	bitfield.SigLong("64-bit capable", "64-bit Capable"),
	bitfield.SigLong("Multi-Core", "Multi-Core"),
	bitfield.SigLong("Hardware Thread", "Hardware Thread"),
	bitfield.SigLong("Execute Protection", "Execute Protection"),
	bitfield.SigLong("Enhanced Virtualization", "Enhanced Virtualization"),
	bitfield.SigLong("Power/Performance Control", "Power/Performance Control"),
	bitfield.SigLong("128-bit Capable", "128-bit Capable"),
	bitfield.SigLong("Arm64 SoC ID", "Arm64 SoC ID"),
	bitfield.Res("Reserved", 6),
)

// A ProcessorType is the role of a processor.
type ProcessorType uint8

var processorTypes = []string{
	1: "Other",
	2: "Unknown",
	3: "Central Processor",
	4: "Math Processor",
	5: "DSP Processor",
	6: "Video Processor",
}

func (t ProcessorType) String() string { return enumString(processorTypes, uint8(t)) }

// MarshalText implements encoding.TextMarshaler.
func (t ProcessorType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// A ProcessorFamily identifies a processor family. Values above 0xff come
// from the Processor Family 2 field.
type ProcessorFamily uint16

// familyIndicator in the Processor Family byte defers to Processor Family 2.
const familyIndicator = 0xfe

var processorFamilies = map[ProcessorFamily]string{
	0x01:  "Other",
	0x02:  "Unknown",
	0x0b:  "Pentium",
	0x0c:  "Pentium Pro",
	0x0d:  "Pentium II",
	0x0f:  "Celeron",
	0x11:  "Pentium III",
	0x19:  "K5",
	0x1a:  "K6",
	0x1d:  "Athlon",
	0x28:  "Core Duo",
	0x2b:  "Atom",
	0x6b:  "Zen",
	0x83:  "Athlon 64",
	0x84:  "Opteron",
	0x85:  "Sempron",
	0xb3:  "Xeon",
	0xbf:  "Core 2 Duo",
	0xc6:  "Core i7",
	0xcd:  "Core i5",
	0xce:  "Core i3",
	0xcf:  "Core i9",
	0xfe:  "Processor Family 2",
	0x100: "ARMv7",
	0x101: "ARMv8",
	0x102: "ARMv9",
	0x118: "ARM",
	0x119: "StrongARM",
	0x200: "RISC-V RV32",
	0x201: "RISC-V RV64",
	0x202: "RISC-V RV128",
	0x258: "LoongArch",
}

func (f ProcessorFamily) String() string {
	if s, ok := processorFamilies[f]; ok {
		return s
	}

	return fmt.Sprintf("Family %#02x", uint16(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f ProcessorFamily) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// A ProcessorID is the raw processor identification qword, printed as
// bytes in structure order.
type ProcessorID uint64

func (id ProcessorID) String() string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", uint8(id>>(8*i)))
	}

	return sb.String()
}

// MarshalText implements encoding.TextMarshaler.
func (id ProcessorID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// A ProcessorVoltage is the raw Voltage byte. With bit 7 set the remaining
// bits are the current voltage in tenths of a volt; otherwise bits 0-2 list
// the supported legacy voltages.
type ProcessorVoltage uint8

var legacyVoltages = []string{"5.0 V", "3.3 V", "2.9 V"}

func (v ProcessorVoltage) String() string {
	if v&0x80 != 0 {
		return fmt.Sprintf("%.1f V", float64(v&0x7f)/10)
	}

	var vs []string
	for i, s := range legacyVoltages {
		if v&(1<<i) != 0 {
			vs = append(vs, s)
		}
	}
	if len(vs) == 0 {
		return "Unknown"
	}

	return strings.Join(vs, " ")
}

// MarshalText implements encoding.TextMarshaler.
func (v ProcessorVoltage) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// A ProcessorStatus is the Status byte: whether the socket is populated and
// the CPU state in bits 0-2.
type ProcessorStatus uint8

var cpuStatuses = []string{
	0: "Unknown",
	1: "Enabled",
	2: "Disabled By User",
	3: "Disabled By BIOS",
	4: "Idle",
	7: "Other",
}

// Populated reports whether the socket holds a processor.
func (s ProcessorStatus) Populated() bool { return s&0x40 != 0 }

func (s ProcessorStatus) String() string {
	if !s.Populated() {
		return "Unpopulated"
	}

	return "Populated, " + enumString(cpuStatuses, uint8(s&0x07))
}

// MarshalText implements encoding.TextMarshaler.
func (s ProcessorStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Processor is a Processor Information (type 4) structure.
type Processor struct {
	Handle            uint16
	SocketDesignation string
	Type              ProcessorType
	Family            ProcessorFamily
	Manufacturer      string
	ID                ProcessorID
	Version           string
	Voltage           ProcessorVoltage
	ExternalClock     uint16
	MaxSpeed          uint16
	CurrentSpeed      uint16
	Status            ProcessorStatus
	Upgrade           uint8

	// Available since SMBIOS 2.1. A handle of 0xffff means no cache
	// information is provided.
	L1CacheHandle *uint16
	L2CacheHandle *uint16
	L3CacheHandle *uint16

	// Available since SMBIOS 2.3.
	SerialNumber *string
	AssetTag     *string
	PartNumber   *string

	// Available since SMBIOS 2.5. Since SMBIOS 3.0, counts above 255 are
	// taken from the extended count fields.
	CoreCount       *uint16
	CoreEnabled     *uint16
	ThreadCount     *uint16
	Characteristics *bitfield.Field[uint16]
}

// NewProcessor decodes a Processor Information structure.
func NewProcessor(s *smbios.Structure) (*Processor, error) {
	if err := checkType(s, smbios.TypeProcessor); err != nil {
		return nil, err
	}

	r := &reader{s: s}
	p := &Processor{
		Handle:            s.Handle(),
		SocketDesignation: r.str(0x04),
		Type:              ProcessorType(r.u8(0x05)),
		Family:            ProcessorFamily(r.u8(0x06)),
		Manufacturer:      r.str(0x07),
		ID:                ProcessorID(r.u64(0x08)),
		Version:           r.str(0x10),
		Voltage:           ProcessorVoltage(r.u8(0x11)),
		ExternalClock:     r.u16(0x12),
		MaxSpeed:          r.u16(0x14),
		CurrentSpeed:      r.u16(0x16),
		Status:            ProcessorStatus(r.u8(0x18)),
		Upgrade:           r.u8(0x19),
	}

	v := s.Version
	if v.AtLeast(2, 1) && r.has(0x1a, 6) {
		l1, l2, l3 := r.u16(0x1a), r.u16(0x1c), r.u16(0x1e)
		p.L1CacheHandle, p.L2CacheHandle, p.L3CacheHandle = &l1, &l2, &l3
	}
	if v.AtLeast(2, 3) && r.has(0x20, 3) {
		serial, asset, part := r.str(0x20), r.str(0x21), r.str(0x22)
		p.SerialNumber, p.AssetTag, p.PartNumber = &serial, &asset, &part
	}
	if v.AtLeast(2, 5) && r.has(0x23, 5) {
		cores, enabled, threads := uint16(r.u8(0x23)), uint16(r.u8(0x24)), uint16(r.u8(0x25))
		if v.AtLeast(3, 0) && r.has(0x2a, 6) {
			cores = extendedCount(cores, r.u16(0x2a))
			enabled = extendedCount(enabled, r.u16(0x2c))
			threads = extendedCount(threads, r.u16(0x2e))
		}
		p.CoreCount, p.CoreEnabled, p.ThreadCount = &cores, &enabled, &threads

		f := bitfield.NewField(r.u16(0x26), ProcessorCharacteristics)
		p.Characteristics = &f
	}
	if v.AtLeast(2, 6) && p.Family == familyIndicator && r.has(0x28, 2) {
		p.Family = ProcessorFamily(r.u16(0x28))
	}

	if r.err != nil {
		return nil, r.err
	}

	return p, nil
}

// extendedCount returns the 16-bit count when the byte count reports that
// the value does not fit in a byte.
func extendedCount(count, ext uint16) uint16 {
	if count == 0xff {
		return ext
	}

	return count
}
