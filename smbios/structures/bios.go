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

	"github.com/yywing/go-smbios/smbios"
	"github.com/yywing/go-smbios/smbios/bitfield"
)

// BIOSCharacteristics is the layout of the BIOS Characteristics qword.
var BIOSCharacteristics = bitfield.New(64,
	bitfield.Sig("Reserved"),
	bitfield.Sig("Reserved"),
	bitfield.Sig("Unknown"),
	bitfield.SigLong("BIOS characteristics not supported", "BIOS Characteristics are not supported"),
	bitfield.SigLong("ISA is supported", "ISA is supported"),
	bitfield.SigLong("MCA is supported", "MCA is supported"),
	bitfield.SigLong("EISA is supported", "EISA is supported"),
	bitfield.SigLong("PCI is supported", "PCI is supported"),
	bitfield.SigLong("PC Card (PCMCIA) is supported", "PC card (PCMCIA) is supported"),
	bitfield.SigLong("PNP is supported", "Plug and Play is supported"),
	bitfield.SigLong("APM is supported", "APM is supported"),
	bitfield.SigLong("BIOS is upgradeable", "BIOS is upgradeable (Flash)"),
	bitfield.SigLong("BIOS shadowing is allowed", "BIOS shadowing is allowed"),
	bitfield.SigLong("VLB is supported", "VL-VESA is supported"),
	bitfield.SigLong("ESCD support is available", "ESCD support is available"),
	bitfield.SigLong("Boot from CD is supported", "Boot from CD is supported"),
	bitfield.SigLong("Selectable boot is supported", "Selectable boot is supported"),
	bitfield.SigLong("BIOS ROM is socketed", "BIOS ROM is socketed (e.g. PLCC or SOP socket)"),
	bitfield.SigLong("Boot from PC Card (PCMCIA) is supported", "Boot from PC card (PCMCIA) is supported"),
	bitfield.SigLong("EDD is supported", "EDD specification is supported"),
	bitfield.SigLong("Japanese floppy for NEC 9800 1.2 MB is supported (int 13h)", "Int 13h, Japanese floppy for NEC 9800 1.2 MB (3.5\", 1K bytes/sector, 360 RPM) is supported"),
	bitfield.SigLong("Japanese floppy for Toshiba 1.2 MB is supported (int 13h)", "Int 13h, Japanese floppy for Toshiba 1.2 MB (3.5\", 360 RPM) is supported"),
	bitfield.SigLong("5.25\"/360 kB floppy services are supported (int 13h)", "Int 13h, 5.25\" / 360 KB floppy services are supported"),
	bitfield.SigLong("5.25\"/1.2 MB floppy services are supported (int 13h)", "Int 13h, 5.25\" /1.2 MB floppy services are supported"),
	bitfield.SigLong("3.5\"/720 kB floppy services are supported (int 13h)", "Int 13h, 3.5\" / 720 KB floppy services are supported"),
	bitfield.SigLong("3.5\"/2.88 MB floppy services are supported (int 13h)", "Int 13h, 3.5\" / 2.88 MB floppy services are supported"),
	bitfield.SigLong("Print screen service is supported (int 5h)", "Int 5h, print screen Service is supported"),
	bitfield.SigLong("8042 keyboard services are supported (int 9h)", "Int 9h, 8042 keyboard services are supported"),
	bitfield.SigLong("Serial services are supported (int 14h)", "Int 14h, serial services are supported"),
	bitfield.SigLong("Printer services are supported (int 17h)", "Int 17h, printer services are supported"),
	bitfield.SigLong("CGA/mono video services are supported (int 10h)", "Int 10h, CGA/Mono Video Services are supported"),
	bitfield.SigLong("NEC PC-98", "NEC PC-98"),
	bitfield.Res("Reserved for BIOS vendor", 16),
	bitfield.Res("Reserved for system vendor", 16),
)

// BIOSCharacteristicsExt1 is the layout of the first BIOS Characteristics
// extension byte.
var BIOSCharacteristicsExt1 = bitfield.New(8,
	bitfield.SigLong("ACPI is supported", "ACPI is supported"),
	bitfield.SigLong("USB legacy is supported", "USB Legacy is supported"),
	bitfield.SigLong("AGP is supported", "AGP is supported"),
	bitfield.SigLong("I2O boot is supported", "I2O boot is supported"),
	bitfield.SigLong("LS-120 boot is supported", "LS-120 SuperDisk boot is supported"),
	bitfield.SigLong("ATAPI Zip drive boot is supported", "ATAPI ZIP drive boot is supported"),
	bitfield.SigLong("IEEE 1394 boot is supported", "1394 boot is supported"),
	bitfield.SigLong("Smart battery is supported", "Smart battery is supported"),
)

// BIOSCharacteristicsExt2 is the layout of the second BIOS Characteristics
// extension byte.
var BIOSCharacteristicsExt2 = bitfield.New(8,
	bitfield.SigLong("BIOS boot specification is supported", "BIOS Boot Specification is supported"),
	bitfield.SigLong("Function key-initiated network boot is supported", "Function key-initiated network service boot is supported"),
	bitfield.SigLong("Targeted content distribution is supported", "Enable targeted content distribution"),
	bitfield.SigLong("UEFI is supported", "UEFI Specification is supported"),
	bitfield.SigLong("System is a virtual machine", "SMBIOS table describes a virtual machine. (If this bit is not set, no inference can be made about the virtuality of the system.)"),
	bitfield.Res("Reserved for future assignment", 3),
)

// BIOS is a BIOS Information (type 0) structure.
type BIOS struct {
	Handle          uint16
	Vendor          string
	Version         string
	StartingSegment uint16
	ReleaseDate     string
	ROMSize         ROMSize
	Characteristics bitfield.Field[uint64]

	// Available since SMBIOS 2.1 and 2.4 respectively.
	CharacteristicsExt1 *bitfield.Field[uint8]
	CharacteristicsExt2 *bitfield.Field[uint8]

	// Available since SMBIOS 2.4.
	BIOSRevision     *Revision
	FirmwareRevision *Revision
}

// A Revision is a major.minor release number. A value of 0xff.0xff means
// the revision is not provided.
type Revision struct {
	Major uint8
	Minor uint8
}

func (r Revision) String() string {
	if r.Major == 0xff && r.Minor == 0xff {
		return "N/A"
	}

	return fmt.Sprintf("%d.%d", r.Major, r.Minor)
}

// A ROMSize holds the basic ROM size byte and, since SMBIOS 3.1, the
// extended ROM size word.
type ROMSize struct {
	Basic    uint8
	Extended *uint16
}

// Bytes returns the ROM size in bytes. A basic size of 0xff defers to the
// extended size, whose top two bits select megabytes or gigabytes.
func (r ROMSize) Bytes() uint64 {
	if r.Basic != 0xff || r.Extended == nil {
		return (uint64(r.Basic) + 1) * 64 << 10
	}

	size := uint64(*r.Extended & 0x3fff)
	switch *r.Extended >> 14 {
	case 0:
		return size << 20
	case 1:
		return size << 30
	default:
		return 0
	}
}

func (r ROMSize) String() string {
	n := r.Bytes()
	switch {
	case n == 0:
		return "Unknown"
	case n%(1<<30) == 0:
		return fmt.Sprintf("%d GB", n>>30)
	case n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	default:
		return fmt.Sprintf("%d kB", n>>10)
	}
}

// NewBIOS decodes a BIOS Information structure.
func NewBIOS(s *smbios.Structure) (*BIOS, error) {
	if err := checkType(s, smbios.TypeBIOS); err != nil {
		return nil, err
	}

	r := &reader{s: s}
	b := &BIOS{
		Handle:          s.Handle(),
		Vendor:          r.str(0x04),
		Version:         r.str(0x05),
		StartingSegment: r.u16(0x06),
		ReleaseDate:     r.str(0x08),
		ROMSize:         ROMSize{Basic: r.u8(0x09)},
		Characteristics: bitfield.NewField(r.u64(0x0a), BIOSCharacteristics),
	}

	v := s.Version
	if v.AtLeast(2, 1) && r.has(0x12, 1) {
		f := bitfield.NewField(r.u8(0x12), BIOSCharacteristicsExt1)
		b.CharacteristicsExt1 = &f
	}
	if v.AtLeast(2, 4) && r.has(0x13, 5) {
		f := bitfield.NewField(r.u8(0x13), BIOSCharacteristicsExt2)
		b.CharacteristicsExt2 = &f
		b.BIOSRevision = &Revision{Major: r.u8(0x14), Minor: r.u8(0x15)}
		b.FirmwareRevision = &Revision{Major: r.u8(0x16), Minor: r.u8(0x17)}
	}
	if v.AtLeast(3, 1) && r.has(0x18, 2) {
		ext := r.u16(0x18)
		b.ROMSize.Extended = &ext
	}

	if r.err != nil {
		return nil, r.err
	}

	return b, nil
}
