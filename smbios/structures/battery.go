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
)

// A BatteryChemistry is the Device Chemistry byte of a portable battery.
type BatteryChemistry uint8

// ChemistryUnknown defers to the SBDS Device Chemistry string.
const ChemistryUnknown BatteryChemistry = 2

var batteryChemistries = []string{
	1: "Other",
	2: "Unknown",
	3: "Lead Acid",
	4: "Nickel Cadmium",
	5: "Nickel metal hydride",
	6: "Lithium-ion",
	7: "Zinc air",
	8: "Lithium Polymer",
}

func (c BatteryChemistry) String() string { return enumString(batteryChemistries, uint8(c)) }

// MarshalText implements encoding.TextMarshaler.
func (c BatteryChemistry) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// An SBDSDate is a manufacture date packed as in the Smart Battery Data
// Specification: bits 15-9 are years since 1980, bits 8-5 the month and
// bits 4-0 the day.
type SBDSDate uint16

// Date returns the year, month and day of d.
func (d SBDSDate) Date() (year, month, day int) {
	return int(d>>9) + 1980, int(d>>5) & 0x0f, int(d) & 0x1f
}

// String returns d in ISO 8601 form.
func (d SBDSDate) String() string {
	y, m, day := d.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, m, day)
}

// MarshalText implements encoding.TextMarshaler.
func (d SBDSDate) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// PortableBattery is a Portable Battery (type 22) structure. Batteries that
// follow the Smart Battery Data Specification leave the basic manufacture
// date, serial number and chemistry empty and fill in the SBDS fields
// instead.
type PortableBattery struct {
	Handle          uint16
	Location        string
	Manufacturer    string
	ManufactureDate string
	SerialNumber    string
	DeviceName      string
	Chemistry       BatteryChemistry

	// DesignCapacity is in mWh before applying the multiplier. 0 means
	// unknown.
	DesignCapacity uint16

	// DesignVoltage is in mV. 0 means unknown.
	DesignVoltage uint16
	SBDSVersion   string
	MaximumError  uint8

	// Available since SMBIOS 2.2.
	SBDSSerialNumber         *uint16
	SBDSManufactureDate      *SBDSDate
	SBDSChemistry            *string
	DesignCapacityMultiplier *uint8
	OEMSpecific              *uint32
}

// Capacity returns the design capacity in mWh, or 0 if unknown.
func (b *PortableBattery) Capacity() uint32 {
	c := uint32(b.DesignCapacity)
	if b.DesignCapacityMultiplier != nil && *b.DesignCapacityMultiplier > 1 {
		c *= uint32(*b.DesignCapacityMultiplier)
	}

	return c
}

// Date returns the manufacture date, preferring the basic string field.
func (b *PortableBattery) Date() string {
	if b.ManufactureDate == "" && b.SBDSManufactureDate != nil {
		return b.SBDSManufactureDate.String()
	}

	return b.ManufactureDate
}

// Serial returns the serial number, preferring the basic string field.
func (b *PortableBattery) Serial() string {
	if b.SerialNumber == "" && b.SBDSSerialNumber != nil {
		return fmt.Sprintf("0x%04X", *b.SBDSSerialNumber)
	}

	return b.SerialNumber
}

// ChemistryName returns the battery chemistry, falling back to the SBDS
// chemistry string when the basic field is Unknown.
func (b *PortableBattery) ChemistryName() string {
	if b.Chemistry == ChemistryUnknown && b.SBDSChemistry != nil && *b.SBDSChemistry != "" {
		return *b.SBDSChemistry
	}

	return b.Chemistry.String()
}

// Portable battery lengths, which are exact for each SMBIOS version.
const (
	batteryLen21 = 0x10
	batteryLen22 = 0x1a
)

// NewPortableBattery decodes a Portable Battery structure.
func NewPortableBattery(s *smbios.Structure) (*PortableBattery, error) {
	if err := checkType(s, smbios.TypePortableBattery); err != nil {
		return nil, err
	}

	v := s.Version
	want := 0
	switch {
	case v.AtLeast(2, 2):
		want = batteryLen22
	case v.AtLeast(2, 1):
		want = batteryLen21
	}
	if want != 0 && s.Len() != want {
		return nil, &smbios.FormattedLengthError{Type: s.Type(), Handle: s.Handle(), Want: want}
	}

	r := &reader{s: s}
	b := &PortableBattery{
		Handle:          s.Handle(),
		Location:        r.str(0x04),
		Manufacturer:    r.str(0x05),
		ManufactureDate: r.str(0x06),
		SerialNumber:    r.str(0x07),
		DeviceName:      r.str(0x08),
		Chemistry:       BatteryChemistry(r.u8(0x09)),
		DesignCapacity:  r.u16(0x0a),
		DesignVoltage:   r.u16(0x0c),
		SBDSVersion:     r.str(0x0e),
		MaximumError:    r.u8(0x0f),
	}

	if want == batteryLen22 {
		serial, date := r.u16(0x10), SBDSDate(r.u16(0x12))
		chem, mult, oem := r.str(0x14), r.u8(0x15), r.u32(0x16)
		b.SBDSSerialNumber, b.SBDSManufactureDate, b.SBDSChemistry = &serial, &date, &chem
		b.DesignCapacityMultiplier, b.OEMSpecific = &mult, &oem
	}

	if r.err != nil {
		return nil, r.err
	}

	return b, nil
}
