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

package structures_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yywing/go-smbios/smbios"
	"github.com/yywing/go-smbios/smbios/structures"
)

func batteryFormatted() []byte {
	return []byte{
		0x01,       // Location
		0x02,       // Manufacturer
		0x00,       // Manufacture date: see SBDS
		0x00,       // Serial number: see SBDS
		0x03,       // Device name
		0x02,       // Chemistry: see SBDS
		0xc0, 0x12, // Design capacity: 4800 mWh
		0x5c, 0x2b, // Design voltage: 11100 mV
		0x04,       // SBDS version
		0xff,       // Maximum error
		0xaf, 0xbe, // SBDS serial number
		0x41, 0x28, // SBDS manufacture date
		0x05,                   // SBDS chemistry
		0x02,                   // Design capacity multiplier
		0x00, 0x00, 0x00, 0x00, // OEM specific
	}
}

var batteryStrings = []string{"Front", "LGC", "DELL 1234", "3.1", "LION"}

func TestNewPortableBattery(t *testing.T) {
	s := newStructure(v(3, 2), smbios.TypePortableBattery, 0x2c00, batteryFormatted(), batteryStrings...)

	b, err := structures.NewPortableBattery(s)
	require.NoError(t, err)

	assert.Equal(t, "Front", b.Location)
	assert.Equal(t, "LGC", b.Manufacturer)
	assert.Equal(t, "DELL 1234", b.DeviceName)
	assert.Equal(t, "3.1", b.SBDSVersion)
	assert.Equal(t, uint16(11100), b.DesignVoltage)
	assert.Equal(t, uint8(0xff), b.MaximumError)

	assert.Empty(t, b.ManufactureDate)
	assert.Equal(t, "2000-02-01", b.Date())
	assert.Empty(t, b.SerialNumber)
	assert.Equal(t, "0xBEAF", b.Serial())
	assert.Equal(t, "Unknown", b.Chemistry.String())
	assert.Equal(t, "LION", b.ChemistryName())
	assert.Equal(t, uint32(9600), b.Capacity())
}

func TestNewPortableBatteryLength(t *testing.T) {
	tests := []struct {
		name    string
		version smbios.Version
		length  int
		want    int
	}{
		{name: "2.1 too long", version: v(2, 1), length: 0x1a, want: 0x10},
		{name: "2.2 too short", version: v(2, 2), length: 0x10, want: 0x1a},
		{name: "3.0 too short", version: v(3, 0), length: 0x19, want: 0x1a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStructure(tt.version, smbios.TypePortableBattery, 0x2c00, batteryFormatted()[:tt.length-4], batteryStrings...)

			_, err := structures.NewPortableBattery(s)
			require.ErrorIs(t, err, smbios.ErrFormattedLength)

			var fle *smbios.FormattedLengthError
			require.ErrorAs(t, err, &fle)
			assert.Equal(t, tt.want, fle.Want)
		})
	}

	// An SMBIOS 2.1 battery has no SBDS fields.
	s := newStructure(v(2, 1), smbios.TypePortableBattery, 0x2c00, batteryFormatted()[:0x10-4], batteryStrings...)
	b, err := structures.NewPortableBattery(s)
	require.NoError(t, err)
	assert.Nil(t, b.SBDSManufactureDate)
	assert.Nil(t, b.DesignCapacityMultiplier)
	assert.Equal(t, uint32(4800), b.Capacity())
	assert.Equal(t, "Unknown", b.ChemistryName())
	assert.Empty(t, b.Date())
}

func TestSBDSDate(t *testing.T) {
	y, m, d := structures.SBDSDate(0x2841).Date()
	assert.Equal(t, []int{2000, 2, 1}, []int{y, m, d})
	assert.Equal(t, "1980-01-01", structures.SBDSDate(0x0021).String())
}

func TestBatteryChemistry(t *testing.T) {
	want := []string{
		"Undefined: 0",
		"Other",
		"Unknown",
		"Lead Acid",
		"Nickel Cadmium",
		"Nickel metal hydride",
		"Lithium-ion",
		"Zinc air",
		"Lithium Polymer",
		"Undefined: 9",
	}
	for i, s := range want {
		assert.Equal(t, s, structures.BatteryChemistry(i).String())
	}
}
