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
	"github.com/google/uuid"
	"github.com/yywing/go-smbios/smbios"
)

// A WakeUpType identifies the event that caused the system to power up.
type WakeUpType uint8

var wakeUpTypes = []string{
	"Reserved",
	"Other",
	"Unknown",
	"APM Timer",
	"Modem Ring",
	"LAN Remote",
	"Power Switch",
	"PCI PME#",
	"AC Power Restored",
}

func (w WakeUpType) String() string { return enumString(wakeUpTypes, uint8(w)) }

// MarshalText implements encoding.TextMarshaler.
func (w WakeUpType) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// System is a System Information (type 1) structure.
type System struct {
	Handle       uint16
	Manufacturer string
	ProductName  string
	Version      string
	SerialNumber string

	// Available since SMBIOS 2.1.
	UUID   *uuid.UUID
	WakeUp *WakeUpType

	// Available since SMBIOS 2.4.
	SKUNumber *string
	Family    *string
}

// NewSystem decodes a System Information structure.
func NewSystem(s *smbios.Structure) (*System, error) {
	if err := checkType(s, smbios.TypeSystem); err != nil {
		return nil, err
	}

	r := &reader{s: s}
	sys := &System{
		Handle:       s.Handle(),
		Manufacturer: r.str(0x04),
		ProductName:  r.str(0x05),
		Version:      r.str(0x06),
		SerialNumber: r.str(0x07),
	}

	v := s.Version
	if v.AtLeast(2, 1) && r.has(0x08, 17) {
		id := systemUUID(r.bytes(0x08, 16), v)
		wake := WakeUpType(r.u8(0x18))
		sys.UUID, sys.WakeUp = &id, &wake
	}
	if v.AtLeast(2, 4) && r.has(0x19, 2) {
		sku, family := r.str(0x19), r.str(0x1a)
		sys.SKUNumber, sys.Family = &sku, &family
	}

	if r.err != nil {
		return nil, r.err
	}

	return sys, nil
}

// systemUUID converts the raw UUID field to a uuid.UUID. Since SMBIOS 2.6
// the first three fields are stored little-endian; earlier versions store
// all bytes in network order.
func systemUUID(b []byte, v smbios.Version) uuid.UUID {
	var id uuid.UUID
	copy(id[:], b)

	if v.AtLeast(2, 6) {
		id[0], id[1], id[2], id[3] = id[3], id[2], id[1], id[0]
		id[4], id[5] = id[5], id[4]
		id[6], id[7] = id[7], id[6]
	}

	return id
}
