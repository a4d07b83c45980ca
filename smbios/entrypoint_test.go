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

package smbios_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yywing/go-smbios/smbios"
)

func TestParseEntryPoint(t *testing.T) {
	tests := []struct {
		name                   string
		b                      []byte
		ep                     smbios.EntryPoint
		major, minor, revision int
		addr, size             int
		err                    error
	}{
		{
			name: "short magic",
			b:    []byte{0x00},
			err:  smbios.ErrAnchorNotFound,
		},
		{
			name: "unknown magic",
			b:    []byte{0xff, 0xff, 0xff, 0xff},
			err:  smbios.ErrAnchorNotFound,
		},
		{
			name: "32, short entry point",
			b: []byte{
				'_', 'S', 'M', '_',
			},
			err: smbios.ErrEntrySize,
		},
		{
			name: "32, bad length",
			b: []byte{
				'_', 'S', 'M', '_',
				0x00,
				0xff, // 255 length
				0x00,
				0x00,
				0x00, 0x00,
				0x00,
				0x00, 0x00, 0x00, 0x00, 0x00,
				'_', 'F', 'O', 'O', '_',
				0x00,
				0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00,
				0x00,
			},
			err: smbios.ErrEntrySize,
		},
		{
			name: "32, bad checksum",
			b: []byte{
				'_', 'S', 'M', '_',
				0x00, // 0 checksum
				31,
				0x00,
				0x00,
				0x00, 0x00,
				0x00,
				0x00, 0x00, 0x00, 0x00, 0x00,
				'_', 'D', 'M', 'I', '_',
				0x00,
				0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00,
				0x00,
			},
			err: smbios.ErrEntryChecksum,
		},
		{
			name: "32, OK",
			b: []byte{
				'_', 'S', 'M', '_',
				0xa4,
				0x1f,
				0x2,
				0x8,
				0xd4,
				0x1, 0x0,
				0x0, 0x0, 0x0, 0x0, 0x0,
				'_', 'D', 'M', 'I', '_',
				0x95,
				0x5f, 0xf,
				0x0, 0x90, 0xf0, 0x7a,
				0x43, 0x0,
				0x28,
			},
			ep: &smbios.EntryPoint32Bit{
				Anchor:                "_SM_",
				Checksum:              0xa4,
				Length:                0x1f,
				Major:                 0x02,
				Minor:                 0x08,
				MaxStructureSize:      0x01d4,
				IntermediateAnchor:    "_DMI_",
				IntermediateChecksum:  0x95,
				StructureTableLength:  0x0f5f,
				StructureTableAddress: 0x7af09000,
				NumberOfStructures:    0x43,
				BCDRevision:           0x28,
			},
			major: 2, minor: 8, revision: 0,
			addr: 0x7af09000, size: 0x0f5f,
		},
		{
			name: "32, OK, trailing data",
			b: []byte{
				'_', 'S', 'M', '_',
				0xa4,
				0x20,
				0x2,
				0x8,
				0xd4,
				0x1, 0x0,
				0x0, 0x0, 0x0, 0x0, 0x0,
				'_', 'D', 'M', 'I', '_',
				0x95,
				0x5f, 0xf,
				0x0, 0x90, 0xf0, 0x7a,
				0x43, 0x0,
				0x28,
				0xff,
			},
			ep: &smbios.EntryPoint32Bit{
				Anchor:                "_SM_",
				Checksum:              0xa4,
				Length:                0x20,
				Major:                 0x02,
				Minor:                 0x08,
				MaxStructureSize:      0x01d4,
				IntermediateAnchor:    "_DMI_",
				IntermediateChecksum:  0x95,
				StructureTableLength:  0x0f5f,
				StructureTableAddress: 0x7af09000,
				NumberOfStructures:    0x43,
				BCDRevision:           0x28,
			},
			major: 2, minor: 8, revision: 0,
			addr: 0x7af09000, size: 0x0f5f,
		},
		{
			name: "64, short entry point",
			b: []byte{
				'_', 'S', 'M', '3', '_',
			},
			err: smbios.ErrEntrySize,
		},
		{
			name: "64, bad length",
			b: []byte{
				'_', 'S', 'M', '3', '_',
				0x00,
				0xff, // 255 length
				0x00,
				0x00,
				0x00,
				0x00,
				0x00,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
			err: smbios.ErrEntrySize,
		},
		{
			name: "64, bad checksum",
			b: []byte{
				'_', 'S', 'M', '3', '_',
				0x00, // 0 checksum
				0x18,
				0x00,
				0x00,
				0x00,
				0x00,
				0x00,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
			err: smbios.ErrEntryChecksum,
		},
		{
			name: "64, OK",
			b: []byte{
				'_', 'S', 'M', '3', '_',
				0x86,
				0x18,
				0x3,
				0x0,
				0x0,
				0x1,
				0x0,
				0x53, 0x9, 0x0, 0x0,
				0xb0, 0xb3, 0xe, 0x0, 0x0, 0x0, 0x0, 0x0,
			},
			ep: &smbios.EntryPoint64Bit{
				Anchor:                "_SM3_",
				Checksum:              0x86,
				Length:                0x18,
				Major:                 0x03,
				EntryPointRevision:    0x01,
				StructureTableMaxSize: 0x0953,
				StructureTableAddress: 0x0eb3b0,
			},
			major: 3, minor: 0, revision: 0,
			addr: 0x0eb3b0, size: 0x0953,
		},
		{
			name: "64, OK, trailing data",
			b: []byte{
				'_', 'S', 'M', '3', '_',
				0x86,
				0x19,
				0x3,
				0x0,
				0x0,
				0x1,
				0x0,
				0x53, 0x9, 0x0, 0x0,
				0xb0, 0xb3, 0xe, 0x0, 0x0, 0x0, 0x0, 0x0,
				0xff,
			},
			ep: &smbios.EntryPoint64Bit{
				Anchor:                "_SM3_",
				Checksum:              0x86,
				Length:                0x19,
				Major:                 0x03,
				EntryPointRevision:    0x01,
				StructureTableMaxSize: 0x0953,
				StructureTableAddress: 0x0eb3b0,
			},
			major: 3, minor: 0, revision: 0,
			addr: 0x0eb3b0, size: 0x0953,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := smbios.ParseEntryPoint(bytes.NewReader(tt.b))

			if tt.err == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected error %v, but got: %v", tt.err, err)
				}
				return
			}

			if diff := cmp.Diff(tt.ep, ep); diff != "" {
				t.Fatalf("unexpected entry point (-want +got):\n%s", diff)
			}

			major, minor, revision := ep.Version()
			wantVersion := []int{tt.major, tt.minor, tt.revision}
			gotVersion := []int{major, minor, revision}

			if diff := cmp.Diff(wantVersion, gotVersion); diff != "" {
				t.Fatalf("unexpected SMBIOS version (-want +got):\n%s", diff)
			}

			addr, size := ep.Table()
			wantTable := []int{tt.addr, tt.size}
			gotTable := []int{addr, size}

			if diff := cmp.Diff(wantTable, gotTable); diff != "" {
				t.Fatalf("unexpected SMBIOS table info (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindAnchor(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		off  int
		ok   bool
	}{
		{
			name: "empty",
		},
		{
			name: "no anchor",
			b:    bytes.Repeat([]byte{0xff}, 64),
		},
		{
			name: "unaligned anchor",
			b:    append(make([]byte, 3), "_SM_"...),
		},
		{
			name: "truncated anchor",
			b:    append(make([]byte, 16), "_SM"...),
		},
		{
			name: "32-bit anchor",
			b:    append(make([]byte, 32), "_SM_"...),
			off:  32,
			ok:   true,
		},
		{
			name: "64-bit anchor",
			b:    append(make([]byte, 48), "_SM3_"...),
			off:  48,
			ok:   true,
		},
		{
			name: "first anchor wins",
			b:    append(append(make([]byte, 16), "_SM3_\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"...), "_SM_"...),
			off:  16,
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, ok := smbios.FindAnchor(tt.b)
			if ok != tt.ok {
				t.Fatalf("unexpected ok: %v", ok)
			}
			if off != tt.off {
				t.Fatalf("unexpected offset: got %d, want %d", off, tt.off)
			}
		})
	}
}

func TestFindEntryPoint(t *testing.T) {
	want := &smbios.EntryPoint64Bit{
		Anchor:                "_SM3_",
		Length:                24,
		Major:                 3,
		Minor:                 2,
		StructureTableMaxSize: 0x1000,
		StructureTableAddress: 0xdeadb000,
	}

	epb := smbios.MustMarshalEntryPoint(want)
	want.Checksum = epb[5]

	b := append(make([]byte, 0x40), epb...)
	ep, off, err := smbios.FindEntryPoint(b)
	if err != nil {
		t.Fatalf("failed to find entry point: %v", err)
	}
	if off != 0x40 {
		t.Fatalf("unexpected offset: %#x", off)
	}

	if diff := cmp.Diff(want, ep); diff != "" {
		t.Fatalf("unexpected entry point (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(smbios.Version{Major: 3, Minor: 2}, smbios.VersionOf(ep)); diff != "" {
		t.Fatalf("unexpected version (-want +got):\n%s", diff)
	}
	if n := ep.NumberStructures(); n != 0 {
		t.Fatalf("64-bit entry point should not bound structures, got %d", n)
	}

	if _, _, err := smbios.FindEntryPoint(make([]byte, 0x40)); !errors.Is(err, smbios.ErrAnchorNotFound) {
		t.Fatalf("expected anchor not found, but got: %v", err)
	}
}

func TestValidateBitFlips(t *testing.T) {
	eps := []smbios.EntryPoint{
		&smbios.EntryPoint32Bit{
			Major:                 2,
			Minor:                 8,
			StructureTableLength:  0x0f5f,
			StructureTableAddress: 0x7af09000,
			NumberOfStructures:    0x43,
		},
		&smbios.EntryPoint64Bit{
			Major:                 3,
			Minor:                 1,
			StructureTableMaxSize: 0x0953,
			StructureTableAddress: 0x0eb3b0,
		},
	}

	for _, ep := range eps {
		b := smbios.MustMarshalEntryPoint(ep)
		if _, err := smbios.Validate(b, 0); err != nil {
			t.Fatalf("%T: failed to validate marshaled entry point: %v", ep, err)
		}

		// Flipping any single bit in the checksummed window must be detected.
		for i := range b {
			for bit := 0; bit < 8; bit++ {
				flipped := append([]byte(nil), b...)
				flipped[i] ^= 1 << bit

				if _, err := smbios.Validate(flipped, 0); err == nil {
					t.Fatalf("%T: flip of byte %d bit %d was not detected", ep, i, bit)
				}
			}
		}
	}
}

func TestValidateErrors(t *testing.T) {
	ep32 := func(major uint8) []byte {
		return smbios.MustMarshalEntryPoint(&smbios.EntryPoint32Bit{Major: major})
	}

	tests := []struct {
		name string
		b    []byte
		off  int
		err  error
	}{
		{
			name: "offset out of range",
			b:    ep32(2),
			off:  64,
			err:  smbios.ErrAnchorNotFound,
		},
		{
			name: "no anchor at offset",
			b:    ep32(2),
			off:  16,
			err:  smbios.ErrAnchorNotFound,
		},
		{
			name: "major version too old",
			b:    ep32(1),
			err:  smbios.ErrEntryVersion,
		},
		{
			name: "64-bit major version too old",
			b:    smbios.MustMarshalEntryPoint(&smbios.EntryPoint64Bit{Major: 1}),
			err:  smbios.ErrEntryVersion,
		},
		{
			name: "declared length shorter than header",
			b: func() []byte {
				b := ep32(2)
				b[5] = 30
				b[4]++
				return b
			}(),
			err: smbios.ErrEntrySize,
		},
		{
			name: "declared length past buffer",
			b: func() []byte {
				b := ep32(2)
				b[5] = 32
				b[4]--
				return b
			}(),
			err: smbios.ErrEntrySize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := smbios.Validate(tt.b, tt.off)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, but got: %v", tt.err, err)
			}
		})
	}

	var verr *smbios.EntryVersionError
	if _, err := smbios.Validate(ep32(1), 0); !errors.As(err, &verr) || verr.Major != 1 {
		t.Fatalf("unexpected version error: %v", err)
	}
}
