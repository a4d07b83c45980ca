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
	"encoding/binary"
	"fmt"
)

// MustMarshalEntryPoint encodes ep with a correct checksum, for use in tests.
func MustMarshalEntryPoint(ep EntryPoint) []byte {
	switch x := ep.(type) {
	case *EntryPoint32Bit:
		return marshal32(x)
	case *EntryPoint64Bit:
		return marshal64(x)
	default:
		panic(fmt.Sprintf("entry point marshaling not implemented for %T", ep))
	}
}

func marshal32(ep *EntryPoint32Bit) []byte {
	b := make([]byte, expLen32)

	copy(b[0:4], magic32)
	b[lenIndex32] = expLen32

	b[6] = ep.Major
	b[7] = ep.Minor
	binary.LittleEndian.PutUint16(b[8:10], ep.MaxStructureSize)
	b[10] = ep.EntryPointRevision
	copy(b[11:16], ep.FormattedArea[:])
	copy(b[16:21], "_DMI_")
	binary.LittleEndian.PutUint16(b[22:24], ep.StructureTableLength)
	binary.LittleEndian.PutUint32(b[24:28], ep.StructureTableAddress)
	binary.LittleEndian.PutUint16(b[28:30], ep.NumberOfStructures)
	b[30] = ep.BCDRevision

	// Intermediate checksum covers the _DMI_ area only.
	b[21] = -checksum(b[16:31])
	b[chkIndex32] = -checksum(b)

	return b
}

func marshal64(ep *EntryPoint64Bit) []byte {
	b := make([]byte, expLen64)

	copy(b[0:5], magic64)
	b[lenIndex64] = expLen64

	b[7] = ep.Major
	b[8] = ep.Minor
	b[9] = ep.Revision
	b[10] = ep.EntryPointRevision
	b[11] = ep.Reserved
	binary.LittleEndian.PutUint32(b[12:16], ep.StructureTableMaxSize)
	binary.LittleEndian.PutUint64(b[16:24], ep.StructureTableAddress)

	b[chkIndex64] = -checksum(b)

	return b
}
