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

// rawSMBIOSDataHeaderSize is the size of the RawSMBIOSData header that
// precedes the structure table returned by GetSystemFirmwareTable.
const rawSMBIOSDataHeaderSize = 8

var _ EntryPoint = &WindowsEntryPoint{}

// WindowsEntryPoint contains SMBIOS Table entry point data returned from
// GetSystemFirmwareTable. As raw access to the underlying memory is not given,
// the full breadth of information is not available.
type WindowsEntryPoint struct {
	Size         uint32
	MajorVersion byte
	MinorVersion byte
	Revision     byte
}

// Table implements EntryPoint. The returned address will always be 0, as it
// is not returned by GetSystemFirmwareTable.
func (e *WindowsEntryPoint) Table() (address, size int) {
	return 0, int(e.Size)
}

// Version implements EntryPoint.
func (e *WindowsEntryPoint) Version() (major, minor, revision int) {
	return int(e.MajorVersion), int(e.MinorVersion), int(e.Revision)
}

// NumberStructures implements EntryPoint. The structure count is not
// returned by GetSystemFirmwareTable.
func (e *WindowsEntryPoint) NumberStructures() int {
	return 0
}

// windowsStream splits a RawSMBIOSData buffer into its entry point data and
// structure table.
//
//	From windows.h:
//
//	struct RawSMBIOSData {
//		BYTE	Used20CallingMethod;
//		BYTE	SMBIOSMajorVersion;
//		BYTE	SMBIOSMinorVersion;
//		BYTE	DMIRevision;
//		DWORD	Length;
//		BYTE	SMBIOSTableData[];
//	}
func windowsStream(buffer []byte) ([]byte, EntryPoint, error) {
	if len(buffer) < rawSMBIOSDataHeaderSize {
		return nil, nil, fmt.Errorf("RawSMBIOSData too short: %d bytes", len(buffer))
	}

	tableSize := binary.NativeEndian.Uint32(buffer[4:8])
	if int64(tableSize) > int64(len(buffer)-rawSMBIOSDataHeaderSize) {
		return nil, nil, fmt.Errorf("RawSMBIOSData table length %d exceeds buffer of %d bytes",
			tableSize, len(buffer)-rawSMBIOSDataHeaderSize)
	}

	ep := &WindowsEntryPoint{
		MajorVersion: buffer[1],
		MinorVersion: buffer[2],
		Revision:     buffer[3],
		Size:         tableSize,
	}

	end := rawSMBIOSDataHeaderSize + int(tableSize)
	return buffer[rawSMBIOSDataHeaderSize:end:end], ep, nil
}
