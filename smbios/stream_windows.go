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

//go:build windows

package smbios

import (
	"fmt"
	"syscall"
	"unsafe"
)

// rsmbProvider is the 'RSMB' firmware table provider signature.
const rsmbProvider uint32 = 'R'<<24 | 'S'<<16 | 'M'<<8 | 'B'

// maxFirmwareTableTries bounds retries when the table changes size between
// the sizing call and the read.
const maxFirmwareTableTries = 3

var procGetSystemFirmwareTable = syscall.NewLazyDLL("kernel32.dll").NewProc("GetSystemFirmwareTable")

// firmwareTable calls GetSystemFirmwareTable with buf, which may be empty.
// It returns the number of bytes the table needs.
func firmwareTable(buf []byte) (int, error) {
	var p uintptr
	if len(buf) > 0 {
		p = uintptr(unsafe.Pointer(&buf[0]))
	}

	n, _, err := procGetSystemFirmwareTable.Call(uintptr(rsmbProvider), 0, p, uintptr(len(buf)))
	if n == 0 {
		return 0, fmt.Errorf("GetSystemFirmwareTable: %w", err)
	}

	return int(n), nil
}

func stream() ([]byte, EntryPoint, error) {
	n, err := firmwareTable(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to size SMBIOS data: %w", err)
	}

	for range maxFirmwareTableTries {
		buf := make([]byte, n)
		got, err := firmwareTable(buf)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read SMBIOS data: %w", err)
		}
		if got <= n {
			return windowsStream(buf[:got])
		}

		n = got
	}

	return nil, nil, fmt.Errorf("failed to read SMBIOS data: size still changing after %d tries", maxFirmwareTableTries)
}
