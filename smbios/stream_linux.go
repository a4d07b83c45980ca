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

//go:build linux

package smbios

import (
	"errors"
	"os"
)

// sysfs locations for SMBIOS information.
const (
	sysfsDMI        = "/sys/firmware/dmi/tables/DMI"
	sysfsEntryPoint = "/sys/firmware/dmi/tables/smbios_entry_point"
	devMem          = "/dev/mem"
)

// stream opens the SMBIOS entry point and reads the structure table.
func stream() ([]byte, EntryPoint, error) {
	// First, check for the sysfs location present in modern kernels.
	_, err := os.Stat(sysfsEntryPoint)
	switch {
	case err == nil:
		return FromFiles(sysfsEntryPoint, sysfsDMI)
	case errors.Is(err, os.ErrNotExist):
		return devMemStream()
	default:
		return nil, nil, err
	}
}

// devMemStream searches legacy BIOS memory through /dev/mem.
func devMemStream() ([]byte, EntryPoint, error) {
	f, err := os.Open(devMem)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return memoryStream(f, memSearchStart, memSearchEnd)
}
