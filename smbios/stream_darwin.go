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

//go:build darwin

package smbios

import (
	"fmt"
	"os/exec"
)

// stream reads the entry point and structure table published by the
// AppleSMBIOS IOKit service.
func stream() ([]byte, EntryPoint, error) {
	out, err := exec.Command("ioreg", "-rd1", "-c", "AppleSMBIOS").Output()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to run ioreg: %w", err)
	}

	return parseIOReg(string(out))
}
