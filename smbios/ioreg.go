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
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// parseIOReg decodes the entry point and structure table from ioreg output.
func parseIOReg(out string) ([]byte, EntryPoint, error) {
	epsHex, tableHex, err := extractIORegSMBIOS(out)
	if err != nil {
		return nil, nil, err
	}

	eps, err := hex.DecodeString(epsHex)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode SMBIOS-EPS: %w", err)
	}
	table, err := hex.DecodeString(tableHex)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode SMBIOS: %w", err)
	}

	ep, err := ParseEntryPoint(bytes.NewReader(eps))
	if err != nil {
		return nil, nil, err
	}

	return table, ep, nil
}

// extractIORegSMBIOS pulls the hex encoded "SMBIOS-EPS" and "SMBIOS"
// properties out of `ioreg -rd1 -c AppleSMBIOS` output.
func extractIORegSMBIOS(lines string) (eps, table string, err error) {
	for _, line := range strings.Split(lines, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch strings.TrimSpace(key) {
		case `"SMBIOS-EPS"`:
			eps = trimIORegData(value)
		case `"SMBIOS"`:
			table = trimIORegData(value)
		}
	}

	if eps == "" || table == "" {
		return "", "", fmt.Errorf("failed to extract 'SMBIOS' value from `ioreg` output.\n%s", lines)
	}

	return eps, table, nil
}

// trimIORegData strips the angle brackets ioreg prints around data values.
func trimIORegData(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<")
	return strings.TrimSuffix(s, ">")
}
