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
	"github.com/yywing/go-smbios/smbios"
)

// OEMStrings is an OEM Strings (type 11) structure.
type OEMStrings struct {
	Handle  uint16
	Strings []string
}

// NewOEMStrings decodes an OEM Strings structure.
func NewOEMStrings(s *smbios.Structure) (*OEMStrings, error) {
	if err := checkType(s, smbios.TypeOEMStrings); err != nil {
		return nil, err
	}

	return &OEMStrings{
		Handle:  s.Handle(),
		Strings: s.AllStrings(),
	}, nil
}

// SystemConfigurationOptions is a System Configuration Options (type 12)
// structure.
type SystemConfigurationOptions struct {
	Handle  uint16
	Options []string
}

// NewSystemConfigurationOptions decodes a System Configuration Options
// structure. The declared string count must match the string set.
func NewSystemConfigurationOptions(s *smbios.Structure) (*SystemConfigurationOptions, error) {
	if err := checkType(s, smbios.TypeSystemConfigurationOptions); err != nil {
		return nil, err
	}

	count, err := s.Byte(0)
	if err != nil {
		return nil, err
	}

	opts := s.AllStrings()
	if int(count) != len(opts) {
		return nil, &smbios.StringIndexError{Type: s.Type(), Handle: s.Handle(), Index: count}
	}

	return &SystemConfigurationOptions{
		Handle:  s.Handle(),
		Options: opts,
	}, nil
}
