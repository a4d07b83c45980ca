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
	"encoding/binary"
	"fmt"

	"github.com/yywing/go-smbios/smbios"
)

// A GroupItem is a member of a group association.
type GroupItem struct {
	Type   smbios.InfoType
	Handle uint16
}

func (g GroupItem) String() string {
	return fmt.Sprintf("0x%04X (%s)", g.Handle, g.Type)
}

// GroupAssociations is a Group Associations (type 14) structure.
type GroupAssociations struct {
	Handle    uint16
	GroupName string
	Items     []GroupItem
}

// groupItemLen is the size of one item: a type byte and a handle word.
const groupItemLen = 3

// NewGroupAssociations decodes a Group Associations structure. Items fill
// the formatted section after the group name; a trailing partial item is
// ignored.
func NewGroupAssociations(s *smbios.Structure) (*GroupAssociations, error) {
	if err := checkType(s, smbios.TypeGroupAssociations); err != nil {
		return nil, err
	}

	const itemsOff = 0x05
	b, ok := s.Slice(itemsOff-headerLen, s.Len()-itemsOff)
	if !ok {
		return nil, &smbios.FormattedLengthError{Type: s.Type(), Handle: s.Handle(), Want: itemsOff}
	}

	r := &reader{s: s}
	g := &GroupAssociations{
		Handle:    s.Handle(),
		GroupName: r.str(0x04),
	}
	if r.err != nil {
		return nil, r.err
	}

	for ; len(b) >= groupItemLen; b = b[groupItemLen:] {
		g.Items = append(g.Items, GroupItem{
			Type:   smbios.InfoType(b[0]),
			Handle: binary.LittleEndian.Uint16(b[1:3]),
		})
	}

	return g, nil
}
