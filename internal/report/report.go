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

// Package report renders decoded SMBIOS tables as text, JSON or TOML.
package report

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/yywing/go-smbios/internal/config"
	"github.com/yywing/go-smbios/smbios"
	"github.com/yywing/go-smbios/smbios/structures"
)

// A Report is a decoded SMBIOS table.
type Report struct {
	Source     string   `json:"source,omitempty" toml:"source,omitempty"`
	Entry      *Entry   `json:"entry,omitempty" toml:"entry,omitempty"`
	Structures []Record `json:"structures" toml:"structures"`
}

// Entry summarizes an entry point.
type Entry struct {
	Kind         string `json:"kind" toml:"kind"`
	Version      string `json:"version" toml:"version"`
	TableAddress int    `json:"table_address" toml:"table_address"`
	TableSize    int    `json:"table_size" toml:"table_size"`

	// Zero when the entry point does not declare a structure count.
	Structures int `json:"structures,omitempty" toml:"structures,omitempty"`
}

// A Record is a single structure and its decoded form.
type Record struct {
	Handle uint16          `json:"handle" toml:"handle"`
	Type   smbios.InfoType `json:"type" toml:"type"`
	Length int             `json:"length" toml:"length"`

	// Data is a value from package structures, or a Raw structure for types
	// without a decoder or which failed to decode.
	Data  any    `json:"data" toml:"data"`
	Error string `json:"error,omitempty" toml:"error,omitempty"`
}

// Raw is the undecoded content of a structure.
type Raw struct {
	Formatted string   `json:"formatted" toml:"formatted"`
	Strings   []string `json:"strings,omitempty" toml:"strings,omitempty"`
}

// NewEntry summarizes ep.
func NewEntry(ep smbios.EntryPoint) *Entry {
	addr, size := ep.Table()

	var kind string
	switch ep.(type) {
	case *smbios.EntryPoint32Bit:
		kind = "32-bit"
	case *smbios.EntryPoint64Bit:
		kind = "64-bit"
	case *smbios.WindowsEntryPoint:
		kind = "Windows"
	default:
		kind = fmt.Sprintf("%T", ep)
	}

	major, minor, rev := ep.Version()
	return &Entry{
		Kind:         kind,
		Version:      fmt.Sprintf("%d.%d.%d", major, minor, rev),
		TableAddress: addr,
		TableSize:    size,
		Structures:   ep.NumberStructures(),
	}
}

// New decodes ss into a Report. ep may be nil. Structures which fail to
// decode are kept in raw form with their error recorded.
func New(ep smbios.EntryPoint, ss []*smbios.Structure) *Report {
	r := &Report{Structures: make([]Record, 0, len(ss))}
	if ep != nil {
		r.Entry = NewEntry(ep)
	}

	for _, s := range ss {
		r.Structures = append(r.Structures, NewRecord(s))
	}

	return r
}

// NewRecord decodes a single structure.
func NewRecord(s *smbios.Structure) Record {
	rec := Record{
		Handle: s.Handle(),
		Type:   s.Type(),
		Length: s.Len(),
	}

	v, err := structures.Decode(s)
	if err != nil {
		rec.Error = err.Error()
		rec.Data = raw(s)
		return rec
	}

	if _, ok := v.(*smbios.Structure); ok {
		rec.Data = raw(s)
	} else {
		rec.Data = v
	}

	return rec
}

func raw(s *smbios.Structure) *Raw {
	return &Raw{
		Formatted: hex.EncodeToString(s.Formatted),
		Strings:   s.AllStrings(),
	}
}

// Failed returns the records which failed to decode.
func (r *Report) Failed() []Record {
	var out []Record
	for _, rec := range r.Structures {
		if rec.Error != "" {
			out = append(out, rec)
		}
	}

	return out
}

// Write renders r to w in the given format. long selects the long names of
// bit field flags in text output.
func Write(w io.Writer, format string, r *Report, long bool) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: failed to encode JSON: %w", err)
		}
		return nil
	case config.OutputTOML:
		if err := toml.NewEncoder(w).Encode(r); err != nil {
			return fmt.Errorf("report: failed to encode TOML: %w", err)
		}
		return nil
	case config.OutputText, "":
		return writeText(w, r, long)
	default:
		return fmt.Errorf("report: unknown output format %q", format)
	}
}
