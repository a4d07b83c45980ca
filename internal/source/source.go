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

// Package source reads SMBIOS data from captured files or from the running
// system, as selected by a config.Config.
package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/yywing/go-smbios/internal/config"
	"github.com/yywing/go-smbios/smbios"
)

// ErrNoTable is returned by Load when only an entry point file is configured.
var ErrNoTable = errors.New("source: entry_point_file is set without table_file")

// A Source is SMBIOS data read from one location.
type Source struct {
	Name       string
	EntryPoint smbios.EntryPoint

	// Table is nil when only the entry point was read.
	Table []byte
}

// Decoder returns a Decoder over the source's table.
func (s *Source) Decoder() *smbios.Decoder {
	return smbios.NewDecoder(s.Table, s.EntryPoint)
}

// Load reads the entry point and structure table selected by cfg.
func Load(cfg *config.Config) (*Source, error) {
	src, err := load(cfg)
	if err != nil {
		return nil, err
	}
	if src.Table == nil {
		return nil, ErrNoTable
	}

	return src, nil
}

// LoadEntryPoint reads the entry point selected by cfg, and the table too
// when it comes from the same place.
func LoadEntryPoint(cfg *config.Config) (*Source, error) {
	return load(cfg)
}

func load(cfg *config.Config) (*Source, error) {
	switch {
	case cfg.MemoryFile != "":
		return Memory(cfg.MemoryFile, cfg.MemoryBase)
	case cfg.EntryPointFile != "":
		return files(cfg.EntryPointFile, cfg.TableFile)
	default:
		table, ep, err := smbios.Stream()
		if err != nil {
			return nil, fmt.Errorf("failed to open stream: %w", err)
		}
		return &Source{Name: "live system", EntryPoint: ep, Table: table}, nil
	}
}

// Memory locates SMBIOS data in the physical memory image at path, whose
// first byte is at physical address base.
func Memory(path string, base int) (*Source, error) {
	mem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory image: %w", err)
	}

	table, ep, err := smbios.FromMemory(mem, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Source{Name: path, EntryPoint: ep, Table: table}, nil
}

// files reads an entry point and, if tablePath is set, a structure table
// captured from /sys/firmware/dmi/tables.
func files(epPath, tablePath string) (*Source, error) {
	table, ep, err := smbios.FromFiles(epPath, tablePath)
	if err != nil {
		return nil, err
	}

	name := epPath
	if tablePath != "" {
		name = tablePath
	}

	return &Source{Name: name, EntryPoint: ep, Table: table}, nil
}
