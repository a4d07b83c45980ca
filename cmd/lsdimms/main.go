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

// Command lsdimms lists memory DIMM information from SMBIOS.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/yywing/go-smbios/internal/config"
	"github.com/yywing/go-smbios/internal/logging"
	"github.com/yywing/go-smbios/internal/source"
	"github.com/yywing/go-smbios/smbios"
	"github.com/yywing/go-smbios/smbios/structures"
)

func main() {
	fs := pflag.NewFlagSet("lsdimms", pflag.ExitOnError)
	cfgFile := fs.String("config", "", "config file")
	fs.String("log-level", "info", "log level")
	fs.String("entry-point", "", "read the entry point from this file")
	fs.String("table", "", "read the structure table from this file")
	fs.String("memory", "", "locate SMBIOS data in this physical memory image")
	fs.Int("memory-base", config.DefaultMemoryBase, "physical address of the first byte of --memory")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgFile, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsdimms: %v\n", err)
		os.Exit(1)
	}
	logging.Init("lsdimms", cfg.LogLevel, os.Stderr)

	// Find SMBIOS data in operating system-specific location, or in the
	// configured files.
	src, err := source.Load(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open stream")
	}

	ss, err := src.Decoder().Decode()
	if err != nil {
		log.Warn().Err(err).Msg("failed to decode every structure")
	}

	major, minor, rev := src.EntryPoint.Version()
	fmt.Printf("SMBIOS %d.%d.%d\n", major, minor, rev)

	listDIMMs(os.Stdout, ss)
}

// listDIMMs prints the locator and size of every memory device in ss.
func listDIMMs(w io.Writer, ss []*smbios.Structure) {
	for _, s := range ss {
		// Only look at memory devices.
		if s.Type() != smbios.TypeMemoryDevice {
			continue
		}

		d, err := structures.NewMemoryDevice(s)
		if err != nil {
			log.Warn().Err(err).Uint16("handle", s.Handle()).Msg("skipping memory device")
			continue
		}

		size, ok := d.Size()
		switch {
		case !ok:
			fmt.Fprintf(w, "[% 3s] unknown\n", d.DeviceLocator)
		case size == 0:
			fmt.Fprintf(w, "[% 3s] empty\n", d.DeviceLocator)
		default:
			fmt.Fprintf(w, "[% 3s] DIMM: %s %s\n", d.DeviceLocator, formatSize(size), d.Type)
		}
	}
}

// formatSize prints a size in the largest unit which divides it evenly.
func formatSize(b uint64) string {
	switch {
	case b >= 1<<30 && b%(1<<30) == 0:
		return fmt.Sprintf("%d GB", b>>30)
	case b >= 1<<20 && b%(1<<20) == 0:
		return fmt.Sprintf("%d MB", b>>20)
	default:
		return fmt.Sprintf("%d KB", b>>10)
	}
}
