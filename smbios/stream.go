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
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// Physical memory range searched for entry points on legacy systems.
	memSearchStart = 0x000f0000
	memSearchEnd   = 0x00100000

	// Upper bound on the structure table size read from raw memory.
	maxTableSize = 1 << 20
)

var errTableBounds = errors.New("smbios: structure table outside of memory image")

// Stream locates and reads the SMBIOS structure table and the SMBIOS entry
// point from an operating system-specific location. The returned table is a
// private copy and may be walked by any number of Decoders.
//
// If no suitable location is found, an error is returned.
func Stream() ([]byte, EntryPoint, error) {
	return stream()
}

// FromMemory locates an entry point in mem, an image of physical memory
// whose first byte is at physical address base, and returns the structure
// table it points to.
//
// A table that runs past the end of mem is truncated; the Decoder reports
// any structure left incomplete by that.
func FromMemory(mem []byte, base int) ([]byte, EntryPoint, error) {
	ep, _, err := FindEntryPoint(mem)
	if err != nil {
		return nil, nil, err
	}

	addr, size := ep.Table()
	start := addr - base
	if start < 0 || start > len(mem) || size < 0 {
		return nil, nil, fmt.Errorf("%w: address %#x, size %d, image %#x-%#x",
			errTableBounds, addr, size, base, base+len(mem))
	}

	end := start + size
	if end > len(mem) {
		end = len(mem)
	}

	return mem[start:end:end], ep, nil
}

// FromFiles reads an entry point from epPath and the structure table from
// tablePath, as laid out in /sys/firmware/dmi/tables. If tablePath is empty,
// only the entry point is read and the returned table is nil.
func FromFiles(epPath, tablePath string) ([]byte, EntryPoint, error) {
	epf, err := os.Open(epPath)
	if err != nil {
		return nil, nil, err
	}
	defer epf.Close()

	ep, err := ParseEntryPoint(epf)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", epPath, err)
	}

	if tablePath == "" {
		return nil, ep, nil
	}

	tf, err := os.Open(tablePath)
	if err != nil {
		return nil, nil, err
	}
	defer tf.Close()

	table, err := io.ReadAll(io.LimitReader(tf, maxTableSize))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", tablePath, err)
	}

	return table, ep, nil
}

// memoryStream reads the entry point search area [start, end) from rs,
// locates an entry point in it, and reads the structure table it points to.
func memoryStream(rs io.ReadSeeker, start, end int) ([]byte, EntryPoint, error) {
	area, err := readAt(rs, start, end-start)
	if err != nil {
		return nil, nil, err
	}

	ep, _, err := FindEntryPoint(area)
	if err != nil {
		return nil, nil, err
	}

	addr, size := ep.Table()
	if size <= 0 || size > maxTableSize {
		return nil, nil, fmt.Errorf("%w: size %d (max: %d)", errTableBounds, size, maxTableSize)
	}

	table, err := readAt(rs, addr, size)
	if err != nil {
		return nil, nil, err
	}

	return table, ep, nil
}

// readAt reads up to n bytes at offset off of rs. Short reads at the end of
// rs are not an error, since 64-bit entry points only give a maximum size.
func readAt(rs io.ReadSeeker, off, n int) ([]byte, error) {
	if _, err := rs.Seek(int64(off), io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to %#x: %w", off, err)
	}

	b := make([]byte, n)
	read, err := io.ReadFull(rs, b)
	switch {
	case err == nil:
	case errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF):
		b = b[:read]
	default:
		return nil, fmt.Errorf("failed to read %d bytes at %#x: %w", n, off, err)
	}

	return b, nil
}
