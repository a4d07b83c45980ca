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
	"encoding/binary"
	"errors"
	"io"
	"iter"
)

const (
	// headerLen is the length of the Header structure.
	headerLen = 4
)

// endStringSet terminates every string set.
var endStringSet = []byte{0x00, 0x00}

// A Decoder decodes Structures from an in-memory structure table.
//
// A Decoder only reads its table; several Decoders may walk the same buffer
// concurrently, but a single Decoder must not be shared between goroutines.
type Decoder struct {
	b       []byte
	end     int
	count   int
	version Version

	off  int
	n    int
	done bool
}

// NewDecoder creates a Decoder which decodes Structures from table, the bytes
// of a structure table starting at its first structure.
//
// If ep is not nil, decoding is bounded by the table length and structure
// count it declares, whichever is reached first, and Structures carry its
// version. Otherwise the whole of table is decoded.
func NewDecoder(table []byte, ep EntryPoint) *Decoder {
	d := &Decoder{
		b:   table,
		end: len(table),
	}

	if ep != nil {
		if _, size := ep.Table(); size >= 0 && size < d.end {
			d.end = size
		}
		d.count = ep.NumberStructures()
		d.version = VersionOf(ep)
	}

	return d
}

// Next decodes the next Structure from the table. It returns io.EOF once the
// table or declared structure count is exhausted.
//
// A malformed structure is reported once with an error; the Decoder then
// stops and every later call returns io.EOF, since the position of the next
// structure cannot be known.
func (d *Decoder) Next() (*Structure, error) {
	if d.done {
		return nil, io.EOF
	}

	if d.end-d.off < headerLen || (d.count > 0 && d.n >= d.count) {
		d.done = true
		return nil, io.EOF
	}

	h := Header{
		Type:   d.b[d.off],
		Length: d.b[d.off+1],
		Handle: binary.LittleEndian.Uint16(d.b[d.off+2 : d.off+4]),
	}

	// The declared length covers the header and the formatted section.
	fend := d.off + int(h.Length)
	if int(h.Length) < headerLen || fend > d.end {
		d.done = true
		return nil, &StructureSizeError{Offset: d.off, Length: h.Length}
	}

	term := bytes.Index(d.b[fend:d.end], endStringSet)
	if term < 0 {
		d.done = true
		return nil, &UnterminatedStringsError{Offset: d.off}
	}
	send := fend + term + len(endStringSet)

	s := &Structure{
		Header:    h,
		Version:   d.version,
		Formatted: d.b[d.off+headerLen : fend : fend],
		Strings:   d.b[fend:send:send],
	}

	d.off = send
	d.n++

	// Without a structure count, the End-of-table structure is the only
	// reliable end marker.
	if d.count == 0 && s.Type() == TypeEndOfTable {
		d.done = true
	}

	return s, nil
}

// All returns an iterator over the remaining Structures. A malformed
// structure is yielded as a final non-nil error.
func (d *Decoder) All() iter.Seq2[*Structure, error] {
	return func(yield func(*Structure, error) bool) {
		for {
			s, err := d.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(s, err) || err != nil {
				return
			}
		}
	}
}

// Decode decodes all remaining Structures. If a malformed structure is
// found, the Structures decoded before it are returned along with the error.
func (d *Decoder) Decode() ([]*Structure, error) {
	var ss []*Structure
	for s, err := range d.All() {
		if err != nil {
			return ss, err
		}
		ss = append(ss, s)
	}

	return ss, nil
}

// Reset rewinds the Decoder to the first structure of its table.
func (d *Decoder) Reset() {
	d.off = 0
	d.n = 0
	d.done = false
}
