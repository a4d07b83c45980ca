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

// Package bitfield describes the meaning of individual bits in SMBIOS bit
// field values.
//
// A Layout classifies every bit position of a field as significant, reserved
// or unknown. Layouts are built once, usually as package-level variables, and
// shared by every value of that field kind.
package bitfield

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// A Kind classifies a single bit position.
type Kind uint8

// Possible Kind values.
const (
	Unknown Kind = iota
	Significant
	Reserved
)

// String returns the name of k.
func (k Kind) String() string {
	switch k {
	case Significant:
		return "Significant"
	case Reserved:
		return "Reserved"
	default:
		return "Unknown"
	}
}

// A FlagType describes a bit position.
//
// Significant positions carry a short name, following dmidecode, and a long
// description, following the SMBIOS specification. Reserved positions carry
// only a description, which is shared by a run of positions.
type FlagType struct {
	Kind        Kind
	Short       string
	Long        string
	Description string
}

// A Layout classifies each bit position of a field, starting at bit 0.
// Positions past the end of a Layout are Unknown.
type Layout []FlagType

// At returns the classification of position p.
func (l Layout) At(p int) FlagType {
	if p < 0 || p >= len(l) {
		return FlagType{}
	}

	return l[p]
}

// An Entry assigns a classification to one or more consecutive positions of
// a Layout. Entries are created with Sig, SigLong, Res and Skip.
type Entry struct {
	t     FlagType
	count int
}

// Sig is a significant position whose short name doubles as its description.
func Sig(name string) Entry {
	return SigLong(name, name)
}

// SigLong is a significant position with distinct short and long forms.
func SigLong(short, long string) Entry {
	return Entry{
		t:     FlagType{Kind: Significant, Short: short, Long: long},
		count: 1,
	}
}

// Res is a run of count reserved positions sharing one description.
func Res(description string, count int) Entry {
	return Entry{
		t:     FlagType{Kind: Reserved, Description: description},
		count: count,
	}
}

// Skip leaves count positions Unknown.
func Skip(count int) Entry {
	return Entry{count: count}
}

// New builds a width bit Layout from entries, which are assigned to
// consecutive positions starting at bit 0. Positions not covered by entries
// are Unknown.
//
// New panics if the entries cover more than width positions or a count is
// negative. Layouts are fixed tables, so that is a programming error.
func New(width int, entries ...Entry) Layout {
	l := make(Layout, width)

	p := 0
	for _, e := range entries {
		if e.count < 0 || p+e.count > width {
			panic(fmt.Sprintf("bitfield: layout entries exceed %d bits", width))
		}

		for i := 0; i < e.count; i++ {
			l[p] = e.t
			p++
		}
	}

	return l
}

// An Unsigned is an integer type usable as a bit field value.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width returns the number of bits in T.
func Width[T Unsigned]() int {
	n := 0
	for m := ^T(0); m != 0; m >>= 1 {
		n++
	}

	return n
}

// A Flag is a single bit of a bit field value.
type Flag struct {
	Position int
	IsSet    bool
	Type     FlagType
}

// String returns the short form of f: the short name of a significant
// position, the description of a reserved one, or "Unknown".
func (f Flag) String() string {
	return f.text(false)
}

// Long returns the long form of f.
func (f Flag) Long() string {
	return f.text(true)
}

func (f Flag) text(long bool) string {
	switch f.Type.Kind {
	case Significant:
		if long {
			return f.Type.Long
		}
		return f.Type.Short
	case Reserved:
		return f.Type.Description
	default:
		return "Unknown"
	}
}

// Format implements fmt.Formatter. The '#' flag selects the long form, so
// %s prints the short form and %#s prints the long one.
func (f Flag) Format(s fmt.State, verb rune) {
	text := f.text(s.Flag('#'))

	switch verb {
	case 'q':
		fmt.Fprintf(s, "%q", text)
	case 's', 'v':
		fmt.Fprint(s, text)
	default:
		fmt.Fprintf(s, "%%!%c(bitfield.Flag=%s)", verb, text)
	}
}

// Iter yields one Flag per bit of v, in increasing position order.
func Iter[T Unsigned](v T, l Layout) iter.Seq[Flag] {
	return func(yield func(Flag) bool) {
		w := Width[T]()
		for p := 0; p < w; p++ {
			f := Flag{
				Position: p,
				IsSet:    v&(T(1)<<p) != 0,
				Type:     l.At(p),
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Significants yields the set bits of v that are not reserved. Set bits at
// Unknown positions are included.
func Significants[T Unsigned](v T, l Layout) iter.Seq[Flag] {
	return func(yield func(Flag) bool) {
		for f := range Iter(v, l) {
			if !f.IsSet || f.Type.Kind == Reserved {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// A ReservedRange is an inclusive run of consecutive reserved positions
// with the same description.
type ReservedRange struct {
	Description string
	Start, End  int
}

// String returns a description of r, such as "Reserved (bits 6-7)".
func (r ReservedRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%s (bit %d)", r.Description, r.Start)
	}

	return fmt.Sprintf("%s (bits %d-%d)", r.Description, r.Start, r.End)
}

// ReservedRanges folds the reserved positions of l into ranges, whether or
// not the bits of v are set. Adjacent positions with different descriptions
// form separate ranges, as do runs split by a non-reserved position.
func ReservedRanges[T Unsigned](v T, l Layout) iter.Seq[ReservedRange] {
	return func(yield func(ReservedRange) bool) {
		var (
			open  bool
			cur   ReservedRange
			lastP int
		)

		for f := range Iter(v, l) {
			switch {
			case f.Type.Kind == Reserved && (!open || f.Type.Description != cur.Description):
				if open {
					cur.End = lastP
					if !yield(cur) {
						return
					}
				}
				open = true
				cur = ReservedRange{Description: f.Type.Description, Start: f.Position}
			case f.Type.Kind != Reserved && open:
				open = false
				cur.End = lastP
				if !yield(cur) {
					return
				}
			}

			lastP = f.Position
		}

		if open {
			cur.End = lastP
			yield(cur)
		}
	}
}

// ErrPosition is returned by FromPositions for a position outside the value.
var ErrPosition = errors.New("bitfield: bit position out of range")

// FromPositions returns the value of type T with exactly the given bit
// positions set.
func FromPositions[T Unsigned](positions ...int) (T, error) {
	var v T
	w := Width[T]()
	for _, p := range positions {
		if p < 0 || p >= w {
			return 0, fmt.Errorf("%w: %d does not fit in %d bits", ErrPosition, p, w)
		}
		v |= T(1) << p
	}

	return v, nil
}

// A Field is a bit field value paired with its Layout.
type Field[T Unsigned] struct {
	Value  T
	Layout Layout
}

// NewField pairs v with l.
func NewField[T Unsigned](v T, l Layout) Field[T] {
	return Field[T]{Value: v, Layout: l}
}

// Iter yields every bit of the field.
func (f Field[T]) Iter() iter.Seq[Flag] { return Iter(f.Value, f.Layout) }

// Significants yields the set, non-reserved bits of the field.
func (f Field[T]) Significants() iter.Seq[Flag] { return Significants(f.Value, f.Layout) }

// Reserved yields the reserved ranges of the field's layout.
func (f Field[T]) Reserved() iter.Seq[ReservedRange] { return ReservedRanges(f.Value, f.Layout) }

// Names returns the short names of the significant bits that are set, or
// their long forms if long is true.
func (f Field[T]) Names(long bool) []string {
	var ss []string
	for fl := range f.Significants() {
		ss = append(ss, fl.text(long))
	}

	return ss
}

// String returns the comma-separated short names of the set bits.
func (f Field[T]) String() string { return strings.Join(f.Names(false), ", ") }

// MarshalText implements encoding.TextMarshaler.
func (f Field[T]) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
