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

package bitfield_test

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yywing/go-smbios/smbios/bitfield"
)

var sample = bitfield.New(8,
	bitfield.SigLong("A", "A Long"),
	bitfield.SigLong("B", "B Long"),
	bitfield.Res("Reserved 1", 1),
	bitfield.SigLong("C", "C Long"),
	bitfield.SigLong("D", "D Long"),
	bitfield.SigLong("E", "E Long"),
	bitfield.Res("Reserved 2", 2),
)

func TestNew(t *testing.T) {
	sig := func(s, l string) bitfield.FlagType {
		return bitfield.FlagType{Kind: bitfield.Significant, Short: s, Long: l}
	}
	res := func(d string) bitfield.FlagType {
		return bitfield.FlagType{Kind: bitfield.Reserved, Description: d}
	}

	want := bitfield.Layout{
		sig("A", "A Long"),
		sig("B", "B Long"),
		res("Reserved 1"),
		sig("C", "C Long"),
		sig("D", "D Long"),
		sig("E", "E Long"),
		res("Reserved 2"),
		res("Reserved 2"),
	}
	assert.Equal(t, want, sample)

	short := bitfield.New(4, bitfield.Sig("X"), bitfield.Skip(1), bitfield.Sig("Y"))
	assert.Equal(t, bitfield.Layout{sig("X", "X"), {}, sig("Y", "Y"), {}}, short, "tail defaults to Unknown")
	assert.Equal(t, bitfield.Unknown, short.At(3).Kind)
	assert.Equal(t, bitfield.Unknown, short.At(64).Kind, "past end of layout")

	assert.Panics(t, func() { bitfield.New(2, bitfield.Res("R", 3)) })
	assert.Panics(t, func() { bitfield.New(2, bitfield.Res("R", -1)) })
}

func TestIter(t *testing.T) {
	type triple struct {
		p     int
		isSet bool
		t     bitfield.FlagType
	}

	var got []triple
	for f := range bitfield.Iter(uint8(0b1010_1001), sample) {
		got = append(got, triple{f.Position, f.IsSet, f.Type})
	}

	want := []triple{
		{0, true, sample[0]},
		{1, false, sample[1]},
		{2, false, sample[2]},
		{3, true, sample[3]},
		{4, false, sample[4]},
		{5, true, sample[5]},
		{6, false, sample[6]},
		{7, true, sample[7]},
	}
	assert.Equal(t, want, got)

	// Iteration is restartable and covers the full value width.
	seq := bitfield.Iter(uint16(0xffff), sample)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Len(t, first, 16)
	assert.Equal(t, first, second)
	assert.Equal(t, bitfield.Unknown, first[12].Type.Kind)
}

func TestSignificants(t *testing.T) {
	var short, long []string
	for f := range bitfield.Significants(uint8(0b1010_1001), sample) {
		short = append(short, fmt.Sprintf("%s", f))
		long = append(long, fmt.Sprintf("%#s", f))
	}

	assert.Equal(t, []string{"A", "C", "E"}, short)
	assert.Equal(t, []string{"A Long", "C Long", "E Long"}, long)

	// Unknown positions that are set are still reported.
	l := bitfield.New(4, bitfield.Sig("X"))
	var names []string
	for f := range bitfield.Significants(uint8(0b1001), l) {
		names = append(names, f.String())
	}
	assert.Equal(t, []string{"X", "Unknown"}, names)
}

func TestSignificantsProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		var entries []bitfield.Entry
		for n := 0; n < 16; n++ {
			switch rng.Intn(3) {
			case 0:
				entries = append(entries, bitfield.Sig(fmt.Sprint(n)))
			case 1:
				entries = append(entries, bitfield.Res("R", 1))
			default:
				entries = append(entries, bitfield.Skip(1))
			}
		}
		l := bitfield.New(16, entries...)
		v := uint16(rng.Intn(1 << 16))

		for f := range bitfield.Significants(v, l) {
			require.True(t, f.IsSet, "unset flag at %d", f.Position)
			require.NotEqual(t, bitfield.Reserved, f.Type.Kind, "reserved flag at %d", f.Position)
		}
	}
}

func TestReservedRanges(t *testing.T) {
	tests := []struct {
		name   string
		layout bitfield.Layout
		v      uint16
		want   []bitfield.ReservedRange
	}{
		{
			name: "none",
			layout: bitfield.New(8,
				bitfield.Sig("A"), bitfield.Sig("B"), bitfield.Sig("C"), bitfield.Sig("D"),
				bitfield.Sig("E"), bitfield.Sig("F"), bitfield.Sig("G"), bitfield.Sig("H"),
			),
			v: 0xff,
		},
		{
			name:   "full",
			layout: bitfield.New(8, bitfield.Res("R 1", 8)),
			v:      0xff,
			want:   []bitfield.ReservedRange{{Description: "R 1", Start: 0, End: 7}},
		},
		{
			name:   "trailing",
			layout: sample,
			v:      0xff,
			want: []bitfield.ReservedRange{
				{Description: "Reserved 1", Start: 2, End: 2},
				{Description: "Reserved 2", Start: 6, End: 7},
			},
		},
		{
			name:   "independent of value",
			layout: sample,
			v:      0,
			want: []bitfield.ReservedRange{
				{Description: "Reserved 1", Start: 2, End: 2},
				{Description: "Reserved 2", Start: 6, End: 7},
			},
		},
		{
			name: "adjacent descriptions",
			layout: bitfield.New(8,
				bitfield.Sig("A"),
				bitfield.Res("R 1", 2),
				bitfield.Res("R 2", 3),
				bitfield.Sig("B"),
			),
			v: 0xff,
			want: []bitfield.ReservedRange{
				{Description: "R 1", Start: 1, End: 2},
				{Description: "R 2", Start: 3, End: 5},
			},
		},
		{
			name: "complex",
			layout: bitfield.New(16,
				bitfield.SigLong("S A", "A Long"),
				bitfield.SigLong("S B", "B Long"),
				bitfield.Res("R 1", 1),
				bitfield.SigLong("S C", "C Long"),
				bitfield.SigLong("S C", "C Long"),
				bitfield.SigLong("S D", "D Long"),
				bitfield.SigLong("S E", "E Long"),
				bitfield.Res("R 2", 2),
				bitfield.SigLong("S C", "C Long"),
				bitfield.Res("R 2", 2),
				bitfield.Res("R 3", 4),
			),
			v: 0xffff,
			want: []bitfield.ReservedRange{
				{Description: "R 1", Start: 2, End: 2},
				{Description: "R 2", Start: 7, End: 8},
				{Description: "R 2", Start: 10, End: 11},
				{Description: "R 3", Start: 12, End: 15},
			},
		},
		{
			name: "unknown tail closes range",
			layout: bitfield.New(16,
				bitfield.Sig("A"),
				bitfield.Res("R", 2),
			),
			v:    0,
			want: []bitfield.ReservedRange{{Description: "R", Start: 1, End: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []bitfield.ReservedRange
			if len(tt.layout) <= 8 {
				got = slices.Collect(bitfield.ReservedRanges(uint8(tt.v), tt.layout))
			} else {
				got = slices.Collect(bitfield.ReservedRanges(tt.v, tt.layout))
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReservedRangesEarlyStop(t *testing.T) {
	var got []bitfield.ReservedRange
	for r := range bitfield.ReservedRanges(uint8(0), sample) {
		got = append(got, r)
		break
	}

	assert.Equal(t, []bitfield.ReservedRange{{Description: "Reserved 1", Start: 2, End: 2}}, got)
}

func TestReservedRangeString(t *testing.T) {
	assert.Equal(t, "Reserved (bit 2)", bitfield.ReservedRange{Description: "Reserved", Start: 2, End: 2}.String())
	assert.Equal(t, "Reserved (bits 6-7)", bitfield.ReservedRange{Description: "Reserved", Start: 6, End: 7}.String())
}

func TestFlagFormat(t *testing.T) {
	f := bitfield.Flag{Position: 3, IsSet: true, Type: sample[3]}
	assert.Equal(t, "C", fmt.Sprintf("%s", f))
	assert.Equal(t, "C Long", fmt.Sprintf("%#s", f))
	assert.Equal(t, "C", fmt.Sprintf("%v", f))
	assert.Equal(t, `"C"`, fmt.Sprintf("%q", f))
	assert.Equal(t, "C Long", f.Long())

	r := bitfield.Flag{Position: 2, Type: sample[2]}
	assert.Equal(t, "Reserved 1", fmt.Sprintf("%s", r))
	assert.Equal(t, "Reserved 1", fmt.Sprintf("%#s", r))

	u := bitfield.Flag{Position: 9}
	assert.Equal(t, "Unknown", u.String())
	assert.Equal(t, "Unknown", u.Long())
}

func TestFromPositions(t *testing.T) {
	primes := []int{
		2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61,
	}
	below := func(n int) []int {
		var ps []int
		for _, p := range primes {
			if p < n {
				ps = append(ps, p)
			}
		}
		return ps
	}

	u8, err := bitfield.FromPositions[uint8](below(8)...)
	require.NoError(t, err)
	assert.Equal(t, uint8(0b1010_1100), u8)

	u16, err := bitfield.FromPositions[uint16](below(16)...)
	require.NoError(t, err)
	assert.Equal(t, uint16(0b0010_1000_1010_1100), u16)

	u32, err := bitfield.FromPositions[uint32](below(32)...)
	require.NoError(t, err)
	assert.Equal(t, uint32(2693408940), u32)

	u64, err := bitfield.FromPositions[uint64](below(64)...)
	require.NoError(t, err)
	assert.Equal(t, uint64(2891462833508853932), u64)

	_, err = bitfield.FromPositions[uint8](primes...)
	assert.ErrorIs(t, err, bitfield.ErrPosition)

	_, err = bitfield.FromPositions[uint32](-1)
	assert.ErrorIs(t, err, bitfield.ErrPosition)

	// Positions of the set bits rebuild the original value.
	var ps []int
	for f := range bitfield.Iter(uint16(0xbeef), nil) {
		if f.IsSet {
			ps = append(ps, f.Position)
		}
	}
	v, err := bitfield.FromPositions[uint16](ps...)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbeef), v)
}

func TestField(t *testing.T) {
	f := bitfield.NewField(uint8(0b1010_1001), sample)

	assert.Equal(t, []string{"A", "C", "E"}, f.Names(false))
	assert.Equal(t, []string{"A Long", "C Long", "E Long"}, f.Names(true))
	assert.Len(t, slices.Collect(f.Iter()), 8)
	assert.Len(t, slices.Collect(f.Reserved()), 2)
	assert.Equal(t, 64, bitfield.Width[uint64]())

	assert.Equal(t, "A, C, E", f.String())
	b, err := f.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "A, C, E", string(b))
	assert.Empty(t, bitfield.NewField(uint8(0), sample).String())
}
