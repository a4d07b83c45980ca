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

package report

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode"
)

// flagNamer is implemented by bitfield.Field.
type flagNamer interface {
	Names(long bool) []string
}

var (
	flagNamerType = reflect.TypeFor[flagNamer]()
	stringerType  = reflect.TypeFor[fmt.Stringer]()
	textType      = reflect.TypeFor[encoding.TextMarshaler]()
)

// textWriter keeps the first write error.
type textWriter struct {
	w    io.Writer
	long bool
	err  error
}

func (t *textWriter) printf(indent int, format string, v ...any) {
	if t.err != nil {
		return
	}

	_, t.err = fmt.Fprintf(t.w, strings.Repeat("\t", indent)+format+"\n", v...)
}

// writeText prints r in a layout similar to dmidecode.
func writeText(w io.Writer, r *Report, long bool) error {
	t := &textWriter{w: w, long: long}

	if r.Source != "" {
		t.printf(0, "# %s", r.Source)
	}
	if e := r.Entry; e != nil {
		t.printf(0, "SMBIOS %s present (%s entry point).", e.Version, e.Kind)
		if e.Structures > 0 {
			t.printf(0, "%d structures occupying %d bytes.", e.Structures, e.TableSize)
		}
		t.printf(0, "Table at 0x%08X.", e.TableAddress)
	}

	for _, rec := range r.Structures {
		t.printf(0, "")
		t.printf(0, "Handle 0x%04X, DMI type %d, %d bytes", rec.Handle, uint8(rec.Type), rec.Length)
		t.printf(0, "%s", Label(rec.Type.String()))
		if rec.Error != "" {
			t.printf(1, "Error: %s", rec.Error)
		}

		t.fields(1, reflect.ValueOf(rec.Data), true)
	}

	return t.err
}

// fields prints the exported fields of the struct v points to.
func (t *textWriter) fields(indent int, v reflect.Value, top bool) {
	v = deref(v)
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return
	}

	typ := v.Type()
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() || (top && f.Name == "Handle") {
			continue
		}

		t.value(indent, f.Name, v.Field(i))
	}
}

// value prints a single named value, skipping absent optional fields.
func (t *textWriter) value(indent int, name string, v reflect.Value) {
	v = deref(v)
	if !v.IsValid() {
		return
	}

	label := Label(name)

	if v.Type().Implements(flagNamerType) {
		names := v.Interface().(flagNamer).Names(t.long)
		if len(names) == 0 {
			t.printf(indent, "%s: None", label)
			return
		}

		t.printf(indent, "%s:", label)
		for _, n := range names {
			t.printf(indent+1, "%s", n)
		}
		return
	}

	if s, ok := scalar(name, v); ok {
		t.printf(indent, "%s: %s", label, s)
		return
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			t.printf(indent, "%s: None", label)
			return
		}

		t.printf(indent, "%s:", label)
		for i := range v.Len() {
			s, ok := scalar(name, deref(v.Index(i)))
			if !ok {
				t.fields(indent+1, v.Index(i), false)
				continue
			}
			t.printf(indent+1, "%s", s)
		}
	case reflect.Struct:
		t.printf(indent, "%s:", label)
		t.fields(indent+1, v, false)
	default:
		t.printf(indent, "%s: %v", label, v.Interface())
	}
}

// scalar formats values which fit on a single line.
func scalar(name string, v reflect.Value) (string, bool) {
	if !v.IsValid() {
		return "", false
	}

	switch {
	case v.Type().Implements(stringerType):
		return v.Interface().(fmt.Stringer).String(), true
	case v.Type().Implements(textType):
		b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return err.Error(), true
		}
		return string(b), true
	}

	switch v.Kind() {
	case reflect.String:
		if v.String() == "" {
			return "Not Specified", true
		}
		return v.String(), true
	case reflect.Bool:
		if v.Bool() {
			return "Yes", true
		}
		return "No", true
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if strings.HasSuffix(name, "Handle") || strings.HasSuffix(name, "Handles") {
			return fmt.Sprintf("0x%04X", v.Uint()), true
		}
		return fmt.Sprintf("%d", v.Uint()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int()), true
	}

	return "", false
}

func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}

	return v
}

// Label splits a Go identifier into words: "SKUNumber" becomes
// "SKU Number" and "L1CacheHandle" becomes "L1 Cache Handle".
func Label(name string) string {
	rs := []rune(name)

	var b strings.Builder
	for i, r := range rs {
		if i > 0 && unicode.IsUpper(r) {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}

	return b.String()
}
