//
// Copyright (c) 2026, The pdfsigil contributors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHORS DISCLAIM ALL WARRANTIES
// WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY
// SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
// WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION
// OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN
// CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
//

package pdfobj

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Serialize renders o in the canonical textual PDF syntax. It never
// fails; objects outside the set Serialize understands (the lexical
// marker kinds, or an End) indicate a programming error and panic.
func (o Object) Serialize() string {
	switch o.Kind {
	case Null:
		return "null"
	case Bool:
		if o.Number != 0 {
			return "true"
		}
		return "false"
	case Numeric:
		return strconv.FormatFloat(o.Number, 'f', -1, 64)
	case Keyword:
		return o.Text
	case Name:
		return serializeName(o.Text)
	case StringLit:
		return serializeString(o.Text)
	case Array:
		parts := make([]string, len(o.Items))
		for i, item := range o.Items {
			parts[i] = item.Serialize()
		}
		return "[ " + strings.Join(parts, " ") + " ]"
	case Dict:
		return serializeDict(o.Entry)
	case IndirectObject:
		return fmt.Sprintf("%d %d obj\n%s\nendobj", o.N, o.Generation, o.Body.Serialize())
	case Reference:
		return fmt.Sprintf("%d %d R", o.N, o.Generation)
	default:
		panic("pdfobj: unsupported object kind for serialization")
	}
}

func serializeName(name string) string {
	var b strings.Builder
	b.WriteByte('/')
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch == '#' || indexByte(delimiters, ch) || indexByte(whitespace, ch) {
			fmt.Fprintf(&b, "#%02x", ch)
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func serializeString(s string) string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '\\' || ch == '(' || ch == ')' {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	b.WriteByte(')')
	return b.String()
}

// serializeDict emits keys in sorted order -- the contract only
// requires a deterministic order, and sorting makes output stable
// across map iteration and easy to diff in tests.
func serializeDict(entries map[string]Object) string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<<")
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(serializeName(k))
		b.WriteByte(' ')
		b.WriteString(entries[k].Serialize())
	}
	b.WriteString(" >>")
	return b.String()
}
