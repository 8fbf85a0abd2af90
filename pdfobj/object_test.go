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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) Object {
	t.Helper()
	p := NewParser(NewLexer([]byte(src)))
	var stack []Object
	obj, err := p.Parse(&stack)
	require.NoError(t, err)
	return obj
}

func TestNameRoundTrip(t *testing.T) {
	cases := []string{"Foo", "A B", "a#b", "with(paren", "slash/in/name", ""}
	for _, s := range cases {
		if s == "" {
			continue // an empty name is a lexical error, not representable
		}
		serialized := NewName(s).Serialize()
		got := parseOne(t, serialized)
		require.Equal(t, Name, got.Kind)
		assert.Equal(t, s, got.Text, "round-trip for name %q", s)
	}
}

func TestStringRoundTrip(t *testing.T) {
	cases := []string{"", "hello", "a(b)c", `back\slash`, "line\nbreak", string([]byte{0, 1, 2, 255})}
	for _, s := range cases {
		serialized := NewStringLit(s).Serialize()
		got := parseOne(t, serialized)
		require.Equal(t, StringLit, got.Kind)
		assert.Equal(t, s, got.Text, "round-trip for string %q", s)
	}
}

func TestNumericRoundTrip(t *testing.T) {
	for _, n := range []float64{0, 1, -1, 42, 1.5, -0.25, 1000000} {
		serialized := NewNumeric(n).Serialize()
		got := parseOne(t, serialized)
		require.Equal(t, Numeric, got.Kind)
		assert.Equal(t, n, got.Number)
	}
}

func TestArrayRoundTrip(t *testing.T) {
	src := NewArray([]Object{NewNumeric(1), NewNumeric(2), NewName("X")})
	got := parseOne(t, src.Serialize())
	require.Equal(t, Array, got.Kind)
	require.Len(t, got.Items, 3)
	assert.True(t, got.Items[0].IsInteger())
	assert.Equal(t, "X", got.Items[2].Text)
}

func TestDictRoundTrip(t *testing.T) {
	src := NewDict(map[string]Object{
		"Type":  NewName("Page"),
		"Count": NewNumeric(3),
	})
	got := parseOne(t, src.Serialize())
	require.Equal(t, Dict, got.Kind)
	assert.Equal(t, "Page", got.Entry["Type"].Text)
	assert.Equal(t, float64(3), got.Entry["Count"].Number)
}

func TestIsIntegerAndIsUint(t *testing.T) {
	assert.True(t, NewNumeric(3).IsInteger())
	assert.False(t, NewNumeric(3.5).IsInteger())
	assert.True(t, NewNumeric(3).IsUint())
	assert.False(t, NewNumeric(-1).IsUint())
	assert.False(t, NewName("x").IsInteger())
}
