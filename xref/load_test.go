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

package xref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF builds a tiny, valid classic-xref PDF with a single
// Catalog object and one xref section, so tests can exercise Load
// without needing a fixture file on disk.
func minimalPDF() []byte {
	doc := "%PDF-1.4\n"
	objOff := len(doc)
	doc += "1 0 obj\n<< /Type /Catalog >>\nendobj\n"
	xrefOff := len(doc)
	doc += "xref\n0 2\n"
	doc += "0000000000 65535 f \n"
	doc += padEntry(objOff) + " 00000 n \n"
	doc += "trailer\n<< /Size 2 /Root 1 0 R >>\n"
	doc += "startxref\n"
	doc += itoa(xrefOff) + "\n%%EOF\n"
	return []byte(doc)
}

func padEntry(off int) string {
	s := itoa(off)
	for len(s) < 10 {
		s = "0" + s
	}
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestLoadMinimalDocument(t *testing.T) {
	result, err := Load(minimalPDF(), nil)
	require.NoError(t, err)
	assert.Equal(t, uint(2), result.Table.Size)
	assert.False(t, result.Table.Get(1).Free)
	assert.True(t, result.Table.Get(0).Free)
	root, ok := result.Trailer["Root"]
	require.True(t, ok)
	assert.Equal(t, uint(1), root.N)
}

func TestLoadMissingStartxref(t *testing.T) {
	_, err := Load([]byte("%PDF-1.4\nno trailer here"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot find startxref")
}

func TestLoadCircularPrev(t *testing.T) {
	// A single xref section whose own trailer claims itself as Prev,
	// the simplest possible cycle in the chain.
	prefix := "%PDF-1.4\n"
	firstOff := len(prefix)
	doc := prefix + "xref\n0 1\n0000000000 65535 f \n" +
		"trailer\n<< /Size 1 /Root 1 0 R /Prev " + itoa(firstOff) + " >>\n" +
		"startxref\n" + itoa(firstOff) + "\n%%EOF\n"

	_, err := Load([]byte(doc), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular xref offsets")
}
