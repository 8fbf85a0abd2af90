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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF builds a tiny, valid classic-xref PDF with a single
// Catalog object, mirroring the fixture used throughout the other
// packages' tests.
func minimalPDF() []byte {
	doc := "%PDF-1.4\n"
	objOff := len(doc)
	doc += "1 0 obj\n<< /Type /Catalog >>\nendobj\n"
	xrefOff := len(doc)
	doc += "xref\n0 2\n"
	doc += "0000000000 65535 f \n"
	doc += pad10(objOff) + " 00000 n \n"
	doc += "trailer\n<< /Size 2 /Root 1 0 R >>\n"
	doc += "startxref\n"
	doc += itoa(xrefOff) + "\n%%EOF\n"
	return []byte(doc)
}

func pad10(n int) string {
	s := itoa(n)
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

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.pdf")
	require.NoError(t, os.WriteFile(path, minimalPDF(), 0o666))
	return path
}

func TestOpenDocumentListsSingleObject(t *testing.T) {
	u, err := openDocument(writeFixture(t))
	require.NoError(t, err)
	refs := u.ListIndirect()
	require.Len(t, refs, 1)
	assert.Equal(t, uint(1), refs[0].N)
}

func TestOpenDocumentRejectsMissingFile(t *testing.T) {
	_, err := openDocument(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestCopyOutWritesSerializedObject(t *testing.T) {
	u, err := openDocument(writeFixture(t))
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "out.obj")
	require.NoError(t, copyOut(u, 1, 0, dest))

	contents, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "/Catalog")
}

func TestCopyOutWritesNullForGenerationMismatch(t *testing.T) {
	u, err := openDocument(writeFixture(t))
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "out.obj")
	err = copyOut(u, 1, 5, dest)
	require.NoError(t, err)

	contents, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "null", string(contents))
}
