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

package signer

import (
	"regexp"

	"github.com/pjanx/pdfsigil/pdfobj"
)

// versionRE scans for the leading "%PDF-x.y" comment, or the
// "%!PS-Adobe-a.b PDF-x.y" variant some generators emit.
var versionRE = regexp.MustCompile(
	`(?:^|[\r\n])%(?:!PS-Adobe-\d\.\d )?PDF-(\d)\.(\d)[\r\n]`)

const versionSniffWindow = 1024

// documentVersion returns the greater of the version named in
// root's /Version name entry and the version comment near the top
// of the document, encoded as 10*major+minor (e.g. 17 for PDF 1.7).
// Zero means neither was found.
func documentVersion(document []byte, root pdfobj.Object) int {
	fromRoot := 0
	if version, ok := root.Entry["Version"]; ok && version.Kind == pdfobj.Name {
		if v := version.Text; len(v) == 3 && v[1] == '.' &&
			v[0] >= '0' && v[0] <= '9' && v[2] >= '0' && v[2] <= '9' {
			fromRoot = int(v[0]-'0')*10 + int(v[2]-'0')
		}
	}

	haystack := document
	if len(haystack) > versionSniffWindow {
		haystack = haystack[:versionSniffWindow]
	}
	fromComment := 0
	if m := versionRE.FindSubmatch(haystack); m != nil {
		fromComment = int(m[1][0]-'0')*10 + int(m[2][0]-'0')
	}

	if fromRoot > fromComment {
		return fromRoot
	}
	return fromComment
}
