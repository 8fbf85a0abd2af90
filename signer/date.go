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
	"time"

	"github.com/pjanx/pdfsigil/pdfobj"
)

// pdfDate encodes ts as a PDF date string literal:
// D:YYYYMMDDHHMMSS<tz>, where <tz> is Z for UTC or +HH'MM'/-HH'MM'
// for a local offset.
func pdfDate(ts time.Time) pdfobj.Object {
	buf := ts.AppendFormat(nil, "D:20060102150405")
	if _, offset := ts.Zone(); offset != 0 {
		tz := ts.AppendFormat(nil, "-0700")
		buf = append(buf, tz[0], tz[1], tz[2], '\'', tz[3], tz[4], '\'')
	} else {
		buf = append(buf, 'Z')
	}
	return pdfobj.NewStringLit(string(buf))
}
