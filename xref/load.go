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
	"errors"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/pjanx/pdfsigil/pdfobj"
)

// startxrefRE finds the trailing "startxref <offset> %%EOF" marker
// within the last trailingWindow bytes of the document.
var startxrefRE = regexp.MustCompile(`(?s:.*)\sstartxref\s+(\d+)\s+%%EOF`)

const trailingWindow = 1024

// Result is everything Load produces: the merged cross-reference
// table and the trailer to seed further updates with.
type Result struct {
	Table   Table
	Trailer map[string]pdfobj.Object
}

// Load walks the startxref/Prev chain of document, merging every
// xref subsection it encounters (newest wins) into one dense table.
// The returned trailer is the newest trailer dictionary found, with
// its Prev entry rewritten to point at the offset Load started from
// -- the anchor subsequent incremental updates chain onto.
func Load(document []byte, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	haystack := document
	if len(haystack) > trailingWindow {
		haystack = haystack[len(haystack)-trailingWindow:]
	}
	m := startxrefRE.FindSubmatch(haystack)
	if m == nil {
		return nil, errors.New("cannot find startxref")
	}

	startOffset, err := strconv.ParseInt(string(m[1]), 10, 64)
	if err != nil {
		return nil, errors.New("invalid startxref offset")
	}

	table := Table{}
	var trailer map[string]pdfobj.Object
	seenOffsets := make(map[int64]struct{})
	loadedEntries := make(map[uint]struct{})

	offset := startOffset
	for {
		if _, ok := seenOffsets[offset]; ok {
			return nil, errors.New("circular xref offsets")
		}
		if offset < 0 || offset >= int64(len(document)) {
			return nil, errors.New("invalid xref offset")
		}
		seenOffsets[offset] = struct{}{}

		parser := pdfobj.NewParser(pdfobj.NewLexer(document[offset:]))
		if err := loadSection(parser, &table, loadedEntries, len(document), logger); err != nil {
			return nil, err
		}

		var stack []pdfobj.Object
		trailerObj, err := parser.Parse(&stack)
		if err != nil {
			return nil, err
		}
		if trailerObj.Kind != pdfobj.Dict {
			return nil, errors.New("invalid trailer dictionary")
		}
		if trailer == nil {
			trailer = trailerObj.Entry
		}

		prev, ok := trailerObj.Entry["Prev"]
		if !ok {
			break
		}
		if !prev.IsInteger() {
			return nil, errors.New("invalid Prev offset")
		}
		offset = int64(prev.Number)
	}

	trailer["Prev"] = pdfobj.NewNumeric(float64(startOffset))

	size, ok := trailer["Size"]
	if !ok || !size.IsInteger() || size.Number <= 0 {
		return nil, errors.New("invalid or missing cross-reference table Size")
	}
	table.Size = uint(size.Number)

	return &Result{Table: table, Trailer: trailer}, nil
}

// loadSection parses one "xref ... trailer" section (without the
// trailer dictionary itself, which the caller parses separately so
// it can tell the first from subsequent sections).
func loadSection(parser *pdfobj.Parser, table *Table,
	loaded map[uint]struct{}, docLen int, logger *slog.Logger) error {
	var stack []pdfobj.Object
	keyword, err := parser.Parse(&stack)
	if err != nil {
		return err
	}
	if keyword.Kind != pdfobj.Keyword || keyword.Text != "xref" {
		return errors.New("invalid xref table")
	}

	for {
		first, err := parser.Parse(&stack)
		if err != nil {
			return err
		}
		if first.Kind == pdfobj.Keyword && first.Text == "trailer" {
			return nil
		}
		if first.Kind == pdfobj.End {
			return errors.New("unexpected EOF while looking for the trailer")
		}

		count, err := parser.Parse(&stack)
		if err != nil {
			return err
		}
		if !first.IsUint() || !count.IsUint() {
			return errors.New("invalid xref section header")
		}

		start := uint(first.Number)
		n := uint(count.Number)
		for i := uint(0); i < n; i++ {
			if err := loadEntry(parser, table, loaded, start+i, docLen, logger); err != nil {
				return err
			}
		}
	}
}

func loadEntry(parser *pdfobj.Parser, table *Table,
	loaded map[uint]struct{}, n uint, docLen int, logger *slog.Logger) error {
	var stack []pdfobj.Object
	off, err := parser.Parse(&stack)
	if err != nil {
		return err
	}
	gen, err := parser.Parse(&stack)
	if err != nil {
		return err
	}
	key, err := parser.Parse(&stack)
	if err != nil {
		return err
	}

	if !off.IsInteger() || off.Number < 0 || off.Number > float64(docLen) ||
		!gen.IsInteger() || gen.Number < 0 || gen.Number > 65535 ||
		key.Kind != pdfobj.Keyword {
		return errors.New("invalid xref entry")
	}

	var free bool
	switch key.Text {
	case "n":
		free = false
	case "f":
		free = true
	default:
		return errors.New("invalid xref entry")
	}

	if _, ok := loaded[n]; ok {
		logger.Debug("skipping stale xref entry from an older section",
			slog.Uint64("n", uint64(n)))
		return nil
	}
	loaded[n] = struct{}{}
	table.Set(n, Entry{Offset: int64(off.Number), Generation: uint(gen.Number), Free: free})
	return nil
}
