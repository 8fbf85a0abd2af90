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

// Package incupdate implements incremental PDF updates: resolving
// indirect references against a cross-reference table, allocating
// new object numbers, appending updated object bodies to the
// document tail, and emitting a fresh cross-reference section and
// trailer that chains onto the one it replaces.
package incupdate

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pjanx/pdfsigil/pdfobj"
	"github.com/pjanx/pdfsigil/xref"
)

// BytesWriter is the subset of *bytes.Buffer that Update's fill
// callback is allowed to use -- enough to write object bodies and
// to learn the current document length for offset-sensitive content
// such as the signature dictionary's /ByteRange and /Contents.
type BytesWriter interface {
	Bytes() []byte
	Len() int
	Write(p []byte) (int, error)
	WriteByte(c byte) error
	WriteString(s string) (int, error)
}

// Updater tracks an in-memory document buffer together with its
// cross-reference table, and appends incremental updates to it.
type Updater struct {
	Document []byte
	Trailer  map[string]pdfobj.Object

	table   xref.Table
	updated map[uint]struct{}
	logger  *slog.Logger
}

// New builds an Updater from a Load result and the document bytes it
// was loaded from.
func New(document []byte, loaded *xref.Result, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{
		Document: document,
		Trailer:  loaded.Trailer,
		table:    loaded.Table,
		updated:  make(map[uint]struct{}),
		logger:   logger,
	}
}

// ListIndirect returns every in-use entry of the cross-reference
// table as a Reference object.
func (u *Updater) ListIndirect() []pdfobj.Object {
	var result []pdfobj.Object
	for n, e := range u.table.Entries {
		if !e.Free {
			result = append(result, pdfobj.NewReference(uint(n), e.Generation))
		}
	}
	return result
}

// Get resolves object number n at generation g. It returns Null
// (with a nil error) if the slot is free, the generation does not
// match, or the stored offset is past the end of the document --
// exactly the "missing reference" case a well-formed document never
// produces deliberately. A malformed object at a valid-looking offset
// is a real error.
func (u *Updater) Get(n, generation uint) (pdfobj.Object, error) {
	if n >= u.table.Size {
		return pdfobj.NewNull(), nil
	}
	entry := u.table.Get(n)
	if entry.Free || entry.Generation != generation ||
		entry.Offset >= int64(len(u.Document)) {
		return pdfobj.NewNull(), nil
	}

	parser := pdfobj.NewParser(pdfobj.NewLexer(u.Document[entry.Offset:]))
	parser.Logger = u.logger
	var stack []pdfobj.Object
	for {
		object, err := parser.Parse(&stack)
		if err != nil {
			return object, err
		}
		if object.Kind == pdfobj.End {
			return object, errors.New("unexpected EOF while dereferencing object")
		}
		if object.Kind != pdfobj.IndirectObject {
			stack = append(stack, object)
			continue
		}
		if object.N != n || object.Generation != generation {
			return pdfobj.Object{}, errors.New("object mismatch")
		}
		return *object.Body, nil
	}
}

// Dereference resolves o if it is a Reference, and passes through
// every other kind unchanged.
func (u *Updater) Dereference(o pdfobj.Object) (pdfobj.Object, error) {
	if o.Kind != pdfobj.Reference {
		return o, nil
	}
	return u.Get(o.N, o.Generation)
}

// Allocate reserves a fresh object number and returns it. The
// returned number becomes non-free only once Update is called on it;
// the free list of the original document is never consulted or
// repaired.
func (u *Updater) Allocate() uint {
	n := u.table.Size
	u.table.Size++
	if u.table.Size == 0 {
		panic("incupdate: object number overflow")
	}
	u.table.Grow(n)
	return n
}

// Update appends an updated object to the end of the document. fill
// must write exactly one PDF object body; it may inspect the
// buffer's current length to learn byte offsets as it writes, which
// is how the signer reserves and later locates its /ByteRange and
// /Contents windows.
func (u *Updater) Update(n uint, fill func(buf BytesWriter)) {
	old := u.table.Get(n)
	u.updated[n] = struct{}{}
	u.table.Set(n, xref.Entry{
		Offset:     int64(len(u.Document) + 1),
		Generation: old.Generation,
		Free:       false,
	})

	buf := bytes.NewBuffer(u.Document)
	fmt.Fprintf(buf, "\n%d %d obj\n", n, old.Generation)
	fill(buf)
	buf.WriteString("\nendobj")
	u.Document = buf.Bytes()
}

// FlushUpdates appends a new cross-reference section and trailer
// covering every object touched by Update since the Updater was
// created.
func (u *Updater) FlushUpdates() {
	updated := make([]uint, 0, len(u.updated))
	for n := range u.updated {
		updated = append(updated, n)
	}
	sort.Slice(updated, func(i, j int) bool { return updated[i] < updated[j] })

	buf := bytes.NewBuffer(u.Document)
	startXref := buf.Len() + 1
	buf.WriteString("\nxref\n")

	for i := 0; i < len(updated); {
		start, stop := updated[i], updated[i]+1
		for i++; i < len(updated) && updated[i] == stop; i++ {
			stop++
		}
		fmt.Fprintf(buf, "%d %d\n", start, stop-start)
		for n := start; n < stop; n++ {
			e := u.table.Get(n)
			flag := byte('n')
			if e.Free {
				flag = 'f'
			}
			fmt.Fprintf(buf, "%010d %05d %c \n", e.Offset, e.Generation, flag)
		}
	}

	// Each cross-reference section must contain at least one
	// subsection even when nothing was updated.
	if len(updated) == 0 {
		fmt.Fprintf(buf, "%d %d\n", 0, 0)
	}

	u.Trailer["Size"] = pdfobj.NewNumeric(float64(u.table.Size))
	trailer := pdfobj.NewDict(u.Trailer)

	fmt.Fprintf(buf, "trailer\n%s\nstartxref\n%d\n%%%%EOF\n", trailer.Serialize(), startXref)
	u.Document = buf.Bytes()
}
