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

// Package xref loads the cross-reference chain of a classic
// (non-stream) PDF: it walks the startxref/Prev chain, merges every
// subsection it finds into one dense table, and hands back the
// newest trailer dictionary augmented with a Prev pointer to the
// offset it started from.
package xref

// Entry is one row of the cross-reference table.
type Entry struct {
	// Offset is the file offset of the object, or (for a free slot)
	// the object number of the next free entry in the free list --
	// this implementation does not walk or repair that list.
	Offset int64
	// Generation is the entry's generation number, 0..65535.
	Generation uint
	// Free marks an unused object slot.
	Free bool
}

// Table is a dense cross-reference table indexed by object number.
type Table struct {
	Entries []Entry
	// Size is the smallest object number that has never been
	// allocated -- i.e. the /Size trailer value.
	Size uint
}

// Get returns the entry for object number n, or the zero Entry
// (Free) if n is outside the table.
func (t *Table) Get(n uint) Entry {
	if n >= uint(len(t.Entries)) {
		return Entry{Free: true}
	}
	return t.Entries[n]
}

// Grow extends the table so object number n is addressable, leaving
// any newly created slots free.
func (t *Table) Grow(n uint) {
	if n < uint(len(t.Entries)) {
		return
	}
	for i := uint(len(t.Entries)); i <= n; i++ {
		t.Entries = append(t.Entries, Entry{Free: true})
	}
}

// Set stores an entry at object number n, growing the table if
// necessary.
func (t *Table) Set(n uint, e Entry) {
	t.Grow(n)
	t.Entries[n] = e
}
