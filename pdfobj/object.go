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

// Package pdfobj implements the PDF object model: a lexer that scans
// syntactic tokens out of a raw byte buffer, a parser that assembles
// those tokens into arrays, dictionaries, indirect objects and
// references, and a serializer that turns objects back into the
// canonical textual form. None of it understands cross-reference
// tables or content streams; see package xref and package incupdate
// for those.
package pdfobj

import "math"

// Kind identifies which alternative of the PDF object variant an
// Object holds.
type Kind int

const (
	// End is a terminator or parse-error carrier; Message holds the
	// reason when it represents an error.
	End Kind = iota
	// Newline is a lexical artifact: a CR, LF, or CR+LF pair.
	Newline
	// Comment holds the text following a '%' to end of line.
	Comment
	Null
	Bool
	Numeric
	// Keyword is a bare identifier such as obj, endobj, R, xref,
	// trailer, stream -- anything that isn't null/true/false.
	Keyword
	Name
	StringLit

	// BArray, EArray, BDict, EDict are structural markers the lexer
	// produces. Parse consumes the opening markers; a closing marker
	// that does not end an array or dictionary being parsed is
	// returned by Parse as is.
	BArray
	EArray
	BDict
	EDict

	// Array, Dict, IndirectObject, Reference are the higher-level
	// objects the parser assembles from the tokens above.
	Array
	Dict
	IndirectObject
	Reference
)

// Object is a tagged PDF value. Which fields are meaningful depends
// on Kind; see the Kind constants for the mapping.
type Object struct {
	Kind Kind

	Message string // End

	Text   string  // Comment, Keyword, Name, StringLit
	Number float64 // Bool (0/1), Numeric

	Items []Object          // Array
	Entry map[string]Object // Dict

	N, Generation uint    // IndirectObject, Reference
	Body          *Object // IndirectObject
}

// IsInteger reports whether o is a Numeric object with a zero
// fractional part.
func (o Object) IsInteger() bool {
	if o.Kind != Numeric {
		return false
	}
	_, frac := math.Modf(o.Number)
	return frac == 0
}

// IsUint reports whether o is a non-negative integer that fits into
// a uint, matching the parser's "0 <= value <= UINT_MAX" validation
// for object/generation numbers.
func (o Object) IsUint() bool {
	return o.IsInteger() && o.Number >= 0 && o.Number <= float64(^uint(0))
}

func errObj(message string) (Object, error) {
	return Object{Kind: End, Message: message}, errNew(message)
}

// Constructors. These exist mostly so call sites read as "build a
// Name" rather than poking at struct fields directly.

func NewNull() Object { return Object{Kind: Null} }

func NewBool(b bool) Object {
	var n float64
	if b {
		n = 1
	}
	return Object{Kind: Bool, Number: n}
}

func (o Object) Bool() bool { return o.Kind == Bool && o.Number != 0 }

func NewNumeric(v float64) Object  { return Object{Kind: Numeric, Number: v} }
func NewKeyword(k string) Object   { return Object{Kind: Keyword, Text: k} }
func NewName(n string) Object      { return Object{Kind: Name, Text: n} }
func NewStringLit(s string) Object { return Object{Kind: StringLit, Text: s} }

func NewArray(items []Object) Object { return Object{Kind: Array, Items: items} }

func NewDict(entries map[string]Object) Object {
	if entries == nil {
		entries = make(map[string]Object)
	}
	return Object{Kind: Dict, Entry: entries}
}

func NewIndirectObject(body Object, n, generation uint) Object {
	return Object{Kind: IndirectObject, N: n, Generation: generation, Body: &body}
}

func NewReference(n, generation uint) Object {
	return Object{Kind: Reference, N: n, Generation: generation}
}
