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

// Package signer drives the signing of a PDF document: it locates
// the document's Root and first page, injects an AcroForm and a
// hidden signature field, reserves placeholder bytes for
// /ByteRange and /Contents, performs the incremental update, and
// back-patches the reserved bytes once the CMS adapter (package cms)
// has produced a detached signature over the final byte ranges.
package signer

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pjanx/pdfsigil/cms"
	"github.com/pjanx/pdfsigil/incupdate"
	"github.com/pjanx/pdfsigil/pdfobj"
	"github.com/pjanx/pdfsigil/xref"
)

// DefaultReservation is the default number of bytes reserved for the
// hex-encoded signature; the /Contents placeholder holds
// 2*reservation hex digits.
const DefaultReservation = 4096

// MaxReservation is the largest reservation the CLI and this package
// accept.
const MaxReservation = 65535

// byteRangeReserve is the fixed width, in bytes, reserved for the
// /ByteRange array -- enough for a multi-gigabyte document.
const byteRangeReserve = 32

// signatureFieldName is the value of the sole signature field's /T
// entry. It only has to be unique within the document's AcroForm,
// which a single-signature document trivially satisfies.
const signatureFieldName = "Signature1"

// Sign appends a digital-signature field to document and returns the
// signed document. cmsSigner produces the detached CMS signature;
// reservation is the number of bytes reserved for it (0 selects
// DefaultReservation). now lets tests pin the /M timestamp; a nil
// value means time.Now.
func Sign(document []byte, cmsSigner cms.Signer, reservation int,
	now func() time.Time, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	if reservation <= 0 {
		reservation = DefaultReservation
	}
	if reservation > MaxReservation {
		return nil, fmt.Errorf("signer: reservation %d exceeds the maximum of %d",
			reservation, MaxReservation)
	}

	loaded, err := xref.Load(document, logger)
	if err != nil {
		return nil, err
	}
	u := incupdate.New(document, loaded, logger)

	rootRef, ok := u.Trailer["Root"]
	if !ok || rootRef.Kind != pdfobj.Reference {
		return nil, errors.New("trailer does not contain a reference to Root")
	}
	root, err := u.Dereference(rootRef)
	if err != nil {
		return nil, fmt.Errorf("Root dictionary retrieval failed: %w", err)
	}
	if root.Kind != pdfobj.Dict {
		return nil, errors.New("invalid Root dictionary reference")
	}
	// Checked here, before any Allocate/Update call, so that rejecting
	// an already-signed document never needs to unwind incremental
	// update state -- there is none yet to unwind.
	if _, ok := root.Entry["AcroForm"]; ok {
		return nil, errors.New("the document already contains forms, they would be overwritten")
	}

	sigdictN := u.Allocate()
	var byterangeOff, signOff, signLen int
	u.Update(sigdictN, func(buf incupdate.BytesWriter) {
		byterangeOff, signOff, signLen = writeSignatureDict(buf, now(), reservation)
	})

	sigfieldN := u.Allocate()
	u.Update(sigfieldN, func(buf incupdate.BytesWriter) {
		buf.WriteString(signatureField(sigdictN).Serialize())
	})

	pagesRef, ok := root.Entry["Pages"]
	if !ok || pagesRef.Kind != pdfobj.Reference {
		return nil, errors.New("invalid Pages reference")
	}
	page, err := firstPage(u, pagesRef)
	if err != nil {
		return nil, err
	}

	annots, ok := page.Entry["Annots"]
	if !ok {
		annots = pdfobj.NewArray(nil)
	} else if annots.Kind != pdfobj.Array {
		return nil, errors.New("unexpected /Annots")
	}
	annots.Items = append(annots.Items, pdfobj.NewReference(sigfieldN, 0))
	page.Entry["Annots"] = annots
	u.Update(page.N, func(buf incupdate.BytesWriter) {
		buf.WriteString(page.Serialize())
	})

	root.Entry["AcroForm"] = pdfobj.NewDict(map[string]pdfobj.Object{
		"Fields":   pdfobj.NewArray([]pdfobj.Object{pdfobj.NewReference(sigfieldN, 0)}),
		"SigFlags": pdfobj.NewNumeric(3), // SignaturesExist | AppendOnly
	})
	if documentVersion(document, root) < 16 {
		root.Entry["Version"] = pdfobj.NewName("1.6")
	}
	u.Update(rootRef.N, func(buf incupdate.BytesWriter) {
		buf.WriteString(root.Serialize())
	})

	u.FlushUpdates()

	tailOff := signOff + signLen
	tailLen := len(u.Document) - tailOff
	ranges := fmt.Sprintf("[0 %d %d %d]", signOff, tailOff, tailLen)
	if len(ranges) > byteRangeReserve {
		return nil, errors.New("not enough space reserved for /ByteRange")
	}
	copy(u.Document[byterangeOff:], ranges)

	if err := fillInSignature(u.Document, signOff, signLen, cmsSigner); err != nil {
		return nil, err
	}
	return u.Document, nil
}

// writeSignatureDict writes the signature dictionary body and
// returns the offsets Sign needs to back-patch
// later: byterangeOff is where the 32-byte /ByteRange placeholder
// begins; signOff points at the '<' opening /Contents' hex string
// (the hex quotes are included in the signed exclusion range);
// signLen is 2*reservation+2.
func writeSignatureDict(buf incupdate.BytesWriter, now time.Time, reservation int) (byterangeOff, signOff, signLen int) {
	buf.WriteString("<< /Type/Sig /Filter/Adobe.PPKLite" +
		" /SubFilter/adbe.pkcs7.detached\n   /M")
	buf.WriteString(pdfDate(now).Serialize())
	buf.WriteString(" /ByteRange ")

	byterangeOff = buf.Len()
	buf.Write(bytes.Repeat([]byte{' '}, byteRangeReserve))
	buf.WriteString("\n   /Contents <")

	// The opening '<' belongs to the window excluded from the signed
	// data even though it is written before this point in the buffer
	// -- back the offset up by one and grow the length by two to cover
	// both hex quotes.
	signOff = buf.Len() - 1
	signLen = reservation*2 + 2

	buf.Write(bytes.Repeat([]byte{'0'}, reservation*2))
	buf.WriteString("> >>")
	return byterangeOff, signOff, signLen
}

func signatureField(sigdictN uint) pdfobj.Object {
	return pdfobj.NewDict(map[string]pdfobj.Object{
		"FT":      pdfobj.NewName("Sig"),
		"V":       pdfobj.NewReference(sigdictN, 0),
		"Subtype": pdfobj.NewName("Widget"),
		"F":       pdfobj.NewNumeric(2), // Hidden
		"T":       pdfobj.NewStringLit(signatureFieldName),
		"Rect": pdfobj.NewArray([]pdfobj.Object{
			pdfobj.NewNumeric(0), pdfobj.NewNumeric(0), pdfobj.NewNumeric(0), pdfobj.NewNumeric(0),
		}),
	})
}

// fillInSignature hex-encodes the CMS adapter's output into the
// window [signOff+1, signOff+1+2*len(der)), leaving any remaining
// placeholder nibbles as '0'. data signed is the document with the
// [signOff, signOff+signLen) window excluded.
func fillInSignature(document []byte, signOff, signLen int, cmsSigner cms.Signer) error {
	if signOff < 0 || signOff > len(document) ||
		signLen < 2 || signOff+signLen > len(document) {
		return errors.New("invalid signing window")
	}

	data := make([]byte, len(document)-signLen)
	n := copy(data, document[:signOff])
	copy(data[n:], document[signOff+signLen:])

	der, err := cmsSigner.Sign(data)
	if err != nil {
		return err
	}
	if len(der)*2 > signLen-2 { // -2 for the hexstring quotes
		return fmt.Errorf("not enough space reserved for the signature "+
			"(%d nibbles vs %d nibbles)", signLen-2, len(der)*2)
	}
	hex.Encode(document[signOff+1:], der)
	return nil
}
