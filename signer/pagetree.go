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
	"errors"

	"github.com/pjanx/pdfsigil/incupdate"
	"github.com/pjanx/pdfsigil/pdfobj"
)

// maxPageTreeDepth bounds the /Kids descent against malformed or
// hostile documents.
const maxPageTreeDepth = 256

// firstPage walks into the leftmost leaf of the page (sub)tree
// reference node, returning its dictionary with N/Generation filled
// in from the reference that led to it. Only directly-referenced
// Kids arrays are accepted; a Kids entry that isn't itself a
// reference is rejected rather than dereferenced.
func firstPage(u *incupdate.Updater, node pdfobj.Object) (pdfobj.Object, error) {
	return firstPageDepth(u, node, 0, make(map[uint]struct{}))
}

func firstPageDepth(u *incupdate.Updater, node pdfobj.Object, depth int,
	visited map[uint]struct{}) (pdfobj.Object, error) {
	if depth > maxPageTreeDepth {
		return pdfobj.Object{}, errors.New("page tree is too deep")
	}
	if node.Kind != pdfobj.Reference {
		return pdfobj.Object{}, errors.New("invalid page tree node")
	}
	if _, ok := visited[node.N]; ok {
		return pdfobj.Object{}, errors.New("circular page tree")
	}
	visited[node.N] = struct{}{}

	obj, err := u.Dereference(node)
	if err != nil {
		return pdfobj.Object{}, err
	}
	if obj.Kind != pdfobj.Dict {
		return pdfobj.Object{}, errors.New("invalid or unsupported page tree")
	}
	obj.N, obj.Generation = node.N, node.Generation

	typ, ok := obj.Entry["Type"]
	if !ok || typ.Kind != pdfobj.Name {
		return pdfobj.Object{}, errors.New("page tree node is missing /Type")
	}
	switch typ.Text {
	case "Page":
		return obj, nil
	case "Pages":
		// continue below
	default:
		return pdfobj.Object{}, errors.New("unexpected /Type in page tree")
	}

	kids, ok := obj.Entry["Kids"]
	if !ok || kids.Kind != pdfobj.Array || len(kids.Items) == 0 ||
		kids.Items[0].Kind != pdfobj.Reference {
		return pdfobj.Object{}, errors.New("invalid or unsupported /Kids")
	}
	return firstPageDepth(u, kids.Items[0], depth+1, visited)
}
