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

package pdfobj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(t *testing.T, src string) []Object {
	t.Helper()
	lex := NewLexer([]byte(src))
	var out []Object
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		if tok.Kind == End {
			return out
		}
		out = append(out, tok)
	}
}

func TestLexerKeywordsAndLiterals(t *testing.T) {
	toks := tokens(t, "null true false obj endobj R xref trailer stream")
	kinds := []Kind{Null, Bool, Bool, Keyword, Keyword, Keyword, Keyword, Keyword, Keyword}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
	assert.Equal(t, "obj", toks[3].Text)
}

func TestLexerHexStringOddNibblePadding(t *testing.T) {
	toks := tokens(t, "<41>")
	require.Len(t, toks, 1)
	assert.Equal(t, "A", toks[0].Text)

	// An odd trailing nibble is padded with '0' on the right: 4 -> 0x40.
	toks = tokens(t, "<4>")
	require.Len(t, toks, 1)
	assert.Equal(t, string([]byte{0x40}), toks[0].Text)
}

func TestLexerNameHexEscape(t *testing.T) {
	toks := tokens(t, "/A#42C")
	require.Len(t, toks, 1)
	assert.Equal(t, Name, toks[0].Kind)
	assert.Equal(t, "ABC", toks[0].Text)
}

func TestLexerInvalidNumber(t *testing.T) {
	lex := NewLexer([]byte("-."))
	_, err := lex.Next()
	assert.Error(t, err)
}

func TestLexerUnexpectedByte(t *testing.T) {
	lex := NewLexer([]byte(")"))
	_, err := lex.Next()
	assert.Error(t, err)
}

func TestLexerDictMarkers(t *testing.T) {
	toks := tokens(t, "<< >>")
	require.Len(t, toks, 2)
	assert.Equal(t, BDict, toks[0].Kind)
	assert.Equal(t, EDict, toks[1].Kind)
}

func TestLexerNewlineCountsAsOneToken(t *testing.T) {
	toks := tokens(t, "1\r\n2")
	require.Len(t, toks, 3)
	assert.Equal(t, Newline, toks[1].Kind)
}

func TestLexerCommentToEndOfLine(t *testing.T) {
	toks := tokens(t, "%a comment\n1")
	require.Len(t, toks, 3)
	assert.Equal(t, Comment, toks[0].Kind)
	assert.Equal(t, "a comment", toks[0].Text)
}

func TestLexerOctalEscape(t *testing.T) {
	toks := tokens(t, `(\101\102)`)
	require.Len(t, toks, 1)
	assert.Equal(t, "AB", toks[0].Text)
}
