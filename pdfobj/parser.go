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
	"log/slog"
)

// Parser assembles Lexer tokens into arrays, dictionaries, indirect
// objects and references. It is not a strict parser: malformed
// documents are reported as errors rather than panics, but recovery
// is best-effort (see parseIndirect).
type Parser struct {
	Lex *Lexer

	// Logger receives diagnostics for recoverable anomalies, such as
	// extra content found inside an indirect object's "n g obj ...
	// endobj" wrapper. Defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// NewParser builds a Parser reading from lex.
func NewParser(lex *Lexer) *Parser { return &Parser{Lex: lex} }

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Parse reads one object at the current lexer position. stack
// accumulates the objects parsed so far in the caller's context
// (top-level, array, or dictionary) -- "R" and "obj" pop their two
// preceding integer operands off it, the compact substitute for
// look-behind described in the design notes. Parse returns one object
// per call and does not push it onto stack itself: a top-level caller
// appends each returned operand before the next call, so that "5 0 R"
// takes three calls and yields 5, 0 and then the Reference.
func (p *Parser) Parse(stack *[]Object) (Object, error) {
	token, err := p.Lex.Next()
	if err != nil {
		return token, err
	}

	switch token.Kind {
	case Newline, Comment:
		return p.Parse(stack)

	case BArray:
		var items []Object
		for {
			object, err := p.Parse(&items)
			if err != nil {
				return object, err
			}
			if object.Kind == End {
				return errObj("array doesn't end")
			}
			if object.Kind == EArray {
				break
			}
			items = append(items, object)
		}
		return NewArray(items), nil

	case BDict:
		var items []Object
		for {
			object, err := p.Parse(&items)
			if err != nil {
				return object, err
			}
			if object.Kind == End {
				return errObj("dictionary doesn't end")
			}
			if object.Kind == EDict {
				break
			}
			items = append(items, object)
		}
		if len(items)%2 != 0 {
			return errObj("unbalanced dictionary")
		}
		entries := make(map[string]Object, len(items)/2)
		for i := 0; i < len(items); i += 2 {
			if items[i].Kind != Name {
				return errObj("invalid dictionary key type")
			}
			entries[items[i].Text] = items[i+1]
		}
		return NewDict(entries), nil

	case Keyword:
		switch token.Text {
		case "stream":
			return errObj("streams are not supported yet")
		case "obj":
			return p.parseIndirect(stack)
		case "R":
			return p.parseReference(stack)
		}
		return token, nil

	default:
		return token, nil
	}
}

func popIntPair(stack *[]Object) (n, generation uint, ok bool) {
	s := *stack
	if len(s) < 2 {
		return 0, 0, false
	}
	a, b := s[len(s)-2], s[len(s)-1]
	*stack = s[:len(s)-2]
	if !a.IsUint() || !b.IsUint() {
		return 0, 0, false
	}
	return uint(a.Number), uint(b.Number), true
}

func (p *Parser) parseIndirect(stack *[]Object) (Object, error) {
	n, generation, ok := popIntPair(stack)
	if !ok {
		return errObj("missing object ID pair")
	}

	var collected []Object
	for {
		object, err := p.Parse(&collected)
		if err != nil {
			return object, err
		}
		if object.Kind == End {
			return errObj("object doesn't end")
		}
		if object.Kind == Keyword && object.Text == "endobj" {
			break
		}
		collected = append(collected, object)
	}
	if len(collected) == 0 {
		return errObj("indirect object has no body")
	}
	if len(collected) > 1 {
		p.logger().Debug("extra content inside indirect object",
			slog.Uint64("n", uint64(n)), slog.Int("extra", len(collected)-1))
	}
	return NewIndirectObject(collected[0], n, generation), nil
}

func (p *Parser) parseReference(stack *[]Object) (Object, error) {
	n, generation, ok := popIntPair(stack)
	if !ok {
		return errObj("missing reference ID pair")
	}
	return NewReference(n, generation), nil
}
