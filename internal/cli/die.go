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

// Package cli holds the small pieces of command-line scaffolding
// shared by pdfsigil's two entrypoints: colourized fatal-error
// reporting and exit-code plumbing that tests can intercept.
package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// OSExit is os.Exit by default; tests override it so a Die call can
// be observed instead of actually terminating the test binary.
var OSExit = os.Exit

// Stderr is os.Stderr by default; tests override it to capture
// output.
var Stderr = os.Stderr

// IsTerminal reports whether f is attached to a terminal. It
// replaces the cgo isatty(3) call the original tool used -- see
// DESIGN.md -- with golang.org/x/term, which needs no cgo.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Warn prints format (with a trailing newline) to Stderr, in ANSI
// red when Stderr is a terminal. Unlike Die it does not exit, so
// callers that need to return an exit code to a testable caller
// rather than terminate the process directly can still get the same
// error-reporting behaviour.
func Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format+"\n", args...)
	if IsTerminal(Stderr) {
		msg = "\x1b[0;31m" + msg + "\x1b[0m"
	}
	fmt.Fprint(Stderr, msg)
}

// Die calls Warn and then exits with status via OSExit.
func Die(status int, format string, args ...interface{}) {
	Warn(format, args...)
	OSExit(status)
}
