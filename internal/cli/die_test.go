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

package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDieWritesMessageAndExits(t *testing.T) {
	origExit, origStderr := OSExit, Stderr
	defer func() { OSExit, Stderr = origExit, origStderr }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	Stderr = w

	var exitCode int
	var exitCalled bool
	OSExit = func(code int) { exitCode = code; exitCalled = true }

	Die(3, "boom: %s", "reason")
	w.Close()

	buf := make([]byte, 256)
	n, _ := r.Read(buf)
	assert.True(t, exitCalled)
	assert.Equal(t, 3, exitCode)
	assert.Contains(t, string(buf[:n]), "boom: reason")
}
