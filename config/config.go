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

// Package config loads optional file-based defaults for the pdfsigil
// CLI. Flags passed on the command line always take precedence over
// anything read here; this only supplies the values a flag would
// otherwise default to.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the root of the TOML config file.
type Config struct {
	// Reservation is the default number of bytes reserved for the
	// hex-encoded signature, overriding signer.DefaultReservation.
	Reservation int `toml:"reservation"`
	// OutputSuffix, when set and no explicit output path is given on
	// the command line, names the suffix appended to the input
	// filename to build the output path (e.g. "-signed").
	OutputSuffix string `toml:"output_suffix"`
}

// Load reads and parses the TOML file at path. A missing file is not
// an error -- it returns the zero Config -- but a malformed one is.
func Load(path string) (Config, error) {
	var c Config
	if path == "" {
		return c, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if c.Reservation < 0 {
		return c, fmt.Errorf("config: reservation must not be negative")
	}
	return c, nil
}
