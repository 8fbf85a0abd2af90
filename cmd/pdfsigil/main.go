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

// Command pdfsigil appends a digital-signature field to a PDF file
// as an incremental update and embeds a detached PKCS#7 signature
// over it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pjanx/pdfsigil/cms"
	"github.com/pjanx/pdfsigil/config"
	"github.com/pjanx/pdfsigil/internal/cli"
	"github.com/pjanx/pdfsigil/signer"
)

const (
	name    = "pdfsigil"
	version = "1.0.0"

	exitOK           = 0
	exitUsage        = 1
	exitSigningError = 2
	exitWriteError   = 3

	// reservationUnset marks that -r/--reservation was not given on
	// the command line, distinguishing it from an explicit "-r 0"
	// (which is a usage error, not "use the default").
	reservationUnset = -1
)

// The following are package-level indirections over the CLI's
// externally-visible effects -- file I/O, config loading, and the
// signing pipeline itself -- so that run's exit-code behaviour,
// including the signing-error and write-error paths, is exercisable
// from tests without touching the filesystem or real PKCS#12/CMS
// material. Tests save and restore these around each case.
var (
	readFile     = os.ReadFile
	writeFile    = os.WriteFile
	removeFile   = os.Remove
	loadConfig   = config.Load
	loadPKCS12   = cms.LoadPKCS12
	newSigner    = cms.NewPKCS7Signer
	signDocument = signer.Sign
)

func usage(fs *flag.FlagSet) string {
	return fmt.Sprintf("Usage: %s [-h] [-V] [-r RESERVATION] [-config PATH] "+
		"INPUT-FILENAME [OUTPUT-FILENAME] PKCS12-PATH PKCS12-PASS\n"+
		"OUTPUT-FILENAME may be omitted if the config file sets output_suffix.",
		fs.Name())
}

// resolveOutputPath derives OUTPUT-FILENAME from INPUT-FILENAME plus
// the config file's output_suffix when the CLI is invoked with only
// the three required positional arguments.
func resolveOutputPath(inputPath, suffix string) (string, error) {
	if suffix == "" {
		return "", errors.New("OUTPUT-FILENAME is required unless output_suffix is configured")
	}
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + suffix + ext, nil
}

// resolveReservation picks the effective reservation size: an
// explicit flag value always wins, then the config file's default,
// then (by returning 0) signer.DefaultReservation. An explicit value
// outside 1..MaxReservation -- including an explicit 0, which a bare
// flag.IntVar default cannot be told apart from "not passed" -- is a
// usage error.
func resolveReservation(flagValue, configValue int) (int, error) {
	if flagValue != reservationUnset {
		if flagValue < 1 || flagValue > signer.MaxReservation {
			return 0, fmt.Errorf("reservation must be between 1 and %d", signer.MaxReservation)
		}
		return flagValue, nil
	}
	if configValue != 0 {
		if configValue < 1 || configValue > signer.MaxReservation {
			return 0, fmt.Errorf("reservation must be between 1 and %d", signer.MaxReservation)
		}
		return configValue, nil
	}
	return 0, nil
}

type options struct {
	reservation int
	help        bool
	version     bool
	configPath  string
}

func parseArgs(args []string) (*options, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.Stderr)

	o := options{reservation: reservationUnset}
	fs.IntVar(&o.reservation, "r", reservationUnset, "signature reservation, in bytes (default 4096)")
	fs.IntVar(&o.reservation, "reservation", reservationUnset, "signature reservation, in bytes (default 4096)")
	fs.BoolVar(&o.help, "h", false, "show usage and exit")
	fs.BoolVar(&o.help, "help", false, "show usage and exit")
	fs.BoolVar(&o.version, "V", false, "show version and exit")
	fs.BoolVar(&o.version, "version", false, "show version and exit")
	fs.StringVar(&o.configPath, "config", os.Getenv("PDFSIGIL_CONFIG"), "path to a TOML config file")
	fs.Usage = func() { fmt.Fprintln(cli.Stderr, usage(fs)) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &o, fs.Args(), nil
}

// run executes the CLI and returns the process exit code, instead of
// calling os.Exit itself, so tests can drive the whole signing flow
// -- including the usage, signing-error and write-error paths -- and
// observe the result directly.
func run(args []string) int {
	o, positional, err := parseArgs(args)
	if err != nil {
		cli.Warn("%s", err)
		return exitUsage
	}
	if o.help {
		cli.Warn("%s", usage(flag.CommandLine))
		return exitUsage
	}
	if o.version {
		fmt.Printf("%s %s\n", name, version)
		return exitOK
	}
	if len(positional) != 4 && len(positional) != 3 {
		cli.Warn("%s", usage(flag.CommandLine))
		return exitUsage
	}

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		cli.Warn("%s", err)
		return exitUsage
	}
	reservation, err := resolveReservation(o.reservation, cfg.Reservation)
	if err != nil {
		cli.Warn("%s", err)
		return exitUsage
	}

	var inputPath, outputPath, p12Path, p12Pass string
	if len(positional) == 4 {
		inputPath, outputPath, p12Path, p12Pass = positional[0], positional[1], positional[2], positional[3]
	} else {
		inputPath, p12Path, p12Pass = positional[0], positional[1], positional[2]
		outputPath, err = resolveOutputPath(inputPath, cfg.OutputSuffix)
		if err != nil {
			cli.Warn("%s", err)
			return exitUsage
		}
	}

	document, err := readFile(inputPath)
	if err != nil {
		cli.Warn("%s", err)
		return exitUsage
	}
	p12, err := readFile(p12Path)
	if err != nil {
		cli.Warn("%s", err)
		return exitUsage
	}

	key, certs, err := loadPKCS12(p12, p12Pass)
	if err != nil {
		cli.Warn("%s", err)
		return exitSigningError
	}
	cmsSigner, err := newSigner(key, certs)
	if err != nil {
		cli.Warn("%s", err)
		return exitSigningError
	}

	signed, err := signDocument(document, cmsSigner, reservation, nil, nil)
	if err != nil {
		cli.Warn("error: %s", err)
		return exitSigningError
	}

	if err := writeFile(outputPath, signed, 0o666); err != nil {
		removeFile(outputPath)
		cli.Warn("%s", err)
		return exitWriteError
	}
	return exitOK
}

func main() {
	cli.OSExit(run(os.Args[1:]))
}
