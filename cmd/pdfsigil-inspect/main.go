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

// Command pdfsigil-inspect lists and extracts the indirect objects
// of a PDF's effective cross-reference table, independent of
// signing: a plain "list"/"copyout" argv interface over the same
// xref/incupdate machinery the signer uses, with no Stream objects
// to extract since this module's parser never produces them (see
// package pdfobj).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pjanx/pdfsigil/incupdate"
	"github.com/pjanx/pdfsigil/internal/cli"
	"github.com/pjanx/pdfsigil/xref"
)

func usage() string {
	return fmt.Sprintf("Usage: %s [-h] list DOCUMENT\n"+
		"       %s [-h] copyout DOCUMENT N GENERATION DEST",
		os.Args[0], os.Args[0])
}

func openDocument(path string) (*incupdate.Updater, error) {
	document, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loaded, err := xref.Load(document, nil)
	if err != nil {
		return nil, err
	}
	return incupdate.New(document, loaded, nil), nil
}

func listObjects(mtime time.Time, u *incupdate.Updater) {
	stamp := mtime.Local().Format("01-02-2006 15:04:05")
	for _, ref := range u.ListIndirect() {
		object, err := u.Get(ref.N, ref.Generation)
		size := 0
		if err != nil {
			fmt.Fprintf(os.Stderr, "n%dg%d: %s\n", ref.N, ref.Generation, err)
		} else {
			size = len(object.Serialize())
		}
		fmt.Printf("-r--r--r-- 1 0 0 %8d %s n%dg%d\n", size, stamp, ref.N, ref.Generation)
	}
}

func copyOut(u *incupdate.Updater, n, generation uint, dest string) error {
	object, err := u.Get(n, generation)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(object.Serialize()), 0o666)
}

func main() {
	flag.Usage = func() { fmt.Fprintln(cli.Stderr, usage()) }
	flag.Parse()
	if flag.NArg() < 2 {
		cli.Die(1, "%s", usage())
	}

	command, documentPath := flag.Arg(0), flag.Arg(1)
	info, err := os.Stat(documentPath)
	if err != nil {
		cli.Die(1, "%s", err)
	}
	u, err := openDocument(documentPath)
	if err != nil {
		cli.Die(2, "%s", err)
	}

	switch command {
	case "list":
		if flag.NArg() != 2 {
			cli.Die(1, "%s", usage())
		}
		listObjects(info.ModTime(), u)
	case "copyout":
		if flag.NArg() != 5 {
			cli.Die(1, "%s", usage())
		}
		var n, generation uint
		if _, err := fmt.Sscanf(flag.Arg(2), "%d", &n); err != nil {
			cli.Die(1, "invalid object number: %s", flag.Arg(2))
		}
		if _, err := fmt.Sscanf(flag.Arg(3), "%d", &generation); err != nil {
			cli.Die(1, "invalid generation: %s", flag.Arg(3))
		}
		if err := copyOut(u, n, generation, flag.Arg(4)); err != nil {
			cli.Die(3, "%s", err)
		}
	default:
		cli.Die(1, "unsupported command: %s", command)
	}
}
