// sdls loads a host directory into an in-memory card volume and lists
// it the way the on-target recursive lister would, which makes the
// listing format checkable without hardware.
//
// usage: sdls [flags] DIR [PATH]
//
// DIR is the host directory imported into the volume; PATH is the
// volume path to list, default the root.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/pflag"

	"github.com/rstms/sdfs"
	"github.com/rstms/sdfs/memcard"
	"github.com/rstms/sdfs/sd"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var (
		recurse bool
		size    bool
		date    bool
		times   bool
		outFile string
	)
	flags := pflag.NewFlagSet("sdls", pflag.ContinueOnError)
	flags.BoolVarP(&recurse, "recursive", "r", false, "descend into subdirectories")
	flags.BoolVarP(&size, "size", "s", false, "show file sizes")
	flags.BoolVarP(&date, "date", "d", false, "show modification dates")
	flags.BoolVarP(&times, "time", "t", false, "show modification times")
	flags.StringVarP(&outFile, "output", "o", "", "write the listing to FILE atomically")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	rest := flags.Args()
	if len(rest) < 1 || len(rest) > 2 {
		return Fatalf("usage: sdls [flags] DIR [PATH]")
	}
	dir := rest[0]
	target := "/"
	if len(rest) == 2 {
		target = rest[1]
	}
	if IsFile(dir) {
		return Fatalf("not a directory: %s", dir)
	}

	card := memcard.New()
	vol := sd.New(card, card)
	if !vol.Begin(sdfs.DetectConfig{}) {
		return Fatalf("card init failed")
	}
	defer vol.End()

	if err := card.Import(dir); err != nil {
		return Fatal(err)
	}

	f := vol.Open(target, sdfs.FileRead)
	if !f.IsOpen() {
		return Fatalf("open %s: %s", target, f.LastResult())
	}
	defer f.Close()
	if !f.IsDir() {
		return Fatalf("not a directory on the volume: %s", target)
	}

	var lsFlags sd.LsFlags
	if date {
		lsFlags |= sd.LsDate
	}
	if times {
		lsFlags |= sd.LsTime
	}
	if size {
		lsFlags |= sd.LsSize
	}
	if recurse {
		lsFlags |= sd.LsRecurse
	}

	if outFile == "" {
		f.Ls(stdout, lsFlags, 0)
		return nil
	}
	var buf bytes.Buffer
	f.Ls(&buf, lsFlags, 0)
	err := atomic.WriteFile(outFile, &buf)
	if err != nil {
		return Fatal(err)
	}
	return nil
}
