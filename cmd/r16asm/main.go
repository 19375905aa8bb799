// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/tebeka/atexit"

	"github.com/ezrec/r16asm/asm"
)

func main() {
	var output string
	var verbose bool

	flag.StringVar(&output, "o", "", "Output file (default: INPUT.o)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [-o OUTPUT] [-v] INPUT\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		atexit.Exit(2)
	}

	input := flag.Arg(0)
	if len(output) == 0 {
		output = input + ".o"
	}

	inf, err := os.Open(input)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("%v: file not found", input)
		atexit.Exit(1)
	}
	if err != nil {
		atexit.Fatalf("%v: %v", input, err)
	}
	atexit.Register(func() { inf.Close() })

	as := &asm.Assembler{Verbose: verbose}
	prog, err := as.Parse(inf)
	if err != nil {
		atexit.Fatalf("%v: %v", input, err)
	}

	if verbose {
		logListing(prog)
	}

	err = writeProgram(output, prog)
	if err != nil {
		atexit.Fatalf("%v: %v", output, err)
	}

	atexit.Exit(0)
}

// logListing logs the disassembly of each output line, with the source
// line it was assembled from.
func logListing(prog *asm.Program) {
	for outLine, code := range prog.Codes() {
		dbg := prog.Debug(outLine)
		if len(dbg.Macro) > 0 {
			log.Printf("%03x: %-16v ; line %d @%v", outLine, code, dbg.LineNo, dbg.Macro)
		} else {
			log.Printf("%03x: %-16v ; line %d", outLine, code, dbg.LineNo)
		}
	}
}

// writeProgram writes the program text to a temporary file next to path,
// and renames it into place once complete.
func writeProgram(path string, prog *asm.Program) (err error) {
	ouf, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return
	}

	// Left over only if we exit before the rename.
	tmp := ouf.Name()
	id := atexit.Register(func() { os.Remove(tmp) })
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
		id.Cancel()
	}()

	_, err = prog.WriteTo(ouf)
	if cerr := ouf.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return
	}

	err = os.Rename(tmp, path)
	return
}
