package asm

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Entry is one line of the assembled output: a label marker or an
// encoded instruction.
type Entry struct {
	LineNo      int          // Source line number.
	OutLine     int          // Output line number.
	Label       string       // Label name, for label markers.
	Macro       string       // Macro the instruction was expanded from.
	Instruction *Instruction // Encoded instruction, nil for label markers.
	Code        Code
}

// String formats the entry as a line of output text, without newline.
func (entry *Entry) String() string {
	if entry.Instruction == nil {
		return fmt.Sprintf("(%v): %v", entry.Label, entry.OutLine)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%v:", entry.OutLine)
	for _, word := range entry.Code.Words() {
		fmt.Fprintf(&sb, "%#x\t", word)
	}
	return sb.String()
}

// Program is an assembled listing.
type Program struct {
	Entries []Entry
}

type Debug struct {
	*Entry
}

// Debug finds the instruction entry emitted at an output line.
func (prog *Program) Debug(outLine int) (dbg Debug) {
	for n, entry := range prog.Entries {
		if entry.Instruction != nil && entry.OutLine == outLine {
			dbg = Debug{Entry: &prog.Entries[n]}
			break
		}
	}

	return
}

// Codes iterates over the encoded instructions by output line.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(outLine int, code Code) bool) {
		for _, entry := range prog.Entries {
			if entry.Instruction == nil {
				continue
			}
			if !yield(entry.OutLine, entry.Code) {
				return
			}
		}
	}
}

// WriteTo writes the output text of the listing.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	for _, entry := range prog.Entries {
		var count int
		count, err = io.WriteString(w, entry.String()+"\n")
		n += int64(count)
		if err != nil {
			return
		}
	}

	return
}

// String returns the output text of the listing.
func (prog *Program) String() string {
	var sb strings.Builder
	_, _ = prog.WriteTo(&sb)
	return sb.String()
}
