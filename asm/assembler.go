// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"io"
	"log"
	"maps"
	"slices"
	"strings"
)

// Assembler is a line oriented macro assembler for the r16 machine.
type Assembler struct {
	Verbose bool    // If set, verbosely logs the assembler actions.
	Entry   []Entry // List of generated output entries.

	Label map[string]int      // Map of labels to output lines.
	Macro map[string](*Macro) // Map of macros.

	predefine   map[string]int // Predefined expression symbols.
	symbol      map[string]int // Expression symbols: predefines and labels.
	comment     bool           // Inside a ;= ... =; comment.
	macro       *Macro         // Macro being defined.
	macroHeader string         // Source line of the macro being defined.
	outLine     int            // Next output line.
}

// Predefine defines a new expression symbol or redefines an existing one.
func (asm *Assembler) Predefine(name string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Assemble assembles source text into output text.
func Assemble(source string) (output string, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	output = prog.String()
	return
}

// reset clears all state from a previous run.
func (asm *Assembler) reset() {
	asm.Entry = asm.Entry[:0]
	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.symbol = maps.Clone(asm.predefine)
	if asm.symbol == nil {
		asm.symbol = make(map[string]int, 16)
	}
	asm.comment = false
	asm.macro = nil
	asm.macroHeader = ""
	asm.outLine = 0
}

// Parse parses an input stream into a Program. The first error stops
// the parse, and no Program is returned.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.reset()

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Print(f("%v: %v", lineno, line))
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if asm.macro != nil {
		lineno = asm.macro.LineNo
		line = asm.macroHeader
		err = ErrMacroLonely
		return
	}

	prog = &Program{
		Entries: slices.Clone(asm.Entry),
	}

	return
}

// stripComments removes comments from a line. If the whole line is
// inside a multi-line comment, ok is false.
func (asm *Assembler) stripComments(text string) (line string, ok bool) {
	line = text

	if _, after, found := strings.Cut(line, "=;"); found {
		asm.comment = false
		line = after
	} else if asm.comment {
		return
	}

	if before, _, found := strings.Cut(line, ";="); found {
		asm.comment = true
		line = before
	}

	line, _, _ = strings.Cut(line, ";")
	ok = true
	return
}

// isMacroHeader checks for the `@macro` keyword.
func isMacroHeader(line string) (rest string, ok bool) {
	rest, ok = strings.CutPrefix(line, "@macro")
	if !ok {
		return
	}
	ok = len(rest) == 0 || strings.IndexByte(" \t(", rest[0]) >= 0
	return
}

// parseLine parses a single line of source.
func (asm *Assembler) parseLine(text string, lineno int) (err error) {
	line, ok := asm.stripComments(text)
	if !ok {
		return
	}
	line = strings.TrimSpace(line)

	if strings.HasSuffix(line, ":") {
		return asm.defineLabel(line[:strings.Index(line, ":")], lineno)
	}

	if rest, ok := isMacroHeader(line); ok {
		err = asm.beginMacro(rest, lineno)
		if err == nil {
			asm.macroHeader = text
		}
		return
	}

	if line == "}" {
		return asm.endMacro()
	}

	if len(line) == 0 {
		return
	}

	if asm.Verbose {
		log.Print(f("line %v: output line %v", lineno, asm.outLine))
	}

	if call, ok := strings.CutPrefix(line, "@"); ok {
		return asm.callMacro(call, lineno)
	}

	ins, err := ParseInstruction(line, lineno)
	if err != nil {
		return
	}

	// Macro bodies are captured, not emitted.
	if asm.macro != nil {
		asm.macro.Body = append(asm.macro.Body, *ins)
		return
	}

	return asm.emit(ins, lineno, "")
}

// defineLabel binds a label to the next output line.
func (asm *Assembler) defineLabel(name string, lineno int) (err error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		err = ErrLabelEmpty
		return
	}

	_, ok := asm.Label[name]
	if ok {
		err = ErrLabelDuplicate
		return
	}

	asm.Label[name] = asm.outLine
	asm.symbol[name] = asm.outLine
	asm.Entry = append(asm.Entry, Entry{LineNo: lineno, OutLine: asm.outLine, Label: name})

	return
}

// beginMacro starts capturing a macro definition.
func (asm *Assembler) beginMacro(header string, lineno int) (err error) {
	if asm.macro != nil {
		err = ErrMacroNesting
		return
	}

	name, params, ok := splitCall(header)
	if !ok || slices.Contains(params, "") {
		err = ErrMacroHeader
		return
	}

	_, ok = asm.Macro[name]
	if ok {
		err = ErrMacroDuplicate
		return
	}

	asm.macro = &Macro{
		Name:   name,
		LineNo: lineno,
		Params: params,
	}

	return
}

// endMacro stores the macro being captured.
func (asm *Assembler) endMacro() (err error) {
	if asm.macro == nil {
		err = ErrBraceLonely
		return
	}

	if asm.Verbose {
		log.Print(f("ending macro %v with length of %v", asm.macro.Name, len(asm.macro.Body)))
	}

	asm.Macro[asm.macro.Name] = asm.macro
	asm.macro = nil

	return
}

// callMacro expands a macro call. Inside a macro definition, the
// expansion is captured into the macro being defined.
func (asm *Assembler) callMacro(call string, lineno int) (err error) {
	name, args, ok := splitCall(call)
	if !ok {
		err = ErrMacroCall
		return
	}

	macro, ok := asm.Macro[name]
	if !ok {
		err = ErrMacroNotFound(name)
		return
	}

	body, err := macro.Expand(args)
	if err != nil {
		return
	}

	if asm.macro != nil {
		asm.macro.Body = append(asm.macro.Body, body...)
		return
	}

	for n := range body {
		err = asm.emit(&body[n], lineno, name)
		if err != nil {
			err = &ErrMacro{Macro: name, Line: body[n].LineNo, Err: err}
			return
		}
	}

	return
}

// emit encodes an instruction at the next output line.
func (asm *Assembler) emit(ins *Instruction, lineno int, macro string) (err error) {
	ins.OutLine = asm.outLine

	code, err := ins.Encode(asm.symbol)
	if err != nil {
		return
	}

	if asm.Verbose {
		log.Print(f("%03x: %v", ins.OutLine, code))
	}

	asm.Entry = append(asm.Entry, Entry{
		LineNo:      lineno,
		OutLine:     ins.OutLine,
		Macro:       macro,
		Instruction: ins,
		Code:        code,
	})
	asm.outLine++

	return
}
