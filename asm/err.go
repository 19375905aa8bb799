// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"errors"
	"fmt"

	"github.com/ezrec/r16asm/translate"
)

var f = translate.From

var (
	// ErrStructure is wrapped by every source structure error.
	ErrStructure = errors.New(f("structure"))

	// Structure errors
	ErrBraceLonely    = fmt.Errorf("%w: %v", ErrStructure, f("'}' without @macro"))
	ErrMacroHeader    = fmt.Errorf("%w: %v", ErrStructure, f("@macro syntax"))
	ErrMacroCall      = fmt.Errorf("%w: %v", ErrStructure, f("macro call syntax"))
	ErrMacroNesting   = fmt.Errorf("%w: %v", ErrStructure, f("@macro in @macro prohibited"))
	ErrMacroDuplicate = fmt.Errorf("%w: %v", ErrStructure, f("@macro duplicated"))
	ErrMacroLonely    = fmt.Errorf("%w: %v", ErrStructure, f("@macro without '}'"))
	ErrLabelDuplicate = fmt.Errorf("%w: %v", ErrStructure, f("label duplicated"))
	ErrLabelEmpty     = fmt.Errorf("%w: %v", ErrStructure, f("label name missing"))

	// Instruction errors
	ErrOpcodeMissing = errors.New(f("opcode missing"))

	// Operand errors
	ErrRegisterExpected = errors.New(f("register expected"))
	ErrImmediateSyntax  = errors.New(f("immediate must start with '#'"))
	ErrIndirectSyntax   = errors.New(f("address must be enclosed in '[...]'"))
)

// ErrOpcodeUnknown is returned for a mnemonic missing from the opcode table.
type ErrOpcodeUnknown string

func (err ErrOpcodeUnknown) Error() string {
	return f("opcode '%v' unknown", string(err))
}

type ErrMacroNotFound string

func (err ErrMacroNotFound) Error() string {
	return f("macro %v does not exist", string(err))
}

// ErrMacroArity is returned when a macro call has the wrong argument count.
type ErrMacroArity struct {
	Macro  string
	LineNo int // Line of the macro definition.
	Want   int
	Got    int
}

func (err *ErrMacroArity) Error() string {
	return f("macro %v takes %v arguments, not %v (defined at line %v)", err.Macro, err.Want, err.Got, err.LineNo)
}

// ErrArity is returned when an instruction has the wrong operand count.
type ErrArity struct {
	Opcode string
	Want   int
	Got    int
}

func (err *ErrArity) Error() string {
	return f("%v takes %v arguments, not %v", err.Opcode, err.Want, err.Got)
}

// ErrOperand is returned for an operand that cannot be encoded.
type ErrOperand struct {
	Opcode  string
	Operand string
	Err     error
}

func (err *ErrOperand) Error() string {
	return f("%v operand '%v' %v", err.Opcode, err.Operand, err.Err)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a 16-bit number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax indicates the source line of an assembly error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrMacro indicates a failure while expanding a macro body.
type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err *ErrMacro) Error() string {
	return f("in macro expansion %v line %v %v", err.Macro, err.Line, err.Err)
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}
