package asm

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Class is an instruction class.
type Class int

//go:generate go tool stringer -linecomment -type=Class
const (
	CLASS_MATH_SINGLES = Class(0) // math1
	CLASS_MATH_DOUBLES = Class(1) // math2
	CLASS_MOVES        = Class(2) // move
	CLASS_RAM_MOVES    = Class(3) // ram
	CLASS_STACK        = Class(4) // stack
	CLASS_JUMP         = Class(5) // jump
)

// classLayout is the fixed encoding of an instruction class.
type classLayout struct {
	base  uint16 // Base bit pattern.
	shift int    // Sub-opcode shift.
	arity int    // Operand count.
}

var classLayouts = [...]classLayout{
	CLASS_MATH_SINGLES: {0b0000_0001_1100_0000, 3, 1},
	CLASS_MATH_DOUBLES: {0b0000_0000_0000_0000, 5, 2},
	CLASS_MOVES:        {0b0000_0010_0000_0000, 5, 2},
	CLASS_RAM_MOVES:    {0b0000_0010_1000_0000, 5, 2},
	CLASS_STACK:        {0b0000_0011_0000_0000, 4, 1},
	CLASS_JUMP:         {0b0000_1000_0000_0000, 0, 1},
}

// Base returns the fixed bit pattern of the class.
func (class Class) Base() uint16 {
	return classLayouts[class].base
}

// Shift returns the bit position of the class sub-opcode field.
func (class Class) Shift() int {
	return classLayouts[class].shift
}

// Arity returns the number of operands the class requires.
func (class Class) Arity() int {
	return classLayouts[class].arity
}

// Flags are the condition/update bits of an instruction word.
type Flags uint16

const (
	FLAG_UPDATE   = Flags(1 << 0)
	FLAG_ZERO     = Flags(1 << 1)
	FLAG_NEGATIVE = Flags(1 << 2)

	FLAG_SHIFT = 12 // Position of the flag field in the word.
)

// Suffix returns the mnemonic suffix that selects the flags.
func (flags Flags) Suffix() (suffix string) {
	if flags&FLAG_NEGATIVE != 0 {
		suffix += "n"
	}
	if flags&FLAG_ZERO != 0 {
		suffix += "z"
	}
	if flags&FLAG_UPDATE != 0 {
		suffix += "s"
	}
	return
}

// Register is a register operand code.
type Register uint16

const (
	REG_R0   = Register(0)
	REG_R1   = Register(1)
	REG_R2   = Register(2)
	REG_R3   = Register(3)
	REG_NONE = Register(0b111) // Operand is an immediate or address.
)

var registerMap = map[string]Register{
	"r0": REG_R0,
	"r1": REG_R1,
	"r2": REG_R2,
	"r3": REG_R3,
}

// RegisterOf returns the register code of a word, or REG_NONE.
func RegisterOf(word string) Register {
	reg, ok := registerMap[word]
	if !ok {
		return REG_NONE
	}
	return reg
}

func (reg Register) String() string {
	if reg == REG_NONE {
		return "imm"
	}
	return fmt.Sprintf("r%d", uint16(reg))
}

// Op is an opcode table entry.
type Op struct {
	Class Class
	Sub   uint16
}

// opMap maps base mnemonics to their class and sub-opcode.
var opMap = map[string]Op{
	"mov": {CLASS_MOVES, 0},

	"str":  {CLASS_RAM_MOVES, 0},
	"load": {CLASS_RAM_MOVES, 1},

	"incr": {CLASS_MATH_SINGLES, 0},
	"decr": {CLASS_MATH_SINGLES, 1},
	"not":  {CLASS_MATH_SINGLES, 2},

	"add": {CLASS_MATH_DOUBLES, 0},
	"sub": {CLASS_MATH_DOUBLES, 1},
	"mul": {CLASS_MATH_DOUBLES, 2},
	"and": {CLASS_MATH_DOUBLES, 3},
	"or":  {CLASS_MATH_DOUBLES, 4},
	"xor": {CLASS_MATH_DOUBLES, 5},
	"cmp": {CLASS_MATH_DOUBLES, 6},

	"push": {CLASS_STACK, 0},
	"pop":  {CLASS_STACK, 1},

	"j": {CLASS_JUMP, 0},
}

// opNames holds the opMap mnemonics, longest first.
var opNames = func() (names []string) {
	names = slices.Collect(maps.Keys(opMap))
	slices.SortFunc(names, func(a, b string) int {
		if n := cmp.Compare(len(b), len(a)); n != 0 {
			return n
		}
		return strings.Compare(a, b)
	})
	return
}()

// LookupOp returns the opcode table entry of a base mnemonic.
func LookupOp(mnemonic string) (op Op, ok bool) {
	op, ok = opMap[mnemonic]
	return
}

// mnemonicOf is the reverse of opMap.
func mnemonicOf(class Class, sub uint16) (name string, ok bool) {
	for key, op := range opMap {
		if op.Class == class && op.Sub == sub {
			return key, true
		}
	}
	return
}

// Code is a single instruction word with optional immediate words.
type Code struct {
	Word       uint16
	Immediates []uint16
}

// makeCode creates an instruction word of a class.
func makeCode(flags Flags, class Class, op uint16, imms ...uint16) Code {
	return Code{
		Word:       (uint16(flags&7) << FLAG_SHIFT) | class.Base() | op,
		Immediates: imms,
	}
}

// makeCodeDouble creates a two operand instruction.
func makeCodeDouble(class Class, flags Flags, sub uint16, dst, src Register, imms ...uint16) Code {
	return makeCode(flags, class, (sub<<class.Shift())|(uint16(dst&3)<<3)|uint16(src), imms...)
}

// MakeCodeMove creates a register move instruction.
func MakeCodeMove(flags Flags, sub uint16, dst, src Register, imms ...uint16) Code {
	return makeCodeDouble(CLASS_MOVES, flags, sub, dst, src, imms...)
}

// MakeCodeRam creates a memory store or load instruction.
func MakeCodeRam(flags Flags, sub uint16, reg, addr Register, imms ...uint16) Code {
	return makeCodeDouble(CLASS_RAM_MOVES, flags, sub, reg, addr, imms...)
}

// MakeCodeMathDouble creates a two operand ALU instruction.
func MakeCodeMathDouble(flags Flags, sub uint16, dst, src Register, imms ...uint16) Code {
	return makeCodeDouble(CLASS_MATH_DOUBLES, flags, sub, dst, src, imms...)
}

// MakeCodeMathSingle creates a one operand ALU instruction.
func MakeCodeMathSingle(flags Flags, sub uint16, arg Register, imms ...uint16) Code {
	return makeCode(flags, CLASS_MATH_SINGLES, (sub<<CLASS_MATH_SINGLES.Shift())|uint16(arg), imms...)
}

// MakeCodeStack creates a push or pop instruction.
func MakeCodeStack(flags Flags, sub uint16, arg Register, imms ...uint16) Code {
	return makeCode(flags, CLASS_STACK, (sub<<CLASS_STACK.Shift())|uint16(arg), imms...)
}

// MakeCodeJump creates a jump to an absolute output line.
func MakeCodeJump(flags Flags, target uint16) Code {
	return makeCode(flags, CLASS_JUMP, 0, target)
}

// Words returns the instruction word followed by its immediates.
func (code Code) Words() []uint16 {
	return append([]uint16{code.Word}, code.Immediates...)
}

// Flags returns the flag field of the instruction word.
func (code Code) Flags() Flags {
	return Flags((code.Word >> FLAG_SHIFT) & 7)
}

// Class returns the instruction class of the instruction word.
func (code Code) Class() Class {
	word := code.Word
	switch {
	case word&0x0800 != 0:
		return CLASS_JUMP
	case word&0x0380 == CLASS_STACK.Base():
		return CLASS_STACK
	case word&0x0380 == CLASS_RAM_MOVES.Base():
		return CLASS_RAM_MOVES
	case word&0x0380 == CLASS_MOVES.Base():
		return CLASS_MOVES
	case word&0x0100 != 0:
		return CLASS_MATH_SINGLES
	}
	return CLASS_MATH_DOUBLES
}

// Decode returns the class, sub-opcode and register fields of the word.
// Single operand classes return their operand in a.
func (code Code) Decode() (class Class, sub uint16, a, b Register) {
	word := code.Word
	class = code.Class()

	switch class {
	case CLASS_MATH_SINGLES:
		sub = (word >> 3) & 0x7
		a = Register(word & 0x7)
	case CLASS_MATH_DOUBLES:
		sub = (word >> 5) & 0x7
		a = Register((word >> 3) & 0x3)
		b = Register(word & 0x7)
	case CLASS_MOVES, CLASS_RAM_MOVES:
		sub = (word >> 5) & 0x3
		a = Register((word >> 3) & 0x3)
		b = Register(word & 0x7)
	case CLASS_STACK:
		sub = (word >> 4) & 0xf
		a = Register(word & 0x7)
	}

	return
}

// ImmediateNeed returns the number of immediate words the instruction needs.
func (code Code) ImmediateNeed() int {
	class, _, a, b := code.Decode()
	switch class {
	case CLASS_JUMP:
		return 1
	case CLASS_MATH_SINGLES, CLASS_STACK:
		if a == REG_NONE {
			return 1
		}
	default:
		if b == REG_NONE {
			return 1
		}
	}
	return 0
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	class, sub, a, b := code.Decode()

	name, ok := mnemonicOf(class, sub)
	if !ok {
		name = fmt.Sprintf("%v.%d", class, sub)
	}
	name += code.Flags().Suffix()

	short := len(code.Immediates) < code.ImmediateNeed()

	imm := func(format string, reg Register) string {
		if reg != REG_NONE {
			return reg.String()
		}
		if short {
			return "?"
		}
		return fmt.Sprintf(format, int16(code.Immediates[0]))
	}

	switch class {
	case CLASS_JUMP:
		if short {
			return name + " ?"
		}
		return fmt.Sprintf("%v %d", name, code.Immediates[0])
	case CLASS_MATH_SINGLES, CLASS_STACK:
		return fmt.Sprintf("%v %v", name, imm("#%d", a))
	case CLASS_RAM_MOVES:
		return fmt.Sprintf("%v %v, %v", name, a, imm("[%d]", b))
	}

	return fmt.Sprintf("%v %v, %v", name, a, imm("#%d", b))
}
