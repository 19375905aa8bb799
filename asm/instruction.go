package asm

import (
	"strings"
)

// Instruction is a single parsed assembly statement.
type Instruction struct {
	Opcode   string   // Base mnemonic, flag suffix removed.
	Negative bool     // 'n' or 'lt' suffix.
	Zero     bool     // 'z' or 'eq' suffix.
	Update   bool     // 's' suffix.
	Args     []string // Operand text, as written.
	LineNo   int      // Source line number.
	OutLine  int      // Output line number, once emitted.
}

// ParseInstruction parses one comment stripped source line.
//
// The first field is the mnemonic. The longest opcode table mnemonic that
// prefixes it is the base opcode, and the remaining letters are scanned for
// flag suffixes. Unknown mnemonics are kept verbatim, and fail when encoded.
func ParseInstruction(line string, lineno int) (ins *Instruction, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		err = ErrOpcodeMissing
		return
	}

	token := fields[0]
	ins = &Instruction{
		Opcode: token,
		Args:   strings.Split(strings.Join(fields[1:], ""), ","),
		LineNo: lineno,
	}

	for _, name := range opNames {
		suffix, ok := strings.CutPrefix(token, name)
		if !ok {
			continue
		}
		ins.Opcode = name
		ins.Update = strings.Contains(suffix, "s")
		ins.Zero = strings.Contains(suffix, "z") || strings.Contains(suffix, "eq")
		ins.Negative = strings.Contains(suffix, "n") || strings.Contains(suffix, "lt")
		break
	}

	return
}

// Flags returns the flag bits selected by the mnemonic suffix.
func (ins *Instruction) Flags() (flags Flags) {
	if ins.Negative {
		flags |= FLAG_NEGATIVE
	}
	if ins.Zero {
		flags |= FLAG_ZERO
	}
	if ins.Update {
		flags |= FLAG_UPDATE
	}
	return
}

// operandError annotates an operand failure.
func (ins *Instruction) operandError(operand string, err error) error {
	return &ErrOperand{Opcode: ins.Opcode, Operand: operand, Err: err}
}

// immediate parses a '#' literal operand.
func (ins *Instruction) immediate(word string, symbols map[string]int) (value uint16, err error) {
	payload, ok := strings.CutPrefix(word, "#")
	if !ok {
		err = ins.operandError(word, ErrImmediateSyntax)
		return
	}
	value, err = valueOf(payload, symbols)
	if err != nil {
		err = ins.operandError(word, err)
	}
	return
}

// indirect parses a '[...]' address operand.
func (ins *Instruction) indirect(word string, symbols map[string]int) (value uint16, err error) {
	payload, ok := strings.CutPrefix(word, "[")
	if ok {
		payload, ok = strings.CutSuffix(payload, "]")
	}
	if !ok {
		err = ins.operandError(word, ErrIndirectSyntax)
		return
	}
	value, err = valueOf(payload, symbols)
	if err != nil {
		err = ins.operandError(word, err)
	}
	return
}

// Encode encodes the instruction into an instruction word and its
// immediates. Symbols are visible to $(...) expressions, and may be nil.
func (ins *Instruction) Encode(symbols map[string]int) (code Code, err error) {
	op, ok := LookupOp(ins.Opcode)
	if !ok {
		err = ErrOpcodeUnknown(ins.Opcode)
		return
	}

	if len(ins.Args) != op.Class.Arity() {
		err = &ErrArity{Opcode: ins.Opcode, Want: op.Class.Arity(), Got: len(ins.Args)}
		return
	}

	flags := ins.Flags()

	switch op.Class {
	case CLASS_MOVES, CLASS_MATH_DOUBLES, CLASS_RAM_MOVES:
		dst := RegisterOf(ins.Args[0])
		if dst == REG_NONE {
			err = ins.operandError(ins.Args[0], ErrRegisterExpected)
			return
		}
		src := RegisterOf(ins.Args[1])
		var imms []uint16
		if src == REG_NONE {
			var imm uint16
			if op.Class == CLASS_RAM_MOVES {
				imm, err = ins.indirect(ins.Args[1], symbols)
			} else {
				imm, err = ins.immediate(ins.Args[1], symbols)
			}
			if err != nil {
				return
			}
			imms = []uint16{imm}
		}
		switch op.Class {
		case CLASS_MOVES:
			code = MakeCodeMove(flags, op.Sub, dst, src, imms...)
		case CLASS_RAM_MOVES:
			code = MakeCodeRam(flags, op.Sub, dst, src, imms...)
		default:
			code = MakeCodeMathDouble(flags, op.Sub, dst, src, imms...)
		}
	case CLASS_MATH_SINGLES, CLASS_STACK:
		arg := RegisterOf(ins.Args[0])
		var imms []uint16
		if arg == REG_NONE {
			var imm uint16
			imm, err = ins.immediate(ins.Args[0], symbols)
			if err != nil {
				return
			}
			imms = []uint16{imm}
		}
		if op.Class == CLASS_STACK {
			code = MakeCodeStack(flags, op.Sub, arg, imms...)
		} else {
			code = MakeCodeMathSingle(flags, op.Sub, arg, imms...)
		}
	case CLASS_JUMP:
		var target uint16
		target, err = targetOf(ins.Args[0], symbols)
		if err != nil {
			err = ins.operandError(ins.Args[0], err)
			return
		}
		code = MakeCodeJump(flags, target)
	}

	return
}
