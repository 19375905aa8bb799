package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeTable(t *testing.T) {
	assert := assert.New(t)

	operands := map[Class]string{
		CLASS_MATH_SINGLES: "r1",
		CLASS_MATH_DOUBLES: "r2, r1",
		CLASS_MOVES:        "r2, r1",
		CLASS_RAM_MOVES:    "r2, r1",
		CLASS_STACK:        "r1",
		CLASS_JUMP:         "0",
	}
	regs := map[Class]uint16{
		CLASS_MATH_SINGLES: 1,
		CLASS_MATH_DOUBLES: 2<<3 | 1,
		CLASS_MOVES:        2<<3 | 1,
		CLASS_RAM_MOVES:    2<<3 | 1,
		CLASS_STACK:        1,
		CLASS_JUMP:         0,
	}

	assert.Equal(16, len(opNames))

	for _, name := range opNames {
		op, ok := LookupOp(name)
		assert.True(ok, name)

		ins, err := ParseInstruction(name+" "+operands[op.Class], 1)
		assert.NoError(err, name)
		assert.Equal(name, ins.Opcode)

		code, err := ins.Encode(nil)
		assert.NoError(err, name)

		expected := op.Class.Base() | op.Sub<<op.Class.Shift() | regs[op.Class]
		assert.Equal(expected, code.Word, name)
		assert.Equal(Flags(0), code.Flags(), name)
		assert.Equal(op.Class, code.Class(), name)

		if op.Class == CLASS_JUMP {
			assert.Equal([]uint16{0}, code.Immediates, name)
		} else {
			assert.Empty(code.Immediates, name)
		}
	}
}

func TestOpcodeLongestFirst(t *testing.T) {
	assert := assert.New(t)

	names := opNames
	for n := 1; n < len(names); n++ {
		assert.GreaterOrEqual(len(names[n-1]), len(names[n]))
	}
	assert.Equal("j", names[len(names)-1])
}

func TestClassLayout(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		class Class
		name  string
		base  uint16
		shift int
		arity int
	}{
		{CLASS_MATH_SINGLES, "math1", 0x01c0, 3, 1},
		{CLASS_MATH_DOUBLES, "math2", 0x0000, 5, 2},
		{CLASS_MOVES, "move", 0x0200, 5, 2},
		{CLASS_RAM_MOVES, "ram", 0x0280, 5, 2},
		{CLASS_STACK, "stack", 0x0300, 4, 1},
		{CLASS_JUMP, "jump", 0x0800, 0, 1},
	}

	for _, entry := range table {
		assert.Equal(entry.name, entry.class.String())
		assert.Equal(entry.base, entry.class.Base(), entry.name)
		assert.Equal(entry.shift, entry.class.Shift(), entry.name)
		assert.Equal(entry.arity, entry.class.Arity(), entry.name)
	}

	assert.Equal("Class(9)", Class(9).String())
}

func TestRegisterOf(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(REG_R0, RegisterOf("r0"))
	assert.Equal(REG_R1, RegisterOf("r1"))
	assert.Equal(REG_R2, RegisterOf("r2"))
	assert.Equal(REG_R3, RegisterOf("r3"))
	assert.Equal(REG_NONE, RegisterOf("r4"))
	assert.Equal(REG_NONE, RegisterOf("R0"))
	assert.Equal(REG_NONE, RegisterOf("#1"))
	assert.Equal(REG_NONE, RegisterOf(""))
}

func TestCodeMake(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Code{0x0201, nil}, MakeCodeMove(0, 0, REG_R0, REG_R1))
	assert.Equal(Code{0x0007, []uint16{5}}, MakeCodeMathDouble(0, 0, REG_R0, REG_NONE, 5))
	assert.Equal(Code{0x02b7, []uint16{16}}, MakeCodeRam(0, 1, REG_R2, REG_NONE, 16))
	assert.Equal(Code{0x01d3, nil}, MakeCodeMathSingle(0, 2, REG_R3))
	assert.Equal(Code{0x0312, nil}, MakeCodeStack(0, 1, REG_R2))
	assert.Equal(Code{0x6800, []uint16{12}}, MakeCodeJump(FLAG_NEGATIVE|FLAG_ZERO, 12))
	assert.Equal(Code{0x7001, nil}, MakeCodeMathDouble(FLAG_NEGATIVE|FLAG_ZERO|FLAG_UPDATE, 0, REG_R0, REG_R1))
}

func TestCodeDecode(t *testing.T) {
	assert := assert.New(t)

	class, sub, a, b := MakeCodeMathDouble(FLAG_UPDATE, 6, REG_R3, REG_NONE, 1).Decode()
	assert.Equal(CLASS_MATH_DOUBLES, class)
	assert.Equal(uint16(6), sub)
	assert.Equal(REG_R3, a)
	assert.Equal(REG_NONE, b)

	class, sub, a, _ = MakeCodeStack(0, 1, REG_NONE, 1).Decode()
	assert.Equal(CLASS_STACK, class)
	assert.Equal(uint16(1), sub)
	assert.Equal(REG_NONE, a)

	class, sub, a, _ = MakeCodeMathSingle(FLAG_ZERO, 1, REG_R0).Decode()
	assert.Equal(CLASS_MATH_SINGLES, class)
	assert.Equal(uint16(1), sub)
	assert.Equal(REG_R0, a)

	class, sub, a, b = MakeCodeRam(0, 1, REG_R1, REG_R2).Decode()
	assert.Equal(CLASS_RAM_MOVES, class)
	assert.Equal(uint16(1), sub)
	assert.Equal(REG_R1, a)
	assert.Equal(REG_R2, b)

	assert.Equal(CLASS_MOVES, MakeCodeMove(0, 0, REG_R3, REG_R3).Class())
	assert.Equal(CLASS_JUMP, MakeCodeJump(FLAG_UPDATE, 0).Class())
}

func TestCodeImmediateNeed(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, MakeCodeMove(0, 0, REG_R0, REG_R1).ImmediateNeed())
	assert.Equal(1, MakeCodeMove(0, 0, REG_R0, REG_NONE, 1).ImmediateNeed())
	assert.Equal(1, MakeCodeStack(0, 0, REG_NONE, 1).ImmediateNeed())
	assert.Equal(0, MakeCodeMathSingle(0, 0, REG_R2).ImmediateNeed())
	assert.Equal(1, MakeCodeJump(0, 7).ImmediateNeed())
}

func TestCodeString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("mov r0, r1", MakeCodeMove(0, 0, REG_R0, REG_R1).String())
	assert.Equal("addzs r0, #5", MakeCodeMathDouble(FLAG_ZERO|FLAG_UPDATE, 0, REG_R0, REG_NONE, 5).String())
	assert.Equal("load r2, [16]", MakeCodeRam(0, 1, REG_R2, REG_NONE, 16).String())
	assert.Equal("push #-3", MakeCodeStack(0, 0, REG_NONE, 0xfffd).String())
	assert.Equal("not r3", MakeCodeMathSingle(0, 2, REG_R3).String())
	assert.Equal("jn 12", MakeCodeJump(FLAG_NEGATIVE, 12).String())
	assert.Equal("mov r0, ?", MakeCodeMove(0, 0, REG_R0, REG_NONE).String())
}

func TestCodeStringRoundTrip(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"mov r1, #-7",
		"str r0, [12]",
		"loadz r3, r2",
		"incrs r0",
		"decr #9",
		"nots r1",
		"addn r0, r1",
		"subz r2, #1",
		"mul r3, r3",
		"and r0, #255",
		"or r1, r2",
		"xors r1, r1",
		"cmpnzs r0, #0",
		"push #100",
		"popz r2",
		"j 42",
		"jnz 65535",
	}

	for _, text := range program {
		ins, err := ParseInstruction(text, 1)
		assert.NoError(err, text)
		code, err := ins.Encode(nil)
		assert.NoError(err, text)

		ins, err = ParseInstruction(code.String(), 1)
		assert.NoError(err, text)
		again, err := ins.Encode(nil)
		assert.NoError(err, text)
		assert.Equal(code, again, text)
	}
}
