package asm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMacroExpand(t *testing.T) {
	assert := assert.New(t)

	macro := &Macro{
		Name:   "add",
		LineNo: 1,
		Params: []string{"a", "b"},
		Body: []Instruction{
			{Opcode: "mov", Args: []string{"r0", "a"}, LineNo: 2},
			{Opcode: "add", Args: []string{"r0", "b"}, LineNo: 3},
		},
	}

	body, err := macro.Expand([]string{"r1", "#5"})
	assert.NoError(err)
	assert.Equal([]Instruction{
		{Opcode: "mov", Args: []string{"r0", "r1"}, LineNo: 2},
		{Opcode: "add", Args: []string{"r0", "#5"}, LineNo: 3},
	}, body)

	// The stored body is untouched.
	assert.Equal([]string{"r0", "a"}, macro.Body[0].Args)
	assert.Equal([]string{"r0", "b"}, macro.Body[1].Args)

	// Substitution is simultaneous.
	body, err = macro.Expand([]string{"b", "a"})
	assert.NoError(err)
	assert.Equal([]string{"r0", "b"}, body[0].Args)
	assert.Equal([]string{"r0", "a"}, body[1].Args)

	_, err = macro.Expand([]string{"r1"})
	var ea *ErrMacroArity
	if assert.True(errors.As(err, &ea)) {
		assert.Equal("add", ea.Macro)
		assert.Equal(1, ea.LineNo)
		assert.Equal(2, ea.Want)
		assert.Equal(1, ea.Got)
	}
}

func TestMacroExpandWholeToken(t *testing.T) {
	assert := assert.New(t)

	macro := &Macro{
		Name:   "m",
		Params: []string{"x"},
		Body: []Instruction{
			{Opcode: "mov", Args: []string{"x", "#x"}},
		},
	}

	body, err := macro.Expand([]string{"r2"})
	assert.NoError(err)
	assert.Equal([]string{"r2", "#x"}, body[0].Args)
}

func TestSplitCall(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		text string
		name string
		args []string
		ok   bool
	}{
		{"add(a, b)", "add", []string{"a", "b"}, true},
		{" add ( a ,b ) {", "add", []string{"a", "b"}, true},
		{"nop()", "nop", nil, true},
		{"one( x )", "one", []string{"x"}, true},
		{"gap(a,)", "gap", []string{"a", ""}, true},
		{"add a, b", "", nil, false},
		{"add(a, b", "", nil, false},
		{"add)a(", "", nil, false},
		{"(a)", "", nil, false},
		{"two words(a)", "", nil, false},
	}

	for _, entry := range table {
		name, args, ok := splitCall(entry.text)
		assert.Equal(entry.ok, ok, entry.text)
		if entry.ok {
			assert.Equal(entry.name, name, entry.text)
			assert.Equal(entry.args, args, entry.text)
		}
	}
}
