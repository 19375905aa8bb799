package asm

import (
	"slices"
	"strings"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	Name   string        // Name of the macro.
	LineNo int           // Line number of the macro definition.
	Params []string      // Formal parameters, in call order.
	Body   []Instruction // Captured instructions.
}

// Expand returns a copy of the macro body with each formal parameter
// operand replaced by the matching call argument. The stored body is
// never modified.
func (m *Macro) Expand(args []string) (body []Instruction, err error) {
	if len(args) != len(m.Params) {
		err = &ErrMacroArity{Macro: m.Name, LineNo: m.LineNo, Want: len(m.Params), Got: len(args)}
		return
	}

	actual := make(map[string]string, len(m.Params))
	for n, param := range m.Params {
		if _, ok := actual[param]; !ok {
			actual[param] = args[n]
		}
	}

	body = make([]Instruction, len(m.Body))
	for n, ins := range m.Body {
		ins.Args = slices.Clone(ins.Args)
		for i, arg := range ins.Args {
			if value, ok := actual[arg]; ok {
				ins.Args[i] = value
			}
		}
		body[n] = ins
	}

	return
}

// splitCall splits `name(a, b, ...)` into its name and trimmed arguments.
// An empty list has no arguments. Text after the ')' is ignored.
func splitCall(text string) (name string, args []string, ok bool) {
	open := strings.Index(text, "(")
	closing := strings.Index(text, ")")
	if open < 0 || closing < open {
		return
	}

	name = strings.TrimSpace(text[:open])
	if len(name) == 0 || strings.ContainsAny(name, " \t") {
		return
	}

	list := strings.TrimSpace(text[open+1 : closing])
	if len(list) != 0 {
		for _, arg := range strings.Split(list, ",") {
			args = append(args, strings.TrimSpace(arg))
		}
	}

	ok = true
	return
}
