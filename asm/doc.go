// Package asm implements the assembler for the r16 register machine.
//
// The r16 machine has four general-purpose registers (r0-r3) and 16-bit
// instruction words. Every word carries three condition/update flag bits
// (negative, zero, update) in bits 14-12, an instruction class base
// pattern, and class specific operand fields. Operands that are not
// registers are emitted as a trailing immediate word.
//
// The assembler reads line oriented source, strips `;` and `;= ... =;`
// comments, records labels, captures `@macro name(args) { ... }`
// definitions, expands `@name(args)` calls, and encodes every remaining
// line into one or two words. Immediate payloads may use `$(expr)`
// compile-time expressions, evaluated with Starlark.
package asm
