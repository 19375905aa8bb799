package asm

import (
	"math"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// evalExpression does compile-time $(...) evaluations.
func evalExpression(expr string, symbols map[string]int) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := make(starlark.StringDict, len(symbols))
	for key, val := range symbols {
		pred[key] = starlark.MakeInt(val)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expression returns the text inside $(...), if word is an expression.
func expression(word string) (expr string, ok bool) {
	if !strings.HasPrefix(word, "$(") || !strings.HasSuffix(word, ")") {
		return
	}
	return word[2 : len(word)-1], true
}

// literalBase selects the base of a numeric literal. Only an explicit
// 0x, 0b or 0o prefix after the sign changes the base from decimal.
func literalBase(word string) int {
	digits := strings.TrimPrefix(strings.TrimPrefix(word, "-"), "+")
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X', 'b', 'B', 'o', 'O':
			return 0
		}
	}
	return 10
}

// parseLiteral parses a 16-bit numeric literal.
func parseLiteral(word string, signed bool) (v64 int64, err error) {
	if strings.ContainsRune(word, '_') {
		err = ErrParseNumber(word)
		return
	}

	base := literalBase(word)
	if signed {
		v64, err = strconv.ParseInt(word, base, 16)
	} else {
		var u64 uint64
		u64, err = strconv.ParseUint(word, base, 16)
		v64 = int64(u64)
	}
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// valueOf parses a signed 16-bit literal or expression.
func valueOf(word string, symbols map[string]int) (value uint16, err error) {
	if expr, ok := expression(word); ok {
		var v64 int64
		v64, err = evalExpression(expr, symbols)
		if err != nil {
			return
		}
		if v64 < math.MinInt16 || v64 > math.MaxInt16 {
			err = ErrParseNumber(word)
			return
		}
		value = uint16(int16(v64))
		return
	}

	v64, err := parseLiteral(word, true)
	if err != nil {
		return
	}
	value = uint16(int16(v64))
	return
}

// targetOf parses an unsigned 16-bit literal or expression.
func targetOf(word string, symbols map[string]int) (value uint16, err error) {
	if expr, ok := expression(word); ok {
		var v64 int64
		v64, err = evalExpression(expr, symbols)
		if err != nil {
			return
		}
		if v64 < 0 || v64 > math.MaxUint16 {
			err = ErrParseNumber(word)
			return
		}
		value = uint16(v64)
		return
	}

	v64, err := parseLiteral(word, false)
	if err != nil {
		return
	}
	value = uint16(v64)
	return
}
