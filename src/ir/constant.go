package ir

import (
	"strconv"

	"pinsc/src/util"
)

// DecodeInt decodes the lexeme of an integer constant as a signed 32-bit decimal number.
func DecodeInt(a *AtomExpr) (int, error) {
	i, err := strconv.ParseInt(a.Value, 10, 32)
	if err != nil {
		return 0, util.Errorf(a.Loc, "Illegal integer value.")
	}
	return int(i), nil
}

// DecodeChr decodes the lexeme of a character constant, quotes included, into its character code.
func DecodeChr(a *AtomExpr) (int, error) {
	s := a.Value
	if len(s) < 3 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return 0, util.Errorf(a.Loc, "Illegal character constant %s.", s)
	}
	c, n, ok := decodeEscape(s[1:len(s)-1], '\'')
	if !ok || n != len(s)-2 {
		return 0, util.Errorf(a.Loc, "Illegal character constant %s.", s)
	}
	return c, nil
}

// DecodeStr decodes the lexeme of a string constant, quotes included, into its character codes.
func DecodeStr(a *AtomExpr) ([]int, error) {
	s := a.Value
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, util.Errorf(a.Loc, "Illegal string constant %s.", s)
	}
	s = s[1 : len(s)-1]
	res := make([]int, 0, len(s))
	for len(s) > 0 {
		c, n, ok := decodeEscape(s, '"')
		if !ok {
			return nil, util.Errorf(a.Loc, "Illegal string constant %s.", a.Value)
		}
		res = append(res, c)
		s = s[n:]
	}
	return res, nil
}

// decodeEscape decodes the first character of s, which is either a plain character or an escape sequence. quote is
// the delimiter that may be escaped. It returns the character code and the number of bytes consumed.
func decodeEscape(s string, quote byte) (int, int, bool) {
	if len(s) == 0 {
		return 0, 0, false
	}
	if s[0] != '\\' {
		return int(s[0]), 1, true
	}
	if len(s) < 2 {
		return 0, 0, false
	}
	switch s[1] {
	case 'n':
		return '\n', 2, true
	case '\\':
		return '\\', 2, true
	case quote:
		return int(quote), 2, true
	}
	if len(s) < 3 {
		return 0, 0, false
	}
	hi, ok1 := hexDigit(s[1])
	lo, ok2 := hexDigit(s[2])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return hi<<4 | lo, 3, true
}

// hexDigit returns the value of an upper case hexadecimal digit.
func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
