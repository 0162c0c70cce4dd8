package ir

import (
	"reflect"
	"testing"
)

// TestDecodeInt verifies decimal decoding and the 32-bit range check.
func TestDecodeInt(t *testing.T) {
	tests := []struct {
		val string
		exp int
		ok  bool
	}{
		{"0", 0, true},
		{"007", 7, true},
		{"2147483647", 2147483647, true},
		{"2147483648", 0, false},
		{"", 0, false},
	}
	for _, e1 := range tests {
		i, err := DecodeInt(&AtomExpr{Typ: INTCONST, Value: e1.val})
		if (err == nil) != e1.ok || i != e1.exp {
			t.Errorf("%q: expected %d (ok %t), got %d (%v)", e1.val, e1.exp, e1.ok, i, err)
		}
	}
}

// TestDecodeChr verifies plain characters and escape sequences.
func TestDecodeChr(t *testing.T) {
	tests := []struct {
		val string
		exp int
	}{
		{`'a'`, 'a'},
		{`' '`, ' '},
		{`'\n'`, 10},
		{`'\''`, '\''},
		{`'\\'`, '\\'},
		{`'\41'`, 0x41},
		{`'\FF'`, 255},
	}
	for _, e1 := range tests {
		c, err := DecodeChr(&AtomExpr{Typ: CHRCONST, Value: e1.val})
		if err != nil {
			t.Errorf("%s: unexpected error: %s", e1.val, err)
		} else if c != e1.exp {
			t.Errorf("%s: expected %d, got %d", e1.val, e1.exp, c)
		}
	}
	for _, e1 := range []string{`'ab'`, `''`, `'\q'`, `a`} {
		if _, err := DecodeChr(&AtomExpr{Typ: CHRCONST, Value: e1}); err == nil {
			t.Errorf("%s: expected error", e1)
		}
	}
}

// TestDecodeStr verifies that strings decode into one code per character, escapes included.
func TestDecodeStr(t *testing.T) {
	tests := []struct {
		val string
		exp []int
	}{
		{`""`, []int{}},
		{`"ab"`, []int{'a', 'b'}},
		{`"a\nb"`, []int{'a', 10, 'b'}},
		{`"\"\\\20"`, []int{'"', '\\', 0x20}},
	}
	for _, e1 := range tests {
		s, err := DecodeStr(&AtomExpr{Typ: STRCONST, Value: e1.val})
		if err != nil {
			t.Errorf("%s: unexpected error: %s", e1.val, err)
		} else if !reflect.DeepEqual(s, e1.exp) {
			t.Errorf("%s: expected %v, got %v", e1.val, e1.exp, s)
		}
	}
	if _, err := DecodeStr(&AtomExpr{Typ: STRCONST, Value: `"\`}); err == nil {
		t.Errorf("expected error for unterminated escape")
	}
}
