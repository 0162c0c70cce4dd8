// Tests the lexer type by verifying that a sample PINS program 'lexer.pins' is tokenized properly.
//
// The sample file was manually transformed into a slice of item types holding both token
// numerical type, string value and line position. It is expected that the lexer output tokens in the same order as the
// tuple slice, as it traverses the source string from start to finish.

package frontend

import (
	"testing"

	"pinsc/src/util"
)

// TestLexer tests the lexing state functions to verify that it correctly scans a sample PINS file for tokens.
func TestLexer(t *testing.T) {
	opt := util.Options{Src: "../../resources/pins/lexer.pins"}
	s, err := util.ReadSource(opt)
	if err != nil {
		t.Fatalf("failed to open file %q: %s", opt.Src, err)
	}

	exp := []item{
		{val: "fun", typ: FUN, line: 2, pos: 1},
		{val: "main", typ: IDENTIFIER, line: 2, pos: 5},
		{val: "(", typ: LPAREN, line: 2, pos: 9},
		{val: "a", typ: IDENTIFIER, line: 2, pos: 10},
		{val: ",", typ: COMMA, line: 2, pos: 11},
		{val: "b", typ: IDENTIFIER, line: 2, pos: 13},
		{val: ")", typ: RPAREN, line: 2, pos: 14},
		{val: "=", typ: ASSIGN, line: 2, pos: 16},
		{val: "let", typ: LET, line: 3, pos: 5},
		{val: "var", typ: VAR, line: 3, pos: 9},
		{val: "s", typ: IDENTIFIER, line: 3, pos: 13},
		{val: "=", typ: ASSIGN, line: 3, pos: 15},
		{val: "2", typ: INTCONST, line: 3, pos: 17},
		{val: "*", typ: MUL, line: 3, pos: 19},
		{val: `"ab\n"`, typ: STRINGCONST, line: 3, pos: 21},
		{val: "in", typ: IN, line: 3, pos: 28},
		{val: "if", typ: IF, line: 4, pos: 9},
		{val: "a", typ: IDENTIFIER, line: 4, pos: 12},
		{val: "<=", typ: LEQ, line: 4, pos: 14},
		{val: "b", typ: IDENTIFIER, line: 4, pos: 17},
		{val: "then", typ: THEN, line: 4, pos: 19},
		{val: "a", typ: IDENTIFIER, line: 4, pos: 24},
		{val: "^", typ: PTR, line: 4, pos: 25},
		{val: "=", typ: ASSIGN, line: 4, pos: 27},
		{val: "'x'", typ: CHARCONST, line: 4, pos: 29},
		{val: "else", typ: ELSE, line: 4, pos: 33},
		{val: "b", typ: IDENTIFIER, line: 4, pos: 38},
		{val: "=", typ: ASSIGN, line: 4, pos: 40},
		{val: "^", typ: PTR, line: 4, pos: 42},
		{val: "a", typ: IDENTIFIER, line: 4, pos: 43},
		{val: "end", typ: END, line: 4, pos: 45},
		{val: "end", typ: END, line: 5, pos: 5},
	}

	l := newLexer(s, lexGlobal)

	for i1 := 0; ; i1++ {
		tok := l.nextItem()

		if tok.typ == itemError {
			t.Fatalf("(token %d): unexpected error %s", i1+1, tok.val)
		}
		if tok.typ == itemEOF {
			if len(exp) != i1 {
				t.Fatalf("expected %d tokens, got %d", len(exp), i1)
			}
			break
		}
		if i1 >= len(exp) {
			t.Fatalf("expected %d tokens, got more", len(exp))
		}
		if tok.typ != exp[i1].typ || tok.val != exp[i1].val {
			t.Errorf("(token %d): expected %q, got %q", i1+1, exp[i1].val, tok.String())
		} else if tok.line != exp[i1].line || tok.pos != exp[i1].pos {
			t.Errorf("(token %d): expected %q to be on line %d:%d, got line %d:%d",
				i1+1, exp[i1].val, exp[i1].line, exp[i1].pos, tok.line, tok.pos)
		}
	}
}

// TestLexerOperators verifies that every operator is scanned into its own token type.
func TestLexerOperators(t *testing.T) {
	src := "= == != ! < <= > >= + - * / % ^ && || ( ) ,"
	exp := []itemType{ASSIGN, EQU, NEQ, NOT, LTH, LEQ, GTH, GEQ, ADD, SUB, MUL, DIV, MOD, PTR, AND, OR, LPAREN,
		RPAREN, COMMA, itemEOF}
	l := newLexer(src, lexGlobal)
	for i1, e1 := range exp {
		if tok := l.nextItem(); tok.typ != e1 {
			t.Fatalf("(token %d): expected %s, got %s", i1+1, e1, tok.typ)
		}
	}
}

// TestLexerConstants verifies the lexemes of character and string constants, escapes included.
func TestLexerConstants(t *testing.T) {
	tests := []struct {
		src string
		typ itemType
	}{
		{`'a'`, CHARCONST},
		{`'\n'`, CHARCONST},
		{`'\''`, CHARCONST},
		{`'\\'`, CHARCONST},
		{`'\4A'`, CHARCONST},
		{`""`, STRINGCONST},
		{`"say \"hi\"\0A"`, STRINGCONST},
		{`007`, INTCONST},
		{`fun_1`, IDENTIFIER},
		{`_x`, IDENTIFIER},
	}
	for _, e1 := range tests {
		tok := newLexer(e1.src, lexGlobal).nextItem()
		if tok.typ != e1.typ || tok.val != e1.src {
			t.Errorf("expected %s %s, got %s", e1.typ, e1.src, tok)
		}
	}
}

// TestLexerErrors verifies that malformed input stops the scan with an error token.
func TestLexerErrors(t *testing.T) {
	tests := []string{
		`'ab'`,
		`''`,
		`'\q'`,
		`"unterminated`,
		"\"line\nbreak\"",
		`"\4"`,
		`12ab`,
		`a & b`,
		`a | b`,
		`$`,
	}
	for _, e1 := range tests {
		l := newLexer(e1, lexGlobal)
		tok := l.nextItem()
		for tok.typ != itemError && tok.typ != itemEOF {
			tok = l.nextItem()
		}
		if tok.typ != itemError {
			t.Errorf("expected error for %q", e1)
		}
	}
}

// TestLexerPositions verifies line and column bookkeeping across comments and tabs.
func TestLexerPositions(t *testing.T) {
	l := newLexer("# comment\n\tx # trailing\n  y", lexGlobal)
	x := l.nextItem()
	if x.val != "x" || x.line != 2 || x.pos != 9 {
		t.Errorf("expected x at 2:9, got %s", x)
	}
	y := l.nextItem()
	if y.val != "y" || y.line != 3 || y.pos != 3 {
		t.Errorf("expected y at 3:3, got %s", y)
	}
	if eof := l.nextItem(); eof.typ != itemEOF {
		t.Errorf("expected EOF, got %s", eof)
	}
}
