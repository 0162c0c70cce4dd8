package frontend

import "fmt"

type reservedItem struct {
	val string
	typ itemType
}

// Token types. itemEOF and itemError are declared in lexer.go.
const (
	IDENTIFIER itemType = iota + itemError + 1
	INTCONST
	CHARCONST
	STRINGCONST

	// Keywords.
	FUN
	VAR
	IF
	THEN
	ELSE
	WHILE
	DO
	LET
	IN
	END

	// Operators and punctuation.
	ASSIGN // =
	EQU    // ==
	NEQ    // !=
	LTH    // <
	GTH    // >
	LEQ    // <=
	GEQ    // >=
	ADD    // +
	SUB    // -
	MUL    // *
	DIV    // /
	MOD    // %
	PTR    // ^
	NOT    // !
	AND    // &&
	OR     // ||
	LPAREN // (
	RPAREN // )
	COMMA  // ,
)

// tokNames provides print friendly names of token types, indexed by itemType.
var tokNames = [...]string{
	itemEOF:     "EOF",
	itemError:   "ERROR",
	IDENTIFIER:  "IDENTIFIER",
	INTCONST:    "INTCONST",
	CHARCONST:   "CHARCONST",
	STRINGCONST: "STRINGCONST",
	FUN:         "FUN",
	VAR:         "VAR",
	IF:          "IF",
	THEN:        "THEN",
	ELSE:        "ELSE",
	WHILE:       "WHILE",
	DO:          "DO",
	LET:         "LET",
	IN:          "IN",
	END:         "END",
	ASSIGN:      "ASSIGN",
	EQU:         "EQU",
	NEQ:         "NEQ",
	LTH:         "LTH",
	GTH:         "GTH",
	LEQ:         "LEQ",
	GEQ:         "GEQ",
	ADD:         "ADD",
	SUB:         "SUB",
	MUL:         "MUL",
	DIV:         "DIV",
	MOD:         "MOD",
	PTR:         "PTR",
	NOT:         "NOT",
	AND:         "AND",
	OR:          "OR",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	COMMA:       "COMMA",
}

// rw contains the set of all reserved PINS keywords.
// The first dimension equals the length of the word.
// The second dimension is the slice of all words of that length.
// Indexing by length and searching should be faster than using a hash table.
var rw = [...][]reservedItem{
	// One-grams
	{},
	// Two-grams
	{
		{val: "do", typ: DO},
		{val: "if", typ: IF},
		{val: "in", typ: IN},
	},
	// Three-grams
	{
		{val: "end", typ: END},
		{val: "fun", typ: FUN},
		{val: "let", typ: LET},
		{val: "var", typ: VAR},
	},
	// Four-grams
	{
		{val: "then", typ: THEN},
		{val: "else", typ: ELSE},
	},
	// Five-grams
	{
		{val: "while", typ: WHILE},
	},
}

// String returns the print friendly name of the token type.
func (t itemType) String() string {
	if t < 0 || int(t) >= len(tokNames) {
		return fmt.Sprintf("TOKEN(%d)", int(t))
	}
	return tokNames[t]
}

// isKeyword returns true if the string s is a reserved PINS keyword.
// On the return of true the itemType of the keyword is returned.
// On the return of false the itemType is either IDENTIFIER or itemError.
func isKeyword(s string) (bool, itemType) {
	if len(s) == 0 {
		return false, itemError
	}
	if len(s) > len(rw) {
		return false, IDENTIFIER
	}

	// Check if string s is a reserved word by iterating over all words in rw of length len(s).
	for _, e1 := range rw[len(s)-1] {
		if e1.val == s {
			return true, e1.typ
		}
	}
	return false, IDENTIFIER
}
