package frontend

// lexGlobal starts the lexing process and serves as the default state.
func lexGlobal(l *lexer) stateFunc {
	for {
		r := l.next()
		switch {
		case isAlpha(r) || r == '_':
			// Keyword or identifier.
			return lexWord
		case isDigit(r):
			// Number.
			return lexNumber
		case r == '\n':
			// Newline.
			l.newline()
		case r == '\t':
			l.tab()
		case r == ' ' || r == '\r':
			l.ignore()
		case r == '#':
			// Ignore comments up to, not including, the end of the line.
			for c := l.peek(); c != '\n' && c != eof; c = l.peek() {
				l.next()
			}
			l.ignore()
		case r == '\'':
			return lexChar
		case r == '"':
			return lexString
		case r == '=':
			l.emitPair('=', EQU, ASSIGN)
		case r == '!':
			l.emitPair('=', NEQ, NOT)
		case r == '<':
			l.emitPair('=', LEQ, LTH)
		case r == '>':
			l.emitPair('=', GEQ, GTH)
		case r == '&':
			if !l.accept("&") {
				return l.errorf("Unexpected character '&', expected '&&'.")
			}
			l.emit(AND)
		case r == '|':
			if !l.accept("|") {
				return l.errorf("Unexpected character '|', expected '||'.")
			}
			l.emit(OR)
		case r == eof:
			// End of file: stop the state machine.
			l.emit(itemEOF)
			return nil
		default:
			if typ, ok := single[r]; ok {
				l.emit(typ)
			} else {
				return l.errorf("Unexpected character %q.", r)
			}
		}
	}
}

// single maps one-character operators and punctuation to their token types.
var single = map[rune]itemType{
	'+': ADD,
	'-': SUB,
	'*': MUL,
	'/': DIV,
	'%': MOD,
	'^': PTR,
	'(': LPAREN,
	')': RPAREN,
	',': COMMA,
}

// emitPair emits typ2 if the next rune is second, else typ1.
func (l *lexer) emitPair(second rune, typ2, typ1 itemType) {
	if l.peek() == second {
		l.next()
		l.emit(typ2)
		return
	}
	l.emit(typ1)
}

// lexWord scans the input string for keywords and identifiers.
func lexWord(l *lexer) stateFunc {
	// We know that the currently scanned rune is an alphabetic character or underscore.
	for {
		r := l.next()

		// Check if character is valid character.
		if !isAlpha(r) && !isDigit(r) && r != '_' {
			l.backup()
			kw, typ := isKeyword(l.input[l.start:l.pos])
			if kw {
				l.emit(typ)
			} else {
				l.emit(IDENTIFIER)
			}
			return lexGlobal
		}
	}
}

// lexNumber scans the input stream for an integer number.
// This function accepts zero leading numbers and numbers consisting of all zeros.
func lexNumber(l *lexer) stateFunc {
	// We've scanned the first digit already. We don't scan negative numbers.
	// We instead let the parser handle negative numbers by grammar rules.
	r := l.next()
	for ; isDigit(r); r = l.next() {
	}
	if isAlpha(r) || r == '_' {
		return l.errorf("Illegal integer constant %q, identifiers cannot begin with a digit.",
			l.input[l.start:l.pos])
	}
	l.backup()
	l.emit(INTCONST)
	return lexGlobal
}

// lexChar scans a character constant. The opening quote has been consumed.
func lexChar(l *lexer) stateFunc {
	r := l.next()
	switch {
	case r == '\\':
		if !l.accept("n'\\") && !(l.accept(hexDigits) && l.accept(hexDigits)) {
			return l.errorf("Illegal escape sequence in character constant.")
		}
	case r == '\'' || !isPrintable(r):
		return l.errorf("Illegal character constant.")
	}
	if !l.accept("'") {
		return l.errorf("Unterminated character constant.")
	}
	l.emit(CHARCONST)
	return lexGlobal
}

// lexString scans a string constant. The opening quote has been consumed.
func lexString(l *lexer) stateFunc {
	for {
		r := l.next()
		switch {
		case r == '"':
			l.emit(STRINGCONST)
			return lexGlobal
		case r == eof || r == '\n':
			return l.errorf("Unterminated string constant.")
		case r == '\\':
			if !l.accept("n\"\\") && !(l.accept(hexDigits) && l.accept(hexDigits)) {
				return l.errorf("Illegal escape sequence in string constant.")
			}
		case !isPrintable(r):
			return l.errorf("Illegal character %q in string constant.", r)
		}
	}
}

// ----------------------------
// ----- Helper functions -----
// ----------------------------

const hexDigits = "0123456789ABCDEF"

// isAlpha return true if rune r is an alphabetic character in the set [a-zA-Z].
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isDigit return true if rune r is a digit in the range [0-9].
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isPrintable returns true if rune r is a printable ASCII character.
func isPrintable(r rune) bool {
	return r >= ' ' && r <= '~'
}
