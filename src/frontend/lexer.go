// This lexer is based on Rob Pike's talk on Go scanners.
// Link to the talk on YouTube: https://www.youtube.com/watch?v=HxaD_trXwRE
// Link to presentation slides: https://talks.golang.org/2011/lex.slide#1
//
// The lexer uses state functions stateFunc to define the lexer state. States allow the lexer to treat same runes
// differently. State transitions happens in the current states and appearance of key runes. Unlike the talk, the
// lexer does not run in its own goroutine: nextItem runs state functions until a token is available.

package frontend

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"pinsc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// stateFunc defines the state of the lexer.
type stateFunc func(*lexer) stateFunc

// itemType is used to differentiate different tokens scanned by the lexer.
type itemType int

// item contains a lexeme scanned by the lexer and its position in the source stream.
type item struct {
	typ  itemType // Token type to emit.
	val  string   // Value of token. The error message for itemError.
	line int      // Line of token in source stream.
	pos  int      // Start column of token on its line.
}

// lexer is a lexical type that traverse a source stream character by character and emits lexemes.
type lexer struct {
	input string    // The source stream of characters to scan for lexemes.
	start int       // The starting position of the current token.
	pos   int       // The current position of the scanner in the source stream.
	width int       // The width of the currently scanned rune/character in bytes.
	line  int       // The current line in the source stream. Not zero-indexed.
	col   int       // The column of the start of the current token. Not zero-indexed.
	state stateFunc // The next state of the lexer. <nil> when the scan is complete.
	items []item    // Queue of scanned tokens not yet consumed.
}

// ---------------------
// ----- Constants -----
// ---------------------

const eof = 0 // Same as '\0' for null-terminated C strings.

const tabWidth = 8 // Tab stops are at columns 1, 9, 17, ...

const (
	itemEOF itemType = iota
	itemError
)

// --------------------------
// ----- Item functions -----
// --------------------------

// String returns a print friendly string representation of the item.
func (i item) String() string {
	switch i.typ {
	case itemEOF:
		return "EOF"
	case itemError:
		return fmt.Sprintf("%s [ERROR]", i.val)
	}
	if len(i.val) > 10 {
		return fmt.Sprintf("%.10q... (line %d:%d)", i.val, i.line, i.pos)
	}
	return fmt.Sprintf("%q (line %d:%d)", i.val, i.line, i.pos)
}

// loc returns the source location of the item.
func (i item) loc() util.Location {
	return util.Location{Line: i.line, Col: i.pos}
}

// ---------------------------
// ----- Lexer functions -----
// ---------------------------

// newLexer creates and returns a pointer to a new lexer.
func newLexer(src string, start stateFunc) *lexer {
	return &lexer{
		input: src,
		line:  1,
		col:   1,
		state: start,
		items: make([]item, 0, 2),
	}
}

// nextItem returns the next item from the input. After the input is exhausted, or after an error, the last item is
// returned again on every call.
func (l *lexer) nextItem() item {
	for len(l.items) == 0 {
		if l.state == nil {
			return item{typ: itemEOF, line: l.line, pos: l.col}
		}
		l.state = l.state(l)
	}
	i := l.items[0]
	if i.typ == itemEOF || i.typ == itemError {
		// Sticky end of stream.
		return i
	}
	l.items = l.items[1:]
	return i
}

// emit queues an item of type typ holding the pending input.
func (l *lexer) emit(typ itemType) {
	val := l.input[l.start:l.pos]
	l.items = append(l.items, item{
		typ:  typ,
		val:  val,
		line: l.line,
		pos:  l.col,
	})
	l.col += utf8.RuneCountInString(val)
	l.start = l.pos
}

// next returns the next rune in the input. The use of runes makes the lexer UTF-8 compatible.
func (l *lexer) next() (r rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return r
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.col += utf8.RuneCountInString(l.input[l.start:l.pos])
	l.start = l.pos
}

// newline skips over a pending newline character.
func (l *lexer) newline() {
	l.start = l.pos
	l.line++
	l.col = 1
}

// tab skips over a pending tab character.
func (l *lexer) tab() {
	l.start = l.pos
	l.col = ((l.col-1)/tabWidth+1)*tabWidth + 1
}

// backup steps back one rune. Should only be called once per call of next.
func (l *lexer) backup() {
	if l.pos > l.start {
		l.pos -= l.width
	}
}

// peek returns, but does not consume, the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// accept consumes the next rune if it's from the set of valid characters defined by the valid string.
func (l *lexer) accept(valid string) bool {
	if strings.IndexRune(valid, l.next()) >= 0 {
		return true
	}
	l.backup()
	return false
}

// errorf queues an error token and terminates the scan by passing back a nil pointer
// that will be the next state.
func (l *lexer) errorf(format string, args ...interface{}) stateFunc {
	l.items = append(l.items, item{
		typ:  itemError,
		val:  fmt.Sprintf(format, args...),
		line: l.line,
		pos:  l.col,
	})
	return nil
}
