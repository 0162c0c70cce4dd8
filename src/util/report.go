// report.go defines the three kinds of diagnostics the compiler reports: errors in the user's source code, internal
// compiler errors and non-fatal warnings.

package util

import (
	"fmt"
	"io"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Location is a position in the source stream. Lines and columns start at 1. The zero Location means that the
// position is unknown.
type Location struct {
	Line int // Line in source stream.
	Col  int // Column on the line.
}

// Error is a fatal error caused by the source program.
type Error struct {
	Loc Location // Where the error was detected.
	Msg string   // Human readable description.
}

// InternalError is a fatal error caused by a bug in the compiler itself, such as a broken invariant between phases.
type InternalError struct {
	Msg string
}

// Warning is a diagnostic that does not stop compilation.
type Warning struct {
	Loc Location
	Msg string
}

// ---------------------
// ----- Functions -----
// ---------------------

// String returns the location formatted as line:column.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// IsZero returns true if the location is unknown.
func (l Location) IsZero() bool {
	return l.Line == 0 && l.Col == 0
}

func (e *Error) Error() string {
	if e.Loc.IsZero() {
		return e.Msg
	}
	return fmt.Sprintf("line %s: %s", e.Loc, e.Msg)
}

func (e *InternalError) Error() string {
	return "compiler error: " + e.Msg
}

// String returns a print friendly warning.
func (w Warning) String() string {
	if w.Loc.IsZero() {
		return "Warning: " + w.Msg
	}
	return fmt.Sprintf("Warning: line %s: %s", w.Loc, w.Msg)
}

// Errorf returns an *Error at location loc with a formatted message.
func Errorf(loc Location, format string, args ...interface{}) error {
	return &Error{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// Internalf returns an *InternalError with a formatted message.
func Internalf(format string, args ...interface{}) error {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}

// PrintWarnings writes every warning in ws to w, one per line.
func PrintWarnings(w io.Writer, ws []Warning) {
	for _, e1 := range ws {
		_, _ = fmt.Fprintln(w, e1)
	}
}
