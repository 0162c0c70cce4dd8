// label.go provides generation of unique assembly labels for jumps and anonymous data blocks.

package util

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Labeler hands out label numbers. The numbers are strictly increasing for the lifetime of a Labeler, so one
// Labeler shared by every label kind in a compilation never yields the same label twice. The zero value is ready
// for use.
type Labeler struct {
	n int // Next number to hand out.
}

// ---------------------
// ----- Constants -----
// ---------------------

// Prefixes of control flow labels.
const (
	LabelIfTrue    = "ifTrue"
	LabelIfFalse   = "ifFalse"
	LabelEnd       = "end"
	LabelCondition = "condition"
	LabelLoop      = "loop"
)

// ---------------------
// ----- Functions -----
// ---------------------

// Next returns the next label number.
func (l *Labeler) Next() int {
	n := l.n
	l.n++
	return n
}

// Data returns a new anonymous data label of the form ":N".
func (l *Labeler) Data() string {
	return fmt.Sprintf(":%d", l.Next())
}

// Count returns the number of labels handed out so far.
func (l *Labeler) Count() int {
	return l.n
}

// Label joins a label prefix and number.
func Label(prefix string, n int) string {
	return fmt.Sprintf("%s%d", prefix, n)
}
