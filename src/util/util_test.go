package util

import (
	"errors"
	"testing"
)

// TestParseArgs verifies that flags, the source path and surplus positional arguments are recognised.
func TestParseArgs(t *testing.T) {
	opt, err := parseArgs([]string{"-vb", "prog.pins", "-o", "out.txt", "extra", "more"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if opt.Src != "prog.pins" {
		t.Errorf("expected source %q, got %q", "prog.pins", opt.Src)
	}
	if opt.Out != "out.txt" {
		t.Errorf("expected output %q, got %q", "out.txt", opt.Out)
	}
	if !opt.Verbose {
		t.Errorf("expected verbose mode")
	}
	if len(opt.Unused) != 2 || opt.Unused[0] != "extra" || opt.Unused[1] != "more" {
		t.Errorf("expected unused arguments [extra more], got %v", opt.Unused)
	}
}

// TestParseArgsErrors verifies that malformed command lines are rejected.
func TestParseArgsErrors(t *testing.T) {
	tests := [][]string{
		{"-o"},
		{"-o", "-vb"},
		{"-nope", "a.pins"},
		{"-arch", "z80", "a.pins"},
		{"-c", "a.pins"},
	}
	for _, e1 := range tests {
		if _, err := parseArgs(e1); err == nil {
			t.Errorf("expected error for arguments %v", e1)
		}
	}
}

// TestParseArgsTarget verifies the LLVM target flags.
func TestParseArgsTarget(t *testing.T) {
	opt, err := parseArgs([]string{"-ll", "-c", "-arch", "riscv64", "-os", "linux", "-vendor", "pc", "a.pins"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !opt.LLVM || !opt.Object {
		t.Errorf("expected LLVM object output")
	}
	if opt.TargetArch != Riscv64 || opt.TargetOS != Linux || opt.TargetVendor != PC {
		t.Errorf("unexpected target %d-%d-%d", opt.TargetArch, opt.TargetVendor, opt.TargetOS)
	}
}

// TestLabeler verifies that label numbers never repeat.
func TestLabeler(t *testing.T) {
	l := Labeler{}
	seen := make(map[string]bool)
	for i1 := 0; i1 < 100; i1++ {
		var s string
		if i1%2 == 0 {
			s = l.Data()
		} else {
			s = Label(LabelLoop, l.Next())
		}
		if seen[s] {
			t.Fatalf("label %q handed out twice", s)
		}
		seen[s] = true
	}
	if l.Count() != 100 {
		t.Errorf("expected 100 labels, got %d", l.Count())
	}
	if s := (&Labeler{}).Data(); s != ":0" {
		t.Errorf("expected first data label %q, got %q", ":0", s)
	}
}

// TestStack verifies push, pop, peek and indexed access.
func TestStack(t *testing.T) {
	s := Stack{}
	if s.Pop() != nil || s.Peek() != nil {
		t.Fatalf("expected empty stack to return <nil>")
	}
	s.Push(1)
	s.Push(nil)
	s.Push(2)
	s.Push(3)
	if s.Size() != 3 {
		t.Fatalf("expected size 3, got %d", s.Size())
	}
	if s.Get(1) != 3 || s.Get(3) != 1 || s.Get(4) != nil || s.Get(0) != nil {
		t.Errorf("unexpected indexed access")
	}
	if s.Peek() != 3 {
		t.Errorf("expected peek 3, got %v", s.Peek())
	}
	for _, e1 := range []int{3, 2, 1} {
		if v := s.Pop(); v != e1 {
			t.Errorf("expected %d, got %v", e1, v)
		}
	}
	if s.Size() != 0 {
		t.Errorf("expected empty stack, got size %d", s.Size())
	}
}

// TestErrors verifies the messages and kinds of reported errors.
func TestErrors(t *testing.T) {
	err := Errorf(Location{Line: 3, Col: 7}, "Undefined name %q.", "x")
	if err.Error() != `line 3:7: Undefined name "x".` {
		t.Errorf("unexpected message %q", err.Error())
	}
	var se *Error
	if !errors.As(err, &se) || se.Loc.Line != 3 {
		t.Errorf("expected *Error at line 3")
	}
	ierr := Internalf("no frame for %s", "f")
	var ie *InternalError
	if !errors.As(ierr, &ie) || ierr.Error() != "compiler error: no frame for f" {
		t.Errorf("unexpected internal error %q", ierr.Error())
	}
	w := Warning{Msg: "Unused arguments in the command line."}
	if w.String() != "Warning: Unused arguments in the command line." {
		t.Errorf("unexpected warning %q", w.String())
	}
}
