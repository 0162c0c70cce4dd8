package mem_test

import (
	"errors"
	"reflect"
	"testing"

	"pinsc/src/frontend"
	"pinsc/src/ir"
	"pinsc/src/ir/mem"
	"pinsc/src/util"
)

// organise parses src and computes its memory layout.
func organise(t *testing.T, src string) (*ir.Program, *mem.Layout) {
	t.Helper()
	prog, _, err := frontend.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	l, err := mem.Organise(prog)
	if err != nil {
		t.Fatalf("layout error: %s", err)
	}
	return prog, l
}

// defs returns all definitions named name in pre-order.
func defs(p *ir.Program, name string) []ir.Def {
	var res []ir.Def
	ir.Walk(p, func(n ir.Node) bool {
		if d, ok := n.(ir.Def); ok && d.Ident() == name {
			res = append(res, d)
		}
		return true
	})
	return res
}

// rel returns the relative access of the first definition named name.
func rel(t *testing.T, p *ir.Program, l *mem.Layout, name string) *mem.RelAccess {
	t.Helper()
	a, ok := l.Access(defs(p, name)[0])
	if !ok {
		t.Fatalf("no access for %s", name)
	}
	r, ok := a.(*mem.RelAccess)
	if !ok {
		t.Fatalf("expected relative access for %s, got %T", name, a)
	}
	return r
}

// frame returns the frame of the first function named name.
func frame(t *testing.T, p *ir.Program, l *mem.Layout, name string) *mem.Frame {
	t.Helper()
	fr, ok := l.Frame(defs(p, name)[0].(*ir.FunDef))
	if !ok {
		t.Fatalf("no frame for %s", name)
	}
	return fr
}

// TestGlobals verifies sizes and initializer sequences of global variables.
func TestGlobals(t *testing.T) {
	p, l := organise(t, `
var a = 3 * 5, 'c'
var s = "abcdef"
var e =
var g = 5
`)
	tests := []struct {
		name  string
		size  int
		inits []int
	}{
		{"a", 16, []int{2, 3, 1, 5, 1, 1, 99}},
		{"s", 16, []int{1, 1, 4, 97, 98, 99, 100, 101, 102}},
		{"e", 0, []int{0}},
		{"g", 4, []int{1, 1, 1, 5}},
	}
	for _, e1 := range tests {
		a, ok := l.Access(defs(p, e1.name)[0])
		if !ok {
			t.Fatalf("no access for %s", e1.name)
		}
		abs, ok := a.(*mem.AbsAccess)
		if !ok {
			t.Fatalf("expected absolute access for %s, got %T", e1.name, a)
		}
		if abs.Name != e1.name || abs.Size != e1.size || abs.Bytes() != e1.size {
			t.Errorf("%s: expected size %d, got %d", e1.name, e1.size, abs.Size)
		}
		if !reflect.DeepEqual(abs.Inits, e1.inits) {
			t.Errorf("%s: expected inits %v, got %v", e1.name, e1.inits, abs.Inits)
		}
	}
}

// TestStringSize pins the size of string variables: (len(lexeme)-4) words per copy, where the lexeme includes the
// quotes and escape sequences.
func TestStringSize(t *testing.T) {
	tests := []struct {
		src  string
		size int
	}{
		{`var s = "abcd"`, 8},
		{`var s = 3 * "abcde"`, 36},
		{`var s = "a\nb"`, 8},
		{`var s = "ab"`, 0},
	}
	for _, e1 := range tests {
		prog, _, err := frontend.Parse(e1.src)
		if err != nil {
			t.Fatalf("parse error: %s", err)
		}
		size, err := mem.Size(prog.Defs[0].(*ir.VarDef))
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", e1.src, err)
		}
		if size != e1.size {
			t.Errorf("%s: expected size %d, got %d", e1.src, e1.size, size)
		}
	}
}

// TestFrame verifies parameter offsets, local offsets and frame sizes.
func TestFrame(t *testing.T) {
	p, l := organise(t, `fun f(a, b, c) = let var x = 1 var y = 2 * 3 in x end`)
	fr := frame(t, p, l, "f")
	if fr.Name != "f" || fr.Depth != 1 {
		t.Errorf("expected frame f at depth 1, got %s at depth %d", fr.Name, fr.Depth)
	}
	if fr.ParsSize != 16 {
		t.Errorf("expected parsSize 16, got %d", fr.ParsSize)
	}
	if fr.VarsSize != 20 {
		t.Errorf("expected varsSize 20, got %d", fr.VarsSize)
	}
	for i1, e1 := range []string{"a", "b", "c"} {
		r := rel(t, p, l, e1)
		if r.Offset != 4*(i1+1) || r.Size != 4 || r.Depth != 1 || r.Inits != nil {
			t.Errorf("parameter %s: unexpected access %s", e1, r)
		}
	}
	if x := rel(t, p, l, "x"); x.Offset != -12 || x.Size != 4 {
		t.Errorf("x: unexpected access %s", x)
	}
	if y := rel(t, p, l, "y"); y.Offset != -20 || y.Size != 8 {
		t.Errorf("y: unexpected access %s", y)
	}
	if len(fr.Pars) != 3 || len(fr.Vars) != 2 || fr.Vars[1].Name != "y" {
		t.Errorf("unexpected debug lists %v %v", fr.Pars, fr.Vars)
	}
}

// TestNestedFunctions verifies that nested functions get their own frames and do not disturb the locals of the
// enclosing function.
func TestNestedFunctions(t *testing.T) {
	p, l := organise(t, `
fun f() = let
	var x = 1
	fun g(q) = let var z = 5 * 1 in z end
	var y = 1
in x end`)
	f := frame(t, p, l, "f")
	g := frame(t, p, l, "g")
	if g.Name != "f.g" || g.Depth != 2 || g.ParsSize != 8 || g.VarsSize != 28 {
		t.Errorf("unexpected frame of g: %s depth=%d parsSize=%d varsSize=%d", g.Name, g.Depth, g.ParsSize, g.VarsSize)
	}
	if f.VarsSize != 16 {
		t.Errorf("expected varsSize 16 for f, got %d", f.VarsSize)
	}
	if x := rel(t, p, l, "x"); x.Offset != -12 || x.Depth != 1 {
		t.Errorf("x: unexpected access %s", x)
	}
	if y := rel(t, p, l, "y"); y.Offset != -16 || y.Depth != 1 {
		t.Errorf("y: unexpected access %s", y)
	}
	if z := rel(t, p, l, "z"); z.Offset != -28 || z.Depth != 2 {
		t.Errorf("z: unexpected access %s", z)
	}
	if q := rel(t, p, l, "q"); q.Offset != 4 || q.Depth != 2 {
		t.Errorf("q: unexpected access %s", q)
	}
}

// TestLocalsStrictlyDecrease verifies that every local of a function lies below the previous one, across branches
// and loops.
func TestLocalsStrictlyDecrease(t *testing.T) {
	p, l := organise(t, `
fun f() =
	if 1 then let var a = 1 in a end else let var b = 2 * 1 in b end end,
	while 0 do let var c = "abcde" in c end end,
	let var d = 1 in d end`)
	fr := frame(t, p, l, "f")
	prev := -8
	for _, e1 := range fr.Vars {
		if e1.Offset+e1.Size > prev {
			t.Errorf("%s at %d (size %d) overlaps previous local at %d", e1.Name, e1.Offset, e1.Size, prev)
		}
		prev = e1.Offset
	}
	if fr.VarsSize != 8+4+8+12+4 {
		t.Errorf("expected varsSize 36, got %d", fr.VarsSize)
	}
}

// TestNameCollision pins the labels of functions whose qualified names collide: the second gets the suffix ",1",
// and so does the third.
func TestNameCollision(t *testing.T) {
	p, l := organise(t, `
fun f() =
	let fun g() = 1 in 1 end,
	let fun g() = 2 in 2 end,
	let fun g() = 3 in 3 end`)
	exp := []string{"f.g", "f.g,1", "f.g,1"}
	for i1, e1 := range defs(p, "g") {
		fr, ok := l.Frame(e1.(*ir.FunDef))
		if !ok {
			t.Fatalf("no frame for g #%d", i1+1)
		}
		if fr.Name != exp[i1] {
			t.Errorf("g #%d: expected label %q, got %q", i1+1, exp[i1], fr.Name)
		}
	}
}

// TestIllegalInteger verifies that an integer constant that does not fit 32 bits is a source error.
func TestIllegalInteger(t *testing.T) {
	prog, _, err := frontend.Parse(`var x = 99999999999 * 1`)
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	_, err = mem.Organise(prog)
	var se *util.Error
	if !errors.As(err, &se) || se.Msg != "Illegal integer value." {
		t.Errorf("expected illegal integer error, got %v", err)
	}
}

// TestInitsString verifies that initializer groups are expanded and at most ten values are shown.
func TestInitsString(t *testing.T) {
	tests := []struct {
		inits []int
		exp   string
	}{
		{[]int{1, 1, 1, 5}, "5"},
		{[]int{2, 3, 1, 5, 1, 1, 99}, "5,5,5,99"},
		{[]int{1, 2, 2, 97, 98}, "97,98,97,98"},
		{[]int{2, 12, 1, 7, 1, 1, 3}, "7,7,7,7,7,7,7,7,7,7..."},
		{[]int{1, 10, 1, 4}, "4,4,4,4,4,4,4,4,4,4"},
		{[]int{2, 1, -2, 1, 1, 8}, "8"},
		{[]int{1, 2, 3, 1}, "1,1"},
		{[]int{3, 1, 1}, ""},
		{nil, ""},
	}
	for _, e1 := range tests {
		if s := mem.InitsString(e1.inits); s != e1.exp {
			t.Errorf("%v: expected %q, got %q", e1.inits, e1.exp, s)
		}
	}
}

// TestAnnotate verifies the memory attributes printed in the syntax tree.
func TestAnnotate(t *testing.T) {
	p, l := organise(t, `
var a = 3 * 5, 'c'
fun f(x) = let var y = 2 * 'z' in y end
`)
	tests := []struct {
		name string
		exp  string
	}{
		{"a", "label=a size=16 inits=5,5,5,99"},
		{"f", "frame=f depth=1 parsSize=8 varsSize=16"},
		{"x", "offset=4 size=4 depth=1"},
		{"y", "offset=-16 size=8 depth=1 inits=122,122"},
	}
	for _, e1 := range tests {
		if s := l.Annotate(defs(p, e1.name)[0]); s != e1.exp {
			t.Errorf("%s: expected %q, got %q", e1.name, e1.exp, s)
		}
	}
}

// TestWords verifies the expansion of initializers into words, including strings whose decoded length differs from
// their element size.
func TestWords(t *testing.T) {
	p, _ := organise(t, `
var a = 2 * 7, "abcde", 'x'
var s = "a\nb"
var e = ""
`)
	tests := []struct {
		name string
		exp  []mem.Word
	}{
		{"a", []mem.Word{{0, 7}, {4, 7}, {8, 97}, {12, 98}, {16, 99}, {20, 120}}},
		{"s", []mem.Word{{0, 97}, {4, 10}}},
		{"e", nil},
	}
	for _, e1 := range tests {
		ws, err := mem.Words(defs(p, e1.name)[0].(*ir.VarDef))
		if err != nil {
			t.Fatalf("%s: %s", e1.name, err)
		}
		if !reflect.DeepEqual(ws, e1.exp) {
			t.Errorf("%s: expected %v, got %v", e1.name, e1.exp, ws)
		}
	}
}
