package ir_test

import (
	"errors"
	"strings"
	"testing"

	"pinsc/src/frontend"
	"pinsc/src/ir"
	"pinsc/src/util"
)

// analyse parses and analyses src.
func analyse(src string) (*ir.Program, *ir.Attrs, error) {
	prog, _, err := frontend.Parse(src)
	if err != nil {
		return nil, nil, err
	}
	a, err := ir.Analyse(prog)
	return prog, a, err
}

// TestAnalyseScopes verifies that names resolve to the innermost visible definition.
func TestAnalyseScopes(t *testing.T) {
	prog, a, err := analyse(`
var x = 1
fun main(y) =
	x,
	let var x = 2 fun f() = x + y in f() end,
	later()
fun later() = x
`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	global := prog.Defs[0]
	main := prog.Defs[1].(*ir.FunDef)
	later := prog.Defs[2]

	if d, _ := a.Def(main.Stmts[0].(*ir.ExprStmt).Expr); d != global {
		t.Errorf("expected x in main to resolve to the global")
	}
	let := main.Stmts[1].(*ir.LetStmt)
	local := let.Defs[0]
	f := let.Defs[1].(*ir.FunDef)
	sum := f.Stmts[0].(*ir.ExprStmt).Expr.(*ir.BinExpr)
	if d, _ := a.Def(sum.Fst); d != local {
		t.Errorf("expected x in f to resolve to the local of the let statement")
	}
	if d, _ := a.Def(sum.Snd); d != main.Pars[0] {
		t.Errorf("expected y in f to resolve to the parameter of main")
	}
	if d, _ := a.Def(let.Stmts[0].(*ir.ExprStmt).Expr); d != f {
		t.Errorf("expected call to resolve to f")
	}
	if d, _ := a.Def(main.Stmts[2].(*ir.ExprStmt).Expr); d != later {
		t.Errorf("expected call to resolve to a function defined later")
	}
}

// TestAnalyseLValues verifies which expressions are lvalues.
func TestAnalyseLValues(t *testing.T) {
	prog, a, err := analyse(`fun main(p) = p^ = 3, p = ^p, p + 1`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	stmts := prog.Defs[0].(*ir.FunDef).Stmts
	deref := stmts[0].(*ir.AssignStmt).Dst
	if !a.IsLValue(deref) || !a.IsLValue(deref.(*ir.UnExpr).Expr) {
		t.Errorf("expected p^ and p to be lvalues")
	}
	addr := stmts[1].(*ir.AssignStmt).Src
	if a.IsLValue(addr) {
		t.Errorf("expected ^p not to be an lvalue")
	}
	if a.IsLValue(stmts[2].(*ir.ExprStmt).Expr) {
		t.Errorf("expected p + 1 not to be an lvalue")
	}
}

// TestAnalyseErrors verifies the semantic errors.
func TestAnalyseErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"fun main() = y", "Undefined name 'y'."},
		{"fun main() = g()", "Undefined name 'g'."},
		{"var x = 1 fun main() = x()", "Variable 'x' called as a function."},
		{"fun main() = main + 1", "Function 'main' used as a variable."},
		{"fun f(a) fun main() = f(1, 2)", "Function 'f' expects 1 arguments, got 2."},
		{"var x = 1 var x = 2", "Name 'x' already defined"},
		{"fun f(a, a) = a", "Name 'a' already defined"},
		{"fun main() = 1 = 2", "not an lvalue"},
		{"fun main() = ^1", "not an lvalue"},
		{"fun main() = let var y = 1 in y end, y", "Undefined name 'y'."},
	}
	for _, e1 := range tests {
		_, _, err := analyse(e1.src)
		var se *util.Error
		if !errors.As(err, &se) {
			t.Errorf("%s: expected source error, got %v", e1.src, err)
			continue
		}
		if !strings.Contains(se.Msg, e1.msg) {
			t.Errorf("%s: expected %q, got %q", e1.src, e1.msg, se.Msg)
		}
	}
}

// TestPrint verifies that the tree dump shows resolved names, lvalues and annotations.
func TestPrint(t *testing.T) {
	prog, a, err := analyse("var g = 1\nfun main() = g = 2")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	sb := strings.Builder{}
	ir.Print(&sb, prog, a, func(n ir.Node) string {
		if _, ok := n.(*ir.FunDef); ok {
			return "note"
		}
		return ""
	})
	exp := strings.Join([]string{
		"PROGRAM @1:1",
		"  VAR_DEF g @1:1",
		"    INIT @1:9",
		"      ATOM_EXPR INTCONST 1 @1:9",
		"      ATOM_EXPR INTCONST 1 @1:9",
		"  FUN_DEF main @2:1 note",
		"    ASSIGN_STMT @2:14",
		"      VAR_EXPR g @2:14 -> VAR_DEF@1:1 lvalue",
		"      ATOM_EXPR INTCONST 2 @2:18",
		"",
	}, "\n")
	if sb.String() != exp {
		t.Errorf("expected:\n%s\ngot:\n%s", exp, sb.String())
	}
}
