package ir

import "pinsc/src/util"

// validate computes which expressions of program p are lvalues and checks that assignment destinations and operands
// of the address-of operator are lvalues. Names must be bound before validate is called.
func (a *Attrs) validate(p *Program) error {
	var err error
	Walk(p, func(n Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *AssignStmt:
			a.markLValue(n.Dst)
			if !a.lvalue[n.Dst] {
				err = util.Errorf(n.Dst.Pos(), "Assignment to an expression that is not an lvalue.")
			}
		case *UnExpr:
			a.markLValue(n)
			if n.Op == MEMADDR {
				a.markLValue(n.Expr)
				if !a.lvalue[n.Expr] {
					err = util.Errorf(n.Expr.Pos(), "Address of an expression that is not an lvalue.")
				}
			}
		case *VarExpr:
			a.markLValue(n)
		}
		return true
	})
	return err
}

// markLValue records whether e denotes a memory location. Variables and parameters do, and so does the result of
// dereferencing a pointer.
func (a *Attrs) markLValue(e Expr) {
	switch e := e.(type) {
	case *VarExpr:
		switch a.defs[e].(type) {
		case *VarDef, *ParDef:
			a.lvalue[e] = true
		}
	case *UnExpr:
		if e.Op == VALUEAT {
			a.lvalue[e] = true
		}
	}
}
