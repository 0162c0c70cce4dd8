package ir

import (
	"pinsc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Attrs holds the attributes computed by semantic analysis. It is filled once by Analyse and only read afterwards.
type Attrs struct {
	defs   map[Node]Def  // Name references mapped to their definitions.
	lvalue map[Expr]bool // Expressions that denote a memory location.
}

// scope maps names to the definitions visible in one block of the program.
type scope map[string]Def

// ---------------------
// ----- Constants -----
// ---------------------

const hTabSize = 16 // Pre-allocated size of attribute tables.

// ---------------------
// ----- Functions -----
// ---------------------

// Analyse resolves every name of the program p to its definition and checks that assignments and address-of
// operators are applied to lvalues.
//
// Top level definitions are visible in the entire program. Parameters are visible in the body of their function.
// The definitions of a let statement are visible in the let statement, including the bodies of functions it defines.
// A name may only be defined once per scope, and an inner definition hides an outer one.
func Analyse(p *Program) (*Attrs, error) {
	a := &Attrs{
		defs:   make(map[Node]Def, hTabSize),
		lvalue: make(map[Expr]bool, hTabSize),
	}
	st := util.Stack{}
	if err := a.declare(&st, p.Defs); err != nil {
		return nil, err
	}
	for _, e1 := range p.Defs {
		if err := a.bindDef(&st, e1); err != nil {
			return nil, err
		}
	}
	st.Pop()
	if err := a.validate(p); err != nil {
		return nil, err
	}
	return a, nil
}

// Def returns the definition that the name in n refers to. n is either a *VarExpr or a *CallExpr.
func (a *Attrs) Def(n Node) (Def, bool) {
	d, ok := a.defs[n]
	return d, ok
}

// IsLValue returns true if e denotes a memory location.
func (a *Attrs) IsLValue(e Expr) bool {
	return a.lvalue[e]
}

// declare pushes a new scope holding defs onto the scope stack st.
func (a *Attrs) declare(st *util.Stack, defs []Def) error {
	s := make(scope, len(defs))
	for _, e1 := range defs {
		if prev, ok := s[e1.Ident()]; ok {
			return util.Errorf(e1.Pos(), "Name '%s' already defined at %s.", e1.Ident(), prev.Pos())
		}
		s[e1.Ident()] = e1
	}
	st.Push(s)
	return nil
}

// lookup searches the scope stack st top down for name.
func lookup(st *util.Stack, name string) (Def, bool) {
	for i1 := 1; i1 <= st.Size(); i1++ {
		if d, ok := st.Get(i1).(scope)[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// bindDef binds the names used inside the definition d.
func (a *Attrs) bindDef(st *util.Stack, d Def) error {
	switch d := d.(type) {
	case *FunDef:
		pars := make([]Def, len(d.Pars))
		for i1, e1 := range d.Pars {
			pars[i1] = e1
		}
		if err := a.declare(st, pars); err != nil {
			return err
		}
		defer st.Pop()
		return a.bindStmts(st, d.Stmts)
	case *VarDef, *ParDef:
		return nil
	default:
		return util.Internalf("unexpected definition %T", d)
	}
}

// bindStmts binds the names used in the statements stmts.
func (a *Attrs) bindStmts(st *util.Stack, stmts []Stmt) error {
	for _, e1 := range stmts {
		if err := a.bindStmt(st, e1); err != nil {
			return err
		}
	}
	return nil
}

// bindStmt binds the names used in statement s.
func (a *Attrs) bindStmt(st *util.Stack, s Stmt) error {
	switch s := s.(type) {
	case *ExprStmt:
		return a.bindExpr(st, s.Expr)
	case *AssignStmt:
		if err := a.bindExpr(st, s.Src); err != nil {
			return err
		}
		return a.bindExpr(st, s.Dst)
	case *IfStmt:
		if err := a.bindExpr(st, s.Cond); err != nil {
			return err
		}
		if err := a.bindStmts(st, s.Then); err != nil {
			return err
		}
		return a.bindStmts(st, s.Else)
	case *WhileStmt:
		if err := a.bindExpr(st, s.Cond); err != nil {
			return err
		}
		return a.bindStmts(st, s.Stmts)
	case *LetStmt:
		if err := a.declare(st, s.Defs); err != nil {
			return err
		}
		defer st.Pop()
		for _, e1 := range s.Defs {
			if err := a.bindDef(st, e1); err != nil {
				return err
			}
		}
		return a.bindStmts(st, s.Stmts)
	default:
		return util.Internalf("unexpected statement %T", s)
	}
}

// bindExpr binds the names used in expression e.
func (a *Attrs) bindExpr(st *util.Stack, e Expr) error {
	switch e := e.(type) {
	case *VarExpr:
		d, ok := lookup(st, e.Name)
		if !ok {
			return util.Errorf(e.Loc, "Undefined name '%s'.", e.Name)
		}
		if _, ok := d.(*FunDef); ok {
			return util.Errorf(e.Loc, "Function '%s' used as a variable.", e.Name)
		}
		a.defs[e] = d
	case *CallExpr:
		d, ok := lookup(st, e.Name)
		if !ok {
			return util.Errorf(e.Loc, "Undefined name '%s'.", e.Name)
		}
		f, ok := d.(*FunDef)
		if !ok {
			return util.Errorf(e.Loc, "Variable '%s' called as a function.", e.Name)
		}
		if len(f.Pars) != len(e.Args) {
			return util.Errorf(e.Loc, "Function '%s' expects %d arguments, got %d.", e.Name, len(f.Pars), len(e.Args))
		}
		a.defs[e] = f
		for _, e1 := range e.Args {
			if err := a.bindExpr(st, e1); err != nil {
				return err
			}
		}
	case *UnExpr:
		return a.bindExpr(st, e.Expr)
	case *BinExpr:
		if err := a.bindExpr(st, e.Fst); err != nil {
			return err
		}
		return a.bindExpr(st, e.Snd)
	case *AtomExpr:
	default:
		return util.Internalf("unexpected expression %T", e)
	}
	return nil
}
