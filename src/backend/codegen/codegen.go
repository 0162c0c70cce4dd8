// Package codegen translates an analysed PINS syntax tree into instructions of the stack machine described by
// package pdm.
//
// Generate produces the instruction sequence of every node that has one and stores it per node. CodeSegment and
// DataSegment then collect those sequences into whole-program code and data segments, and Listing prints both.
package codegen

import (
	"pinsc/src/backend/pdm"
	"pinsc/src/ir"
	"pinsc/src/ir/mem"
	"pinsc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Result holds the code and data generated for each node of a program. It is filled once by Generate and only read
// afterwards. Every read returns a fresh copy, so fetching the same node twice yields identical lists.
type Result struct {
	code   map[ir.Node][]pdm.CodeInstr
	data   map[ir.Node][]pdm.DataInstr
	labels int
}

// generator holds the state of one code generation pass.
type generator struct {
	attrs  *ir.Attrs
	layout *mem.Layout
	labels *util.Labeler
	res    *Result
}

// ---------------------
// ----- Constants -----
// ---------------------

const hTabSize = 64 // Pre-allocated size of the code and data tables.

// binOps maps binary operators to machine operations.
var binOps = map[ir.BinOp]pdm.Op{
	ir.OR:  pdm.OR,
	ir.AND: pdm.AND,
	ir.EQU: pdm.EQU,
	ir.NEQ: pdm.NEQ,
	ir.LTH: pdm.LTH,
	ir.GTH: pdm.GTH,
	ir.LEQ: pdm.LEQ,
	ir.GEQ: pdm.GEQ,
	ir.ADD: pdm.ADD,
	ir.SUB: pdm.SUB,
	ir.MUL: pdm.MUL,
	ir.DIV: pdm.DIV,
	ir.MOD: pdm.MOD,
}

// ---------------------
// ----- Functions -----
// ---------------------

// Generate generates code and data for every node of program p, using the name bindings in attrs and the frames
// and accesses in layout. All labels of one call to Generate are unique.
func Generate(p *ir.Program, attrs *ir.Attrs, layout *mem.Layout) (*Result, error) {
	g := generator{
		attrs:  attrs,
		layout: layout,
		labels: &util.Labeler{},
		res: &Result{
			code: make(map[ir.Node][]pdm.CodeInstr, hTabSize),
			data: make(map[ir.Node][]pdm.DataInstr, hTabSize),
		},
	}
	for _, e1 := range p.Defs {
		if _, err := g.def(e1); err != nil {
			return nil, err
		}
	}
	g.res.labels = g.labels.Count()
	return g.res, nil
}

// Code returns a copy of the code generated for node n. The instructions are copied too, so changes to the returned
// list or its instructions never reach the stored code.
func (r *Result) Code(n ir.Node) ([]pdm.CodeInstr, bool) {
	c, ok := r.code[n]
	if !ok {
		return nil, false
	}
	return pdm.Copy(c), true
}

// Data returns a copy of the data generated for node n, instructions included.
func (r *Result) Data(n ir.Node) ([]pdm.DataInstr, bool) {
	d, ok := r.data[n]
	if !ok {
		return nil, false
	}
	return pdm.Copy(d), true
}

// Labels returns the number of label numbers used by the generation pass.
func (r *Result) Labels() int {
	return r.labels
}

// putCode stores a private copy of code as the code of node n and returns code.
func (g *generator) putCode(n ir.Node, code []pdm.CodeInstr) []pdm.CodeInstr {
	g.res.code[n] = append([]pdm.CodeInstr(nil), code...)
	return code
}

// putData stores a private copy of data as the data of node n.
func (g *generator) putData(n ir.Node, data []pdm.DataInstr) {
	g.res.data[n] = append([]pdm.DataInstr(nil), data...)
}

// def generates definition d. The returned code is what the definition contributes to the enclosing statement
// sequence: the INIT sequence of a variable and nothing for a function.
func (g *generator) def(d ir.Def) ([]pdm.CodeInstr, error) {
	switch d := d.(type) {
	case *ir.FunDef:
		return nil, g.fun(d)
	case *ir.VarDef:
		return g.variable(d)
	case *ir.ParDef:
		return nil, nil
	default:
		return nil, util.Internalf("unexpected definition %s", d.Type())
	}
}

// fun generates the body of function f. Functions without statements get no code.
func (g *generator) fun(f *ir.FunDef) error {
	fr, ok := g.layout.Frame(f)
	if !ok {
		return util.Internalf("function %s has no frame", f.Name)
	}
	if len(f.Stmts) == 0 {
		return nil
	}
	code := []pdm.CodeInstr{
		&pdm.Label{Name: fr.Name},
		&pdm.Push{Value: 8 - fr.VarsSize},
		&pdm.PopN{},
	}
	body, err := g.stmts(fr, f.Stmts)
	if err != nil {
		return err
	}
	code = append(code, body...)
	code = append(code, &pdm.Push{Value: fr.ParsSize - 4}, &pdm.Retn{Frame: fr})
	g.putCode(f, code)
	return nil
}

// variable generates the data block and initialisation code of variable v.
func (g *generator) variable(v *ir.VarDef) ([]pdm.CodeInstr, error) {
	acc, ok := g.layout.Access(v)
	if !ok {
		return nil, util.Internalf("variable %s has no access", v.Name)
	}
	label := g.labels.Data()
	var code []pdm.CodeInstr
	var data []pdm.DataInstr
	var inits []int

	switch a := acc.(type) {
	case *mem.AbsAccess:
		inits = a.Inits
		data = append(data, &pdm.Label{Name: a.Name}, &pdm.Size{N: a.Size})
		code = append(code, &pdm.Name{Name: a.Name})
	case *mem.RelAccess:
		inits = a.Inits
		code = append(code, &pdm.Regn{Reg: pdm.FP}, &pdm.Push{Value: a.Offset}, &pdm.Oper{Op: pdm.ADD})
	default:
		return nil, util.Internalf("unexpected access %T of variable %s", acc, v.Name)
	}

	data = append(data, &pdm.Label{Name: label})
	for _, e1 := range inits {
		data = append(data, &pdm.Data{Value: e1})
	}
	code = append(code, &pdm.Name{Name: label}, &pdm.Init{})
	g.putData(v, data)
	return g.putCode(v, code), nil
}

// stmts generates a statement sequence.
func (g *generator) stmts(fr *mem.Frame, stmts []ir.Stmt) ([]pdm.CodeInstr, error) {
	var code []pdm.CodeInstr
	for _, e1 := range stmts {
		c, err := g.stmt(fr, e1)
		if err != nil {
			return nil, err
		}
		code = append(code, c...)
	}
	return code, nil
}

// stmt generates statement s within the function with frame fr.
func (g *generator) stmt(fr *mem.Frame, s ir.Stmt) ([]pdm.CodeInstr, error) {
	switch s := s.(type) {
	case *ir.ExprStmt:
		c, err := g.expr(fr, s.Expr)
		if err != nil {
			return nil, err
		}
		return g.putCode(s, append([]pdm.CodeInstr(nil), c...)), nil
	case *ir.AssignStmt:
		return g.assign(fr, s)
	case *ir.IfStmt:
		return g.ifStmt(fr, s)
	case *ir.WhileStmt:
		return g.whileStmt(fr, s)
	case *ir.LetStmt:
		var code []pdm.CodeInstr
		for _, e1 := range s.Defs {
			c, err := g.def(e1)
			if err != nil {
				return nil, err
			}
			code = append(code, c...)
		}
		body, err := g.stmts(fr, s.Stmts)
		if err != nil {
			return nil, err
		}
		return g.putCode(s, append(code, body...)), nil
	default:
		return nil, util.Internalf("unexpected statement %s", s.Type())
	}
}

// assign stores the value of the source through the address of the destination. The address is the destination's
// code without its final LOAD.
func (g *generator) assign(fr *mem.Frame, s *ir.AssignStmt) ([]pdm.CodeInstr, error) {
	src, err := g.expr(fr, s.Src)
	if err != nil {
		return nil, err
	}
	dst, err := g.expr(fr, s.Dst)
	if err != nil {
		return nil, err
	}
	if len(dst) == 0 {
		return nil, util.Internalf("assignment destination at %s has no code", s.Pos())
	}
	code := append([]pdm.CodeInstr(nil), src...)
	code = append(code, dst[:len(dst)-1]...)
	code = append(code, &pdm.Save{})
	return g.putCode(s, code), nil
}

func (g *generator) ifStmt(fr *mem.Frame, s *ir.IfStmt) ([]pdm.CodeInstr, error) {
	n := g.labels.Next()
	ifTrue := util.Label(util.LabelIfTrue, n)
	ifFalse := util.Label(util.LabelIfFalse, n)
	end := util.Label(util.LabelEnd, n)

	cond, err := g.expr(fr, s.Cond)
	if err != nil {
		return nil, err
	}
	then, err := g.stmts(fr, s.Then)
	if err != nil {
		return nil, err
	}
	els, err := g.stmts(fr, s.Else)
	if err != nil {
		return nil, err
	}

	code := append([]pdm.CodeInstr(nil), cond...)
	code = append(code, &pdm.Name{Name: ifTrue}, &pdm.Name{Name: ifFalse}, &pdm.CJmp{}, &pdm.Label{Name: ifTrue})
	code = append(code, then...)
	code = append(code, &pdm.Name{Name: end}, &pdm.UJmp{}, &pdm.Label{Name: ifFalse})
	code = append(code, els...)
	code = append(code, &pdm.Label{Name: end})
	return g.putCode(s, code), nil
}

func (g *generator) whileStmt(fr *mem.Frame, s *ir.WhileStmt) ([]pdm.CodeInstr, error) {
	n := g.labels.Next()
	cond := util.Label(util.LabelCondition, n)
	loop := util.Label(util.LabelLoop, n)
	end := util.Label(util.LabelEnd, n)

	c, err := g.expr(fr, s.Cond)
	if err != nil {
		return nil, err
	}
	body, err := g.stmts(fr, s.Stmts)
	if err != nil {
		return nil, err
	}

	code := []pdm.CodeInstr{&pdm.Label{Name: cond}}
	code = append(code, c...)
	code = append(code, &pdm.Name{Name: loop}, &pdm.Name{Name: end}, &pdm.CJmp{}, &pdm.Label{Name: loop})
	code = append(code, body...)
	code = append(code, &pdm.Name{Name: cond}, &pdm.UJmp{}, &pdm.Label{Name: end})
	return g.putCode(s, code), nil
}

// expr generates expression e within the function with frame fr.
func (g *generator) expr(fr *mem.Frame, e ir.Expr) ([]pdm.CodeInstr, error) {
	switch e := e.(type) {
	case *ir.AtomExpr:
		return g.atom(e)
	case *ir.VarExpr:
		return g.varExpr(fr, e)
	case *ir.CallExpr:
		return g.call(fr, e)
	case *ir.UnExpr:
		c, err := g.expr(fr, e.Expr)
		if err != nil {
			return nil, err
		}
		code := append([]pdm.CodeInstr(nil), c...)
		switch e.Op {
		case ir.NOT:
			code = append(code, &pdm.Oper{Op: pdm.NOT})
		case ir.NEG:
			code = append(code, &pdm.Push{Value: -1}, &pdm.Oper{Op: pdm.MUL})
		case ir.PLUS:
		case ir.MEMADDR:
			if len(code) == 0 {
				return nil, util.Internalf("operand of address-of at %s has no code", e.Pos())
			}
			code = code[:len(code)-1]
		case ir.VALUEAT:
			code = append(code, &pdm.Load{})
		default:
			return nil, util.Internalf("unexpected unary operator %s", e.Op)
		}
		return g.putCode(e, code), nil
	case *ir.BinExpr:
		op, ok := binOps[e.Op]
		if !ok {
			return nil, util.Internalf("unexpected binary operator %s", e.Op)
		}
		fst, err := g.expr(fr, e.Fst)
		if err != nil {
			return nil, err
		}
		snd, err := g.expr(fr, e.Snd)
		if err != nil {
			return nil, err
		}
		code := append([]pdm.CodeInstr(nil), fst...)
		code = append(code, snd...)
		code = append(code, &pdm.Oper{Op: op})
		return g.putCode(e, code), nil
	default:
		return nil, util.Internalf("unexpected expression %s", e.Type())
	}
}

// atom pushes the value of an integer or character constant, or the address of a new data block holding the
// characters of a string constant.
func (g *generator) atom(a *ir.AtomExpr) ([]pdm.CodeInstr, error) {
	switch a.Typ {
	case ir.INTCONST:
		v, err := ir.DecodeInt(a)
		if err != nil {
			return nil, err
		}
		return g.putCode(a, []pdm.CodeInstr{&pdm.Push{Value: v}}), nil
	case ir.CHRCONST:
		v, err := ir.DecodeChr(a)
		if err != nil {
			return nil, err
		}
		return g.putCode(a, []pdm.CodeInstr{&pdm.Push{Value: v}}), nil
	case ir.STRCONST:
		chars, err := ir.DecodeStr(a)
		if err != nil {
			return nil, err
		}
		label := g.labels.Data()
		data := []pdm.DataInstr{&pdm.Label{Name: label}}
		for _, e1 := range chars {
			data = append(data, &pdm.Data{Value: e1})
		}
		g.putData(a, data)
		return g.putCode(a, []pdm.CodeInstr{&pdm.Name{Name: label}}), nil
	default:
		return nil, util.Internalf("unexpected constant type %s", a.Typ)
	}
}

// varExpr loads the value of a variable or parameter. A relative access follows the static links from the frame
// of the current function up to the frame the variable lives in.
func (g *generator) varExpr(fr *mem.Frame, v *ir.VarExpr) ([]pdm.CodeInstr, error) {
	acc, err := g.access(v)
	if err != nil {
		return nil, err
	}
	var code []pdm.CodeInstr
	switch a := acc.(type) {
	case *mem.AbsAccess:
		code = []pdm.CodeInstr{&pdm.Name{Name: a.Name}, &pdm.Load{}}
	case *mem.RelAccess:
		if fr == nil {
			return nil, util.Internalf("local %s referenced outside of a function at %s", v.Name, v.Pos())
		}
		code = []pdm.CodeInstr{&pdm.Regn{Reg: pdm.FP}}
		for i1 := 0; i1 < fr.Depth-a.Depth; i1++ {
			code = append(code, &pdm.Load{})
		}
		code = append(code, &pdm.Push{Value: a.Offset}, &pdm.Oper{Op: pdm.ADD}, &pdm.Load{})
	default:
		return nil, util.Internalf("unexpected access %T of %s", acc, v.Name)
	}
	return g.putCode(v, code), nil
}

// access returns the access of the definition v refers to.
func (g *generator) access(v *ir.VarExpr) (mem.Access, error) {
	d, ok := g.attrs.Def(v)
	if !ok {
		return nil, util.Internalf("name %s at %s is not bound", v.Name, v.Pos())
	}
	acc, ok := g.layout.Access(d)
	if !ok {
		return nil, util.Internalf("definition of %s at %s has no access", v.Name, d.Pos())
	}
	return acc, nil
}

// call pushes the arguments in reverse order followed by the static link of the callee and calls it. The static
// link is the frame pointer of the function enclosing the callee, found by following static links from the
// current frame.
func (g *generator) call(fr *mem.Frame, c *ir.CallExpr) ([]pdm.CodeInstr, error) {
	d, ok := g.attrs.Def(c)
	if !ok {
		return nil, util.Internalf("function %s at %s is not bound", c.Name, c.Pos())
	}
	f, ok := d.(*ir.FunDef)
	if !ok {
		return nil, util.Internalf("%s at %s does not name a function", c.Name, c.Pos())
	}
	callee, ok := g.layout.Frame(f)
	if !ok {
		return nil, util.Internalf("function %s has no frame", f.Name)
	}
	if fr == nil {
		return nil, util.Internalf("call of %s outside of a function at %s", c.Name, c.Pos())
	}

	var code []pdm.CodeInstr
	for i1 := len(c.Args) - 1; i1 >= 0; i1-- {
		arg, err := g.expr(fr, c.Args[i1])
		if err != nil {
			return nil, err
		}
		code = append(code, arg...)
	}
	code = append(code, &pdm.Regn{Reg: pdm.FP})
	for i1 := 0; i1 < fr.Depth-callee.Depth+1; i1++ {
		code = append(code, &pdm.Load{})
	}
	code = append(code, &pdm.Name{Name: callee.Name}, &pdm.Call{Frame: fr})
	return g.putCode(c, code), nil
}
