// Package mem computes the memory layout of a PINS program: a call frame for every function and an access
// descriptor for every variable and parameter.
//
// Frame layout, relative to the frame pointer FP of a function at depth d:
//
//	FP+4*k   argument k (k >= 1)
//	FP+0     static link, the FP of the enclosing function at depth d-1
//	FP-4     saved FP of the caller
//	FP-8     return address
//	FP-8-... local variables, each below the previous one
//
// Variables defined at depth 0 are global and are addressed by label.
package mem

import (
	"pinsc/src/ir"
	"pinsc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Frame describes the call frame of one function.
type Frame struct {
	Name     string       // Qualified label of the function, unique per program.
	Depth    int          // Static nesting depth. Top level functions have depth 1.
	ParsSize int          // Bytes of static link and arguments.
	VarsSize int          // Bytes of locals, saved FP and return address.
	Pars     []*RelAccess // Parameters in declaration order.
	Vars     []*RelAccess // Locals in declaration order, including those of nested let statements.
}

// Access describes how a variable or parameter is reached. It is either an *AbsAccess or a *RelAccess.
type Access interface {
	Bytes() int
	access()
}

// AbsAccess is a global variable at a labelled address.
type AbsAccess struct {
	Name  string
	Size  int
	Inits []int // Initializer sequence, see Inits.
}

// RelAccess is a parameter or local variable at a fixed offset from the frame pointer of the function at Depth.
type RelAccess struct {
	Name   string
	Offset int
	Depth  int
	Size   int
	Inits  []int // Initializer sequence of a local variable, <nil> for parameters.
}

// Layout holds the frames and accesses of a program. It is filled once by Organise and only read afterwards.
type Layout struct {
	frames map[*ir.FunDef]*Frame
	pars   map[*ir.ParDef]*RelAccess
	vars   map[*ir.VarDef]Access
}

// context is the traversal state handed down the tree. It is passed by value and never modified in place.
type context struct {
	depth  int    // Depth of the enclosing function, 0 at top level.
	path   string // Qualified name of the enclosing function.
	offset int    // Offset of the lowest local allocated so far in the enclosing function.
}

// organiser holds the state shared by the entire traversal.
type organiser struct {
	layout *Layout
	names  map[string]bool // Qualified function names in use.
}

// ---------------------
// ----- Constants -----
// ---------------------

const (
	WordSize    = 4  // Size of an integer, a character and an address.
	localsStart = -8 // Offset below which the first local is placed.
	framePad    = 8  // Saved FP and return address.
	hTabSize    = 16 // Pre-allocated size of attribute tables.
)

// ---------------------
// ----- Functions -----
// ---------------------

func (a *AbsAccess) Bytes() int { return a.Size }
func (a *RelAccess) Bytes() int { return a.Size }
func (*AbsAccess) access()      {}
func (*RelAccess) access()      {}

// Organise computes the frames of all functions and the accesses of all variables and parameters of program p.
func Organise(p *ir.Program) (*Layout, error) {
	o := organiser{
		layout: &Layout{
			frames: make(map[*ir.FunDef]*Frame, hTabSize),
			pars:   make(map[*ir.ParDef]*RelAccess, hTabSize),
			vars:   make(map[*ir.VarDef]Access, hTabSize),
		},
		names: make(map[string]bool, hTabSize),
	}
	top := context{offset: localsStart}
	for _, e1 := range p.Defs {
		if _, _, err := o.def(top, e1); err != nil {
			return nil, err
		}
	}
	return o.layout, nil
}

// Frame returns the frame of function f.
func (l *Layout) Frame(f *ir.FunDef) (*Frame, bool) {
	fr, ok := l.frames[f]
	return fr, ok
}

// Access returns the access of the variable or parameter d.
func (l *Layout) Access(d ir.Def) (Access, bool) {
	switch d := d.(type) {
	case *ir.VarDef:
		a, ok := l.vars[d]
		return a, ok
	case *ir.ParDef:
		a, ok := l.pars[d]
		return a, ok
	}
	return nil, false
}

// def lays out definition d. A local variable is returned together with the updated offset of ctx.
func (o *organiser) def(ctx context, d ir.Def) (*RelAccess, int, error) {
	switch d := d.(type) {
	case *ir.FunDef:
		return nil, ctx.offset, o.fun(ctx, d)
	case *ir.VarDef:
		return o.variable(ctx, d)
	case *ir.ParDef:
		return nil, ctx.offset, util.Internalf("parameter %s outside of a parameter list", d.Name)
	default:
		return nil, ctx.offset, util.Internalf("unexpected definition %T", d)
	}
}

// fun lays out function f and everything defined inside it.
func (o *organiser) fun(ctx context, f *ir.FunDef) error {
	name := f.Name
	if len(ctx.path) > 0 {
		name = ctx.path + "." + f.Name
	}
	if o.names[name] {
		// Only the label changes, so a third function with the same qualified name gets the same label as the
		// second one.
		name += ",1"
	}
	o.names[name] = true

	inner := context{depth: ctx.depth + 1, path: name, offset: localsStart}
	fr := &Frame{Name: name, Depth: inner.depth, ParsSize: WordSize}
	for i1, e1 := range f.Pars {
		a := &RelAccess{Name: e1.Name, Offset: WordSize * (i1 + 1), Depth: inner.depth, Size: WordSize}
		o.layout.pars[e1] = a
		fr.Pars = append(fr.Pars, a)
		fr.ParsSize += WordSize
	}

	vars, _, err := o.stmts(inner, f.Stmts)
	if err != nil {
		return err
	}
	fr.Vars = vars
	fr.VarsSize = framePad
	for _, e1 := range vars {
		fr.VarsSize += e1.Size
	}
	o.layout.frames[f] = fr
	return nil
}

// variable lays out variable v. Variables at depth 0 are global, all others are placed below the lowest local of
// the enclosing function.
func (o *organiser) variable(ctx context, v *ir.VarDef) (*RelAccess, int, error) {
	size, err := Size(v)
	if err != nil {
		return nil, ctx.offset, err
	}
	inits, err := Inits(v)
	if err != nil {
		return nil, ctx.offset, err
	}
	if ctx.depth == 0 {
		o.layout.vars[v] = &AbsAccess{Name: v.Name, Size: size, Inits: inits}
		return nil, ctx.offset, nil
	}
	a := &RelAccess{Name: v.Name, Offset: ctx.offset - size, Depth: ctx.depth, Size: size, Inits: inits}
	o.layout.vars[v] = a
	return a, a.Offset, nil
}

// stmts lays out the definitions found in stmts. It returns the locals in order of definition and the offset of the
// lowest one.
func (o *organiser) stmts(ctx context, stmts []ir.Stmt) ([]*RelAccess, int, error) {
	var res []*RelAccess
	for _, e1 := range stmts {
		vars, offset, err := o.stmt(ctx, e1)
		if err != nil {
			return nil, ctx.offset, err
		}
		res = append(res, vars...)
		ctx.offset = offset
	}
	return res, ctx.offset, nil
}

// stmt lays out the definitions found in statement s.
func (o *organiser) stmt(ctx context, s ir.Stmt) ([]*RelAccess, int, error) {
	switch s := s.(type) {
	case *ir.ExprStmt, *ir.AssignStmt:
		return nil, ctx.offset, nil
	case *ir.IfStmt:
		then, offset, err := o.stmts(ctx, s.Then)
		if err != nil {
			return nil, ctx.offset, err
		}
		ctx.offset = offset
		els, offset, err := o.stmts(ctx, s.Else)
		if err != nil {
			return nil, ctx.offset, err
		}
		return append(then, els...), offset, nil
	case *ir.WhileStmt:
		return o.stmts(ctx, s.Stmts)
	case *ir.LetStmt:
		var res []*RelAccess
		for _, e1 := range s.Defs {
			a, offset, err := o.def(ctx, e1)
			if err != nil {
				return nil, ctx.offset, err
			}
			if a != nil {
				res = append(res, a)
			}
			ctx.offset = offset
		}
		vars, offset, err := o.stmts(ctx, s.Stmts)
		if err != nil {
			return nil, ctx.offset, err
		}
		return append(res, vars...), offset, nil
	default:
		return nil, ctx.offset, util.Internalf("unexpected statement %T", s)
	}
}
