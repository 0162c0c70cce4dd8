package codegen

import (
	"pinsc/src/backend/pdm"
	"pinsc/src/ir"
	"pinsc/src/ir/mem"
	"pinsc/src/util"
)

// ---------------------
// ----- Constants -----
// ---------------------

const (
	mainName = "main" // Function called by the program prologue.
	exitName = "exit" // Function called when main returns.
)

// ---------------------
// ----- Functions -----
// ---------------------

// CodeSegment collects the generated code of program p into its code segment. The segment starts with the
// initialisation of all global variables in declaration order, followed by the prologue that calls the top-level
// main and then exit. The bodies of all functions follow in declaration order, each nested function after its enclosing one.
func CodeSegment(p *ir.Program, res *Result, layout *mem.Layout) ([]pdm.CodeInstr, error) {
	var inits, funs []pdm.CodeInstr
	var main *mem.Frame
	var err error

	ir.Walk(p, func(n ir.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *ir.FunDef:
			if len(n.Stmts) == 0 {
				return true
			}
			code, ok := res.Code(n)
			if !ok {
				err = util.Internalf("function %s has no code", n.Name)
				return false
			}
			funs = append(funs, code...)
			if n.Name == mainName {
				if fr, ok := layout.Frame(n); ok && fr.Depth == 1 {
					main = fr
				}
			}
		case *ir.VarDef:
			acc, ok := layout.Access(n)
			if !ok {
				err = util.Internalf("variable %s has no access", n.Name)
				return false
			}
			switch acc.(type) {
			case *mem.AbsAccess:
				code, ok := res.Code(n)
				if !ok {
					err = util.Internalf("variable %s has no code", n.Name)
					return false
				}
				inits = append(inits, code...)
			case *mem.RelAccess:
			default:
				err = util.Internalf("unexpected access %T of variable %s", acc, n.Name)
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	inits = append(inits,
		&pdm.Push{Value: 0}, &pdm.Name{Name: mainName}, &pdm.Call{Frame: main},
		&pdm.Push{Value: 0}, &pdm.Name{Name: exitName}, &pdm.Call{},
	)
	return append(inits, funs...), nil
}

// DataSegment collects the data blocks of all variables and string constants of program p in tree order. Equal
// string constants each keep their own block.
func DataSegment(p *ir.Program, res *Result) []pdm.DataInstr {
	var data []pdm.DataInstr
	ir.Walk(p, func(n ir.Node) bool {
		switch n.(type) {
		case *ir.VarDef, *ir.AtomExpr:
			if d, ok := res.Data(n); ok {
				data = append(data, d...)
			}
		}
		return true
	})
	return data
}
