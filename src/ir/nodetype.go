package ir

import (
	"fmt"

	"pinsc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// NodeType differentiates the types of nodes in the abstract syntax tree.
type NodeType int

// Node is a node of the abstract syntax tree. The set of nodes is closed: only the types of this package implement
// Node, and every switch over nodes in the compiler lists all of them.
type Node interface {
	Type() NodeType
	Pos() util.Location
	node()
}

// Def is a definition: a function, a variable or a parameter.
type Def interface {
	Node
	Ident() string
	def()
}

// Stmt is a statement.
type Stmt interface {
	Node
	stmt()
}

// Expr is an expression.
type Expr interface {
	Node
	expr()
}

// Program is the root of the syntax tree.
type Program struct {
	Defs []Def // Top level function and variable definitions in source order.
	Loc  util.Location
}

// FunDef is a function definition. A function without statements has no body and is provided externally.
type FunDef struct {
	Name  string
	Pars  []*ParDef
	Stmts []Stmt
	Loc   util.Location
}

// ParDef is a function parameter.
type ParDef struct {
	Name string
	Loc  util.Location
}

// VarDef is a variable definition with its initializer groups.
type VarDef struct {
	Name  string
	Inits []*Init
	Loc   util.Location
}

// Init is one initializer group: Num copies of Value. Num is an integer constant.
type Init struct {
	Num   *AtomExpr
	Value *AtomExpr
	Loc   util.Location
}

// ExprStmt evaluates an expression.
type ExprStmt struct {
	Expr Expr
	Loc  util.Location
}

// AssignStmt stores the value of Src in the location denoted by Dst.
type AssignStmt struct {
	Dst Expr
	Src Expr
	Loc util.Location
}

// IfStmt is a conditional statement. Else is empty if the statement has no else branch.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Loc  util.Location
}

// WhileStmt is a loop.
type WhileStmt struct {
	Cond  Expr
	Stmts []Stmt
	Loc   util.Location
}

// LetStmt introduces definitions that are visible in its statements.
type LetStmt struct {
	Defs  []Def
	Stmts []Stmt
	Loc   util.Location
}

// VarExpr names a variable or parameter.
type VarExpr struct {
	Name string
	Loc  util.Location
}

// CallExpr calls the function Name.
type CallExpr struct {
	Name string
	Args []Expr
	Loc  util.Location
}

// UnExpr applies a prefix or postfix operator.
type UnExpr struct {
	Op   UnOp
	Expr Expr
	Loc  util.Location
}

// BinExpr applies a binary operator.
type BinExpr struct {
	Op  BinOp
	Fst Expr
	Snd Expr
	Loc util.Location
}

// AtomExpr is a constant. Value holds the lexeme as written in the source, quotes and escapes included.
type AtomExpr struct {
	Typ   AtomType
	Value string
	Loc   util.Location
}

// UnOp is a unary operator.
type UnOp int

// BinOp is a binary operator.
type BinOp int

// AtomType is the type of a constant.
type AtomType int

// ---------------------
// ----- Constants -----
// ---------------------

const (
	PROGRAM NodeType = iota
	FUN_DEF
	PAR_DEF
	VAR_DEF
	INIT
	EXPR_STMT
	ASSIGN_STMT
	IF_STMT
	WHILE_STMT
	LET_STMT
	VAR_EXPR
	CALL_EXPR
	UN_EXPR
	BIN_EXPR
	ATOM_EXPR
)

// nt provides an array of strings used for printing NodeType in a print friendly manner.
var nt = [...]string{
	"PROGRAM",
	"FUN_DEF",
	"PAR_DEF",
	"VAR_DEF",
	"INIT",
	"EXPR_STMT",
	"ASSIGN_STMT",
	"IF_STMT",
	"WHILE_STMT",
	"LET_STMT",
	"VAR_EXPR",
	"CALL_EXPR",
	"UN_EXPR",
	"BIN_EXPR",
	"ATOM_EXPR",
}

// Unary operators.
const (
	NOT     UnOp = iota // Logical negation.
	PLUS                // Identity.
	NEG                 // Arithmetic negation.
	MEMADDR             // Address of an lvalue, prefix ^.
	VALUEAT             // Dereference, postfix ^.
)

var unOps = [...]string{"NOT", "ADD", "SUB", "MEMADDR", "VALUEAT"}

// Binary operators.
const (
	OR BinOp = iota
	AND
	EQU
	NEQ
	LTH
	GTH
	LEQ
	GEQ
	ADD
	SUB
	MUL
	DIV
	MOD
)

var binOps = [...]string{"OR", "AND", "EQU", "NEQ", "LTH", "GTH", "LEQ", "GEQ", "ADD", "SUB", "MUL", "DIV", "MOD"}

// Constant types.
const (
	INTCONST AtomType = iota
	CHRCONST
	STRCONST
)

var atomTypes = [...]string{"INTCONST", "CHRCONST", "STRCONST"}

// ----------------------
// ----- functions ------
// ----------------------

// String returns a print friendly name of the NodeType.
func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nt) {
		return fmt.Sprintf("MISCONFIGURED NODE [%d]", int(t))
	}
	return nt[t]
}

func (op UnOp) String() string {
	if op < 0 || int(op) >= len(unOps) {
		return fmt.Sprintf("UNOP(%d)", int(op))
	}
	return unOps[op]
}

func (op BinOp) String() string {
	if op < 0 || int(op) >= len(binOps) {
		return fmt.Sprintf("BINOP(%d)", int(op))
	}
	return binOps[op]
}

func (t AtomType) String() string {
	if t < 0 || int(t) >= len(atomTypes) {
		return fmt.Sprintf("ATOM(%d)", int(t))
	}
	return atomTypes[t]
}

func (n *Program) Type() NodeType    { return PROGRAM }
func (n *FunDef) Type() NodeType     { return FUN_DEF }
func (n *ParDef) Type() NodeType     { return PAR_DEF }
func (n *VarDef) Type() NodeType     { return VAR_DEF }
func (n *Init) Type() NodeType       { return INIT }
func (n *ExprStmt) Type() NodeType   { return EXPR_STMT }
func (n *AssignStmt) Type() NodeType { return ASSIGN_STMT }
func (n *IfStmt) Type() NodeType     { return IF_STMT }
func (n *WhileStmt) Type() NodeType  { return WHILE_STMT }
func (n *LetStmt) Type() NodeType    { return LET_STMT }
func (n *VarExpr) Type() NodeType    { return VAR_EXPR }
func (n *CallExpr) Type() NodeType   { return CALL_EXPR }
func (n *UnExpr) Type() NodeType     { return UN_EXPR }
func (n *BinExpr) Type() NodeType    { return BIN_EXPR }
func (n *AtomExpr) Type() NodeType   { return ATOM_EXPR }

func (n *Program) Pos() util.Location    { return n.Loc }
func (n *FunDef) Pos() util.Location     { return n.Loc }
func (n *ParDef) Pos() util.Location     { return n.Loc }
func (n *VarDef) Pos() util.Location     { return n.Loc }
func (n *Init) Pos() util.Location       { return n.Loc }
func (n *ExprStmt) Pos() util.Location   { return n.Loc }
func (n *AssignStmt) Pos() util.Location { return n.Loc }
func (n *IfStmt) Pos() util.Location     { return n.Loc }
func (n *WhileStmt) Pos() util.Location  { return n.Loc }
func (n *LetStmt) Pos() util.Location    { return n.Loc }
func (n *VarExpr) Pos() util.Location    { return n.Loc }
func (n *CallExpr) Pos() util.Location   { return n.Loc }
func (n *UnExpr) Pos() util.Location     { return n.Loc }
func (n *BinExpr) Pos() util.Location    { return n.Loc }
func (n *AtomExpr) Pos() util.Location   { return n.Loc }

func (*Program) node()    {}
func (*FunDef) node()     {}
func (*ParDef) node()     {}
func (*VarDef) node()     {}
func (*Init) node()       {}
func (*ExprStmt) node()   {}
func (*AssignStmt) node() {}
func (*IfStmt) node()     {}
func (*WhileStmt) node()  {}
func (*LetStmt) node()    {}
func (*VarExpr) node()    {}
func (*CallExpr) node()   {}
func (*UnExpr) node()     {}
func (*BinExpr) node()    {}
func (*AtomExpr) node()   {}

func (n *FunDef) Ident() string { return n.Name }
func (n *ParDef) Ident() string { return n.Name }
func (n *VarDef) Ident() string { return n.Name }

func (*FunDef) def() {}
func (*ParDef) def() {}
func (*VarDef) def() {}

func (*ExprStmt) stmt()   {}
func (*AssignStmt) stmt() {}
func (*IfStmt) stmt()     {}
func (*WhileStmt) stmt()  {}
func (*LetStmt) stmt()    {}

func (*VarExpr) expr()  {}
func (*CallExpr) expr() {}
func (*UnExpr) expr()   {}
func (*BinExpr) expr()  {}
func (*AtomExpr) expr() {}

// Children returns the direct sub-nodes of n in source order.
func Children(n Node) []Node {
	var res []Node
	switch n := n.(type) {
	case *Program:
		for _, e1 := range n.Defs {
			res = append(res, e1)
		}
	case *FunDef:
		for _, e1 := range n.Pars {
			res = append(res, e1)
		}
		for _, e1 := range n.Stmts {
			res = append(res, e1)
		}
	case *VarDef:
		for _, e1 := range n.Inits {
			res = append(res, e1)
		}
	case *Init:
		res = append(res, n.Num, n.Value)
	case *ExprStmt:
		res = append(res, n.Expr)
	case *AssignStmt:
		res = append(res, n.Dst, n.Src)
	case *IfStmt:
		res = append(res, n.Cond)
		for _, e1 := range n.Then {
			res = append(res, e1)
		}
		for _, e1 := range n.Else {
			res = append(res, e1)
		}
	case *WhileStmt:
		res = append(res, n.Cond)
		for _, e1 := range n.Stmts {
			res = append(res, e1)
		}
	case *LetStmt:
		for _, e1 := range n.Defs {
			res = append(res, e1)
		}
		for _, e1 := range n.Stmts {
			res = append(res, e1)
		}
	case *CallExpr:
		for _, e1 := range n.Args {
			res = append(res, e1)
		}
	case *UnExpr:
		res = append(res, n.Expr)
	case *BinExpr:
		res = append(res, n.Fst, n.Snd)
	case *ParDef, *VarExpr, *AtomExpr:
	}
	return res
}

// Walk visits n and its sub-tree in pre-order. If f returns false the children of the visited node are skipped.
func Walk(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, e1 := range Children(n) {
		Walk(e1, f)
	}
}
