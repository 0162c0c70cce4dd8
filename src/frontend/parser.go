// parser.go implements a recursive descent parser for PINS. Every parse function starts at the current token and
// leaves the parser at the first token it did not consume.

package frontend

import (
	"fmt"
	"strings"

	"pinsc/src/ir"
	"pinsc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// parser builds the syntax tree from the tokens of a lexer.
type parser struct {
	l        *lexer
	tok      item           // Current token.
	warnings []util.Warning // Non-fatal diagnostics.
}

// ---------------------
// ----- Constants -----
// ---------------------

// cmpOps maps comparison tokens to their operators.
var cmpOps = map[itemType]ir.BinOp{
	EQU: ir.EQU,
	NEQ: ir.NEQ,
	LTH: ir.LTH,
	GTH: ir.GTH,
	LEQ: ir.LEQ,
	GEQ: ir.GEQ,
}

// prefixOps maps prefix operator tokens to their operators.
var prefixOps = map[itemType]ir.UnOp{
	NOT: ir.NOT,
	ADD: ir.PLUS,
	SUB: ir.NEG,
	PTR: ir.MEMADDR,
}

// ---------------------
// ----- Functions -----
// ---------------------

// newParser returns a parser positioned at the first token of src.
func newParser(src string) *parser {
	p := &parser{l: newLexer(src, lexGlobal)}
	p.tok = p.l.nextItem()
	return p
}

// advance moves to the next token.
func (p *parser) advance() {
	p.tok = p.l.nextItem()
}

// unexpected returns an error describing that the current token is not one of the expected ones.
func (p *parser) unexpected(expected ...itemType) error {
	if p.tok.typ == itemError {
		return util.Errorf(p.tok.loc(), "%s", p.tok.val)
	}
	names := make([]string, len(expected))
	for i1, e1 := range expected {
		names[i1] = e1.String()
	}
	if p.tok.typ == itemEOF {
		return util.Errorf(p.tok.loc(), "Unexpected end of file, expected %s.", strings.Join(names, " or "))
	}
	return util.Errorf(p.tok.loc(), "Unexpected '%s', expected %s.", p.tok.val, strings.Join(names, " or "))
}

// expect consumes the current token if it is of type typ.
func (p *parser) expect(typ itemType) (item, error) {
	if p.tok.typ != typ {
		return item{}, p.unexpected(typ)
	}
	t := p.tok
	p.advance()
	return t, nil
}

// parseProgram parses a complete program. Text following the last definition is reported as a warning.
func (p *parser) parseProgram() (*ir.Program, error) {
	prog := &ir.Program{Loc: p.tok.loc()}
	for {
		if p.tok.typ != FUN && p.tok.typ != VAR {
			if len(prog.Defs) == 0 {
				return nil, p.unexpected(FUN, VAR)
			}
			break
		}
		d, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		prog.Defs = append(prog.Defs, d)
	}
	switch p.tok.typ {
	case itemEOF:
	case itemError:
		return nil, p.unexpected()
	default:
		p.warnings = append(p.warnings, util.Warning{
			Loc: p.tok.loc(),
			Msg: fmt.Sprintf("Unexpected text '%s...' at the end of the program.", p.tok.val),
		})
	}
	return prog, nil
}

// parseDefinition parses a function or variable definition.
func (p *parser) parseDefinition() (ir.Def, error) {
	switch p.tok.typ {
	case FUN:
		return p.parseFunDef()
	case VAR:
		return p.parseVarDef()
	default:
		return nil, p.unexpected(FUN, VAR)
	}
}

// parseFunDef parses 'fun' ID '(' [ID {',' ID}] ')' ['=' statements].
func (p *parser) parseFunDef() (*ir.FunDef, error) {
	kw := p.tok
	p.advance()
	id, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	f := &ir.FunDef{Name: id.val, Loc: kw.loc()}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	if p.tok.typ == IDENTIFIER {
		for {
			par, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			f.Pars = append(f.Pars, &ir.ParDef{Name: par.val, Loc: par.loc()})
			if p.tok.typ != COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if p.tok.typ == ASSIGN {
		p.advance()
		if f.Stmts, err = p.parseStatements(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// parseVarDef parses 'var' ID '=' [initializer {',' initializer}]. A comma followed by a definition ends the
// initializers.
func (p *parser) parseVarDef() (*ir.VarDef, error) {
	kw := p.tok
	p.advance()
	id, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	v := &ir.VarDef{Name: id.val, Loc: kw.loc()}
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	if !isConst(p.tok.typ) {
		return v, nil
	}
	for {
		init, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		v.Inits = append(v.Inits, init)
		if p.tok.typ != COMMA {
			break
		}
		p.advance()
		if p.tok.typ == FUN || p.tok.typ == VAR {
			// The comma separated two definitions.
			break
		}
	}
	return v, nil
}

// parseInitializer parses INTCONST ['*' constant] | CHARCONST | STRINGCONST. A lone constant is repeated once.
func (p *parser) parseInitializer() (*ir.Init, error) {
	loc := p.tok.loc()
	first, err := p.parseConst()
	if err != nil {
		return nil, err
	}
	if first.Typ == ir.INTCONST && p.tok.typ == MUL {
		p.advance()
		val, err := p.parseConst()
		if err != nil {
			return nil, err
		}
		return &ir.Init{Num: first, Value: val, Loc: loc}, nil
	}
	one := &ir.AtomExpr{Typ: ir.INTCONST, Value: "1", Loc: loc}
	return &ir.Init{Num: one, Value: first, Loc: loc}, nil
}

// parseConst parses a single constant.
func (p *parser) parseConst() (*ir.AtomExpr, error) {
	t := p.tok
	a := &ir.AtomExpr{Value: t.val, Loc: t.loc()}
	switch t.typ {
	case INTCONST:
		a.Typ = ir.INTCONST
	case CHARCONST:
		a.Typ = ir.CHRCONST
	case STRINGCONST:
		a.Typ = ir.STRCONST
	default:
		return nil, p.unexpected(INTCONST, CHARCONST, STRINGCONST)
	}
	p.advance()
	return a, nil
}

// parseStatements parses statement {',' statement}. A comma followed by a definition ends the statements.
func (p *parser) parseStatements() ([]ir.Stmt, error) {
	var res []ir.Stmt
	for {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		res = append(res, s)
		if p.tok.typ != COMMA {
			return res, nil
		}
		p.advance()
		if p.tok.typ == FUN || p.tok.typ == VAR {
			// The comma separated the statements from the next definition.
			return res, nil
		}
	}
}

// parseStatement parses a single statement.
func (p *parser) parseStatement() (ir.Stmt, error) {
	loc := p.tok.loc()
	switch p.tok.typ {
	case IF:
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(THEN); err != nil {
			return nil, err
		}
		s := &ir.IfStmt{Cond: cond, Loc: loc}
		if s.Then, err = p.parseStatements(); err != nil {
			return nil, err
		}
		if p.tok.typ == ELSE {
			p.advance()
			if s.Else, err = p.parseStatements(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(END); err != nil {
			return nil, err
		}
		return s, nil
	case WHILE:
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(DO); err != nil {
			return nil, err
		}
		s := &ir.WhileStmt{Cond: cond, Loc: loc}
		if s.Stmts, err = p.parseStatements(); err != nil {
			return nil, err
		}
		if _, err := p.expect(END); err != nil {
			return nil, err
		}
		return s, nil
	case LET:
		p.advance()
		s := &ir.LetStmt{Loc: loc}
		for {
			d, err := p.parseDefinition()
			if err != nil {
				return nil, err
			}
			s.Defs = append(s.Defs, d)
			if p.tok.typ != FUN && p.tok.typ != VAR {
				break
			}
		}
		if _, err := p.expect(IN); err != nil {
			return nil, err
		}
		var err error
		if s.Stmts, err = p.parseStatements(); err != nil {
			return nil, err
		}
		if _, err := p.expect(END); err != nil {
			return nil, err
		}
		return s, nil
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.typ != ASSIGN {
		return &ir.ExprStmt{Expr: e, Loc: loc}, nil
	}
	p.advance()
	src, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ir.AssignStmt{Dst: e, Src: src, Loc: loc}, nil
}

// parseExpr parses a disjunction, the expression with the lowest precedence.
func (p *parser) parseExpr() (ir.Expr, error) {
	return p.parseBinary(p.parseAnd, map[itemType]ir.BinOp{OR: ir.OR})
}

// parseAnd parses a conjunction.
func (p *parser) parseAnd() (ir.Expr, error) {
	return p.parseBinary(p.parseCmp, map[itemType]ir.BinOp{AND: ir.AND})
}

// parseCmp parses a comparison. Comparisons do not associate.
func (p *parser) parseCmp() (ir.Expr, error) {
	fst, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	op, ok := cmpOps[p.tok.typ]
	if !ok {
		return fst, nil
	}
	p.advance()
	snd, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return &ir.BinExpr{Op: op, Fst: fst, Snd: snd, Loc: fst.Pos()}, nil
}

// parseAdd parses additive expressions.
func (p *parser) parseAdd() (ir.Expr, error) {
	return p.parseBinary(p.parseMul, map[itemType]ir.BinOp{ADD: ir.ADD, SUB: ir.SUB})
}

// parseMul parses multiplicative expressions.
func (p *parser) parseMul() (ir.Expr, error) {
	return p.parseBinary(p.parsePrefix, map[itemType]ir.BinOp{MUL: ir.MUL, DIV: ir.DIV, MOD: ir.MOD})
}

// parseBinary parses a left associative chain of operands parsed by operand and joined by the operators in ops.
func (p *parser) parseBinary(operand func() (ir.Expr, error), ops map[itemType]ir.BinOp) (ir.Expr, error) {
	fst, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.tok.typ]
		if !ok {
			return fst, nil
		}
		p.advance()
		snd, err := operand()
		if err != nil {
			return nil, err
		}
		fst = &ir.BinExpr{Op: op, Fst: fst, Snd: snd, Loc: fst.Pos()}
	}
}

// parsePrefix parses an expression preceded by any number of prefix operators.
func (p *parser) parsePrefix() (ir.Expr, error) {
	op, ok := prefixOps[p.tok.typ]
	if !ok {
		return p.parsePostfix()
	}
	loc := p.tok.loc()
	p.advance()
	e, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	return &ir.UnExpr{Op: op, Expr: e, Loc: loc}, nil
}

// parsePostfix parses an atom followed by any number of dereference operators.
func (p *parser) parsePostfix() (ir.Expr, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.tok.typ == PTR {
		p.advance()
		e = &ir.UnExpr{Op: ir.VALUEAT, Expr: e, Loc: e.Pos()}
	}
	return e, nil
}

// parseAtom parses a constant, a variable, a call or a parenthesised expression.
func (p *parser) parseAtom() (ir.Expr, error) {
	switch p.tok.typ {
	case INTCONST, CHARCONST, STRINGCONST:
		return p.parseConst()
	case LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case IDENTIFIER:
		id := p.tok
		p.advance()
		if p.tok.typ != LPAREN {
			return &ir.VarExpr{Name: id.val, Loc: id.loc()}, nil
		}
		p.advance()
		c := &ir.CallExpr{Name: id.val, Loc: id.loc()}
		if p.tok.typ != RPAREN {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				c.Args = append(c.Args, arg)
				if p.tok.typ != COMMA {
					break
				}
				p.advance()
			}
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, p.unexpected(IDENTIFIER, INTCONST, CHARCONST, STRINGCONST, LPAREN)
	}
}

// isConst returns true if typ is the token type of a constant.
func isConst(typ itemType) bool {
	return typ == INTCONST || typ == CHARCONST || typ == STRINGCONST
}
