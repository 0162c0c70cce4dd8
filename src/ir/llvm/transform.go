// Package llvm lowers an analysed and laid-out PINS program to LLVM IR for the system installed LLVM runtime.
//
// The generated code keeps the memory model of the stack machine. All data lives in one byte array pins.mem that
// is addressed by 32-bit integers, and the registers FP and SP are the globals pins.fp and pins.sp. Every PINS
// function with a body becomes an LLVM function without parameters that reads its static link and arguments from
// its frame, exactly as laid out by package mem. Functions without a body are declared as external functions that
// take their arguments as LLVM parameters, so they can be provided by a C runtime.
package llvm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tinygo.org/x/go-llvm"

	"pinsc/src/ir"
	"pinsc/src/ir/mem"
	"pinsc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Module is a PINS program lowered to LLVM IR. It must be disposed of after use.
type Module struct {
	ctx llvm.Context
	mod llvm.Module
}

// lowering holds the state shared by the lowering of an entire program.
type lowering struct {
	ctx    llvm.Context
	mod    llvm.Module
	b      llvm.Builder
	attrs  *ir.Attrs
	layout *mem.Layout

	i32 llvm.Type
	ptr llvm.Type // Pointer to i32.

	mem llvm.Value // Memory of the program.
	fp  llvm.Value // Frame pointer register.
	sp  llvm.Value // Stack pointer register.

	funs    map[*ir.FunDef]llvm.Value // Lowered and external functions.
	globals map[*ir.VarDef]int        // Static addresses of global variables.
	strs    map[*ir.AtomExpr]int      // Static addresses of string constants.
	static  []mem.Word                // Static data written before main is called, with absolute offsets.
	top     int                       // First free static address.
}

// context is the per-function lowering state handed down the tree.
type context struct {
	frame *mem.Frame
	fn    llvm.Value
	ret   llvm.Value // Holds the value of the last executed expression statement.
}

// ---------------------
// ----- Constants -----
// ---------------------

const (
	memSize    = 1 << 20 // Bytes of program memory.
	staticBase = mem.WordSize
	maxStatic  = memSize / 2 // Upper bound of static data, the stack grows down from memSize.
	funPrefix  = "pins."
	mainName   = "main"
	hTabSize   = 16
)

// ---------------------
// ----- Functions -----
// ---------------------

// GenLLVM lowers program p to LLVM IR. The textual IR is written to opt.Out, or stdout if no output file is given.
// With opt.Object the module is compiled for the target given by opt and an object file is written instead.
func GenLLVM(opt util.Options, p *ir.Program, attrs *ir.Attrs, layout *mem.Layout) error {
	name := "stdin"
	if len(opt.Src) > 0 {
		name = filepath.Base(opt.Src)
	}
	m, err := Lower(p, attrs, layout, name)
	if err != nil {
		return err
	}
	defer m.Dispose()

	if !opt.Object {
		w, err := util.NewWriter(opt.Out)
		if err != nil {
			return err
		}
		w.Printf("%s", m.String())
		return w.Close()
	}

	buf, err := m.Object(&opt)
	if err != nil {
		return err
	}
	out := opt.Out
	if len(out) == 0 {
		out = fmt.Sprintf("./%s.o", strings.TrimSuffix(name, filepath.Ext(name)))
	}
	return os.WriteFile(out, buf, 0644)
}

// Lower lowers program p to a new LLVM module with the given name. The module is verified before it is returned.
func Lower(p *ir.Program, attrs *ir.Attrs, layout *mem.Layout, name string) (*Module, error) {
	ctx := llvm.NewContext()
	l := &lowering{
		ctx:     ctx,
		mod:     ctx.NewModule(name),
		b:       ctx.NewBuilder(),
		attrs:   attrs,
		layout:  layout,
		i32:     ctx.Int32Type(),
		funs:    make(map[*ir.FunDef]llvm.Value, hTabSize),
		globals: make(map[*ir.VarDef]int, hTabSize),
		strs:    make(map[*ir.AtomExpr]int, hTabSize),
		top:     staticBase,
	}
	defer l.b.Dispose()
	m := &Module{ctx: ctx, mod: l.mod}

	if err := l.lower(p); err != nil {
		m.Dispose()
		return nil, err
	}
	if err := llvm.VerifyModule(l.mod, llvm.ReturnStatusAction); err != nil {
		m.Dispose()
		return nil, util.Internalf("invalid LLVM module: %s", err)
	}
	return m, nil
}

// String returns the textual LLVM IR of m.
func (m *Module) String() string {
	return m.mod.String()
}

// Dispose releases the LLVM resources of m.
func (m *Module) Dispose() {
	m.mod.Dispose()
	m.ctx.Dispose()
}

// Object compiles m for the target given by opt and returns the object file.
func (m *Module) Object(opt *util.Options) ([]byte, error) {
	llvm.InitializeAllTargetInfos()
	llvm.InitializeAllTargetMCs()
	llvm.InitializeAllAsmParsers()
	llvm.InitializeAllAsmPrinters()

	t, tt, err := genTargetTriple(opt)
	if err != nil {
		return nil, err
	}

	var cpu string
	switch opt.TargetArch {
	case util.Riscv64:
		cpu = "generic-rv64"
	case util.Riscv32:
		cpu = "generic-rv32"
	default:
		cpu = "generic"
	}

	tm := t.CreateTargetMachine(tt, cpu, "",
		llvm.CodeGenLevelNone,
		llvm.RelocDefault,
		llvm.CodeModelDefault)
	defer tm.Dispose()

	td := tm.CreateTargetData()
	defer td.Dispose()

	m.mod.SetDataLayout(td.String())
	m.mod.SetTarget(tm.Triple())

	buf, err := tm.EmitToMemoryBuffer(m.mod, llvm.ObjectFile)
	if err != nil {
		return nil, err
	} else if buf.IsNil() {
		return nil, errors.New("could not emit compiled code to memory")
	}
	defer buf.Dispose()
	return append([]byte(nil), buf.Bytes()...), nil
}

// lower lowers the entire program: static data, function declarations, function bodies and the entry function.
func (l *lowering) lower(p *ir.Program) error {
	memTyp := llvm.ArrayType(l.ctx.Int8Type(), memSize)
	l.ptr = llvm.PointerType(l.i32, 0)
	l.mem = l.global(memTyp, "pins.mem", llvm.ConstNull(memTyp))
	l.fp = l.global(l.i32, "pins.fp", l.c32(0))
	l.sp = l.global(l.i32, "pins.sp", l.c32(0))

	if err := l.allocStatic(p); err != nil {
		return err
	}

	var funs []*ir.FunDef
	ir.Walk(p, func(n ir.Node) bool {
		if f, ok := n.(*ir.FunDef); ok {
			funs = append(funs, f)
		}
		return true
	})
	for _, e1 := range funs {
		if err := l.declare(e1); err != nil {
			return err
		}
	}
	for _, e1 := range funs {
		if len(e1.Stmts) == 0 {
			continue
		}
		if err := l.fun(e1); err != nil {
			return err
		}
	}

	var main *ir.FunDef
	for _, e1 := range p.Defs {
		if f, ok := e1.(*ir.FunDef); ok && f.Name == mainName {
			main = f
		}
	}
	if main == nil {
		return util.Errorf(p.Pos(), "Program has no function '%s'.", mainName)
	}
	if len(main.Stmts) == 0 {
		return util.Errorf(main.Pos(), "Function '%s' has no body.", mainName)
	}
	return l.entry(main)
}

// global adds an internal global variable to the module.
func (l *lowering) global(typ llvm.Type, name string, init llvm.Value) llvm.Value {
	g := llvm.AddGlobal(l.mod, typ, name)
	g.SetInitializer(init)
	g.SetLinkage(llvm.InternalLinkage)
	return g
}

// allocStatic assigns static addresses to global variables and string constants and collects their data.
func (l *lowering) allocStatic(p *ir.Program) error {
	var err error
	alloc := func(size int) int {
		addr := l.top
		if size > 0 {
			l.top += size
		}
		return addr
	}
	ir.Walk(p, func(n ir.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *ir.Init:
			// Constants of initializers are not expressions.
			return false
		case *ir.VarDef:
			acc, ok := l.layout.Access(n)
			if !ok {
				err = util.Internalf("variable %s has no access", n.Name)
				return false
			}
			if _, ok := acc.(*mem.AbsAccess); !ok {
				return true
			}
			var words []mem.Word
			if words, err = mem.Words(n); err != nil {
				return false
			}
			addr := alloc(acc.Bytes())
			l.globals[n] = addr
			for _, e1 := range words {
				l.static = append(l.static, mem.Word{Offset: addr + e1.Offset, Value: e1.Value})
			}
		case *ir.AtomExpr:
			if n.Typ != ir.STRCONST {
				return true
			}
			var chars []int
			if chars, err = ir.DecodeStr(n); err != nil {
				return false
			}
			addr := alloc(len(chars) * mem.WordSize)
			l.strs[n] = addr
			for i1, e1 := range chars {
				l.static = append(l.static, mem.Word{Offset: addr + i1*mem.WordSize, Value: e1})
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	if l.top > maxStatic {
		return util.Errorf(p.Pos(), "Static data of %d bytes does not fit in memory.", l.top)
	}
	return nil
}

// declare adds function f to the module. Functions with a body are named after their frame, functions without
// one are external and keep their own name.
func (l *lowering) declare(f *ir.FunDef) error {
	if len(f.Stmts) > 0 {
		fr, ok := l.layout.Frame(f)
		if !ok {
			return util.Internalf("function %s has no frame", f.Name)
		}
		l.funs[f] = llvm.AddFunction(l.mod, funPrefix+fr.Name, llvm.FunctionType(l.i32, nil, false))
		return nil
	}

	if f.Name == mainName {
		return util.Errorf(f.Pos(), "Function '%s' has no body.", mainName)
	}
	pars := make([]llvm.Type, len(f.Pars))
	for i1 := range pars {
		pars[i1] = l.i32
	}
	if fn := l.mod.NamedFunction(f.Name); !fn.IsNil() {
		if fn.ParamsCount() != len(pars) {
			return util.Errorf(f.Pos(), "External function '%s' declared with %d and %d parameters.",
				f.Name, fn.ParamsCount(), len(pars))
		}
		l.funs[f] = fn
		return nil
	}
	fn := llvm.AddFunction(l.mod, f.Name, llvm.FunctionType(l.i32, pars, false))
	for i1, e1 := range fn.Params() {
		e1.SetName(f.Pars[i1].Name)
	}
	l.funs[f] = fn
	return nil
}

// fun generates the body of function f. The prologue saves the caller's FP below the new frame and reserves
// space for the locals, the epilogue restores both registers.
func (l *lowering) fun(f *ir.FunDef) error {
	fr, ok := l.layout.Frame(f)
	if !ok {
		return util.Internalf("function %s has no frame", f.Name)
	}
	fn := l.funs[f]
	bb := llvm.AddBasicBlock(fn, "entry")
	l.b.SetInsertPointAtEnd(bb)

	ret := l.b.CreateAlloca(l.i32, "ret")
	l.b.CreateStore(l.c32(0), ret)

	oldFP := l.b.CreateLoad(l.fp, "")
	newFP := l.b.CreateLoad(l.sp, "")
	l.store(oldFP, l.b.CreateSub(newFP, l.c32(mem.WordSize), ""))
	l.b.CreateStore(newFP, l.fp)
	l.b.CreateStore(l.b.CreateSub(newFP, l.c32(fr.VarsSize), ""), l.sp)

	ctx := context{frame: fr, fn: fn, ret: ret}
	if err := l.stmts(ctx, f.Stmts); err != nil {
		return err
	}

	fp := l.b.CreateLoad(l.fp, "")
	saved := l.load(l.b.CreateSub(fp, l.c32(mem.WordSize), ""))
	l.b.CreateStore(fp, l.sp)
	l.b.CreateStore(saved, l.fp)
	l.b.CreateRet(l.b.CreateLoad(ret, ""))
	return nil
}

// entry generates the C entry point: it initialises the registers and static data, calls main with a static link
// of 0 and returns main's value.
func (l *lowering) entry(main *ir.FunDef) error {
	fn := llvm.AddFunction(l.mod, mainName, llvm.FunctionType(l.i32, nil, false))
	bb := llvm.AddBasicBlock(fn, "entry")
	l.b.SetInsertPointAtEnd(bb)

	l.b.CreateStore(l.c32(memSize), l.sp)
	l.b.CreateStore(l.c32(memSize), l.fp)
	for _, e1 := range l.static {
		l.store(l.c32(e1.Value), l.c32(e1.Offset))
	}

	args := make([]llvm.Value, len(main.Pars))
	for i1 := range args {
		args[i1] = l.c32(0)
	}
	l.b.CreateRet(l.invoke(l.funs[main], l.c32(0), args))
	return nil
}

// invoke pushes the static link sl and the arguments args, calls fn and pops them again.
func (l *lowering) invoke(fn, sl llvm.Value, args []llvm.Value) llvm.Value {
	n := mem.WordSize * (len(args) + 1)
	sp := l.b.CreateLoad(l.sp, "")
	base := l.b.CreateSub(sp, l.c32(n), "")
	l.b.CreateStore(base, l.sp)
	l.store(sl, base)
	for i1, e1 := range args {
		l.store(e1, l.b.CreateAdd(base, l.c32(mem.WordSize*(i1+1)), ""))
	}
	res := l.b.CreateCall(fn, nil, "")
	l.b.CreateStore(sp, l.sp)
	return res
}

func (l *lowering) stmts(ctx context, stmts []ir.Stmt) error {
	for _, e1 := range stmts {
		if err := l.stmt(ctx, e1); err != nil {
			return err
		}
	}
	return nil
}

// stmt generates statement s.
func (l *lowering) stmt(ctx context, s ir.Stmt) error {
	switch s := s.(type) {
	case *ir.ExprStmt:
		v, err := l.expr(ctx, s.Expr)
		if err != nil {
			return err
		}
		l.b.CreateStore(v, ctx.ret)
	case *ir.AssignStmt:
		v, err := l.expr(ctx, s.Src)
		if err != nil {
			return err
		}
		addr, err := l.addr(ctx, s.Dst)
		if err != nil {
			return err
		}
		l.store(v, addr)
	case *ir.IfStmt:
		return l.ifStmt(ctx, s)
	case *ir.WhileStmt:
		return l.whileStmt(ctx, s)
	case *ir.LetStmt:
		for _, e1 := range s.Defs {
			v, ok := e1.(*ir.VarDef)
			if !ok {
				// Nested functions are lowered on their own.
				continue
			}
			if err := l.local(ctx, v); err != nil {
				return err
			}
		}
		return l.stmts(ctx, s.Stmts)
	default:
		return util.Internalf("unexpected statement %s", s.Type())
	}
	return nil
}

// local initialises local variable v each time its definition is executed.
func (l *lowering) local(ctx context, v *ir.VarDef) error {
	acc, ok := l.layout.Access(v)
	if !ok {
		return util.Internalf("variable %s has no access", v.Name)
	}
	a, ok := acc.(*mem.RelAccess)
	if !ok {
		return util.Internalf("local variable %s with access %T", v.Name, acc)
	}
	words, err := mem.Words(v)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	base := l.b.CreateAdd(l.b.CreateLoad(l.fp, ""), l.c32(a.Offset), "")
	for _, e1 := range words {
		l.store(l.c32(e1.Value), l.b.CreateAdd(base, l.c32(e1.Offset), ""))
	}
	return nil
}

func (l *lowering) ifStmt(ctx context, s *ir.IfStmt) error {
	then := llvm.AddBasicBlock(ctx.fn, "")
	els := llvm.AddBasicBlock(ctx.fn, "")
	end := llvm.AddBasicBlock(ctx.fn, "")

	cond, err := l.cond(ctx, s.Cond)
	if err != nil {
		return err
	}
	l.b.CreateCondBr(cond, then, els)

	l.b.SetInsertPointAtEnd(then)
	if err := l.stmts(ctx, s.Then); err != nil {
		return err
	}
	l.b.CreateBr(end)

	l.b.SetInsertPointAtEnd(els)
	if err := l.stmts(ctx, s.Else); err != nil {
		return err
	}
	l.b.CreateBr(end)

	l.b.SetInsertPointAtEnd(end)
	return nil
}

func (l *lowering) whileStmt(ctx context, s *ir.WhileStmt) error {
	head := llvm.AddBasicBlock(ctx.fn, "")
	body := llvm.AddBasicBlock(ctx.fn, "")
	end := llvm.AddBasicBlock(ctx.fn, "")

	l.b.CreateBr(head)
	l.b.SetInsertPointAtEnd(head)
	cond, err := l.cond(ctx, s.Cond)
	if err != nil {
		return err
	}
	l.b.CreateCondBr(cond, body, end)

	l.b.SetInsertPointAtEnd(body)
	if err := l.stmts(ctx, s.Stmts); err != nil {
		return err
	}
	l.b.CreateBr(head)

	l.b.SetInsertPointAtEnd(end)
	return nil
}

// cond evaluates e as a condition: any value other than 0 is true.
func (l *lowering) cond(ctx context, e ir.Expr) (llvm.Value, error) {
	v, err := l.expr(ctx, e)
	if err != nil {
		return llvm.Value{}, err
	}
	return l.b.CreateICmp(llvm.IntNE, v, l.c32(0), ""), nil
}

// expr evaluates expression e.
func (l *lowering) expr(ctx context, e ir.Expr) (llvm.Value, error) {
	switch e := e.(type) {
	case *ir.AtomExpr:
		switch e.Typ {
		case ir.INTCONST:
			v, err := ir.DecodeInt(e)
			return l.c32(v), err
		case ir.CHRCONST:
			v, err := ir.DecodeChr(e)
			return l.c32(v), err
		case ir.STRCONST:
			addr, ok := l.strs[e]
			if !ok {
				return llvm.Value{}, util.Internalf("string constant at %s has no address", e.Pos())
			}
			return l.c32(addr), nil
		default:
			return llvm.Value{}, util.Internalf("unexpected constant type %s", e.Typ)
		}
	case *ir.VarExpr:
		addr, err := l.addr(ctx, e)
		if err != nil {
			return llvm.Value{}, err
		}
		return l.load(addr), nil
	case *ir.CallExpr:
		return l.call(ctx, e)
	case *ir.UnExpr:
		if e.Op == ir.MEMADDR {
			return l.addr(ctx, e.Expr)
		}
		v, err := l.expr(ctx, e.Expr)
		if err != nil {
			return llvm.Value{}, err
		}
		switch e.Op {
		case ir.NOT:
			return l.bool(l.b.CreateICmp(llvm.IntEQ, v, l.c32(0), "")), nil
		case ir.NEG:
			return l.b.CreateSub(l.c32(0), v, ""), nil
		case ir.PLUS:
			return v, nil
		case ir.VALUEAT:
			return l.load(v), nil
		default:
			return llvm.Value{}, util.Internalf("unexpected unary operator %s", e.Op)
		}
	case *ir.BinExpr:
		return l.binExpr(ctx, e)
	default:
		return llvm.Value{}, util.Internalf("unexpected expression %s", e.Type())
	}
}

func (l *lowering) binExpr(ctx context, e *ir.BinExpr) (llvm.Value, error) {
	fst, err := l.expr(ctx, e.Fst)
	if err != nil {
		return llvm.Value{}, err
	}
	snd, err := l.expr(ctx, e.Snd)
	if err != nil {
		return llvm.Value{}, err
	}
	switch e.Op {
	case ir.ADD:
		return l.b.CreateAdd(fst, snd, ""), nil
	case ir.SUB:
		return l.b.CreateSub(fst, snd, ""), nil
	case ir.MUL:
		return l.b.CreateMul(fst, snd, ""), nil
	case ir.DIV:
		return l.b.CreateSDiv(fst, snd, ""), nil
	case ir.MOD:
		return l.b.CreateSRem(fst, snd, ""), nil
	case ir.EQU:
		return l.bool(l.b.CreateICmp(llvm.IntEQ, fst, snd, "")), nil
	case ir.NEQ:
		return l.bool(l.b.CreateICmp(llvm.IntNE, fst, snd, "")), nil
	case ir.LTH:
		return l.bool(l.b.CreateICmp(llvm.IntSLT, fst, snd, "")), nil
	case ir.GTH:
		return l.bool(l.b.CreateICmp(llvm.IntSGT, fst, snd, "")), nil
	case ir.LEQ:
		return l.bool(l.b.CreateICmp(llvm.IntSLE, fst, snd, "")), nil
	case ir.GEQ:
		return l.bool(l.b.CreateICmp(llvm.IntSGE, fst, snd, "")), nil
	case ir.AND, ir.OR:
		a := l.b.CreateICmp(llvm.IntNE, fst, l.c32(0), "")
		b := l.b.CreateICmp(llvm.IntNE, snd, l.c32(0), "")
		if e.Op == ir.AND {
			return l.bool(l.b.CreateAnd(a, b, "")), nil
		}
		return l.bool(l.b.CreateOr(a, b, "")), nil
	default:
		return llvm.Value{}, util.Internalf("unexpected binary operator %s", e.Op)
	}
}

// addr evaluates the address of lvalue e.
func (l *lowering) addr(ctx context, e ir.Expr) (llvm.Value, error) {
	switch e := e.(type) {
	case *ir.VarExpr:
		d, ok := l.attrs.Def(e)
		if !ok {
			return llvm.Value{}, util.Internalf("name %s at %s is not bound", e.Name, e.Pos())
		}
		acc, ok := l.layout.Access(d)
		if !ok {
			return llvm.Value{}, util.Internalf("definition of %s at %s has no access", e.Name, d.Pos())
		}
		switch a := acc.(type) {
		case *mem.AbsAccess:
			return l.c32(l.globals[d.(*ir.VarDef)]), nil
		case *mem.RelAccess:
			base := l.link(ctx.frame.Depth - a.Depth)
			return l.b.CreateAdd(base, l.c32(a.Offset), ""), nil
		default:
			return llvm.Value{}, util.Internalf("unexpected access %T of %s", acc, e.Name)
		}
	case *ir.UnExpr:
		if e.Op == ir.VALUEAT {
			return l.expr(ctx, e.Expr)
		}
	}
	return llvm.Value{}, util.Internalf("expression at %s is not an lvalue", e.Pos())
}

// call calls the function c names. Arguments are evaluated last to first, as on the stack machine.
func (l *lowering) call(ctx context, c *ir.CallExpr) (llvm.Value, error) {
	d, ok := l.attrs.Def(c)
	if !ok {
		return llvm.Value{}, util.Internalf("function %s at %s is not bound", c.Name, c.Pos())
	}
	f, ok := d.(*ir.FunDef)
	if !ok {
		return llvm.Value{}, util.Internalf("%s at %s does not name a function", c.Name, c.Pos())
	}
	fn, ok := l.funs[f]
	if !ok {
		return llvm.Value{}, util.Internalf("function %s is not declared", f.Name)
	}

	args := make([]llvm.Value, len(c.Args))
	for i1 := len(c.Args) - 1; i1 >= 0; i1-- {
		v, err := l.expr(ctx, c.Args[i1])
		if err != nil {
			return llvm.Value{}, err
		}
		args[i1] = v
	}

	if len(f.Stmts) == 0 {
		return l.b.CreateCall(fn, args, ""), nil
	}
	callee, ok := l.layout.Frame(f)
	if !ok {
		return llvm.Value{}, util.Internalf("function %s has no frame", f.Name)
	}
	return l.invoke(fn, l.link(ctx.frame.Depth-callee.Depth+1), args), nil
}

// link follows n static links starting at the current frame pointer.
func (l *lowering) link(n int) llvm.Value {
	v := l.b.CreateLoad(l.fp, "")
	for i1 := 0; i1 < n; i1++ {
		v = l.load(v)
	}
	return v
}

// pointer converts a memory address to a pointer into pins.mem.
func (l *lowering) pointer(addr llvm.Value) llvm.Value {
	p := l.b.CreateInBoundsGEP(l.mem, []llvm.Value{l.c32(0), addr}, "")
	return l.b.CreateBitCast(p, l.ptr, "")
}

func (l *lowering) load(addr llvm.Value) llvm.Value {
	return l.b.CreateLoad(l.pointer(addr), "")
}

func (l *lowering) store(v, addr llvm.Value) {
	l.b.CreateStore(v, l.pointer(addr))
}

// bool widens a truth value to an integer 0 or 1.
func (l *lowering) bool(v llvm.Value) llvm.Value {
	return l.b.CreateZExt(v, l.i32, "")
}

func (l *lowering) c32(v int) llvm.Value {
	return llvm.ConstInt(l.i32, uint64(int64(v)), true)
}

// genTargetTriple returns the LLVM target and target triple described by opt. The host's default triple is used
// if no target architecture is given.
func genTargetTriple(opt *util.Options) (llvm.Target, string, error) {
	sb := strings.Builder{}
	var triple string

	if opt.TargetArch == util.UnknownArch {
		triple = llvm.DefaultTargetTriple()
	} else {
		sb.Grow(20)

		switch opt.TargetArch {
		case util.Aarch64:
			sb.WriteString("aarch64")
		case util.Riscv64:
			sb.WriteString("riscv64")
		case util.Riscv32:
			sb.WriteString("riscv32")
		case util.X86_64:
			sb.WriteString("x86_64")
		case util.X86_32:
			sb.WriteString("x86")
		default:
			return llvm.Target{}, "", fmt.Errorf("unsupported target architecture identifier %d", opt.TargetArch)
		}
		sb.WriteRune('-')

		// Target vendor. Defaults to PC.
		switch opt.TargetVendor {
		case util.PC, util.UnknownVendor:
			sb.WriteString("pc")
		case util.Apple:
			sb.WriteString("apple")
		case util.IBM:
			sb.WriteString("ibm")
		default:
			return llvm.Target{}, "", fmt.Errorf("unsupported target vendor identifier %d", opt.TargetVendor)
		}
		sb.WriteRune('-')

		switch opt.TargetOS {
		case util.Linux:
			sb.WriteString("linux")
		case util.Windows:
			sb.WriteString("win32")
		case util.MAC:
			sb.WriteString("darwin")
		case util.UnknownOS:
			sb.WriteString("none")
		default:
			return llvm.Target{}, "", fmt.Errorf("unsupported target operating system identifier %d", opt.TargetOS)
		}
		sb.WriteString("-gnu")

		triple = sb.String()
	}

	if opt.Verbose {
		fmt.Printf("compiling for target %s\n", triple)
	}
	llvm.InitializeAllTargets()
	tt, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return llvm.Target{}, "", err
	}
	return tt, triple, nil
}
