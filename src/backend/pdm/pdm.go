// Package pdm defines the instruction set of the stack machine PINS programs are compiled for.
//
// Every instruction has a size in bytes that determines its address in the code or data segment. Labels take no
// space, instructions with an operand take 5 bytes, all other code instructions take 1 byte. A data word takes 4
// bytes and SIZE reserves as many bytes as its operand says.
package pdm

import (
	"fmt"
	"reflect"

	"pinsc/src/ir/mem"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Instr is an instruction of the stack machine.
type Instr interface {
	Size() int
	String() string
}

// CodeInstr is an instruction that may appear in the code segment.
type CodeInstr interface {
	Instr
	code()
}

// DataInstr is an instruction that may appear in the data segment.
type DataInstr interface {
	Instr
	data()
}

// Label marks the address of the next instruction. It appears in both segments.
type Label struct {
	Name string
}

// Push pushes a constant.
type Push struct {
	Value int
}

// PopN pops n and then n bytes off the stack. Pushing a negative n first allocates stack space.
type PopN struct{}

// Name pushes the address of a label.
type Name struct {
	Name string
}

// Load pops an address and pushes the word stored there.
type Load struct{}

// Save pops an address and a value and stores the value at the address.
type Save struct{}

// Init pops the address of an initializer sequence and a destination address and fills the destination.
type Init struct{}

// Regn pushes the value of a register.
type Regn struct {
	Reg Reg
}

// Oper pops its operands and pushes the result of an operation.
type Oper struct {
	Op Op
}

// CJmp pops a false label, a true label and a condition and jumps accordingly.
type CJmp struct{}

// UJmp pops a label and jumps to it.
type UJmp struct{}

// Call pops the address of a function and calls it. Frame is the frame of the calling function, <nil> outside of
// any function.
type Call struct {
	Frame *mem.Frame
}

// Retn pops the size of the arguments and returns from the function with the given Frame.
type Retn struct {
	Frame *mem.Frame
}

// Data is a word of initialized data.
type Data struct {
	Value int
}

// Size reserves N bytes of data.
type Size struct {
	N int
}

// Reg is a machine register.
type Reg int

// Op is an operation of Oper.
type Op int

// ---------------------
// ----- Constants -----
// ---------------------

// Registers.
const (
	FP Reg = iota // Frame pointer.
	SP            // Stack pointer.
)

// Operations.
const (
	ADD Op = iota
	SUB
	MUL
	DIV
	MOD
	EQU
	NEQ
	LTH
	GTH
	LEQ
	GEQ
	AND
	OR
	NOT
)

var regs = [...]string{"FP", "SP"}

var ops = [...]string{"ADD", "SUB", "MUL", "DIV", "MOD", "EQU", "NEQ", "LTH", "GTH", "LEQ", "GEQ", "AND", "OR", "NOT"}

const (
	wordSize    = 4
	operandSize = 5 // Opcode and one word.
)

// ---------------------
// ----- Functions -----
// ---------------------

// Copy returns a list of copies of the instructions in instrs. Frames referenced by CALL and RETN are shared with
// the memory layout.
func Copy[T Instr](instrs []T) []T {
	if instrs == nil {
		return nil
	}
	res := make([]T, len(instrs))
	for i1, e1 := range instrs {
		v := reflect.ValueOf(e1)
		if v.Kind() != reflect.Pointer || v.IsNil() {
			res[i1] = e1
			continue
		}
		c := reflect.New(v.Elem().Type())
		c.Elem().Set(v.Elem())
		res[i1] = c.Interface().(T)
	}
	return res
}

func (r Reg) String() string {
	if r < 0 || int(r) >= len(regs) {
		return fmt.Sprintf("REG(%d)", int(r))
	}
	return regs[r]
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(ops) {
		return fmt.Sprintf("OP(%d)", int(op))
	}
	return ops[op]
}

func (i *Label) Size() int { return 0 }
func (i *Push) Size() int  { return operandSize }
func (i *PopN) Size() int  { return 1 }
func (i *Name) Size() int  { return operandSize }
func (i *Load) Size() int  { return 1 }
func (i *Save) Size() int  { return 1 }
func (i *Init) Size() int  { return 1 }
func (i *Regn) Size() int  { return 1 }
func (i *Oper) Size() int  { return 1 }
func (i *CJmp) Size() int  { return 1 }
func (i *UJmp) Size() int  { return 1 }
func (i *Call) Size() int  { return 1 }
func (i *Retn) Size() int  { return 1 }
func (i *Data) Size() int  { return wordSize }
func (i *Size) Size() int  { return i.N }

func (i *Label) String() string { return i.Name + ":" }
func (i *Push) String() string  { return fmt.Sprintf("PUSH %d", i.Value) }
func (i *PopN) String() string  { return "POPN" }
func (i *Name) String() string  { return "NAME " + i.Name }
func (i *Load) String() string  { return "LOAD" }
func (i *Save) String() string  { return "SAVE" }
func (i *Init) String() string  { return "INIT" }
func (i *Regn) String() string  { return "REGN " + i.Reg.String() }
func (i *Oper) String() string  { return "OPER " + i.Op.String() }
func (i *CJmp) String() string  { return "CJMP" }
func (i *UJmp) String() string  { return "UJMP" }
func (i *Data) String() string  { return fmt.Sprintf("DATA %d", i.Value) }
func (i *Size) String() string  { return fmt.Sprintf("SIZE %d", i.N) }

func (i *Call) String() string {
	if i.Frame == nil {
		return "CALL"
	}
	return "CALL (in " + i.Frame.Name + ")"
}

func (i *Retn) String() string {
	if i.Frame == nil {
		return "RETN"
	}
	return "RETN (from " + i.Frame.Name + ")"
}

func (*Label) code() {}
func (*Push) code()  {}
func (*PopN) code()  {}
func (*Name) code()  {}
func (*Load) code()  {}
func (*Save) code()  {}
func (*Init) code()  {}
func (*Regn) code()  {}
func (*Oper) code()  {}
func (*CJmp) code()  {}
func (*UJmp) code()  {}
func (*Call) code()  {}
func (*Retn) code()  {}

func (*Label) data() {}
func (*Data) data()  {}
func (*Size) data()  {}
