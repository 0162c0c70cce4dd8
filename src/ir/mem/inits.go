package mem

import (
	"fmt"
	"strings"

	"pinsc/src/ir"
	"pinsc/src/util"
)

// maxShownInits is the number of initializer values shown by InitsString.
const maxShownInits = 10

// Size returns the number of bytes reserved for variable v: the sum over its initializer groups of the group's
// count times the size of its value. Integers and characters take one word. A string takes
// (len(lexeme)-4) words, where the lexeme includes the quotes and any escape sequences.
func Size(v *ir.VarDef) (int, error) {
	size := 0
	for _, e1 := range v.Inits {
		num, err := ir.DecodeInt(e1.Num)
		if err != nil {
			return 0, err
		}
		elem, err := elemLen(e1.Value)
		if err != nil {
			return 0, err
		}
		size += num * elem * WordSize
	}
	return size, nil
}

// Inits returns the initializer sequence of variable v:
//
//	[#groups, count_1, len_1, value_1_1, ..., value_1_len, count_2, ...]
//
// len is 1 for integers and characters, and len(lexeme)-4 for strings. A string group is followed by all decoded
// characters of the string, which need not be len values.
func Inits(v *ir.VarDef) ([]int, error) {
	res := []int{len(v.Inits)}
	for _, e1 := range v.Inits {
		num, err := ir.DecodeInt(e1.Num)
		if err != nil {
			return nil, err
		}
		elem, err := elemLen(e1.Value)
		if err != nil {
			return nil, err
		}
		res = append(res, num, elem)
		vals, err := Values(e1.Value)
		if err != nil {
			return nil, err
		}
		res = append(res, vals...)
	}
	return res, nil
}

// Values returns the decoded words of constant a.
func Values(a *ir.AtomExpr) ([]int, error) {
	switch a.Typ {
	case ir.INTCONST:
		i, err := ir.DecodeInt(a)
		return []int{i}, err
	case ir.CHRCONST:
		c, err := ir.DecodeChr(a)
		return []int{c}, err
	case ir.STRCONST:
		return ir.DecodeStr(a)
	default:
		return nil, util.Internalf("unexpected constant type %s", a.Typ)
	}
}

// elemLen returns the number of words a single copy of constant a occupies.
func elemLen(a *ir.AtomExpr) (int, error) {
	switch a.Typ {
	case ir.INTCONST, ir.CHRCONST:
		return 1, nil
	case ir.STRCONST:
		return len(a.Value) - 4, nil
	default:
		return 0, util.Internalf("unexpected constant type %s", a.Typ)
	}
}

// InitsString returns a print friendly initializer sequence showing at most its first ten expanded values. Each
// group contributes count copies of its first len values. The walk stops at the end of the sequence.
func InitsString(inits []int) string {
	if len(inits) == 0 {
		return ""
	}
	sb := strings.Builder{}
	shown := 0
	p := 1
	for i1 := 0; i1 < inits[0] && p+1 < len(inits); i1++ {
		num, elem := inits[p], inits[p+1]
		p += 2
		if elem <= 0 {
			continue
		}
		for i2 := 0; i2 < num && p < len(inits); i2++ {
			for i3 := 0; i3 < elem && p+i3 < len(inits); i3++ {
				if shown == maxShownInits {
					sb.WriteString("...")
					return sb.String()
				}
				if shown > 0 {
					sb.WriteByte(',')
				}
				fmt.Fprintf(&sb, "%d", inits[p+i3])
				shown++
			}
		}
		p += elem
	}
	return sb.String()
}

// Annotate returns the memory attributes of node n for printing the syntax tree.
func (l *Layout) Annotate(n ir.Node) string {
	switch n := n.(type) {
	case *ir.FunDef:
		if fr, ok := l.frames[n]; ok {
			return fmt.Sprintf("frame=%s depth=%d parsSize=%d varsSize=%d", fr.Name, fr.Depth, fr.ParsSize, fr.VarsSize)
		}
	case *ir.ParDef:
		if a, ok := l.pars[n]; ok {
			return a.String()
		}
	case *ir.VarDef:
		switch a := l.vars[n].(type) {
		case *AbsAccess:
			return a.String()
		case *RelAccess:
			return a.String()
		}
	}
	return ""
}

func (a *AbsAccess) String() string {
	return fmt.Sprintf("label=%s size=%d inits=%s", a.Name, a.Size, InitsString(a.Inits))
}

func (a *RelAccess) String() string {
	if a.Inits == nil {
		return fmt.Sprintf("offset=%d size=%d depth=%d", a.Offset, a.Size, a.Depth)
	}
	return fmt.Sprintf("offset=%d size=%d depth=%d inits=%s", a.Offset, a.Size, a.Depth, InitsString(a.Inits))
}

// Word is an initialised word of a variable, Offset bytes from the variable's address.
type Word struct {
	Offset int
	Value  int
}

// Words returns the initialised words of variable v in ascending order of offset. Every copy of a constant starts
// after the previous copy and occupies as many words as its element size. Decoded characters of a string that do
// not fit its element size are dropped and words beyond Size(v) are never returned.
func Words(v *ir.VarDef) ([]Word, error) {
	size, err := Size(v)
	if err != nil {
		return nil, err
	}
	var res []Word
	offset := 0
	for _, e1 := range v.Inits {
		num, err := ir.DecodeInt(e1.Num)
		if err != nil {
			return nil, err
		}
		elem, err := elemLen(e1.Value)
		if err != nil {
			return nil, err
		}
		vals, err := Values(e1.Value)
		if err != nil {
			return nil, err
		}
		if elem <= 0 {
			continue
		}
		for i1 := 0; i1 < num; i1++ {
			for i2 := 0; i2 < elem && i2 < len(vals); i2++ {
				if o := offset + i2*WordSize; o < size {
					res = append(res, Word{Offset: o, Value: vals[i2]})
				}
			}
			offset += elem * WordSize
		}
	}
	return res, nil
}
