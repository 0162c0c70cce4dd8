package codegen

import (
	"io"

	"pinsc/src/backend/pdm"
	"pinsc/src/util"
)

// Listing writes the code segment followed by the data segment to w, one instruction per line together with its
// address and size. Addresses of the data segment continue where the code segment ends.
func Listing(w io.Writer, code []pdm.CodeInstr, data []pdm.DataInstr) error {
	out := util.BufferedWriter(w)
	addr := 0

	out.Printf("CODE SEGMENT:\n")
	for _, e1 := range code {
		out.Printf("%8d [%d] %s\n", addr, e1.Size(), indent(e1))
		addr += e1.Size()
	}

	out.Printf("\nDATA SEGMENT:\n")
	for _, e1 := range data {
		if _, ok := e1.(*pdm.Size); ok {
			out.Printf("%8d [ ] %s\n", addr, indent(e1))
		} else {
			out.Printf("%8d [%d] %s\n", addr, e1.Size(), indent(e1))
		}
		addr += e1.Size()
	}
	return out.Flush()
}

// indent returns the text of instruction i. Labels are printed flush left, everything else is indented.
func indent(i pdm.Instr) string {
	if _, ok := i.(*pdm.Label); ok {
		return i.String()
	}
	return "  " + i.String()
}
