// Package backend generates the output of the compiler for an analysed and laid-out program.
package backend

import (
	"fmt"
	"io"

	"pinsc/src/backend/codegen"
	"pinsc/src/ir"
	"pinsc/src/ir/llvm"
	"pinsc/src/ir/mem"
	"pinsc/src/util"
)

// ---------------------
// ----- Functions -----
// ---------------------

// GenerateAssembler generates the program for the backend selected by opt. The LLVM backend writes its own
// output, the stack machine backend writes the annotated syntax tree and the listing of both segments to w.
func GenerateAssembler(opt util.Options, w io.Writer, p *ir.Program, attrs *ir.Attrs, layout *mem.Layout) error {
	if opt.LLVM {
		return llvm.GenLLVM(opt, p, attrs, layout)
	}
	return GenerateListing(opt, w, p, attrs, layout)
}

// GenerateListing generates stack machine code for program p and writes the syntax tree annotated with the
// memory layout, followed by the code and data segments, to w.
func GenerateListing(opt util.Options, w io.Writer, p *ir.Program, attrs *ir.Attrs, layout *mem.Layout) error {
	res, err := codegen.Generate(p, attrs, layout)
	if err != nil {
		return err
	}
	code, err := codegen.CodeSegment(p, res, layout)
	if err != nil {
		return err
	}
	data := codegen.DataSegment(p, res)

	ir.Print(w, p, attrs, layout.Annotate)
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := codegen.Listing(w, code, data); err != nil {
		return err
	}

	if opt.Verbose {
		codeSize, dataSize := 0, 0
		for _, e1 := range code {
			codeSize += e1.Size()
		}
		for _, e1 := range data {
			dataSize += e1.Size()
		}
		fmt.Printf("code segment: %d instructions, %d bytes\n", len(code), codeSize)
		fmt.Printf("data segment: %d instructions, %d bytes\n", len(data), dataSize)
		fmt.Printf("labels: %d\n", res.Labels())
	}
	return nil
}
