package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"pinsc/src/backend"
	"pinsc/src/frontend"
	"pinsc/src/ir"
	"pinsc/src/ir/mem"
	"pinsc/src/util"
)

func main() {
	// Parse command line arguments.
	opt, err := util.ParseArgs()
	if err != nil {
		fmt.Printf("Command line argument error: %s\n", err)
		os.Exit(1)
	}
	if len(opt.Unused) > 0 {
		fmt.Println(util.Warning{Msg: "Unused arguments in the command line."})
	}

	if opt.Interactive {
		if err := interactive(opt); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Read source code.
	src, err := util.ReadSource(opt)
	if err != nil {
		fmt.Printf("Could not read source code: %s\n", err)
		os.Exit(1)
	}

	// If -ts flag was passed: output token stream and exit.
	if opt.TokenStream {
		if err := frontend.TokenStream(os.Stdout, src); err != nil {
			fmt.Printf("Syntax error: %s\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Initiate output writer. The LLVM backend opens its own output.
	w, err := util.NewWriter(outPath(opt))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	err = compile(opt, src, w)
	if err2 := w.Close(); err == nil {
		err = err2
	}
	if err != nil {
		report(err)
		os.Exit(1)
	}
}

// compile runs every phase of the compiler on src and writes the output of the backend selected by opt to w.
// Warnings are printed to stdout as they occur.
func compile(opt util.Options, src string, w io.Writer) error {
	t := time.Now()
	phase := func(name string) {
		if opt.Verbose {
			fmt.Printf("%-10s %s\n", name, time.Since(t))
		}
		t = time.Now()
	}

	// Generate syntax tree by lexing and parsing source code.
	prog, warnings, err := frontend.Parse(src)
	if err != nil {
		return err
	}
	util.PrintWarnings(os.Stdout, warnings)
	phase("parse")

	// Bind names to their definitions and validate the tree.
	attrs, err := ir.Analyse(prog)
	if err != nil {
		return err
	}
	phase("analyse")

	// Compute frames and variable accesses.
	layout, err := mem.Organise(prog)
	if err != nil {
		return err
	}
	phase("memory")

	if err := backend.GenerateAssembler(opt, w, prog, attrs, layout); err != nil {
		return err
	}
	phase("codegen")
	return nil
}

// interactive compiles programs read from the terminal until the user ends the session. Compilation errors are
// reported and do not end the session.
func interactive(opt util.Options) error {
	opt.Out = ""
	p := util.NewPrompt()
	defer func() {
		if err := p.Close(); err != nil {
			fmt.Println(err)
		}
	}()

	fmt.Println("Enter a program followed by an empty line, :quit to exit.")
	for {
		src, err := p.ReadProgram()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		if opt.TokenStream {
			if err := frontend.TokenStream(os.Stdout, src); err != nil {
				report(err)
			}
			continue
		}

		w := util.BufferedWriter(os.Stdout)
		err = compile(opt, src, w)
		if err2 := w.Close(); err == nil {
			err = err2
		}
		if err != nil {
			report(err)
		}
	}
}

// outPath returns the path of the listing. The LLVM backend writes its own output, so the listing goes to stdout.
func outPath(opt util.Options) string {
	if opt.LLVM {
		return ""
	}
	return opt.Out
}

// report prints a compilation error. Errors in the source program and internal compiler errors are told apart.
func report(err error) {
	var serr *util.Error
	var ierr *util.InternalError
	switch {
	case errors.As(err, &serr):
		fmt.Printf("Source code error: %s\n", serr)
	case errors.As(err, &ierr):
		fmt.Println(ierr)
	default:
		fmt.Printf("Code generation error: %s\n", err)
	}
}
