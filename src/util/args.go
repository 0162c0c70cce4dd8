package util

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

type Options struct {
	Src          string   // Path to source file.
	Out          string   // Path to output file.
	Verbose      bool     // Set true if compiler should log statistical data to stdout.
	TokenStream  bool     // Set true if compiler should output token stream and exit.
	LLVM         bool     // Set true if compiler should lower the program to LLVM IR instead of stack machine code.
	Object       bool     // Set true if the LLVM backend should emit an object file instead of textual IR.
	Interactive  bool     // Set true if compiler should read programs from an interactive prompt.
	TargetArch   int      // Output target architecture for object files.
	TargetVendor int      // Output target vendor type. 0 = unknown.
	TargetOS     int      // Output target operating system type.
	Unused       []string // Positional arguments following the source file.
}

// ---------------------
// ----- Constants -----
// ---------------------

const appVersion = "pins compiler 1.0"

// Target machine architectures.
const (
	UnknownArch = iota
	X86_64
	X86_32
	Aarch64
	Riscv64
	Riscv32
)

// Target operating system.
const (
	UnknownOS = iota
	Linux
	Windows
	MAC
)

// Target vendor.
const (
	UnknownVendor = iota
	Apple
	PC
	IBM
)

// ---------------------
// ----- functions -----
// ---------------------

// ParseArgs parses the command line arguments of the running process.
func ParseArgs() (Options, error) {
	if len(os.Args) < 2 {
		return Options{}, nil
	}
	return parseArgs(os.Args[1:])
}

// parseArgs parses the command line arguments args. Flags may appear anywhere. The first positional argument is the
// path to the source file, any further positional arguments are collected in Options.Unused.
func parseArgs(args []string) (Options, error) {
	opt := Options{}
	for i1 := 0; i1 < len(args); i1++ {
		if !strings.HasPrefix(args[i1], "-") || args[i1] == "-" {
			if len(opt.Src) == 0 {
				opt.Src = args[i1]
			} else {
				opt.Unused = append(opt.Unused, args[i1])
			}
			continue
		}
		switch args[i1] {
		case "-h", "--h", "-help", "--help":
			// Help and usage.
			printHelp()
			os.Exit(0)
		case "-ll":
			// Use LLVM IR and LLVM code generator.
			opt.LLVM = true
		case "-c":
			// Emit object file through LLVM.
			opt.Object = true
		case "-i":
			// Interactive prompt.
			opt.Interactive = true
		case "-ts":
			// Output token stream.
			opt.TokenStream = true
		case "-v", "--v", "-version", "--version":
			// Application version.
			fmt.Println(appVersion)
			os.Exit(0)
		case "-vb":
			// Verbose mode.
			opt.Verbose = true
		case "-o", "-arch", "-os", "-vendor":
			if i1+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i1])
			}
			if strings.HasPrefix(args[i1+1], "-") {
				return opt, fmt.Errorf("expected argument to %s, got new flag %s", args[i1], args[i1+1])
			}
			if err := parseValue(&opt, args[i1], args[i1+1]); err != nil {
				return opt, err
			}
			i1++
		default:
			return opt, fmt.Errorf("unexpected flag: %s", args[i1])
		}
	}
	if opt.Object && !opt.LLVM {
		return opt, fmt.Errorf("flag -c requires -ll")
	}
	return opt, nil
}

// parseValue stores the value val of the flag flag in opt.
func parseValue(opt *Options, flag, val string) error {
	switch flag {
	case "-o":
		// Output file.
		opt.Out = val
	case "-arch":
		// Output architecture.
		switch val {
		case "aarch64":
			opt.TargetArch = Aarch64
		case "riscv64":
			opt.TargetArch = Riscv64
		case "riscv32":
			opt.TargetArch = Riscv32
		case "x86_64":
			opt.TargetArch = X86_64
		case "x86_32":
			opt.TargetArch = X86_32
		default:
			return fmt.Errorf("unexpected architecture identifier: %s", val)
		}
	case "-os":
		// Output operating system type.
		switch val {
		case "linux":
			opt.TargetOS = Linux
		case "windows":
			opt.TargetOS = Windows
		case "mac":
			opt.TargetOS = MAC
		default:
			return fmt.Errorf("unexpected operating system identifier: %s", val)
		}
	case "-vendor":
		// Output vendor type.
		switch val {
		case "pc":
			opt.TargetVendor = PC
		case "apple":
			opt.TargetVendor = Apple
		case "ibm":
			opt.TargetVendor = IBM
		default:
			return fmt.Errorf("unexpected vendor identifier: %s", val)
		}
	}
	return nil
}

// printHelp prints a helpful usage message to stdout.
func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "usage: pinsc [flags] <source.pins>")
	_, _ = fmt.Fprintln(w, "-arch\tTarget architecture of object files: aarch64, riscv32, riscv64, x86_32 or x86_64.")
	_, _ = fmt.Fprintln(w, "-c\tWith -ll: emit an object file instead of LLVM IR.")
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits the application.")
	_, _ = fmt.Fprintln(w, "--h, --help")
	_, _ = fmt.Fprintln(w, "-i\tInteractive mode: compile programs typed at a prompt.")
	_, _ = fmt.Fprintln(w, "-ll\tLower the program to LLVM IR.")
	_, _ = fmt.Fprintln(w, "-o\tPath and name of the output file.")
	_, _ = fmt.Fprintln(w, "-os\tTarget operating system of object files: linux, windows or mac.")
	_, _ = fmt.Fprintln(w, "-ts\tOutput the tokens of the source code and exit.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints application version and exits the application.")
	_, _ = fmt.Fprintln(w, "--v, --version")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode: print compiler statistics to stdout.")
	_, _ = fmt.Fprintln(w, "-vendor\tTarget vendor of object files: pc, apple or ibm.")
	_ = w.Flush()
}
