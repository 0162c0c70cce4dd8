// tree.go provides the entry points of the frontend: parsing source code into a syntax tree, and dumping the token
// stream of source code.

package frontend

import (
	"fmt"
	"io"
	"text/tabwriter"

	"pinsc/src/ir"
	"pinsc/src/util"
)

// Parse parses the syntax tree from the source code. Warnings are returned alongside a successfully parsed tree.
func Parse(src string) (*ir.Program, []util.Warning, error) {
	p := newParser(src)
	prog, err := p.parseProgram()
	if err != nil {
		return nil, nil, err
	}
	return prog, p.warnings, nil
}

// TokenStream writes the token stream of the given source string to w.
func TokenStream(w io.Writer, src string) error {
	l := newLexer(src, lexGlobal)
	tw := tabwriter.NewWriter(w, 10, 20, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Value\tType\tPosition\n")
	for {
		t := l.nextItem()
		switch t.typ {
		case itemEOF:
			return tw.Flush()
		case itemError:
			_ = tw.Flush()
			return util.Errorf(t.loc(), "%s", t.val)
		default:
			if len(t.val) > 20 {
				_, _ = fmt.Fprintf(tw, "%.17q...\t%s\tline: %d:%d\n", t.val, t.typ, t.line, t.pos)
			} else {
				_, _ = fmt.Fprintf(tw, "%q\t%s\tline: %d:%d\n", t.val, t.typ, t.line, t.pos)
			}
		}
	}
}
