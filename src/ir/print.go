package ir

import (
	"fmt"
	"io"
	"strings"
)

// Annotator returns the attributes a later compiler phase attached to node n, or an empty string.
type Annotator func(n Node) string

// String returns a print friendly description of node n, without its sub-tree.
func String(n Node) string {
	switch n := n.(type) {
	case *FunDef:
		return fmt.Sprintf("%s %s", n.Type(), n.Name)
	case *ParDef:
		return fmt.Sprintf("%s %s", n.Type(), n.Name)
	case *VarDef:
		return fmt.Sprintf("%s %s", n.Type(), n.Name)
	case *VarExpr:
		return fmt.Sprintf("%s %s", n.Type(), n.Name)
	case *CallExpr:
		return fmt.Sprintf("%s %s", n.Type(), n.Name)
	case *UnExpr:
		return fmt.Sprintf("%s %s", n.Type(), n.Op)
	case *BinExpr:
		return fmt.Sprintf("%s %s", n.Type(), n.Op)
	case *AtomExpr:
		return fmt.Sprintf("%s %s %s", n.Type(), n.Typ, n.Value)
	case nil:
		return "---> NIL"
	default:
		return n.Type().String()
	}
}

// Print recursively prints the syntax tree rooted at n to w, indenting every level by two spaces. Resolved names
// and lvalues are taken from attrs, which may be <nil>, and every annotator in ann adds its attributes to the line.
func Print(w io.Writer, n Node, attrs *Attrs, ann ...Annotator) {
	printNode(w, n, 0, attrs, ann)
}

// printNode prints node n at depth and recurses into its children.
func printNode(w io.Writer, n Node, depth int, attrs *Attrs, ann []Annotator) {
	sb := strings.Builder{}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(String(n))
	if n != nil {
		sb.WriteString(" @")
		sb.WriteString(n.Pos().String())
	}
	if attrs != nil && n != nil {
		if d, ok := attrs.Def(n); ok {
			fmt.Fprintf(&sb, " -> %s@%s", d.Type(), d.Pos())
		}
		if e, ok := n.(Expr); ok && attrs.IsLValue(e) {
			sb.WriteString(" lvalue")
		}
	}
	for _, e1 := range ann {
		if s := e1(n); len(s) > 0 {
			sb.WriteByte(' ')
			sb.WriteString(s)
		}
	}
	_, _ = fmt.Fprintln(w, sb.String())
	if n == nil {
		return
	}
	for _, e1 := range Children(n) {
		printNode(w, e1, depth+1, attrs, ann)
	}
}
