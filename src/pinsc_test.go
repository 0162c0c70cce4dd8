package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pinsc/src/util"
)

// samplePath is the path of the bundled PINS programs relative to the src directory.
const samplePath = "../resources/pins"

// TestCompileSamples compiles every bundled PINS program to a stack machine listing.
func TestCompileSamples(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(samplePath, "*.pins"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatalf("no sample programs found in %s", samplePath)
	}
	for _, e1 := range files {
		src, err := os.ReadFile(e1)
		if err != nil {
			t.Fatal(err)
		}
		buf := bytes.Buffer{}
		if err := compile(util.Options{Src: e1}, string(src), &buf); err != nil {
			t.Errorf("%s: %s", filepath.Base(e1), err)
			continue
		}
		out := buf.String()
		for _, e2 := range []string{"PROGRAM @", "CODE SEGMENT:", "NAME main", "NAME exit", "DATA SEGMENT:"} {
			if !strings.Contains(out, e2) {
				t.Errorf("%s: expected output to contain %q", filepath.Base(e1), e2)
			}
		}
	}
}

// TestCompileOutput verifies the annotated tree and the listing of a small program.
func TestCompileOutput(t *testing.T) {
	buf := bytes.Buffer{}
	if err := compile(util.Options{}, "var x = 5, fun main() = x", &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, e1 := range []string{
		"  VAR_DEF x @1:1 label=x size=4 inits=5\n",
		"  FUN_DEF main @1:12 frame=main depth=1 parsSize=4 varsSize=8\n",
		"    EXPR_STMT @1:25\n",
		"      VAR_EXPR x @1:25 -> VAR_DEF@1:1 lvalue\n",
		"      33 [0] main:\n",
		"      51 [ ]   SIZE 4\n",
	} {
		if !strings.Contains(out, e1) {
			t.Errorf("expected output to contain %q, got:\n%s", e1, out)
		}
	}
}

// TestCompileErrors verifies that errors of every phase stop compilation with a source error.
func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"lexical", "fun main() = 1 $ 2", ""},
		{"syntax", "fun main( = 1", ""},
		{"undefined", "fun main() = y", "Undefined name 'y'."},
		{"arity", "fun f(a) = a fun main() = f()", "Function 'f' expects 1 arguments, got 0."},
		{"lvalue", "fun main() = 1 = 2", "Assignment to an expression that is not an lvalue."},
		{"integer", "var x = 99999999999 fun main() = x", "Illegal integer value."},
	}
	for _, e1 := range tests {
		buf := bytes.Buffer{}
		err := compile(util.Options{}, e1.src, &buf)
		if err == nil {
			t.Errorf("%s: expected error", e1.name)
			continue
		}
		var serr *util.Error
		if !errors.As(err, &serr) {
			t.Errorf("%s: expected source error, got %T: %s", e1.name, err, err)
			continue
		}
		if len(e1.msg) > 0 && serr.Msg != e1.msg {
			t.Errorf("%s: expected %q, got %q", e1.name, e1.msg, serr.Msg)
		}
		if buf.Len() > 0 {
			t.Errorf("%s: unexpected output after error:\n%s", e1.name, buf.String())
		}
	}
}
