package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Writer buffers compiler output on its way to either a file or stdout. Output is only guaranteed to have reached
// its destination after Close.
type Writer struct {
	*bufio.Writer
	f *os.File // Output file, <nil> when writing to stdout.
}

// ---------------------
// ----- Constants -----
// ---------------------

// stdinTimeout is how long ReadSource waits for a program on stdin.
const stdinTimeout = 500 * time.Millisecond

// ---------------------
// ----- Functions -----
// ---------------------

// NewWriter returns a Writer that writes to the file at path, which is created or truncated. An empty path means
// stdout.
func NewWriter(path string) (*Writer, error) {
	if len(path) == 0 {
		return &Writer{Writer: bufio.NewWriter(os.Stdout)}, nil
	}
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &Writer{Writer: bufio.NewWriter(f), f: f}, nil
}

// BufferedWriter returns a Writer that writes to w.
func BufferedWriter(w io.Writer) *Writer {
	return &Writer{Writer: bufio.NewWriter(w)}
}

// Printf writes a format string to the Writer's buffer.
func (w *Writer) Printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w.Writer, format, args...)
}

// Close flushes the Writer's buffer and closes the output file, if any.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.f != nil {
		if err2 := w.f.Close(); err == nil {
			err = err2
		}
	}
	return err
}

// ReadSource reads source code from file or stdin.
// If the Options structure holds a string for source the file will be opened and read.
// Else the function waits for a short period for input on stdin. If no input on stdin is
// provided the function returns an error.
func ReadSource(opt Options) (string, error) {
	if len(opt.Src) > 0 && opt.Src != "-" {
		// Read from file.
		b, err := ioutil.ReadFile(opt.Src)
		return string(b), err
	}

	// Read stdin.
	c := make(chan string, 1)
	cerr := make(chan error, 1)

	// Concurrently wait for input on stdin.
	go func(c chan string, cerr chan error) {
		b, err := ioutil.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			cerr <- err
			return
		}
		c <- string(b)
	}(c, cerr)

	// Select between input from stdin or timer expiry.
	select {
	case <-time.After(stdinTimeout):
		return "", errors.New("expected input from stdin, got none")
	case err := <-cerr:
		return "", err
	case s := <-c:
		if len(s) == 0 {
			return "", errors.New("expected input from stdin, got none")
		}
		return s, nil
	}
}
