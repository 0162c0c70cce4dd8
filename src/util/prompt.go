// prompt.go provides the line editor used by the interactive mode of the compiler.

package util

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Prompt reads multi-line programs from the terminal with line editing and a persistent history.
type Prompt struct {
	ln      *liner.State
	history string // Path to the history file. Empty if the home directory is unknown.
}

// ---------------------
// ----- Constants -----
// ---------------------

const (
	historyFile = ".pinsc_history"
	promptMain  = "pins> "
	promptCont  = "....> "
	cmdQuit     = ":quit"
)

// ---------------------
// ----- Functions -----
// ---------------------

// NewPrompt opens the terminal for line editing and loads the history file.
func NewPrompt() *Prompt {
	p := &Prompt{ln: liner.NewLiner()}
	p.ln.SetCtrlCAborts(true)
	if home, err := os.UserHomeDir(); err == nil {
		p.history = filepath.Join(home, historyFile)
		if f, err := os.Open(p.history); err == nil {
			_, _ = p.ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return p
}

// ReadProgram reads lines until an empty line terminates the program. It returns io.EOF when the user ends the
// session with Ctrl-D, Ctrl-C or the :quit command.
func (p *Prompt) ReadProgram() (string, error) {
	var sb strings.Builder
	for {
		prompt := promptMain
		if sb.Len() > 0 {
			prompt = promptCont
		}
		line, err := p.ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			if sb.Len() > 0 && errors.Is(err, io.EOF) {
				return sb.String(), nil
			}
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		if sb.Len() == 0 && strings.TrimSpace(line) == cmdQuit {
			return "", io.EOF
		}
		if strings.TrimSpace(line) == "" {
			if sb.Len() == 0 {
				continue
			}
			return sb.String(), nil
		}
		p.ln.AppendHistory(line)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}

// Close saves the history and restores the terminal.
func (p *Prompt) Close() error {
	if len(p.history) > 0 {
		if f, err := os.Create(p.history); err == nil {
			_, _ = p.ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return p.ln.Close()
}
