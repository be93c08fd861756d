package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// This type is the interface that the line editor has to satisfy. It is needed
// so that the interactive loop can fall back to a minimal editor.
type editor interface {
	ReadCode() (string, error)
}

// A line reader for when the input is not a terminal. The terminal does the
// editing, in cooked mode.
type minEditor struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func newMinEditor(in io.Reader, out io.Writer, prompt string) *minEditor {
	return &minEditor{bufio.NewReader(in), out, prompt}
}

func (ed *minEditor) ReadCode() (string, error) {
	fmt.Fprint(ed.out, ed.prompt)
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		// Treat an unterminated last line as a line.
		err = nil
	}
	return chopLineEnding(line), err
}

func chopLineEnding(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
