// Package edit implements the line editor of shush.
//
// The Editor keeps the line being edited in a gap buffer together with a
// cursor, applies the key events decoded by the term package, and repaints
// the line on the terminal. Pure cursor movement never touches the buffer;
// the gap is only moved to the cursor right before an insertion or deletion.
package edit

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/victor23k/shush/pkg/cli/term"
	"github.com/victor23k/shush/pkg/gapbuf"
	"github.com/victor23k/shush/pkg/logutil"
)

var logger = logutil.GetLogger("[edit] ")

// DefaultPrompt is the prompt used when none is configured.
const DefaultPrompt = "🤫> "

// ErrInterrupted is returned by ReadCode when the user presses Ctrl-C.
var ErrInterrupted = errors.New("interrupted")

// Action tells the caller of Handle what to do next.
type Action int

const (
	// Continue means the line is still being edited.
	Continue Action = iota
	// Submit means the line has been finished with Enter.
	Submit
	// Interrupt means the user asked to end the session with Ctrl-C.
	Interrupt
	// EndOfInput means the user asked to end the session with Ctrl-D.
	EndOfInput
)

// Editor is a single-line editor.
type Editor struct {
	in  *term.Reader
	out io.Writer

	buf    *gapbuf.Buffer
	cursor int

	prompt      string
	promptWidth int

	// Leading bytes of a multi-byte character that is still being typed.
	pending []byte
}

// NewEditor creates an Editor that reads keys from and draws on the given
// TTY. The TTY is expected to already be in raw mode.
func NewEditor(tty term.TTY, prompt string) *Editor {
	return newEditor(term.NewReader(tty), tty, prompt)
}

func newEditor(in *term.Reader, out io.Writer, prompt string) *Editor {
	ed := &Editor{in: in, out: out, buf: gapbuf.New()}
	ed.SetPrompt(prompt)
	return ed
}

// SetPrompt changes the prompt. It takes effect at the next repaint.
func (ed *Editor) SetPrompt(prompt string) {
	ed.prompt = prompt
	ed.promptWidth = runewidth.StringWidth(prompt)
}

// Prompt returns the current prompt.
func (ed *Editor) Prompt() string { return ed.prompt }

// Cursor returns the position of the cursor, in bytes from the start of the
// line. The cursor always sits on a grapheme cluster boundary.
func (ed *Editor) Cursor() int { return ed.cursor }

// Text returns the content of the line being edited.
func (ed *Editor) Text() (string, error) { return ed.buf.Text() }

// ReadCode writes the prompt and edits a line until the user presses Enter,
// returning the finished line. It returns ErrInterrupted for Ctrl-C, io.EOF
// for Ctrl-D or exhausted input, and any error from reading or writing the
// terminal.
func (ed *Editor) ReadCode() (string, error) {
	if err := ed.write(ed.prompt); err != nil {
		return "", err
	}
	for {
		event, err := ed.in.ReadKey()
		if err != nil {
			return "", err
		}
		action, line, err := ed.Handle(event)
		if err != nil {
			return "", err
		}
		switch action {
		case Submit:
			return line, nil
		case Interrupt:
			return "", ErrInterrupted
		case EndOfInput:
			return "", io.EOF
		}
	}
}

// Handle applies one key event. When the event is Enter, it returns Submit
// along with the finished line, and the editor is ready for a new line.
func (ed *Editor) Handle(event term.KeyEvent) (Action, string, error) {
	if event.Kind != term.Character && len(ed.pending) > 0 {
		logger.Printf("dropping incomplete character %q", ed.pending)
		ed.pending = nil
	}

	switch event.Kind {
	case term.Character:
		return Continue, "", ed.insert(event.Bytes)
	case term.MoveLeft:
		return Continue, "", ed.moveLeft()
	case term.MoveRight:
		return Continue, "", ed.moveRight()
	case term.MoveHome:
		ed.cursor = 0
		return Continue, "", ed.write(term.MoveToColumn(ed.column()))
	case term.MoveEnd:
		ed.cursor = ed.buf.TextLen()
		return Continue, "", ed.write(term.MoveToColumn(ed.column()))
	case term.DeleteBackward:
		return Continue, "", ed.deleteBackward()
	case term.DeleteForward:
		return Continue, "", ed.deleteForward()
	case term.Enter:
		line, err := ed.submit()
		return Submit, line, err
	case term.Interrupt:
		return Interrupt, "", ed.write("\n")
	case term.EndOfTransmission:
		return EndOfInput, "", ed.write("\n")
	}
	// Unrecognized, and keys without a binding.
	return Continue, "", nil
}

func (ed *Editor) insert(bs []byte) error {
	ed.pending = append(ed.pending, bs...)
	if !utf8.FullRune(ed.pending) {
		return nil
	}
	if !utf8.Valid(ed.pending) {
		stray := ed.pending[:len(ed.pending)-len(bs)]
		ed.pending = nil
		if len(stray) > 0 && utf8.RuneStart(bs[0]) {
			// The new bytes start a character of their own.
			logger.Printf("dropping incomplete character %q", stray)
			return ed.insert(bs)
		}
		logger.Printf("dropping invalid input %q", append(stray, bs...))
		return nil
	}
	ed.buf.MoveGapTo(ed.cursor)
	ed.buf.Insert(ed.pending)
	ed.cursor += len(ed.pending)
	ed.pending = nil
	return ed.redraw()
}

func (ed *Editor) moveLeft() error {
	if ed.cursor == 0 {
		return nil
	}
	size, width := ed.clusterBefore(ed.cursor)
	ed.cursor -= size
	return ed.write(strings.Repeat(term.CursorLeft, width))
}

func (ed *Editor) moveRight() error {
	if ed.cursor == ed.buf.TextLen() {
		return nil
	}
	size, width := ed.clusterAt(ed.cursor)
	ed.cursor += size
	return ed.write(strings.Repeat(term.CursorRight, width))
}

func (ed *Editor) deleteBackward() error {
	if ed.cursor == 0 {
		return nil
	}
	size, _ := ed.clusterBefore(ed.cursor)
	ed.buf.MoveGapTo(ed.cursor)
	ed.buf.DeleteBackward(size)
	ed.cursor -= size
	return ed.redraw()
}

func (ed *Editor) deleteForward() error {
	if ed.cursor == ed.buf.TextLen() {
		return nil
	}
	size, _ := ed.clusterAt(ed.cursor)
	ed.buf.MoveGapTo(ed.cursor)
	ed.buf.DeleteForward(size)
	return ed.redraw()
}

func (ed *Editor) submit() (string, error) {
	line, err := ed.buf.Text()
	if err != nil {
		return "", err
	}
	ed.buf.Clear()
	ed.cursor = 0
	return line, ed.write("\n")
}

// Returns the size in bytes and the display width of the part of the grapheme
// cluster that ends at pos. Clusters depend on their neighbors, so the whole
// line is segmented.
func (ed *Editor) clusterBefore(pos int) (size, width int) {
	text := string(ed.buf.Bytes())
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, to := g.Positions()
		if to >= pos {
			return pos - from, runewidth.StringWidth(text[from:pos])
		}
	}
	return 0, 0
}

// Like clusterBefore, for the cluster that starts at pos.
func (ed *Editor) clusterAt(pos int) (size, width int) {
	text := string(ed.buf.Bytes())
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		_, to := g.Positions()
		if to > pos {
			return to - pos, runewidth.StringWidth(text[pos:to])
		}
	}
	return 0, 0
}

func (ed *Editor) bytesBetween(from, to int) []byte {
	bs := make([]byte, 0, to-from)
	for i := from; i < to; i++ {
		bs = append(bs, ed.buf.ByteAt(i))
	}
	return bs
}

// Returns the terminal column of the cursor. Columns start from 1.
func (ed *Editor) column() int {
	return ed.promptWidth + runewidth.StringWidth(string(ed.bytesBetween(0, ed.cursor))) + 1
}

// Repaints the whole line and puts the cursor back in place. Everything is
// written in one call, with the cursor hidden while the line is redrawn.
func (ed *Editor) redraw() error {
	text, err := ed.buf.Text()
	if err != nil {
		return err
	}
	var sb bytes.Buffer
	sb.WriteString(term.HideCursor)
	sb.WriteString(term.ClearLine)
	sb.WriteString(ed.prompt)
	sb.WriteString(text)
	sb.WriteString(term.MoveToColumn(ed.promptWidth + runewidth.StringWidth(text[:ed.cursor]) + 1))
	sb.WriteString(term.ShowCursor)
	_, err = ed.out.Write(sb.Bytes())
	return err
}

func (ed *Editor) write(s string) error {
	if s == "" {
		return nil
	}
	_, err := io.WriteString(ed.out, s)
	return err
}
