package edit

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/victor23k/shush/pkg/cli/term"
)

const prompt = "> "

func setup(input string) (*Editor, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return newEditor(term.NewReader(strings.NewReader(input)), out, prompt), out
}

func repaint(text string, col int) string {
	return term.HideCursor + term.ClearLine + prompt + text + term.MoveToColumn(col) + term.ShowCursor
}

func feed(t *testing.T, ed *Editor, events ...term.KeyEvent) {
	t.Helper()
	for _, event := range events {
		if _, _, err := ed.Handle(event); err != nil {
			t.Fatalf("Handle(%v) -> error %v", event, err)
		}
	}
}

func typeString(t *testing.T, ed *Editor, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		feed(t, ed, term.Char(s[i]))
	}
}

func checkText(t *testing.T, ed *Editor, want string) {
	t.Helper()
	got, err := ed.Text()
	if err != nil {
		t.Fatalf("Text() -> error %v", err)
	}
	if got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestDeleteBackward_EmptyBuffer(t *testing.T) {
	ed, out := setup("")
	feed(t, ed, term.K(term.DeleteBackward))
	if out.Len() != 0 {
		t.Errorf("wrote %q, want nothing", out.String())
	}
	if ed.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", ed.Cursor())
	}
	checkText(t, ed, "")
}

func TestDeleteForward_AtEnd(t *testing.T) {
	ed, out := setup("")
	typeString(t, ed, "ab")
	out.Reset()
	feed(t, ed, term.K(term.DeleteForward))
	if out.Len() != 0 {
		t.Errorf("wrote %q, want nothing", out.String())
	}
	checkText(t, ed, "ab")
}

func TestInsert_Repaint(t *testing.T) {
	ed, out := setup("")
	feed(t, ed, term.Char('a'))
	if want := repaint("a", 4); out.String() != want {
		t.Errorf("wrote %q, want %q", out.String(), want)
	}
	if ed.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", ed.Cursor())
	}
}

func TestInsert_InTheMiddle(t *testing.T) {
	ed, out := setup("")
	typeString(t, ed, "ac")
	feed(t, ed, term.K(term.MoveLeft))
	out.Reset()
	feed(t, ed, term.Char('b'))
	checkText(t, ed, "abc")
	if ed.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", ed.Cursor())
	}
	if want := repaint("abc", 5); out.String() != want {
		t.Errorf("wrote %q, want %q", out.String(), want)
	}
}

func TestMoveLeft_AtStart(t *testing.T) {
	ed, out := setup("")
	typeString(t, ed, "x")
	feed(t, ed, term.K(term.MoveLeft))
	out.Reset()
	feed(t, ed, term.K(term.MoveLeft))
	if out.Len() != 0 || ed.Cursor() != 0 {
		t.Errorf("MoveLeft at start wrote %q, cursor %d", out.String(), ed.Cursor())
	}
}

func TestMoveRight_AtEnd(t *testing.T) {
	ed, out := setup("")
	typeString(t, ed, "xy")
	out.Reset()
	feed(t, ed, term.K(term.MoveRight))
	if out.Len() != 0 || ed.Cursor() != 2 {
		t.Errorf("MoveRight at end wrote %q, cursor %d", out.String(), ed.Cursor())
	}
}

func TestMoveLeftRight_Output(t *testing.T) {
	ed, out := setup("")
	typeString(t, ed, "ab")
	out.Reset()
	feed(t, ed, term.K(term.MoveLeft), term.K(term.MoveLeft), term.K(term.MoveRight))
	if want := term.CursorLeft + term.CursorLeft + term.CursorRight; out.String() != want {
		t.Errorf("wrote %q, want %q", out.String(), want)
	}
	if ed.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", ed.Cursor())
	}
}

func TestMoveHomeEnd(t *testing.T) {
	ed, out := setup("")
	typeString(t, ed, "hello")
	out.Reset()

	feed(t, ed, term.K(term.MoveHome))
	if ed.Cursor() != 0 || out.String() != term.MoveToColumn(3) {
		t.Errorf("MoveHome: cursor %d, wrote %q", ed.Cursor(), out.String())
	}
	out.Reset()
	feed(t, ed, term.K(term.MoveHome))
	if ed.Cursor() != 0 || out.String() != term.MoveToColumn(3) {
		t.Errorf("second MoveHome: cursor %d, wrote %q", ed.Cursor(), out.String())
	}
	out.Reset()
	feed(t, ed, term.K(term.MoveEnd))
	if ed.Cursor() != 5 || out.String() != term.MoveToColumn(8) {
		t.Errorf("MoveEnd: cursor %d, wrote %q", ed.Cursor(), out.String())
	}
	checkText(t, ed, "hello")
}

func TestDeleteBackward_InTheMiddle(t *testing.T) {
	ed, out := setup("")
	typeString(t, ed, "abc")
	feed(t, ed, term.K(term.MoveLeft))
	out.Reset()
	feed(t, ed, term.K(term.DeleteBackward))
	checkText(t, ed, "ac")
	if ed.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", ed.Cursor())
	}
	if want := repaint("ac", 4); out.String() != want {
		t.Errorf("wrote %q, want %q", out.String(), want)
	}
}

func TestDeleteForward(t *testing.T) {
	ed, out := setup("")
	typeString(t, ed, "abc")
	feed(t, ed, term.K(term.MoveHome))
	out.Reset()
	feed(t, ed, term.K(term.DeleteForward))
	checkText(t, ed, "bc")
	if ed.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", ed.Cursor())
	}
	if want := repaint("bc", 3); out.String() != want {
		t.Errorf("wrote %q, want %q", out.String(), want)
	}
}

func TestWideCharacter(t *testing.T) {
	ed, out := setup("")
	// 你 is U+4F60, three bytes and two display cells.
	typeString(t, ed, "你")
	checkText(t, ed, "你")
	if ed.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", ed.Cursor())
	}
	if want := repaint("你", 5); out.String() != want {
		t.Errorf("wrote %q, want %q", out.String(), want)
	}

	out.Reset()
	feed(t, ed, term.K(term.MoveLeft))
	if ed.Cursor() != 0 || out.String() != term.CursorLeft+term.CursorLeft {
		t.Errorf("MoveLeft over wide char: cursor %d, wrote %q", ed.Cursor(), out.String())
	}
	feed(t, ed, term.K(term.MoveRight), term.K(term.DeleteBackward))
	checkText(t, ed, "")
}

func TestIncompleteCharacter(t *testing.T) {
	ed, out := setup("")
	feed(t, ed, term.Char(0xe4), term.Char(0xbd))
	if out.Len() != 0 {
		t.Errorf("partial character wrote %q", out.String())
	}
	checkText(t, ed, "")

	// A non-character event drops the partial bytes.
	feed(t, ed, term.K(term.MoveLeft), term.Char(0xa0))
	checkText(t, ed, "")
	typeString(t, ed, "ok")
	checkText(t, ed, "ok")
}

func TestIncompleteCharacter_FollowedByASCII(t *testing.T) {
	ed, out := setup("")
	feed(t, ed, term.Char(0xe4), term.Char('a'))
	checkText(t, ed, "a")
	if ed.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", ed.Cursor())
	}
	if want := repaint("a", 4); out.String() != want {
		t.Errorf("wrote %q, want %q", out.String(), want)
	}

	// Two leading bytes of a three-byte character, then a new character.
	feed(t, ed, term.Char(0xe4), term.Char(0xbd), term.Char('b'))
	checkText(t, ed, "ab")
}

func TestInvalidByteIsDropped(t *testing.T) {
	ed, out := setup("")
	feed(t, ed, term.Char(0xff))
	if out.Len() != 0 {
		t.Errorf("invalid byte wrote %q", out.String())
	}
	typeString(t, ed, "x")
	checkText(t, ed, "x")
}

func TestCombiningCharacter(t *testing.T) {
	ed, out := setup("")
	// e followed by U+0301 COMBINING ACUTE ACCENT is one cluster of three
	// bytes and one display cell.
	typeString(t, ed, "e\u0301x")
	out.Reset()

	feed(t, ed, term.K(term.MoveLeft), term.K(term.MoveLeft))
	if ed.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", ed.Cursor())
	}
	if want := term.CursorLeft + term.CursorLeft; out.String() != want {
		t.Errorf("wrote %q, want %q", out.String(), want)
	}

	out.Reset()
	feed(t, ed, term.K(term.MoveRight))
	if ed.Cursor() != 3 || out.String() != term.CursorRight {
		t.Errorf("MoveRight over cluster: cursor %d, wrote %q", ed.Cursor(), out.String())
	}

	feed(t, ed, term.K(term.DeleteBackward))
	checkText(t, ed, "x")
	typeString(t, ed, "e\u0301")
	feed(t, ed, term.K(term.MoveHome), term.K(term.DeleteForward))
	checkText(t, ed, "x")
}

func TestNoOpKeys(t *testing.T) {
	ed, out := setup("")
	typeString(t, ed, "ab")
	out.Reset()
	for _, kind := range []term.Kind{term.MoveUp, term.MoveDown, term.Complete, term.Unrecognized} {
		action, _, err := ed.Handle(term.K(kind))
		if action != Continue || err != nil {
			t.Errorf("Handle(%v) -> %v, %v", kind, action, err)
		}
	}
	if out.Len() != 0 {
		t.Errorf("no-op keys wrote %q", out.String())
	}
	checkText(t, ed, "ab")
}

func TestEnter(t *testing.T) {
	ed, out := setup("")
	typeString(t, ed, "ls -l")
	out.Reset()
	action, line, err := ed.Handle(term.K(term.Enter))
	if action != Submit || line != "ls -l" || err != nil {
		t.Errorf("Handle(Enter) -> %v, %q, %v", action, line, err)
	}
	if out.String() != "\n" {
		t.Errorf("wrote %q, want newline", out.String())
	}
	if ed.Cursor() != 0 {
		t.Errorf("Cursor() = %d after Enter", ed.Cursor())
	}
	checkText(t, ed, "")
}

func TestReadCode(t *testing.T) {
	ed, out := setup("echo hi\x1b[D\x1b[D!\nnext\n")
	line, err := ed.ReadCode()
	if line != "echo !hi" || err != nil {
		t.Errorf("ReadCode() -> %q, %v", line, err)
	}
	if !strings.HasPrefix(out.String(), prompt) {
		t.Errorf("output %q does not start with the prompt", out.String())
	}
	line, err = ed.ReadCode()
	if line != "next" || err != nil {
		t.Errorf("second ReadCode() -> %q, %v", line, err)
	}
}

func TestReadCode_Interrupt(t *testing.T) {
	ed, out := setup("abc\x03")
	_, err := ed.ReadCode()
	if err != ErrInterrupted {
		t.Errorf("ReadCode() -> error %v, want ErrInterrupted", err)
	}
	// The cursor is moved off the abandoned line.
	if !strings.HasSuffix(out.String(), term.ShowCursor+"\n") {
		t.Errorf("output %q does not end with a newline", out.String())
	}
}

func TestReadCode_EndOfTransmission(t *testing.T) {
	ed, out := setup("\x04")
	_, err := ed.ReadCode()
	if err != io.EOF {
		t.Errorf("ReadCode() -> error %v, want io.EOF", err)
	}
	if want := prompt + "\n"; out.String() != want {
		t.Errorf("wrote %q, want %q", out.String(), want)
	}
}

func TestReadCode_EndOfInput(t *testing.T) {
	ed, _ := setup("unfinished")
	_, err := ed.ReadCode()
	if err != io.EOF {
		t.Errorf("ReadCode() -> error %v, want io.EOF", err)
	}
}

var errWrite = errors.New("cannot write")

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteErrorPropagates(t *testing.T) {
	ed := newEditor(term.NewReader(strings.NewReader("")), brokenWriter{}, prompt)
	if _, _, err := ed.Handle(term.Char('a')); !errors.Is(err, errWrite) {
		t.Errorf("Handle(Character) -> error %v, want errWrite", err)
	}
	// The buffer is still consistent after a failed repaint.
	checkText(t, ed, "a")
	if _, err := ed.ReadCode(); !errors.Is(err, errWrite) {
		t.Errorf("ReadCode() -> error %v, want errWrite", err)
	}
}

func TestSetPrompt(t *testing.T) {
	ed, out := setup("")
	ed.SetPrompt(DefaultPrompt)
	if ed.Prompt() != DefaultPrompt {
		t.Errorf("Prompt() = %q", ed.Prompt())
	}
	feed(t, ed, term.K(term.MoveHome))
	// The emoji takes two cells, followed by "> ".
	if out.String() != term.MoveToColumn(5) {
		t.Errorf("wrote %q, want %q", out.String(), term.MoveToColumn(5))
	}
}
