package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/victor23k/shush/pkg/cli/term"
	"github.com/victor23k/shush/pkg/edit"
	"github.com/victor23k/shush/pkg/errutil"
	"github.com/victor23k/shush/pkg/eval"
	"github.com/victor23k/shush/pkg/store/storedefs"
	"github.com/victor23k/shush/pkg/sys"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Evaler *eval.Evaler
	// Store receives every command run. It may be nil.
	Store storedefs.Store
	// Prompt defaults to edit.DefaultPrompt when empty.
	Prompt string
}

// Lines that end the session.
var quitWords = map[string]bool{"exit": true, "shush": true}

// Interactive mode panic handler.
func handlePanic(stderr io.Writer) {
	r := recover()
	if r != nil {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, sys.DumpStack())
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, r)
	}
}

// Interact runs an interactive shell session. When stdin is a terminal, it is
// kept in raw mode while lines are edited, and put back into its previous mode
// while commands run and when the session ends, however it ends.
func Interact(fds [3]*os.File, cfg *InteractConfig) {
	defer handlePanic(fds[2])

	prompt := cfg.Prompt
	if prompt == "" {
		prompt = edit.DefaultPrompt
	}

	var ed editor
	raw := &rawMode{}
	defer func() {
		if err := raw.release(); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}()

	if sys.IsATTY(fds[0]) {
		tty := term.NewTTY(fds[0], fds[2])
		raw.tty = tty
		if err := raw.acquire(); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "Falling back to basic line editor")
			raw.tty = nil
			ed = newMinEditor(fds[0], fds[2], prompt)
		} else {
			ed = edit.NewEditor(tty, prompt)
		}
	} else {
		ed = newMinEditor(fds[0], fds[2], prompt)
	}

	for {
		line, err := ed.ReadCode()

		if err == io.EOF || errors.Is(err, edit.ErrInterrupted) {
			break
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isMinEditor := ed.(*minEditor); isMinEditor {
				break
			}
			fmt.Fprintln(fds[2], "Falling back to basic line editor")
			if err := raw.release(); err != nil {
				fmt.Fprintln(fds[2], "Warning:", err)
			}
			raw.tty = nil
			ed = newMinEditor(fds[0], fds[2], prompt)
			continue
		}

		code := strings.TrimSpace(line)
		if quitWords[code] {
			break
		}
		if code == "" {
			continue
		}

		ok, err := runInCookedMode(raw, cfg.Evaler, line)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
		addHistory(cfg.Store, line, ok)
	}
}

// Runs a line with the terminal in the mode programs expect, and puts it back
// into raw mode afterwards.
func runInCookedMode(raw *rawMode, ev *eval.Evaler, line string) (bool, error) {
	errRelease := raw.release()
	ok := ev.ParseAndExecute(line)
	return ok, errutil.Multi(errRelease, raw.acquire())
}

func addHistory(st storedefs.Store, line string, ok bool) {
	if st == nil {
		return
	}
	_, err := st.AddCmd(storedefs.Cmd{
		Text: line, Timestamp: time.Now().UnixMilli(), Success: ok})
	if err != nil {
		logger.Println("cannot add command to history:", err)
	}
}

// Tracks whether the terminal is in raw mode, and how to leave it. With a nil
// tty, both operations do nothing.
type rawMode struct {
	tty     term.TTY
	restore func() error
}

func (m *rawMode) acquire() error {
	if m.tty == nil || m.restore != nil {
		return nil
	}
	restore, err := m.tty.Setup()
	if err != nil {
		return err
	}
	m.restore = restore
	return nil
}

func (m *rawMode) release() error {
	if m.restore == nil {
		return nil
	}
	err := m.restore()
	m.restore = nil
	return err
}
