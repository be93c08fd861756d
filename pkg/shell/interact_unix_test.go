//go:build unix

package shell

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/victor23k/shush/pkg/cli/term"
	"github.com/victor23k/shush/pkg/eval"
	"github.com/victor23k/shush/pkg/must"
	"github.com/victor23k/shush/pkg/prog/progtest"
	"github.com/victor23k/shush/pkg/store"
	"github.com/victor23k/shush/pkg/testutil"
)

const (
	testPrompt  = "@> "
	testTimeout = 5 * time.Second
)

// A bytes.Buffer that can be written to and read from different goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(testTimeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type interactFixture struct {
	pt, tty *os.File
	screen  *syncBuffer
	stdout  *syncBuffer
	done    chan struct{}
}

// Starts Interact on a pty, with the output of commands captured separately
// from what the editor draws.
func startInteract(t *testing.T, cfg *InteractConfig) *interactFixture {
	pt, tty := progtest.SetupInteractive(t)
	f := &interactFixture{pt: pt, tty: tty,
		screen: &syncBuffer{}, stdout: &syncBuffer{}, done: make(chan struct{})}
	go io.Copy(f.screen, pt)

	r, w := must.Pipe()
	go io.Copy(f.stdout, r)
	t.Cleanup(func() { r.Close() })

	dir := testutil.TempDir(t)
	session := &eval.Session{Dir: dir, Env: map[string]string{"PATH": os.Getenv("PATH"), "HOME": dir}}
	cfg.Evaler = eval.NewEvaler(session, eval.Ports{In: tty, Out: w, Err: w})
	cfg.Prompt = testPrompt

	go func() {
		defer close(f.done)
		defer w.Close()
		Interact([3]*os.File{tty, w, tty}, cfg)
	}()
	waitFor(t, "the first prompt", func() bool {
		return strings.Contains(f.screen.String(), testPrompt)
	})
	return f
}

func (f *interactFixture) feed(t *testing.T, s string) {
	t.Helper()
	must.OK1(f.pt.WriteString(s))
}

// Waits for the prompt of a new line, which is written after a command has
// finished and the terminal is back in raw mode.
func (f *interactFixture) waitForNextPrompt(t *testing.T, n int) {
	t.Helper()
	waitFor(t, "a new prompt", func() bool {
		return strings.Count(f.screen.String(), "\n"+testPrompt) >= n
	})
}

func (f *interactFixture) waitForExit(t *testing.T) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(testTimeout):
		t.Fatalf("timed out waiting for Interact to return")
	}
}

func (f *interactFixture) checkModeRestored(t *testing.T) {
	t.Helper()
	mode, err := term.GetMode(f.tty)
	if err != nil {
		t.Fatalf("GetMode -> %v", err)
	}
	if mode.IsRaw() {
		t.Errorf("terminal is still in raw mode after Interact returned")
	}
}

func TestInteract_Terminal(t *testing.T) {
	st, cleanup := store.MustGetTempStore()
	defer cleanup()
	f := startInteract(t, &InteractConfig{Store: st})

	mode, err := term.GetMode(f.tty)
	if err != nil || !mode.IsRaw() {
		t.Errorf("terminal is not in raw mode during the session: %v", err)
	}

	// Type "echo hx", fix the typo, and run it.
	f.feed(t, "echo hx\x7fi\r")
	waitFor(t, "command output", func() bool { return f.stdout.String() == "hi\n" })
	f.waitForNextPrompt(t, 1)

	f.feed(t, "ehco\x1b[D\x1b[D\x1b[Dc\x1b[C\x1b[3~\x1b[F two\r")
	waitFor(t, "command output", func() bool { return f.stdout.String() == "hi\ntwo\n" })
	f.waitForNextPrompt(t, 2)

	f.feed(t, "exit\r")
	f.waitForExit(t)
	f.checkModeRestored(t)

	cmds := must.OK1(st.CmdsWithSeq(0, 100))
	if len(cmds) != 2 || cmds[0].Text != "echo hi" || cmds[1].Text != "echo two" {
		t.Errorf("history is %+v", cmds)
	}
}

func TestInteract_TerminalInterrupt(t *testing.T) {
	f := startInteract(t, &InteractConfig{})
	f.feed(t, "half a line\x03")
	f.waitForExit(t)
	f.checkModeRestored(t)
	if f.stdout.String() != "" {
		t.Errorf("interrupted line ran: %q", f.stdout.String())
	}
}

func TestInteract_TerminalEndOfTransmission(t *testing.T) {
	f := startInteract(t, &InteractConfig{})
	f.feed(t, "\x04")
	f.waitForExit(t)
	f.checkModeRestored(t)
}
