//go:build unix

package progtest

import (
	"os"
	"testing"

	"github.com/creack/pty"
)

// SetupInteractive opens a pseudo terminal for testing a program that reads
// from a terminal. The program is given tty; the test writes keys to and reads
// the screen from pty. Both are closed when the test finishes.
func SetupInteractive(t testing.TB) (pt, tty *os.File) {
	t.Helper()
	pt, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	t.Cleanup(func() {
		pt.Close()
		tty.Close()
	})
	return pt, tty
}
