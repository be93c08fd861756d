// Package sys provides system utilities with the same API across Unix
// systems.
//
// The subpackage eunix provides the Unix-specific terminal attribute handling
// underneath.
package sys

import (
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
)

// IsATTY reports whether the given file is a terminal.
func IsATTY(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

const dumpStackBufSizeInit = 8192

// DumpStack returns the stack traces of all goroutines.
func DumpStack() string {
	buf := make([]byte, dumpStackBufSizeInit)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return string(buf[:n])
		}
		buf = make([]byte, 2*len(buf))
	}
}
