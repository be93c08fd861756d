// Shush is a small interactive shell. It edits lines in place on a raw-mode
// terminal, runs programs with their arguments, and keeps a history of the
// commands it ran.
package main

import (
	"os"

	"github.com/victor23k/shush/pkg/prog"
	"github.com/victor23k/shush/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args, &shell.Program{}))
}
