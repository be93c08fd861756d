// Package eval parses and runs shush command lines.
//
// A command line is a program name followed by arguments, optionally followed
// by "> file" to append the output of the program to a file. Arguments of the
// form $NAME are replaced by the value of the environment variable NAME.
// Programs are either builtins, which act on the Session, or external
// programs, which run in the directory and environment of the Session.
package eval

import (
	"fmt"
	"io"

	"github.com/victor23k/shush/pkg/logutil"
)

var logger = logutil.GetLogger("[eval] ")

// Ports are the standard streams given to commands.
type Ports struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Evaler runs command lines in a Session.
type Evaler struct {
	session *Session
	ports   Ports
}

// NewEvaler creates an Evaler.
func NewEvaler(s *Session, ports Ports) *Evaler {
	return &Evaler{session: s, ports: ports}
}

// Session returns the Session that commands run in.
func (ev *Evaler) Session() *Session { return ev.session }

// Execute parses and runs a command line. It returns whether the command
// succeeded, along with an error if the command could not be parsed or
// started, or if a builtin failed. An external program exiting with a
// non-zero status is unsuccessful but not an error. A blank line succeeds
// without running anything.
func (ev *Evaler) Execute(text string) (bool, error) {
	cmd, err := Parse(Lex(text), ev.session.Getenv)
	if err != nil {
		return false, err
	}
	if cmd == nil {
		return true, nil
	}
	logger.Printf("executing %q", cmd.String())

	if fn, ok := builtins[cmd.Program]; ok {
		if err := fn(ev.session, cmd.Args); err != nil {
			return false, err
		}
		return true, nil
	}
	return ev.runExternal(cmd)
}

// ParseAndExecute is like Execute, but writes any error to the error port and
// only returns whether the command succeeded.
func (ev *Evaler) ParseAndExecute(text string) bool {
	ok, err := ev.Execute(text)
	if err != nil {
		fmt.Fprintf(ev.ports.Err, "shush: %v\n", err)
	}
	return ok
}
