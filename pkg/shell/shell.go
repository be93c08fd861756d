// Package shell is the entry point for the terminal interface of shush.
package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/victor23k/shush/pkg/eval"
	"github.com/victor23k/shush/pkg/logutil"
	"github.com/victor23k/shush/pkg/prog"
	"github.com/victor23k/shush/pkg/store"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell program. It runs the code given with -c, a script, or
// an interactive session.
type Program struct{}

func (p *Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.CodeInArg && len(args) == 0 {
		return prog.BadUsage("-c requires an argument")
	}

	paths := MakePaths(fds[2], f)
	cfg, err := LoadConfig(paths.Config)
	if err != nil {
		fmt.Fprintln(fds[2], "Warning:", err)
	}
	if f.DB == "" && cfg.History != "" {
		paths.DB = cfg.History
	}

	session, err := eval.NewSession()
	if err != nil {
		return err
	}
	ev := eval.NewEvaler(session, eval.Ports{In: fds[0], Out: fds[1], Err: fds[2]})

	if len(args) > 0 {
		return prog.Exit(script(ev, fds, args, f.CodeInArg))
	}

	st := openStore(fds[2], paths.DB)
	if st != nil {
		defer st.Close()
	}
	Interact(fds, &InteractConfig{Evaler: ev, Store: st, Prompt: cfg.Prompt})
	return nil
}

// Opens the history database, creating its directory if needed. The shell
// works without history, so failures are only warned about.
func openStore(stderr *os.File, path string) store.DBStore {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		fmt.Fprintln(stderr, "Warning: cannot create directory for history:", err)
		return nil
	}
	st, err := store.NewStore(path)
	if err != nil {
		fmt.Fprintln(stderr, "Warning: cannot open history:", err)
		return nil
	}
	return st
}
