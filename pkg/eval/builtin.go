package eval

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ArityMismatch is returned when a builtin is called with the wrong number of
// arguments.
type ArityMismatch struct {
	What     string
	ValidLow int
	// A negative ValidHigh means there is no upper limit.
	ValidHigh int
	Actual    int
}

func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %v must be %v, but is %v",
			e.What, nValues(e.ValidLow), nValues(e.Actual))
	case e.ValidHigh < 0:
		return fmt.Sprintf("arity mismatch: %v must be %v or more values, but is %v",
			e.What, e.ValidLow, nValues(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %v must be %v to %v values, but is %v",
			e.What, e.ValidLow, e.ValidHigh, nValues(e.Actual))
	}
}

func nValues(n int) string {
	if n == 1 {
		return "1 value"
	}
	return fmt.Sprintf("%d values", n)
}

// ErrNoHome is returned by cd without arguments when no home directory can be
// found.
var ErrNoHome = errors.New("cannot determine home directory")

type builtinFn func(s *Session, args []string) error

var builtins = map[string]builtinFn{
	"cd": cd,
}

// IsBuiltin returns whether name is a builtin command.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Changes the directory of the session. Without arguments it goes to $HOME.
func cd(s *Session, args []string) error {
	var dir string
	switch len(args) {
	case 0:
		var err error
		dir, err = getHome(s)
		if err != nil {
			return err
		}
	case 1:
		dir = args[0]
	default:
		return ArityMismatch{What: "arguments", ValidLow: 0, ValidHigh: 1, Actual: len(args)}
	}

	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.Dir, dir)
	}
	dir = filepath.Clean(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("cd: %s is not a directory", dir)
	}

	s.Setenv("OLDPWD", s.Dir)
	s.Dir = dir
	s.Setenv("PWD", dir)
	logger.Println("changed directory to", dir)
	return nil
}

func getHome(s *Session) (string, error) {
	if home, ok := s.Getenv("HOME"); ok && home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHome, err)
	}
	return home, nil
}
