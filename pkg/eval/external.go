package eval

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func (ev *Evaler) runExternal(cmd *Cmd) (bool, error) {
	path, err := ev.lookPath(cmd.Program)
	if err != nil {
		return false, err
	}

	c := exec.Command(path, cmd.Args...)
	c.Args[0] = cmd.Program
	c.Dir = ev.session.Dir
	c.Env = ev.session.Environ()
	c.Stdin, c.Stdout, c.Stderr = ev.ports.In, ev.ports.Out, ev.ports.Err

	if cmd.Output != "" {
		f, err := os.OpenFile(ev.resolve(cmd.Output),
			os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			return false, err
		}
		defer f.Close()
		c.Stdout = f
	}

	err = c.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Printf("%s exited with %v", cmd.Program, exitErr.ProcessState)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Finds the executable for name. Names with a slash are taken relative to the
// session directory; other names are searched in the PATH of the session.
func (ev *Evaler) lookPath(name string) (string, error) {
	if strings.ContainsRune(name, '/') {
		path := ev.resolve(name)
		if err := checkExecutable(path); err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return path, nil
	}

	pathVar, ok := ev.session.Getenv("PATH")
	if !ok {
		return exec.LookPath(name)
	}
	for _, dir := range filepath.SplitList(pathVar) {
		if dir == "" {
			dir = "."
		}
		path := ev.resolve(filepath.Join(dir, name))
		if checkExecutable(path) == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
}

func (ev *Evaler) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(ev.session.Dir, path)
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() || info.Mode()&0111 == 0 {
		return &os.PathError{Op: "exec", Path: path, Err: os.ErrPermission}
	}
	return nil
}
