package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/victor23k/shush/pkg/eval"
)

var errSourceNotUTF8 = errors.New("source is not UTF-8")

// Executes the code given with -c, or a script file, one line at a time.
// Blank lines and lines starting with # are skipped. The exit status is 0 if
// the last command succeeded and 1 if it failed; an error stops the script
// with status 2.
func script(ev *eval.Evaler, fds [3]*os.File, args []string, cmd bool) int {
	arg0 := args[0]
	if len(args) > 1 {
		logger.Printf("ignoring extra arguments %q", args[1:])
	}

	var name, code string
	if cmd {
		name = "code from -c"
		code = arg0
	} else {
		var err error
		name, err = filepath.Abs(arg0)
		if err != nil {
			fmt.Fprintf(fds[2],
				"cannot get full path of script %q: %v\n", arg0, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
	}

	status := 0
	for i, line := range strings.Split(code, "\n") {
		line = chopLineEnding(line)
		if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		ok, err := ev.Execute(line)
		if err != nil {
			fmt.Fprintf(fds[2], "%s, line %d: %v\n", name, i+1, err)
			return 2
		}
		if ok {
			status = 0
		} else {
			status = 1
		}
	}
	return status
}

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}
