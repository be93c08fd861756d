// Package must contains functions that panic on errors.
//
// It is meant for tests, and for the rare places where an error is provably
// impossible.
package must

import (
	"os"
	"path/filepath"
)

// OK panics if err is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 panics if err is not nil, and returns v otherwise.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 panics if err is not nil, and returns v1 and v2 otherwise.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// Pipe wraps os.Pipe.
func Pipe() (*os.File, *os.File) { return OK2(os.Pipe()) }

// Chdir wraps os.Chdir.
func Chdir(dir string) { OK(os.Chdir(dir)) }

// ReadFileString reads a whole file as a string.
func ReadFileString(name string) string { return string(OK1(os.ReadFile(name))) }

// WriteFile writes data to a file, creating missing parent directories first.
func WriteFile(name, data string) {
	OK(os.MkdirAll(filepath.Dir(name), 0700))
	OK(os.WriteFile(name, []byte(data), 0600))
}
