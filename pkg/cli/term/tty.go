package term

import (
	"io"
	"os"
)

// TTY is the terminal as seen by the line editor.
type TTY interface {
	// ReadByte blocks until one byte has been read from the terminal. It
	// never reads more than one byte from the underlying file.
	io.ByteReader
	// Write writes to the terminal.
	io.Writer
	// Setup puts the terminal into raw mode. It returns a function that
	// restores the mode the terminal was in.
	Setup() (restore func() error, err error)
}

type aTTY struct {
	in, out *os.File
}

// NewTTY returns a TTY reading from in and writing to out.
func NewTTY(in, out *os.File) TTY {
	return &aTTY{in, out}
}

func (t *aTTY) ReadByte() (byte, error) {
	var b [1]byte
	n, err := t.in.Read(b[:])
	if n == 1 {
		return b[0], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return 0, err
}

func (t *aTTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *aTTY) Setup() (func() error, error) {
	return Setup(t.in, t.out)
}
