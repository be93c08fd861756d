//go:build unix

package term

import (
	"fmt"
	"os"

	"github.com/victor23k/shush/pkg/sys/eunix"
)

// Mode is a snapshot of the attributes of a terminal.
type Mode struct {
	termios *eunix.Termios
}

// GetMode returns the current mode of the terminal that f is open on.
func GetMode(f *os.File) (Mode, error) {
	termios, err := eunix.TermiosForFd(int(f.Fd()))
	if err != nil {
		return Mode{}, fmt.Errorf("can't get terminal attribute: %w", err)
	}
	return Mode{termios}, nil
}

// SetMode applies a mode previously obtained from GetMode or Raw.
func SetMode(f *os.File, m Mode) error {
	if m.termios == nil {
		return fmt.Errorf("can't set terminal attribute: empty mode")
	}
	err := m.termios.ApplyToFd(int(f.Fd()))
	if err != nil {
		return fmt.Errorf("can't set terminal attribute: %w", err)
	}
	return nil
}

// Raw returns a copy of m suitable for reading keys one byte at a time: no
// line buffering, no echo, no signal keys, and reads that block until one
// byte is available.
func Raw(m Mode) Mode {
	termios := m.termios.Copy()
	termios.SetICanon(false)
	termios.SetEcho(false)
	termios.SetISig(false)
	termios.SetIExten(false)
	termios.SetVMin(1)
	termios.SetVTime(0)
	// Enter sends CR; have the terminal deliver it as NL.
	termios.SetICRNL(true)
	return Mode{termios}
}

// IsRaw reports whether m has line buffering turned off.
func (m Mode) IsRaw() bool {
	return m.termios != nil && !m.termios.ICanon()
}

// Setup puts the terminal that in is open on into raw mode. It returns a
// function that restores the previous mode. The out argument is accepted for
// symmetry with the TTY it serves; all file descriptors open on the same
// terminal share its attributes.
func Setup(in, out *os.File) (func() error, error) {
	saved, err := GetMode(in)
	if err != nil {
		return nil, err
	}
	err = SetMode(in, Raw(saved))
	if err != nil {
		return nil, err
	}
	logger.Println("terminal set to raw mode")
	restore := func() error {
		logger.Println("restoring terminal mode")
		return SetMode(in, saved)
	}
	return restore, nil
}
