//go:build unix

// Package eunix provides extra Unix-specific system utilities.
package eunix

import "golang.org/x/sys/unix"

// Termios represents terminal attributes.
type Termios unix.Termios

// TermiosForFd returns the attributes of the terminal that fd is open on.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// ApplyToFd applies term to the terminal that fd is open on, immediately.
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrNowIOCTL, (*unix.Termios)(term))
}

// Copy returns a copy of term.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}

// SetVTime sets the timeout in deciseconds for noncanonical read.
func (term *Termios) SetVTime(v uint8) { term.Cc[unix.VTIME] = v }

// SetVMin sets the minimal number of characters for noncanonical read.
func (term *Termios) SetVMin(v uint8) { term.Cc[unix.VMIN] = v }

// SetICanon sets the canonical flag, which enables line buffering.
func (term *Termios) SetICanon(v bool) { setFlag(&term.Lflag, unix.ICANON, v) }

// SetEcho sets the echo flag.
func (term *Termios) SetEcho(v bool) { setFlag(&term.Lflag, unix.ECHO, v) }

// SetISig sets the isig flag. When it is off, keys like Ctrl-C are delivered
// as bytes instead of generating signals.
func (term *Termios) SetISig(v bool) { setFlag(&term.Lflag, unix.ISIG, v) }

// SetIExten sets the iexten flag. When it is off, keys like Ctrl-V are
// delivered as bytes instead of being processed by the terminal driver.
func (term *Termios) SetIExten(v bool) { setFlag(&term.Lflag, unix.IEXTEN, v) }

// SetICRNL sets the icrnl flag, which translates CR to NL on input.
func (term *Termios) SetICRNL(v bool) { setFlag(&term.Iflag, unix.ICRNL, v) }

// ICanon reports whether the canonical flag is set.
func (term *Termios) ICanon() bool { return term.Lflag&unix.ICANON != 0 }

// Echo reports whether the echo flag is set.
func (term *Termios) Echo() bool { return term.Lflag&unix.ECHO != 0 }

// ISig reports whether the isig flag is set.
func (term *Termios) ISig() bool { return term.Lflag&unix.ISIG != 0 }

func setFlag[T uint32 | uint64](flag *T, mask T, v bool) {
	if v {
		*flag |= mask
	} else {
		*flag &^= mask
	}
}
