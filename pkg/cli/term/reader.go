package term

import (
	"errors"
	"io"

	"github.com/victor23k/shush/pkg/logutil"
)

var logger = logutil.GetLogger("[term] ")

// Control bytes with a meaning in the idle state.
const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	ctrlJ     = 0x0a // newline
	ctrlK     = 0x0b // vertical tab
	esc       = 0x1b
	del       = 0x7f
	firstText = 0x20
)

// ReadError wraps an error from the underlying input other than io.EOF.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "cannot read terminal: " + e.Err.Error() }

func (e *ReadError) Unwrap() error { return e.Err }

// Reader decodes terminal input into KeyEvents.
//
// Each call to ReadKey reads exactly the bytes of one event from the
// underlying io.ByteReader, which is expected to block and not to buffer:
// nothing is read ahead and nothing is pushed back. A malformed escape
// sequence is decoded byte for byte and results in an Unrecognized event.
type Reader struct {
	in io.ByteReader
}

// NewReader returns a Reader reading from in.
func NewReader(in io.ByteReader) *Reader {
	return &Reader{in}
}

type decodeState int

const (
	idle decodeState = iota
	escapeSeen
	csiStarted
	csiParam
)

// CSI sequences identified by their final byte, as in \e[D.
var csiSeqByFinal = map[byte]Kind{
	'A': MoveUp, 'B': MoveDown, 'C': MoveRight, 'D': MoveLeft,
	'H': MoveHome, 'F': MoveEnd,
}

// CSI sequences with one single-digit parameter ending in '~', as in \e[1~.
// 1 and 4 are sent by tmux and the Linux console, 7 and 8 by urxvt.
var csiSeqTilde = map[byte]Kind{
	'1': MoveHome, '7': MoveHome,
	'4': MoveEnd, '8': MoveEnd,
	'3': DeleteForward,
}

// ReadKey blocks until a whole event has been read and decodes it.
//
// It returns io.EOF when the input is exhausted, and a *ReadError for other
// read errors.
func (r *Reader) ReadKey() (KeyEvent, error) {
	var seq []byte
	var param byte
	state := idle
	for {
		b, err := r.in.ReadByte()
		if err != nil {
			if len(seq) > 0 {
				logger.Printf("read error after %q: %v", seq, err)
			}
			return KeyEvent{}, wrapReadError(err)
		}
		seq = append(seq, b)

		switch state {
		case idle:
			if b == esc {
				state = escapeSeen
				continue
			}
			return decodeIdle(b), nil
		case escapeSeen:
			if b != '[' {
				return unrecognized(seq), nil
			}
			state = csiStarted
		case csiStarted:
			if '0' <= b && b <= '9' {
				param = b
				state = csiParam
				continue
			}
			if kind, ok := csiSeqByFinal[b]; ok {
				return K(kind), nil
			}
			return unrecognized(seq), nil
		case csiParam:
			if b == '~' {
				if kind, ok := csiSeqTilde[param]; ok {
					return K(kind), nil
				}
			}
			return unrecognized(seq), nil
		}
	}
}

func decodeIdle(b byte) KeyEvent {
	switch b {
	case ctrlC:
		return K(Interrupt)
	case ctrlD:
		return K(EndOfTransmission)
	case ctrlJ:
		return K(Enter)
	case ctrlK:
		return K(Complete)
	case del:
		return K(DeleteBackward)
	}
	if b >= firstText {
		return Char(b)
	}
	return unrecognized([]byte{b})
}

func unrecognized(seq []byte) KeyEvent {
	logger.Printf("unrecognized input %q", seq)
	return K(Unrecognized)
}

func wrapReadError(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return &ReadError{err}
}
