package term

import "fmt"

// Kind identifies a logical editing event.
type Kind int

// Possible values for Kind.
const (
	// Unrecognized is the kind of input the editor does not act upon, such as
	// an unsupported escape sequence.
	Unrecognized Kind = iota
	// Character carries the raw byte of a printable key.
	Character
	MoveLeft
	MoveRight
	// MoveUp and MoveDown are decoded but have no bound action.
	MoveUp
	MoveDown
	MoveHome
	MoveEnd
	DeleteBackward
	DeleteForward
	Enter
	// Complete is the vertical tab byte, reserved for completion.
	Complete
	Interrupt
	EndOfTransmission
)

var kindNames = [...]string{
	Unrecognized:      "Unrecognized",
	Character:         "Character",
	MoveLeft:          "MoveLeft",
	MoveRight:         "MoveRight",
	MoveUp:            "MoveUp",
	MoveDown:          "MoveDown",
	MoveHome:          "MoveHome",
	MoveEnd:           "MoveEnd",
	DeleteBackward:    "DeleteBackward",
	DeleteForward:     "DeleteForward",
	Enter:             "Enter",
	Complete:          "Complete",
	Interrupt:         "Interrupt",
	EndOfTransmission: "EndOfTransmission",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KeyEvent is a logical editing event decoded from terminal input. Bytes is
// only set for Character events.
type KeyEvent struct {
	Kind  Kind
	Bytes []byte
}

// K returns a KeyEvent of the given kind without bytes.
func K(kind Kind) KeyEvent { return KeyEvent{Kind: kind} }

// Char returns a Character event carrying the given bytes.
func Char(bs ...byte) KeyEvent { return KeyEvent{Character, bs} }

func (e KeyEvent) String() string {
	if e.Kind == Character {
		return fmt.Sprintf("Character(%q)", e.Bytes)
	}
	return e.Kind.String()
}
