package term

import "strconv"

// Escape sequences written by the line editor.
const (
	HideCursor  = "\x1b[?25l"
	ShowCursor  = "\x1b[?25h"
	ClearLine   = "\x1B[2K\r"
	CursorLeft  = "\x1B[D"
	CursorRight = "\x1B[C"
)

// MoveToColumn returns the sequence that moves the cursor to the given
// column of the current line. Columns start from 1.
func MoveToColumn(col int) string {
	return "\x1b[" + strconv.Itoa(col) + "G"
}
