// Package gapbuf implements a gap buffer, a byte store optimized for edits
// that cluster around a single point.
//
// The buffer keeps one contiguous unused region, the gap, inside its storage.
// Insertions and deletions happen at the start of the gap and cost O(1)
// amortized; moving the gap costs O(distance moved), so callers that keep a
// cursor should only move the gap right before they edit.
package gapbuf

import (
	"errors"
	"fmt"
	"math/bits"
	"unicode/utf8"
)

// InitSize is the capacity of a newly created Buffer.
const InitSize = 32

// ErrInvalidUTF8 is returned by Text when the content of the buffer is not
// valid UTF-8.
var ErrInvalidUTF8 = errors.New("buffer content is not valid UTF-8")

// Buffer is a gap buffer. The zero value is not usable; use New.
//
// The logical text is data[:gapStart] followed by data[gapEnd:]. All bytes
// outside [gapStart, gapEnd) are text.
type Buffer struct {
	data     []byte
	gapStart int
	gapEnd   int
}

// New returns an empty Buffer with a capacity of InitSize.
func New() *Buffer {
	return &Buffer{data: make([]byte, InitSize), gapStart: 0, gapEnd: InitSize}
}

// Cap returns the size of the underlying storage, gap included.
func (b *Buffer) Cap() int { return len(b.data) }

// TextLen returns the length of the logical text in bytes.
func (b *Buffer) TextLen() int { return len(b.data) - b.gapLen() }

// GapStart returns the index in the storage where the gap starts. It is also
// the logical position at which Insert inserts.
func (b *Buffer) GapStart() int { return b.gapStart }

// GapEnd returns the index in the storage just past the end of the gap.
func (b *Buffer) GapEnd() int { return b.gapEnd }

func (b *Buffer) gapLen() int { return b.gapEnd - b.gapStart }

// Insert inserts bs at the gap, growing the storage first if the gap is too
// small.
func (b *Buffer) Insert(bs []byte) {
	if len(bs) == 0 {
		return
	}
	if b.gapLen() < len(bs) {
		b.grow(bs)
		return
	}
	copy(b.data[b.gapStart:], bs)
	b.gapStart += len(bs)
}

// InsertByte inserts a single byte at the gap.
func (b *Buffer) InsertByte(c byte) {
	if b.gapLen() == 0 {
		b.grow([]byte{c})
		return
	}
	b.data[b.gapStart] = c
	b.gapStart++
}

// DeleteBackward removes the n bytes immediately before the gap. It panics if
// fewer than n bytes precede the gap.
func (b *Buffer) DeleteBackward(n int) {
	if n < 0 || n > b.gapStart {
		panic(fmt.Sprintf("gapbuf: delete %d bytes backward with %d bytes before gap", n, b.gapStart))
	}
	b.gapStart -= n
}

// DeleteForward removes the n bytes immediately after the gap. It panics if
// fewer than n bytes follow the gap.
func (b *Buffer) DeleteForward(n int) {
	if n < 0 || n > len(b.data)-b.gapEnd {
		panic(fmt.Sprintf("gapbuf: delete %d bytes forward with %d bytes after gap", n, len(b.data)-b.gapEnd))
	}
	b.gapEnd += n
}

// MoveGapTo relocates the gap so that it starts at the given logical position.
// Only the text between the old and the new gap edges is copied. It panics if
// pos is outside [0, TextLen()].
func (b *Buffer) MoveGapTo(pos int) {
	if pos < 0 || pos > b.TextLen() {
		panic(fmt.Sprintf("gapbuf: move gap to %d, text length is %d", pos, b.TextLen()))
	}
	switch {
	case pos < b.gapStart:
		// Moving backward: the bytes in [pos, gapStart) end up right before
		// gapEnd.
		n := b.gapStart - pos
		copy(b.data[b.gapEnd-n:b.gapEnd], b.data[pos:b.gapStart])
		b.gapStart -= n
		b.gapEnd -= n
	case pos > b.gapStart:
		// Moving forward: the n bytes after the gap move to where the gap
		// started.
		n := pos - b.gapStart
		copy(b.data[b.gapStart:b.gapStart+n], b.data[b.gapEnd:b.gapEnd+n])
		b.gapStart += n
		b.gapEnd += n
	}
}

// ByteAt returns the byte at the given logical position. It panics if pos is
// outside [0, TextLen()).
func (b *Buffer) ByteAt(pos int) byte {
	if pos < 0 || pos >= b.TextLen() {
		panic(fmt.Sprintf("gapbuf: byte at %d, text length is %d", pos, b.TextLen()))
	}
	if pos < b.gapStart {
		return b.data[pos]
	}
	return b.data[pos+b.gapLen()]
}

// Bytes returns a copy of the logical text.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, b.TextLen())
	out = append(out, b.data[:b.gapStart]...)
	return append(out, b.data[b.gapEnd:]...)
}

// Text returns the logical text as a string. It returns an error wrapping
// ErrInvalidUTF8 if the text is not valid UTF-8.
func (b *Buffer) Text() (string, error) {
	bs := b.Bytes()
	if !utf8.Valid(bs) {
		return "", fmt.Errorf("%w (at byte %d)", ErrInvalidUTF8, firstInvalid(bs))
	}
	return string(bs), nil
}

func firstInvalid(bs []byte) int {
	for i := 0; i < len(bs); {
		r, size := utf8.DecodeRune(bs[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(bs)
}

// Clear empties the buffer without releasing its storage.
func (b *Buffer) Clear() {
	b.gapStart = 0
	b.gapEnd = len(b.data)
}

// Grows the storage so that bs can be inserted, and inserts it. The new gap
// has max(5% of the current capacity, the next power of two of the space
// needed) bytes.
func (b *Buffer) grow(bs []byte) {
	newGap := newGapSize(len(b.data), b.gapLen()+len(bs))
	post := len(b.data) - b.gapEnd

	data := make([]byte, b.gapStart+len(bs)+newGap+post)
	copy(data, b.data[:b.gapStart])
	copy(data[b.gapStart:], bs)
	// data[gapStart+len(bs) : gapStart+len(bs)+newGap] is already zeroed.
	copy(data[b.gapStart+len(bs)+newGap:], b.data[b.gapEnd:])

	b.gapStart += len(bs)
	b.gapEnd = b.gapStart + newGap
	b.data = data
}

func newGapSize(capacity, needed int) int {
	fivePercent := capacity * 5 / 100
	return max(fivePercent, nextPowerOfTwo(needed))
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
