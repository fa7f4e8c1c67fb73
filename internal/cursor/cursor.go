// Package cursor provides a bounds-checked little-endian reader over an
// immutable byte buffer. Reads never touch memory outside the buffer; a
// read that would run past the end returns ErrUnderrun and leaves the
// position unchanged, so callers decide per site whether that is fatal.
package cursor

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrUnderrun indicates a read would exceed the remaining buffer.
var ErrUnderrun = errors.New("buffer underrun")

// UnderrunError wraps ErrUnderrun with position details.
type UnderrunError struct {
	Pos  int
	Want int
	Have int
}

func (e *UnderrunError) Error() string {
	return fmt.Sprintf("buffer underrun at %d: want %d bytes, have %d", e.Pos, e.Want, e.Have)
}

func (e *UnderrunError) Unwrap() error {
	return ErrUnderrun
}

// Cursor walks a byte buffer. The buffer itself is never modified.
type Cursor struct {
	buf []byte
	pos int
}

// New creates a cursor positioned at the start of buf.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// CanRead reports whether n more bytes are available.
func (c *Cursor) CanRead(n int) bool {
	return n >= 0 && c.pos+n <= len(c.buf)
}

func (c *Cursor) underrun(n int) error {
	return &UnderrunError{Pos: c.pos, Want: n, Have: c.Remaining()}
}

// PeekU8 returns the next byte without advancing. It returns 0xFF when no
// byte remains, which is never a valid slot id.
func (c *Cursor) PeekU8() uint8 {
	if !c.CanRead(1) {
		return 0xFF
	}
	return c.buf[c.pos]
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8() (uint8, error) {
	if !c.CanRead(1) {
		return 0, c.underrun(1)
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// ReadU16 reads a little-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	if !c.CanRead(2) {
		return 0, c.underrun(2)
	}
	v := uint16(c.buf[c.pos]) | uint16(c.buf[c.pos+1])<<8
	c.pos += 2
	return v, nil
}

// ReadU32 reads a little-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	if !c.CanRead(4) {
		return 0, c.underrun(4)
	}
	v := uint32(c.buf[c.pos]) |
		uint32(c.buf[c.pos+1])<<8 |
		uint32(c.buf[c.pos+2])<<16 |
		uint32(c.buf[c.pos+3])<<24
	c.pos += 4
	return v, nil
}

// ReadBytes reads n bytes. The returned slice is a copy, so it stays valid
// after the caller releases the underlying buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if !c.CanRead(n) {
		return nil, c.underrun(n)
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// ReadFixedString reads an n-byte field, truncates at the first zero byte,
// and strips non-printable bytes. Legacy name fields are padded with zeros
// and occasionally carry control bytes.
func (c *Cursor) ReadFixedString(n int) (string, error) {
	raw, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return CleanString(raw), nil
}

// Seek moves the position to pos, clamped to the buffer bounds.
func (c *Cursor) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(c.buf) {
		pos = len(c.buf)
	}
	c.pos = pos
}

// Skip advances the position by n bytes, clamped to the buffer bounds.
func (c *Cursor) Skip(n int) {
	c.Seek(c.pos + n)
}

// CleanString truncates raw at the first zero byte and drops bytes outside
// the printable ASCII range.
func CleanString(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b >= 0x20 && b < 0x7F {
			out = append(out, b)
		}
	}
	return string(out)
}
