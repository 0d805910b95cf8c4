package schema

import (
	"encoding/binary"
	"errors"
)

// ErrShortPayload reports a decoder reading past the end of a payload.
var ErrShortPayload = errors.New("schema: payload too short")

// Reader is a sticky-error cursor over one payload byte range.
//
// Reads are fixed-width little-endian. The first overrun latches
// ErrShortPayload and every later read returns zero values; callers check
// Err once after decoding. Trailing unread bytes are not an error.
type Reader struct {
	buf []byte
	off int
	err error
}

func NewReader(payload []byte) *Reader {
	return &Reader{buf: payload}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.err != nil {
		return 0
	}
	return len(r.buf) - r.off
}

// Err returns the first overrun encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf)-r.off < n {
		r.err = ErrShortPayload
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) I8() int8 {
	return int8(r.U8())
}

func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *Reader) I16() int16 {
	return int16(r.U16())
}

func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) I32() int32 {
	return int32(r.U32())
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Text reads one length byte followed by that many ASCII bytes,
// no terminator.
func (r *Reader) Text() string {
	n := int(r.U8())
	return string(r.take(n))
}

// FixedText reads exactly n ASCII bytes with no length prefix.
func (r *Reader) FixedText(n int) string {
	return string(r.take(n))
}

// Rest reads all unread bytes.
func (r *Reader) Rest() []byte {
	return r.Bytes(r.Remaining())
}

// Skip discards n bytes.
func (r *Reader) Skip(n int) {
	r.take(n)
}
