// Package bitbuf provides an expandable MSB-first bit buffer and a bounded bit reader.
package bitbuf

import (
	"bytes"
	"io"

	"github.com/dgryski/go-bitstream"
	"github.com/pkg/errors"
)

// ErrInvalidBitString is returned by AppendString for characters other than '0' and '1'.
var ErrInvalidBitString = errors.New("bitbuf: invalid bit string")

// Buffer accumulates bits MSB-first. Completed bytes are kept in memory until
// drained; the trailing partial byte lives in the underlying bit writer.
type Buffer struct {
	out   bytes.Buffer
	bw    *bitstream.BitWriter
	nbits uint64
}

// NewBuffer creates a buffer whose backing storage starts at sizeHint bytes.
func NewBuffer(sizeHint int) *Buffer {
	b := &Buffer{}
	if sizeHint > 0 {
		b.out.Grow(sizeHint)
	}
	b.bw = bitstream.NewWriter(&b.out)
	return b
}

// AppendBits appends the low n bits of v, most significant first.
func (b *Buffer) AppendBits(v uint64, n int) error {
	if n < 0 || n > 64 {
		return errors.Errorf("bitbuf: invalid bit count %d", n)
	}
	if n == 0 {
		return nil
	}
	if err := b.bw.WriteBits(v, n); err != nil {
		return errors.WithStack(err)
	}
	b.nbits += uint64(n)
	return nil
}

// AppendBit appends a single bit.
func (b *Buffer) AppendBit(bit bool) error {
	if err := b.bw.WriteBit(bitstream.Bit(bit)); err != nil {
		return errors.WithStack(err)
	}
	b.nbits++
	return nil
}

// AppendByte appends 8 packed bits.
func (b *Buffer) AppendByte(v byte) error {
	if err := b.bw.WriteByte(v); err != nil {
		return errors.WithStack(err)
	}
	b.nbits += 8
	return nil
}

// AppendString appends a textual bit string such as "0110".
func (b *Buffer) AppendString(s string) error {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			if err := b.AppendBit(false); err != nil {
				return err
			}
		case '1':
			if err := b.AppendBit(true); err != nil {
				return err
			}
		default:
			return errors.Wrapf(ErrInvalidBitString, "character %q at %d", s[i], i)
		}
	}
	return nil
}

// Len reports the number of bits appended so far.
func (b *Buffer) Len() uint64 {
	return b.nbits
}

// Pending reports the number of bits not yet forming a complete byte.
func (b *Buffer) Pending() int {
	return int(b.nbits % 8)
}

// Buffered reports the number of completed bytes waiting to be drained.
func (b *Buffer) Buffered() int {
	return b.out.Len()
}

// Drain returns every completed byte buffered since the previous Drain and the
// number of pending bits that remain. The returned slice is only valid until the
// next call on b.
func (b *Buffer) Drain() ([]byte, int) {
	full := b.out.Bytes()
	b.out.Reset()
	return full, b.Pending()
}

// Flush pads the final partial byte with zero bits and returns all bytes not yet
// drained. The buffer can keep accepting bits afterwards, starting on a byte boundary.
func (b *Buffer) Flush() ([]byte, error) {
	if pad := b.Pending(); pad != 0 {
		if err := b.bw.Flush(bitstream.Zero); err != nil {
			return nil, errors.WithStack(err)
		}
		b.nbits += uint64(8 - pad)
	}
	full, _ := b.Drain()
	return full, nil
}

// Reader yields exactly nbits bits from an underlying byte stream, MSB-first.
type Reader struct {
	br    *bitstream.BitReader
	limit uint64
	read  uint64
}

// NewReader returns a reader that stops after nbits bits.
func NewReader(r io.Reader, nbits uint64) *Reader {
	return &Reader{br: bitstream.NewReader(r), limit: nbits}
}

// ReadBit returns the next bit as 0 or 1. It returns io.EOF once nbits bits have
// been consumed and io.ErrUnexpectedEOF if the stream ends early.
func (r *Reader) ReadBit() (uint8, error) {
	if r.read >= r.limit {
		return 0, io.EOF
	}
	bit, err := r.br.ReadBit()
	if err != nil {
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, errors.WithStack(err)
	}
	r.read++
	if bit {
		return 1, nil
	}
	return 0, nil
}

// Remaining reports how many bits are left before the limit.
func (r *Reader) Remaining() uint64 {
	return r.limit - r.read
}
