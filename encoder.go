package huffpack

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/seiflotfy/huffpack/bitbuf"
)

// Encode compresses src into a self-describing buffer. Empty input returns
// ErrEmptyInput.
func (c *Codec) Encode(src []byte) ([]byte, error) {
	m, h, err := c.prepare(src)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.Grow(int(h.EncodedSize()))
	if _, err := c.encode(&out, src, m, h); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// EncodeTo compresses src and writes the result to w, draining packed bytes every
// ChunkSize bytes.
func (c *Codec) EncodeTo(w io.Writer, src []byte) (int64, error) {
	m, h, err := c.prepare(src)
	if err != nil {
		return 0, err
	}
	return c.encode(w, src, m, h)
}

func (c *Codec) prepare(src []byte) (*Model, Header, error) {
	ft, err := Analyze(src)
	if err != nil {
		return nil, Header{}, err
	}
	m, err := c.model(ft)
	if err != nil {
		return nil, Header{}, err
	}
	h, err := newHeader(m)
	if err != nil {
		return nil, Header{}, err
	}
	return m, h, nil
}

func (c *Codec) encode(w io.Writer, src []byte, m *Model, h Header) (int64, error) {
	var total int64
	n, err := h.WriteTo(w)
	total += n
	if err != nil {
		return total, errors.Wrap(err, "write header")
	}
	n, err = writeFrequencyTable(w, m.Frequencies())
	total += n
	if err != nil {
		return total, errors.Wrap(err, "write frequency table")
	}

	chunk := c.config.ChunkSize
	if chunk < 1 {
		chunk = defaultChunkSize
	}
	hint := int(h.PayloadSize())
	if hint > chunk {
		hint = chunk + 8
	}
	buf := bitbuf.NewBuffer(hint)
	codes := m.Codes()

	for i, b := range src {
		code, ok := codes.Lookup(b)
		if !ok {
			return total, errors.Errorf("no code for symbol 0x%02x at offset %d", b, i)
		}
		if err := buf.AppendBits(code.Bits, int(code.Len)); err != nil {
			return total, err
		}
		if buf.Buffered() >= chunk {
			full, _ := buf.Drain()
			n, err := writeBytes(w, full)
			total += n
			if err != nil {
				return total, errors.Wrap(err, "write payload")
			}
		}
	}

	if buf.Len() != uint64(h.BitLength) {
		return total, errors.Errorf("packed %d bits, header says %d", buf.Len(), h.BitLength)
	}
	tail, err := buf.Flush()
	if err != nil {
		return total, err
	}
	n, err = writeBytes(w, tail)
	total += n
	if err != nil {
		return total, errors.Wrap(err, "write payload")
	}
	return total, nil
}
