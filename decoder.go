package huffpack

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/seiflotfy/huffpack/bitbuf"
)

// DecodeFrom reads one compressed file from r and returns the original bytes.
// Exactly Header.BitLength bits are interpreted; padding bits are ignored and
// any byte after the payload is an error.
func (c *Codec) DecodeFrom(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	h, m, err := c.readPreamble(br)
	if err != nil {
		return nil, err
	}
	out, err := decodePayload(br, h, m)
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadByte(); err == nil {
		return nil, errors.Wrapf(ErrCorruptStream, "trailing bytes after %d-byte payload", h.PayloadSize())
	} else if err != io.EOF {
		return nil, errors.Wrap(err, "read payload")
	}
	return out, nil
}

// readPreamble reads the header and frequency table and rebuilds the model.
func (c *Codec) readPreamble(r io.Reader) (Header, *Model, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return Header{}, nil, err
	}
	ft, err := readFrequencyTable(r, h)
	if err != nil {
		return Header{}, nil, err
	}
	m, err := c.model(ft)
	if err != nil {
		return Header{}, nil, err
	}
	if bitLen := m.BitLength(); bitLen != uint64(h.BitLength) {
		return Header{}, nil, errors.Wrapf(ErrMalformedHeader, "bit length %d does not match frequency table (%d)", h.BitLength, bitLen)
	}
	return h, m, nil
}

// maxPrealloc bounds the output buffer reserved from the header's symbol count.
const maxPrealloc = 1 << 20

func decodePayload(r io.Reader, h Header, m *Model) ([]byte, error) {
	tree := m.Tree()
	root := tree.Root()
	total := int(h.TotalSymbols)
	// The header is untrusted until the payload backs it up.
	out := make([]byte, 0, min(total, maxPrealloc))
	bits := bitbuf.NewReader(r, uint64(h.BitLength))

	if tree.Single() {
		sym := byte(tree.Node(root).Symbol)
		for bits.Remaining() > 0 {
			if _, err := bits.ReadBit(); err != nil {
				return nil, payloadError(err, len(out))
			}
			out = append(out, sym)
		}
		return out, nil
	}

	cur := root
	for bits.Remaining() > 0 {
		bit, err := bits.ReadBit()
		if err != nil {
			return nil, payloadError(err, len(out))
		}
		cur = tree.step(cur, bit)
		if n := tree.Node(cur); n.IsLeaf() {
			if len(out) == total {
				return nil, errors.Wrapf(ErrCorruptStream, "more than %d symbols in payload", total)
			}
			out = append(out, byte(n.Symbol))
			cur = root
		}
	}
	if cur != root {
		return nil, errors.Wrap(ErrCorruptStream, "payload ends inside a code")
	}
	if len(out) != total {
		return nil, errors.Wrapf(ErrCorruptStream, "decoded %d symbols, header says %d", len(out), total)
	}
	return out, nil
}

func payloadError(err error, decoded int) error {
	if err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrCorruptStream, "payload truncated after %d symbols", decoded)
	}
	return errors.Wrap(err, "read payload")
}
