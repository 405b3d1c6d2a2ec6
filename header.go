package huffpack

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

const (
	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 10
	// freqEntrySize is one (symbol, count) pair of the frequency table.
	freqEntrySize = 5
)

// Wire format (all integers little-endian):
//
//	total    = uint32   bytes in the original input
//	unique   = uint16   distinct byte values present
//	bitLen   = uint32   meaningful bits in the packed stream
//	repeat unique times, ascending symbol:
//	  symbol = uint8
//	  count  = uint32
//	payload  = ceil(bitLen/8) bytes, MSB-first, zero-padded tail
//
// There is no magic number; a file is recognised by its header being consistent
// with its frequency table.

// Header is the fixed-width prefix of a compressed file.
type Header struct {
	TotalSymbols  uint32
	UniqueSymbols uint16
	BitLength     uint32
}

// PayloadSize returns the number of packed bytes that follow the frequency table.
func (h Header) PayloadSize() int64 {
	return (int64(h.BitLength) + 7) / 8
}

// TableSize returns the size of the frequency table in bytes.
func (h Header) TableSize() int64 {
	return int64(h.UniqueSymbols) * freqEntrySize
}

// EncodedSize returns the full size of a file carrying this header.
func (h Header) EncodedSize() int64 {
	return HeaderSize + h.TableSize() + h.PayloadSize()
}

func (h Header) validate() error {
	if h.TotalSymbols == 0 {
		return errors.Wrap(ErrMalformedHeader, "total symbol count is zero")
	}
	if h.UniqueSymbols == 0 {
		return errors.Wrap(ErrMalformedHeader, "unique symbol count is zero")
	}
	if h.BitLength == 0 {
		return errors.Wrap(ErrMalformedHeader, "bit length is zero")
	}
	if h.UniqueSymbols > alphabetSize {
		return errors.Wrapf(ErrMalformedHeader, "unique symbol count %d exceeds %d", h.UniqueSymbols, alphabetSize)
	}
	if uint32(h.UniqueSymbols) > h.TotalSymbols {
		return errors.Wrapf(ErrMalformedHeader, "unique symbol count %d exceeds total %d", h.UniqueSymbols, h.TotalSymbols)
	}
	return nil
}

func newHeader(m *Model) (Header, error) {
	ft := m.Frequencies()
	if ft.Total() > maxTotal {
		return Header{}, errors.Wrapf(ErrInputTooLarge, "total symbol count %d", ft.Total())
	}
	bitLen := m.BitLength()
	if bitLen > math.MaxUint32 {
		return Header{}, errors.Wrapf(ErrInputTooLarge, "bit length %d", bitLen)
	}
	return Header{
		TotalSymbols:  uint32(ft.Total()),
		UniqueSymbols: uint16(ft.Unique()),
		BitLength:     uint32(bitLen),
	}, nil
}

// WriteTo writes the fixed header.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], h.TotalSymbols)
	binary.LittleEndian.PutUint16(buf[4:6], h.UniqueSymbols)
	binary.LittleEndian.PutUint32(buf[6:10], h.BitLength)
	return writeBytes(w, buf[:])
}

// ReadHeader reads and validates the fixed header.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, errors.Wrap(ErrMalformedHeader, "truncated header")
		}
		return Header{}, errors.Wrap(err, "read header")
	}
	h := Header{
		TotalSymbols:  binary.LittleEndian.Uint32(buf[0:4]),
		UniqueSymbols: binary.LittleEndian.Uint16(buf[4:6]),
		BitLength:     binary.LittleEndian.Uint32(buf[6:10]),
	}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

func writeFrequencyTable(w io.Writer, ft *FrequencyTable) (int64, error) {
	buf := appendFrequencyTable(make([]byte, 0, ft.Unique()*freqEntrySize), ft)
	return writeBytes(w, buf)
}

// appendFrequencyTable serializes ft exactly as it appears on the wire.
func appendFrequencyTable(dst []byte, ft *FrequencyTable) []byte {
	var count [4]byte
	for _, sym := range ft.Symbols() {
		binary.LittleEndian.PutUint32(count[:], uint32(ft.Count(sym)))
		dst = append(dst, sym)
		dst = append(dst, count[:]...)
	}
	return dst
}

// readFrequencyTable reads h.UniqueSymbols pairs and checks them against h.
func readFrequencyTable(r io.Reader, h Header) (*FrequencyTable, error) {
	raw := make([]byte, h.TableSize())
	if _, err := io.ReadFull(r, raw); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.Wrapf(ErrMalformedHeader, "truncated frequency table at offset %d", HeaderSize)
		}
		return nil, errors.Wrap(err, "read frequency table")
	}

	ft := NewFrequencyTable()
	for i := 0; i < int(h.UniqueSymbols); i++ {
		entry := raw[i*freqEntrySize : (i+1)*freqEntrySize]
		offset := HeaderSize + i*freqEntrySize
		if err := ft.Add(entry[0], uint64(binary.LittleEndian.Uint32(entry[1:]))); err != nil {
			return nil, errors.Wrapf(ErrMalformedHeader, "frequency entry %d at offset %d: %v", i, offset, err)
		}
	}
	if ft.Total() != uint64(h.TotalSymbols) {
		return nil, errors.Wrapf(ErrMalformedHeader, "frequency table sums to %d, header says %d", ft.Total(), h.TotalSymbols)
	}
	return ft, nil
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}
