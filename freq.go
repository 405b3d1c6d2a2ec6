package huffpack

import (
	"math"

	"github.com/pkg/errors"
)

const (
	alphabetSize = 256            // alphabetSize is the number of distinct byte values.
	maxTotal     = math.MaxUint32 // maxTotal is the largest total count the header can carry.
)

// FrequencyTable maps every byte value to its occurrence count.
type FrequencyTable struct {
	counts [alphabetSize]uint64
	order  []byte
	total  uint64
}

// NewFrequencyTable returns an empty table, to be filled with Add.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{}
}

// Analyze counts every byte of data in a single pass.
func Analyze(data []byte) (*FrequencyTable, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if uint64(len(data)) > maxTotal {
		return nil, errors.Wrapf(ErrInputTooLarge, "%d bytes", len(data))
	}

	ft := &FrequencyTable{total: uint64(len(data))}
	for _, b := range data {
		if ft.counts[b] == 0 {
			ft.order = append(ft.order, b)
		}
		ft.counts[b]++
	}
	return ft, nil
}

// Add records count occurrences of sym. Each symbol may be added once.
func (ft *FrequencyTable) Add(sym byte, count uint64) error {
	if count == 0 {
		return errors.Errorf("zero count for symbol 0x%02x", sym)
	}
	if ft.counts[sym] != 0 {
		return errors.Errorf("duplicate symbol 0x%02x", sym)
	}
	ft.counts[sym] = count
	ft.order = append(ft.order, sym)
	ft.total += count
	return nil
}

// Count returns the occurrence count of sym.
func (ft *FrequencyTable) Count(sym byte) uint64 {
	return ft.counts[sym]
}

// Total returns the sum of all counts.
func (ft *FrequencyTable) Total() uint64 {
	return ft.total
}

// Unique returns the number of symbols with a non-zero count.
func (ft *FrequencyTable) Unique() int {
	return len(ft.order)
}

// Symbols returns the present symbols in ascending order.
func (ft *FrequencyTable) Symbols() []byte {
	syms := make([]byte, 0, len(ft.order))
	for i := 0; i < alphabetSize; i++ {
		if ft.counts[i] != 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}

// Order returns the present symbols in first-occurrence order (table order when
// the table was read from a header).
func (ft *FrequencyTable) Order() []byte {
	return append([]byte(nil), ft.order...)
}

// Equal reports whether both tables hold the same counts.
func (ft *FrequencyTable) Equal(other *FrequencyTable) bool {
	return other != nil && ft.counts == other.counts
}
