package huffpack

import (
	"strings"

	"github.com/pkg/errors"
)

const maxCodeLen = 64

// Code is a prefix code right-aligned in Bits; the first bit to emit is bit Len-1.
type Code struct {
	Bits uint64
	Len  uint8
}

// String renders the code as a bit string, root edge first.
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(int(c.Len))
	for i := int(c.Len) - 1; i >= 0; i-- {
		if c.Bits>>uint(i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// CodeTable maps each present symbol to its code.
type CodeTable struct {
	codes   [alphabetSize]Code
	present [alphabetSize]bool
}

// GenerateCodes assigns every leaf the path from the root to it, 0 for a left
// edge and 1 for a right edge. A lone leaf gets the one-bit code 0.
func GenerateCodes(t *Tree) (*CodeTable, error) {
	ct := &CodeTable{}
	if t.Single() {
		sym := byte(t.nodes[t.root].Symbol)
		ct.codes[sym] = Code{Bits: 0, Len: 1}
		ct.present[sym] = true
		return ct, nil
	}

	for i := 0; i < t.leaves; i++ {
		leaf := t.nodes[i]
		var bits uint64
		var n int
		for child, parent := int32(i), leaf.Parent; parent != noNode; child, parent = parent, t.nodes[parent].Parent {
			if n == maxCodeLen {
				return nil, errors.Wrapf(ErrCodeTooLong, "symbol 0x%02x", leaf.Symbol)
			}
			if t.nodes[parent].Right == child {
				bits |= 1 << uint(n)
			}
			n++
		}
		sym := byte(leaf.Symbol)
		ct.codes[sym] = Code{Bits: bits, Len: uint8(n)}
		ct.present[sym] = true
	}
	return ct, nil
}

// Lookup returns sym's code. ok is false for symbols absent from the tree.
func (ct *CodeTable) Lookup(sym byte) (Code, bool) {
	return ct.codes[sym], ct.present[sym]
}

// BitLength returns the number of bits needed to encode every symbol counted in ft.
func (ct *CodeTable) BitLength(ft *FrequencyTable) uint64 {
	var total uint64
	for i := 0; i < alphabetSize; i++ {
		if ct.present[i] {
			total += ft.counts[i] * uint64(ct.codes[i].Len)
		}
	}
	return total
}
