package huffpack

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// DefaultColumns is the number of tree nodes Report.Print puts on one row.
const DefaultColumns = 5

// Report is the decoded structure of a compressed file.
type Report struct {
	Header      Header
	Frequencies *FrequencyTable
	Model       *Model
	PayloadSize int64
}

// Inspect parses the header and frequency table of p and rebuilds its tree
// without decoding the payload.
func (c *Codec) Inspect(p []byte) (*Report, error) {
	r := bytes.NewReader(p)
	h, m, err := c.readPreamble(r)
	if err != nil {
		return nil, err
	}
	payload := int64(r.Len())
	if payload != h.PayloadSize() {
		return nil, errors.Wrapf(ErrCorruptStream, "payload is %d bytes, header implies %d", payload, h.PayloadSize())
	}
	ft, err := readFrequencyTable(bytes.NewReader(p[HeaderSize:]), h)
	if err != nil {
		return nil, err
	}
	return &Report{Header: h, Frequencies: ft, Model: m, PayloadSize: payload}, nil
}

// Print writes the header, the frequency analysis, a breadth-first dump of the
// tree and the code of every symbol. columns bounds the entries per row.
func (r *Report) Print(w io.Writer, columns int) error {
	if columns < 1 {
		columns = DefaultColumns
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "----HEADER INFORMATION----")
	fmt.Fprintf(bw, "Total Symbols:  %d\n", r.Header.TotalSymbols)
	fmt.Fprintf(bw, "Unique Symbols: %d\n", r.Header.UniqueSymbols)
	fmt.Fprintf(bw, "Bit Length:     %d\n", r.Header.BitLength)
	fmt.Fprintf(bw, "Payload Bytes:  %d\n", r.PayloadSize)
	fmt.Fprintf(bw, "Encoded Size:   %d\n", r.Header.EncodedSize())

	fmt.Fprintln(bw, "\n----FREQUENCY ANALYSIS----")
	for i, sym := range r.Frequencies.Order() {
		if i > 0 && i%(2*columns) == 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "[%s:%d]\t", symbolString(int16(sym)), r.Frequencies.Count(sym))
	}
	fmt.Fprintln(bw)

	tree := r.Model.Tree()
	fmt.Fprintln(bw, "\n----HUFFMAN TREE----")
	fmt.Fprintln(bw, "Note: _ nodes are internal.")
	col := 0
	tree.Walk(func(_ int32, n Node) {
		if col == columns {
			fmt.Fprintln(bw)
			col = 0
		}
		fmt.Fprintf(bw, "(%-6s - %3d)\t", symbolString(n.Symbol), n.Weight)
		col++
	})
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Tree contains %d nodes, depth %d.\n", tree.Len(), tree.Depth())

	fmt.Fprintln(bw, "\n----SYMBOL CODES----")
	codes := r.Model.Codes()
	for _, sym := range r.Frequencies.Order() {
		code, _ := codes.Lookup(sym)
		fmt.Fprintf(bw, "%-8s %s\n", symbolString(int16(sym)), code)
	}

	return bw.Flush()
}

func symbolString(sym int16) string {
	if sym == NoSymbol {
		return "_"
	}
	return strconv.QuoteRuneToASCII(rune(sym))
}
