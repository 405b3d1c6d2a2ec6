package huffpack

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestInspectAbracadabra(t *testing.T) {
	out, err := Encode([]byte("abracadabra"))
	if err != nil {
		t.Fatal(err)
	}
	rep, err := defaultCodec.Inspect(out)
	if err != nil {
		t.Fatal(err)
	}
	if rep.PayloadSize != 3 {
		t.Errorf("expected 3 payload bytes, got %d", rep.PayloadSize)
	}

	var buf bytes.Buffer
	if err := rep.Print(&buf, 0); err != nil {
		t.Fatal(err)
	}
	dump := buf.String()
	for _, want := range []string{
		"----HEADER INFORMATION----",
		"Total Symbols:  11",
		"Unique Symbols: 5",
		"Bit Length:     23",
		"Encoded Size:   38",
		"----FREQUENCY ANALYSIS----",
		"['a':5]",
		"----HUFFMAN TREE----",
		"(_      -  11)",
		"Tree contains 9 nodes, depth 3.",
		"----SYMBOL CODES----",
		"'c'      100",
		"'r'      111",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump is missing %q:\n%s", want, dump)
		}
	}
}

func TestInspectColumns(t *testing.T) {
	out, err := Encode([]byte("abracadabra"))
	if err != nil {
		t.Fatal(err)
	}
	rep, err := defaultCodec.Inspect(out)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := rep.Print(&buf, 1); err != nil {
		t.Fatal(err)
	}
	// One node per row: nine rows between the tree banner note and the summary.
	dump := buf.String()
	start := strings.Index(dump, "internal.\n") + len("internal.\n")
	end := strings.Index(dump, "Tree contains")
	if rows := strings.Count(dump[start:end], "\n"); rows != 9 {
		t.Fatalf("expected 9 tree rows, got %d:\n%s", rows, dump[start:end])
	}
}

func TestInspectNonPrintable(t *testing.T) {
	out, err := Encode([]byte{0, 0, '\n'})
	if err != nil {
		t.Fatal(err)
	}
	rep, err := defaultCodec.Inspect(out)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := rep.Print(&buf, 0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `['\x00':2]`) || !strings.Contains(buf.String(), `['\n':1]`) {
		t.Fatalf("expected escaped symbols:\n%s", buf.String())
	}
}

func TestInspectRejects(t *testing.T) {
	out, err := Encode([]byte("abracadabra"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := defaultCodec.Inspect(out[:HeaderSize]); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
	if _, err := defaultCodec.Inspect(out[:len(out)-1]); !errors.Is(err, ErrCorruptStream) {
		t.Errorf("expected ErrCorruptStream, got %v", err)
	}
	if _, err := defaultCodec.Inspect(append(out, 0)); !errors.Is(err, ErrCorruptStream) {
		t.Errorf("expected ErrCorruptStream, got %v", err)
	}
}
