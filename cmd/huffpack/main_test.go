package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	packed := filepath.Join(dir, "in.huf")
	out := filepath.Join(dir, "out.txt")
	data := []byte(strings.Repeat("abracadabra ", 100))
	if err := os.WriteFile(in, data, 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "encode", in, packed)
	if code != exitOK {
		t.Fatalf("encode exited %d: %s", code, stderr)
	}
	if !strings.Contains(stderr, "[encode]") {
		t.Errorf("expected an encode summary, got %q", stderr)
	}

	code, _, stderr = runCLI(t, "decode", packed, out)
	if code != exitOK {
		t.Fatalf("decode exited %d: %s", code, stderr)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("decoded file differs from original")
	}

	code, stdout, stderr := runCLI(t, "inspect", packed)
	if code != exitOK {
		t.Fatalf("inspect exited %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "----HUFFMAN TREE----") {
		t.Errorf("expected a tree dump, got %q", stdout)
	}
}

func TestRunUsage(t *testing.T) {
	cases := [][]string{
		nil,
		{"compress", "a", "b"},
		{"encode", "a"},
		{"decode", "a", "b", "c"},
		{"inspect"},
	}
	for _, args := range cases {
		if code, _, stderr := runCLI(t, args...); code != exitUsage {
			t.Errorf("%q: expected exit %d, got %d (%s)", args, exitUsage, code, stderr)
		} else if !strings.Contains(stderr, "usage:") {
			t.Errorf("%q: expected usage text, got %q", args, stderr)
		}
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	text := filepath.Join(dir, "text")
	bad := filepath.Join(dir, "bad.huf")
	out := filepath.Join(dir, "out")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(text, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"empty encode", []string{"encode", empty, out}, exitNothing, "nothing to do"},
		{"empty inspect", []string{"inspect", empty}, exitNothing, "nothing to do"},
		{"same file", []string{"encode", text, text}, exitFailure, "same as output"},
		{"missing input", []string{"decode", filepath.Join(dir, "nope"), out}, exitFailure, "i/o failure"},
		{"malformed", []string{"decode", bad, out}, exitFailure, "not a valid compressed file"},
		{"inspect malformed", []string{"inspect", bad}, exitFailure, "not a valid compressed file"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, c.args...)
			if code != c.code {
				t.Fatalf("expected exit %d, got %d (%s)", c.code, code, stderr)
			}
			if !strings.Contains(stderr, c.msg) {
				t.Errorf("expected %q in %q", c.msg, stderr)
			}
		})
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("no failing command may create the output, stat returned %v", err)
	}
}

func TestColumnsNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	if got := columns(&buf); got != 5 {
		t.Fatalf("expected default columns, got %d", got)
	}
}
