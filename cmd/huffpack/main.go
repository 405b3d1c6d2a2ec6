// Command huffpack compresses and decompresses single files with Huffman coding.
package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/seiflotfy/huffpack"
)

const usage = `usage:
  huffpack encode <input file> <output file>
  huffpack decode <input file> <output file>
  huffpack inspect <input file>`

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitNothing = 3 // input was empty, nothing to do
)

// ErrUnknownCommand is reported for a verb other than encode, decode or inspect.
var ErrUnknownCommand = errors.New("unknown command")

// inspectCellWidth approximates the width of one tree entry in the inspect dump.
const inspectCellWidth = 20

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "huffpack: ", 0)

	if len(args) == 0 {
		logger.Printf("missing command\n%s", usage)
		return exitUsage
	}

	verb := args[0]
	switch verb {
	case "encode", "decode":
		if len(args) != 3 {
			logger.Printf("%s takes an input and an output file\n%s", verb, usage)
			return exitUsage
		}
	case "inspect":
		if len(args) != 2 {
			logger.Printf("inspect takes one input file\n%s", usage)
			return exitUsage
		}
	default:
		logger.Printf("%v: %q\n%s", ErrUnknownCommand, verb, usage)
		return exitUsage
	}

	// inspect followed by decode of the same file reuses the rebuilt model.
	codec, err := huffpack.NewCodec(huffpack.WithModelCache(4))
	if err != nil {
		logger.Printf("[%s] %v", verb, err)
		return exitFailure
	}

	begin := time.Now()
	switch verb {
	case "encode":
		stats, err := codec.EncodeFile(args[1], args[2])
		if err != nil {
			return report(logger, verb, err)
		}
		logger.Printf("[encode] %s -> %s: %d -> %d bytes (%.2fx), %d bits, %d symbols, in %v",
			args[1], args[2], stats.OriginalSize, stats.CompressedSize, stats.Ratio(),
			stats.Header.BitLength, stats.Header.UniqueSymbols, time.Since(begin))
	case "decode":
		stats, err := codec.DecodeFile(args[1], args[2])
		if err != nil {
			return report(logger, verb, err)
		}
		logger.Printf("[decode] %s -> %s: %d -> %d bytes, in %v",
			args[1], args[2], stats.CompressedSize, stats.OriginalSize, time.Since(begin))
	case "inspect":
		if err := inspect(codec, args[1], stdout); err != nil {
			return report(logger, verb, err)
		}
	}
	return exitOK
}

func inspect(codec *huffpack.Codec, path string, stdout io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &huffpack.IOError{Op: "read", Path: path, Err: err}
	}
	if len(data) == 0 {
		return errors.Wrapf(huffpack.ErrEmptyInput, "inspect %s", path)
	}
	rep, err := codec.Inspect(data)
	if err != nil {
		return errors.Wrapf(err, "inspect %s", path)
	}
	return rep.Print(stdout, columns(stdout))
}

// columns fits the tree dump to the terminal when stdout is one.
func columns(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return huffpack.DefaultColumns
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < inspectCellWidth {
		return huffpack.DefaultColumns
	}
	return width / inspectCellWidth
}

// report logs err with a message for its class and returns the exit status.
func report(logger *log.Logger, verb string, err error) int {
	switch {
	case errors.Is(err, huffpack.ErrEmptyInput):
		logger.Printf("[%s] nothing to do: %v", verb, err)
		return exitNothing
	case errors.Is(err, huffpack.ErrSameFile):
		logger.Printf("[%s] input file same as output file: %v", verb, err)
	case errors.Is(err, huffpack.ErrMalformedHeader):
		logger.Printf("[%s] not a valid compressed file: %v", verb, err)
	case errors.Is(err, huffpack.ErrCorruptStream):
		logger.Printf("[%s] compressed data is corrupt: %v", verb, err)
	case errors.Is(err, huffpack.ErrInputTooLarge):
		logger.Printf("[%s] input exceeds format limits: %v", verb, err)
	case errors.Is(err, huffpack.ErrIO):
		logger.Printf("[%s] i/o failure: %v", verb, err)
	default:
		logger.Printf("[%s] failed: %v", verb, err)
	}
	return exitFailure
}
