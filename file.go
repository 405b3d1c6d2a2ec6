package huffpack

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Stats describes one file operation.
type Stats struct {
	Header         Header
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns the original size divided by the compressed size.
func (s *Stats) Ratio() float64 {
	if s.CompressedSize == 0 {
		return 0
	}
	return float64(s.OriginalSize) / float64(s.CompressedSize)
}

// EncodeFile compresses src into dst. dst is replaced atomically and is left
// untouched when any step fails.
func (c *Codec) EncodeFile(src, dst string) (*Stats, error) {
	data, err := readSource(src, dst)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.Wrapf(ErrEmptyInput, "encode %s", src)
	}
	m, h, err := c.prepare(data)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", src)
	}

	tmp, err := createTemp(dst)
	if err != nil {
		return nil, err
	}
	defer discardTemp(tmp)

	n, err := c.encode(tmp, data, m, h)
	if err != nil {
		return nil, ioFailure("write", tmp.Name(), err)
	}
	if err := commitTemp(tmp, dst); err != nil {
		return nil, err
	}
	return &Stats{Header: h, OriginalSize: int64(len(data)), CompressedSize: n}, nil
}

// DecodeFile decompresses src into dst. dst is replaced atomically and is left
// untouched when src is malformed.
func (c *Codec) DecodeFile(src, dst string) (*Stats, error) {
	data, err := readSource(src, dst)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.Wrapf(ErrEmptyInput, "decode %s", src)
	}
	out, err := c.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", src)
	}
	h, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	tmp, err := createTemp(dst)
	if err != nil {
		return nil, err
	}
	defer discardTemp(tmp)

	n, err := writeBytes(tmp, out)
	if err != nil {
		return nil, ioFailure("write", tmp.Name(), err)
	}
	if err := commitTemp(tmp, dst); err != nil {
		return nil, err
	}
	return &Stats{Header: h, OriginalSize: n, CompressedSize: int64(len(data))}, nil
}

// readSource rejects src == dst and reads src whole.
func readSource(src, dst string) ([]byte, error) {
	same, err := samePath(src, dst)
	if err != nil {
		return nil, err
	}
	if same {
		return nil, errors.Wrapf(ErrSameFile, "%s", src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, ioFailure("read", src, err)
	}
	return data, nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, ioFailure("resolve", a, err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, ioFailure("resolve", b, err)
	}
	if absA == absB {
		return true, nil
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	if errA != nil || errB != nil {
		return false, nil
	}
	return os.SameFile(infoA, infoB), nil
}

// createTemp opens a scratch file next to dst so the final rename stays on one
// filesystem.
func createTemp(dst string) (*os.File, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return nil, ioFailure("create", dst, err)
	}
	return tmp, nil
}

func commitTemp(tmp *os.File, dst string) error {
	if err := tmp.Chmod(0o644); err != nil {
		return ioFailure("chmod", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return ioFailure("close", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return ioFailure("rename", dst, err)
	}
	return nil
}

// discardTemp removes tmp unless commitTemp already renamed it.
func discardTemp(tmp *os.File) {
	_ = tmp.Close()
	_ = os.Remove(tmp.Name())
}
