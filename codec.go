// Package huffpack implements a lossless byte-stream compressor built on Huffman
// coding. A compressed file carries the frequency table rather than the tree;
// the decoder rebuilds the identical tree with the same deterministic builder.
package huffpack

import (
	"bytes"
)

const defaultChunkSize = 32 * 1024

// Config holds configuration for a Codec.
type Config struct {
	ModelCacheSize int // Number of built models to keep (0 = no cache)
	ChunkSize      int // Bytes drained per write in EncodeTo (0 = 32 KiB)
}

// Option is a functional option for configuring a Codec.
type Option func(*Config)

// WithModelCache keeps up to n built models, keyed by frequency table, so that
// inputs with identical statistics skip the tree build.
func WithModelCache(n int) Option {
	return func(c *Config) {
		c.ModelCacheSize = n
	}
}

// WithChunkSize sets how many packed bytes EncodeTo buffers between writes.
// Values below 1 fall back to the default.
func WithChunkSize(n int) Option {
	return func(c *Config) {
		c.ChunkSize = n
	}
}

// Codec encodes and decodes the huffpack format.
type Codec struct {
	config Config
	models *modelCache
}

var defaultCodec = &Codec{config: Config{ChunkSize: defaultChunkSize}}

// NewCodec creates a codec with the given options.
func NewCodec(opts ...Option) (*Codec, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = defaultChunkSize
	}

	c := &Codec{config: cfg}
	if cfg.ModelCacheSize > 0 {
		models, err := newModelCache(cfg.ModelCacheSize)
		if err != nil {
			return nil, err
		}
		c.models = models
	}
	return c, nil
}

// Encode compresses src with the default codec.
func Encode(src []byte) ([]byte, error) {
	return defaultCodec.Encode(src)
}

// Decode decompresses p with the default codec.
func Decode(p []byte) ([]byte, error) {
	return defaultCodec.Decode(p)
}

// model returns the model for ft, from the cache when one is configured.
func (c *Codec) model(ft *FrequencyTable) (*Model, error) {
	if c.models == nil {
		return NewModel(ft)
	}
	return c.models.getOrBuild(ft)
}

// Decode decompresses a complete compressed buffer.
func (c *Codec) Decode(p []byte) ([]byte, error) {
	return c.DecodeFrom(bytes.NewReader(p))
}
