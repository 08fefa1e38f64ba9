// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import (
	"bytes"
	"strings"
)

// Config holds configuration for [Compress].
type Config struct {
	Mode           Mode   // how text is split into symbols (default ModeChar)
	Sentinel       Symbol // end-of-stream symbol (default DefaultSentinel)
	StrictAlphabet bool   // reject inputs with fewer than two distinct real symbols
}

// Option is a functional option for configuring compression.
type Option func(*Config)

// WithMode sets the tokenization mode.
func WithMode(m Mode) Option {
	return func(c *Config) {
		c.Mode = m
	}
}

// WithSentinel sets the end-of-stream symbol. It must not occur in the input.
func WithSentinel(s Symbol) Option {
	return func(c *Config) {
		c.Sentinel = s
	}
}

// WithStrictAlphabet makes [Compress] fail with [ErrDegenerateAlphabet] when
// the input has fewer than two distinct symbols. Without it, such inputs are
// coded normally: one real symbol and the sentinel form a two-leaf tree, and
// a lone sentinel gets a one-bit code.
func WithStrictAlphabet(strict bool) Option {
	return func(c *Config) {
		c.StrictAlphabet = strict
	}
}

// A Result is the output of [Compress].
type Result struct {
	Payload     []byte
	Model       *Model
	Code        *Code
	Frequencies *FrequencyTable
	Symbols     int   // number of symbols encoded, sentinel included
	Bits        int64 // significant bits in Payload
}

// Compress encodes text. The returned payload and model are both needed
// to decompress it.
func Compress(text []byte, opts ...Option) (*Result, error) {
	cfg := Config{Mode: ModeChar, Sentinel: DefaultSentinel}
	for _, opt := range opts {
		opt(&cfg)
	}
	mode, err := ParseMode(string(cfg.Mode))
	if err != nil {
		return nil, &StageError{Stage: StageTokenize, Err: err}
	}
	seq, err := Tokenize(text, mode.Split(), cfg.Sentinel)
	if err != nil {
		return nil, err
	}
	ft, err := CountFrequencies(seq, cfg.Sentinel)
	if err != nil {
		return nil, err
	}
	if cfg.StrictAlphabet && ft.Len()-1 < 2 {
		return nil, stageErrorf(StageCount, ErrDegenerateAlphabet,
			"%d distinct symbols besides the sentinel, need at least 2", ft.Len()-1)
	}
	tree, err := NewTree(ft, cfg.Sentinel)
	if err != nil {
		return nil, err
	}
	code, err := tree.Code()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := code.NewEncoder(&buf)
	enc.AddSymbols(seq)
	if err := enc.Close(); err != nil {
		return nil, err
	}
	payload := buf.Bytes()
	return &Result{
		Payload:     payload,
		Model:       NewModel(tree, mode, payload),
		Code:        code,
		Frequencies: ft,
		Symbols:     len(seq),
		Bits:        enc.Bits(),
	}, nil
}

// Decompress decodes payload with m and returns the original text.
// A payload that ends before the sentinel is an [ErrTruncatedStream].
// Once the sentinel is reached, a payload whose size or checksum differs
// from the one recorded in m is an [ErrCorruptModel].
func Decompress(payload []byte, m *Model) ([]byte, error) {
	if m == nil || m.Tree == nil {
		return nil, stageErrorf(StageDeserialize, ErrCorruptModel, "no model")
	}
	syms, err := m.Tree.NewDecoder(bytes.NewReader(payload)).DecodeAll()
	if err != nil {
		return nil, err
	}
	if err := m.Verify(payload); err != nil {
		return nil, err
	}
	return []byte(strings.Join(syms, "")), nil
}
