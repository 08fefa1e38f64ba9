// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import (
	"errors"
	"io"
)

// A Decoder decodes data encoded by an [Encoder] by walking a [Tree]
// one bit at a time. Decoding ends at the sentinel; any bits after it are
// padding and are never read.
type Decoder struct {
	t    *Tree
	br   *bitReader
	done bool
	err  error
	n    int // symbols decoded
}

// NewDecoder returns a Decoder that reads encoded bits from r.
func (t *Tree) NewDecoder(r io.Reader) *Decoder {
	return &Decoder{t: t, br: newBitReader(r)}
}

// Next returns the next decoded symbol. After the sentinel has been decoded
// it returns io.EOF. If the input ends first it returns an error wrapping
// [ErrTruncatedStream].
func (d *Decoder) Next() (Symbol, error) {
	if d.err != nil {
		return "", d.err
	}
	if d.done {
		return "", io.EOF
	}
	s, err := d.next()
	if err != nil {
		d.err = err
		return "", err
	}
	if s == d.t.sentinel {
		d.done = true
		return "", io.EOF
	}
	d.n++
	return s, nil
}

func (d *Decoder) next() (Symbol, error) {
	nodes := d.t.nodes
	cur := d.t.root
	if nodes[cur].isLeaf() {
		// A lone leaf has code 0; its sibling on 1 is empty.
		bit, err := d.readBit()
		if err != nil {
			return "", err
		}
		if bit == 1 {
			return "", stageErrorf(StageDecode, ErrTruncatedStream,
				"bit %d selects the empty branch of a single-leaf tree", d.br.nbits-1)
		}
		return nodes[cur].sym, nil
	}
	for {
		bit, err := d.readBit()
		if err != nil {
			return "", err
		}
		if bit == 0 {
			cur = nodes[cur].left
		} else {
			cur = nodes[cur].right
		}
		if nodes[cur].isLeaf() {
			return nodes[cur].sym, nil
		}
	}
}

func (d *Decoder) readBit() (byte, error) {
	bit, err := d.br.readBit()
	if errors.Is(err, io.EOF) {
		return 0, stageErrorf(StageDecode, ErrTruncatedStream,
			"input ended after %d bits and %d symbols without reaching the sentinel", d.br.nbits, d.n)
	}
	if err != nil {
		return 0, &StageError{Stage: StageDecode, Err: err}
	}
	return bit, nil
}

// DecodeAll decodes the remaining symbols up to the sentinel, which is not
// included in the result.
func (d *Decoder) DecodeAll() ([]Symbol, error) {
	var syms []Symbol
	for {
		s, err := d.Next()
		if err == io.EOF {
			return syms, nil
		}
		if err != nil {
			return nil, err
		}
		syms = append(syms, s)
	}
}

// Decoded returns the number of symbols returned so far.
func (d *Decoder) Decoded() int { return d.n }
