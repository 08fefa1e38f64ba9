// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import "io"

// An Encoder encodes symbols with a [Code], writing the packed bits to an
// [io.Writer]. The output has no length field: the stream must end with the
// code's sentinel, and the last byte is padded with zero bits.
type Encoder struct {
	c   *Code
	bw  *bitWriter
	err error
}

// NewEncoder returns an Encoder that writes to w.
func (c *Code) NewEncoder(w io.Writer) *Encoder {
	return &Encoder{c: c, bw: newBitWriter(w)}
}

// AddSymbol appends the code for s.
// It is an error if s is not in the Encoder's [Code].
func (e *Encoder) AddSymbol(s Symbol) {
	if e.err != nil {
		return
	}
	b, ok := e.c.bits(s)
	if !ok {
		e.err = stageErrorf(StageEncode, ErrMissingCode, "no code for symbol %q", s)
		return
	}
	e.bw.writeBits(b.val, int(b.len))
	if err := e.bw.Err(); err != nil {
		e.err = &StageError{Stage: StageEncode, Err: err}
	}
}

func (e *Encoder) AddSymbols(syms []Symbol) {
	for _, s := range syms {
		if e.err != nil {
			return
		}
		e.AddSymbol(s)
	}
}

// Close pads and flushes the last byte, and returns the first error
// encountered while adding.
func (e *Encoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if err := e.bw.Close(); err != nil {
		e.err = &StageError{Stage: StageEncode, Err: err}
	}
	return e.err
}

// Err returns the first error encountered from adding data, if any.
func (e *Encoder) Err() error { return e.err }

// Bits returns the number of code bits written so far, excluding padding.
func (e *Encoder) Bits() int64 { return e.bw.nbits }

// Padding returns the number of zero bits Close adds after the last code.
func (e *Encoder) Padding() int { return e.bw.padding() }
