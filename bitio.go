// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import (
	"io"

	bitstream "github.com/dgryski/go-bitstream"
)

// A bitWriter writes up to 64 bits at a time, most significant bit first.
// Full bytes go to its contained [io.Writer] as they fill.
// Write errors are stored and reported by [bitWriter.Close]
// or [bitWriter.Err].
// Close pads the last byte with zero bits on the low side.
type bitWriter struct {
	err   error
	w     *bitstream.BitWriter
	nbits int64 // number of bits written, not counting padding
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: bitstream.NewWriter(w)}
}

// writeBits writes the n low-order bits of b.
func (w *bitWriter) writeBits(b uint64, n int) {
	if w.err != nil {
		return
	}
	if n < 0 || n > 64 {
		panic("bad number of bits to write")
	}
	w.err = w.w.WriteBits(b, n)
	if w.err == nil {
		w.nbits += int64(n)
	}
}

func (w *bitWriter) Close() error {
	if w.err == nil {
		w.err = w.w.Flush(bitstream.Zero)
	}
	return w.err
}

func (w *bitWriter) Err() error {
	return w.err
}

// padding returns the number of zero bits Close adds to fill the last byte.
func (w *bitWriter) padding() int {
	return int((8 - w.nbits%8) % 8)
}

// A bitReader reads bits most significant first.
// Reading past the end of the underlying reader returns io.EOF.
type bitReader struct {
	err   error
	r     *bitstream.BitReader
	nbits int64 // number of bits read
}

func newBitReader(r io.Reader) *bitReader {
	return &bitReader{r: bitstream.NewReader(r)}
}

// readBit returns the next bit as 0 or 1.
func (r *bitReader) readBit() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	b, err := r.r.ReadBit()
	if err != nil {
		r.err = err
		return 0, err
	}
	r.nbits++
	if b == bitstream.One {
		return 1, nil
	}
	return 0, nil
}
