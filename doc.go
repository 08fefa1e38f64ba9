// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

// Package huffman compresses text with static Huffman coding.
//
// Compression produces two artifacts: a payload of packed code bits, and a
// [Model] holding the code tree. Both are needed to decompress.
//
// The pipeline is
//
//	Tokenize -> CountFrequencies -> NewTree -> Tree.Code -> Encoder
//
// and, on the other side,
//
//	UnmarshalModel -> Tree.NewDecoder
//
// [Compress] and [Decompress] run the whole pipeline.
//
// Every stream ends with a sentinel symbol that does not otherwise occur in
// the input. The payload stores no bit count: decoding stops when the
// sentinel is reached, and the zero bits that pad the last byte are never
// read.
//
// Tree construction is deterministic, so the same input always produces the
// same payload and model.
package huffman
