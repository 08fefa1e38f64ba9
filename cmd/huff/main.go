// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

// Huff compresses and decompresses text files with static Huffman coding.
//
// Usage:
//
//	huff compress [-s char|word] [flags] FILE
//	huff decompress [flags] ROOT.bin
//
// Compressing ROOT.txt writes ROOT.bin, the encoded payload, and
// ROOT-symbol-model.json, the code tree. Decompressing ROOT.bin reads both
// and writes ROOT-decompressed.txt.
//
// Flags may also be set in a TOML file named by -config or HUFFMAN_CONFIG,
// and through HUFFMAN_* environment variables.
package main

import (
	"os"

	"github.com/jba/statichuff/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:], os.Stderr, os.Getenv))
}
