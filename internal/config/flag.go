// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package config

import "flag"

func setupFlags(fs *flag.FlagSet, config *Configuration) {
	_ = fs.String("config", "", "The path to a TOML configuration file")

	fs.StringVar(&config.Mode, "s", config.Mode, "Symbol model: char (one symbol per character) or word")
	fs.StringVar(&config.Sentinel, "sentinel", config.Sentinel, "The end-of-stream symbol; must not occur in the input")
	fs.BoolVar(&config.StrictAlphabet, "strict", config.StrictAlphabet, "Reject inputs with fewer than two distinct symbols")
	fs.BoolVar(&config.Verbose, "v", config.Verbose, "Log debug output, including the code table")

	fs.StringVar(&config.PayloadExt, "payload-ext", config.PayloadExt, "The extension of the encoded payload file")
	fs.StringVar(&config.ModelSuffix, "model-suffix", config.ModelSuffix, "The suffix of the model file")
	fs.StringVar(&config.OutputSuffix, "output-suffix", config.OutputSuffix, "The suffix of the decompressed text file")
}
