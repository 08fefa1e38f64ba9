// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

// Package cli implements the huff command.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	huffman "github.com/jba/statichuff"
	"github.com/jba/statichuff/internal/config"
)

const usage = `usage:
  huff compress [flags] FILE      writes ROOT.bin and ROOT-symbol-model.json
  huff decompress [flags] FILE    reads FILE and ROOT-symbol-model.json, writes ROOT-decompressed.txt

Run "huff compress -h" for the flags.
`

// Main runs the command with args, which exclude the program name, and
// returns the process exit status.
func Main(args []string, stderr io.Writer, getenv func(string) string) int {
	log := logrus.New()
	log.Out = stderr
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmd, args := args[0], args[1:]
	if cmd != "compress" && cmd != "decompress" {
		fmt.Fprint(stderr, usage)
		return 2
	}
	conf, rest, err := config.Parse(cmd, args, getenv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		log.WithError(err).Error("bad configuration")
		return 2
	}
	if len(rest) != 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	if conf.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	r := &Runner{Config: conf, Log: log}
	if cmd == "compress" {
		err = r.Compress(rest[0])
	} else {
		err = r.Decompress(rest[0])
	}
	if err != nil {
		log.WithError(err).Errorf("%s failed", cmd)
		return 1
	}
	return 0
}

// A Runner compresses and decompresses files.
type Runner struct {
	Config config.Configuration
	Log    *logrus.Logger
}

// root strips the extension from path.
func root(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// Compress encodes the file at inPath and writes the payload and model
// next to it. Either both are written or neither is.
func (r *Runner) Compress(inPath string) error {
	start := time.Now()
	base := root(inPath)
	payloadPath := base + r.Config.PayloadExt
	modelPath := base + r.Config.ModelSuffix
	if filepath.Clean(payloadPath) == filepath.Clean(inPath) || filepath.Clean(modelPath) == filepath.Clean(inPath) {
		return huffman.WithPath(fmt.Errorf("%w: output would overwrite the input", huffman.ErrInvalidInput),
			huffman.StageRead, inPath)
	}

	text, err := os.ReadFile(inPath)
	if err != nil {
		return huffman.WithPath(fmt.Errorf("%w: %v", huffman.ErrInvalidInput, err), huffman.StageRead, inPath)
	}
	if len(text) == 0 {
		return huffman.WithPath(fmt.Errorf("%w: empty file", huffman.ErrInvalidInput), huffman.StageRead, inPath)
	}
	mode, err := huffman.ParseMode(r.Config.Mode)
	if err != nil {
		return err
	}
	read := time.Now()

	res, err := huffman.Compress(text,
		huffman.WithMode(mode),
		huffman.WithSentinel(r.Config.Sentinel),
		huffman.WithStrictAlphabet(r.Config.StrictAlphabet))
	if err != nil {
		return huffman.WithPath(err, huffman.StageEncode, inPath)
	}
	model, err := res.Model.Marshal()
	if err != nil {
		return huffman.WithPath(err, huffman.StageSerialize, modelPath)
	}
	encoded := time.Now()
	r.logCode(res)

	if err := writeArtifacts(
		artifact{path: payloadPath, data: res.Payload},
		artifact{path: modelPath, data: model},
	); err != nil {
		return err
	}

	r.Log.WithFields(logrus.Fields{
		"input":    inPath,
		"payload":  payloadPath,
		"model":    modelPath,
		"mode":     mode,
		"symbols":  res.Symbols,
		"distinct": res.Frequencies.Len(),
		"bits":     res.Bits,
		"in_size":  len(text),
		"out_size": len(res.Payload),
		"ratio":    fmt.Sprintf("%.3f", float64(len(res.Payload))/float64(len(text))),
	}).Info("compressed")
	r.Log.WithFields(logrus.Fields{
		"read":   read.Sub(start),
		"encode": encoded.Sub(read),
		"write":  time.Since(encoded),
	}).Info("timing")
	return nil
}

func (r *Runner) logCode(res *huffman.Result) {
	if !r.Log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	r.Log.Debugf("%d distinct symbols, tree depth %d", res.Frequencies.Len(), res.Model.Tree.Depth())
	for _, s := range res.Code.Symbols() {
		bits, _ := res.Code.Bits(s)
		r.Log.Debugf("%-12q %8d %s", s, res.Frequencies.Count(s), bits)
	}
}

// Decompress decodes the payload at binPath with the model stored next to
// it, and writes the text next to it. On failure nothing is written.
func (r *Runner) Decompress(binPath string) error {
	start := time.Now()
	base := root(binPath)
	modelPath := base + r.Config.ModelSuffix
	outPath := base + r.Config.OutputSuffix

	payload, err := os.ReadFile(binPath)
	if err != nil {
		return huffman.WithPath(fmt.Errorf("%w: %v", huffman.ErrInvalidInput, err), huffman.StageRead, binPath)
	}
	data, err := os.ReadFile(modelPath)
	if err != nil {
		return huffman.WithPath(fmt.Errorf("%w: %v", huffman.ErrCorruptModel, err), huffman.StageRead, modelPath)
	}
	model, err := huffman.UnmarshalModel(data)
	if err != nil {
		return huffman.WithPath(err, huffman.StageDeserialize, modelPath)
	}
	read := time.Now()

	text, err := huffman.Decompress(payload, model)
	if errors.Is(err, huffman.ErrCorruptModel) {
		return huffman.WithPath(err, huffman.StageDecode, modelPath)
	}
	if err != nil {
		return huffman.WithPath(err, huffman.StageDecode, binPath)
	}
	decoded := time.Now()

	if err := writeArtifacts(artifact{path: outPath, data: text}); err != nil {
		return err
	}
	r.Log.WithFields(logrus.Fields{
		"payload": binPath,
		"model":   modelPath,
		"output":  outPath,
		"mode":    model.Mode,
		"size":    len(text),
	}).Info("decompressed")
	r.Log.WithFields(logrus.Fields{
		"read":   read.Sub(start),
		"decode": decoded.Sub(read),
		"write":  time.Since(decoded),
	}).Info("timing")
	return nil
}
