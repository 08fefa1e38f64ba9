// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is reported for empty or malformed source data.
	ErrInvalidInput = errors.New("huffman: invalid input")
	// ErrDegenerateAlphabet is reported under the strict alphabet policy
	// when the input has fewer than two distinct real symbols.
	ErrDegenerateAlphabet = errors.New("huffman: degenerate alphabet")
	// ErrCorruptModel is reported when a model is malformed or does not
	// belong to the payload being decoded.
	ErrCorruptModel = errors.New("huffman: corrupt model")
	// ErrTruncatedStream is reported when the payload ends before the
	// sentinel is decoded.
	ErrTruncatedStream = errors.New("huffman: truncated stream")
	// ErrMissingCode means a symbol has no code. It indicates a bug: the
	// code was not built from the data being encoded.
	ErrMissingCode = errors.New("huffman: missing code")
)

// A Stage names a step of the compression or decompression pipeline.
type Stage string

const (
	StageTokenize    Stage = "tokenize"
	StageCount       Stage = "count"
	StageBuild       Stage = "build"
	StageEncode      Stage = "encode"
	StageSerialize   Stage = "serialize"
	StageDeserialize Stage = "deserialize"
	StageDecode      Stage = "decode"
	StageRead        Stage = "read"
	StageWrite       Stage = "write"
)

// A StageError records the stage, and the artifact if known, where an error
// was detected. It unwraps to one of the ErrXxx values or to an I/O error.
type StageError struct {
	Stage Stage
	Path  string // empty inside the library
	Err   error
}

func (e *StageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErrorf(stage Stage, sentinel error, format string, args ...any) error {
	return &StageError{
		Stage: stage,
		Err:   fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

// WithPath attaches path to err. If err is a *StageError without a path, the
// path is filled in; otherwise err is wrapped in a new StageError for stage.
func WithPath(err error, stage Stage, path string) error {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) && se.Path == "" {
		return &StageError{Stage: se.Stage, Path: path, Err: se.Err}
	}
	return &StageError{Stage: stage, Path: path, Err: err}
}
