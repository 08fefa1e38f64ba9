// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// A SplitFunc divides text into symbols. Concatenating the symbols must
// reproduce the text.
type SplitFunc func([]byte) []Symbol

// SplitChars returns one symbol per Unicode code point.
func SplitChars(data []byte) []Symbol {
	syms := make([]Symbol, 0, utf8.RuneCount(data))
	for len(data) > 0 {
		_, n := utf8.DecodeRune(data)
		syms = append(syms, Symbol(data[:n]))
		data = data[n:]
	}
	return syms
}

var wordRx = regexp.MustCompile(`[A-Za-z]+|[^A-Za-z]`)

// SplitWords returns runs of ASCII letters as single symbols, and every
// other character as a symbol of its own.
func SplitWords(data []byte) []Symbol {
	locs := wordRx.FindAllIndex(data, -1)
	syms := make([]Symbol, len(locs))
	for i, loc := range locs {
		syms[i] = Symbol(data[loc[0]:loc[1]])
	}
	return syms
}

// A Mode selects how text is split into symbols.
type Mode string

const (
	ModeChar Mode = "char"
	ModeWord Mode = "word"
)

// ParseMode parses a mode name. The empty string means [ModeChar].
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeChar:
		return ModeChar, nil
	case ModeWord:
		return ModeWord, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q (want %q or %q)", ErrInvalidInput, s, ModeChar, ModeWord)
}

// Split returns the SplitFunc for m.
func (m Mode) Split() SplitFunc {
	if m == ModeWord {
		return SplitWords
	}
	return SplitChars
}

// Tokenize splits data, which must be valid UTF-8, and appends sentinel.
// It is an error for the sentinel to occur among the split symbols.
func Tokenize(data []byte, split SplitFunc, sentinel Symbol) ([]Symbol, error) {
	if sentinel == "" {
		return nil, stageErrorf(StageTokenize, ErrInvalidInput, "empty sentinel")
	}
	if !utf8.Valid(data) {
		return nil, stageErrorf(StageTokenize, ErrInvalidInput, "input is not valid UTF-8")
	}
	syms := split(data)
	for i, s := range syms {
		if s == sentinel {
			return nil, stageErrorf(StageTokenize, ErrInvalidInput, "input contains sentinel %q at symbol %d", sentinel, i)
		}
	}
	return append(syms, sentinel), nil
}
