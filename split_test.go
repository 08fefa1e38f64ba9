// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	for _, tc := range []struct {
		split SplitFunc
		in    string
		want  []Symbol
	}{
		{SplitChars, "", []Symbol{}},
		{SplitChars, "abc", []Symbol{"a", "b", "c"}},
		{SplitChars, "né☃", []Symbol{"n", "é", "☃"}},
		{SplitWords, "", []Symbol{}},
		{SplitWords, "Hello, world!", []Symbol{"Hello", ",", " ", "world", "!"}},
		{SplitWords, "it's  OK", []Symbol{"it", "'", "s", " ", " ", "OK"}},
		{SplitWords, "naïve", []Symbol{"na", "ï", "ve"}},
		{SplitWords, "a1b22", []Symbol{"a", "1", "b", "2", "2"}},
	} {
		got := tc.split([]byte(tc.in))
		if !slices.Equal(got, tc.want) {
			t.Errorf("%q: got %q, want %q", tc.in, got, tc.want)
		}
		if j := strings.Join(got, ""); j != tc.in {
			t.Errorf("%q: symbols join to %q", tc.in, j)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeChar, "char": ModeChar, "word": ModeWord} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("Word"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestTokenize(t *testing.T) {
	got, err := Tokenize([]byte("ab a"), SplitWords, "$")
	if err != nil {
		t.Fatal(err)
	}
	if want := []Symbol{"ab", " ", "a", "$"}; !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
	// A sentinel spanning several characters cannot collide with a
	// character symbol.
	if _, err := Tokenize([]byte("<EOS>"), SplitChars, "<EOS>"); err != nil {
		t.Errorf("multi-character sentinel: %v", err)
	}
	var se *StageError
	_, err = Tokenize([]byte("a$"), SplitChars, "$")
	if !errors.Is(err, ErrInvalidInput) || !errors.As(err, &se) || se.Stage != StageTokenize {
		t.Errorf("got %v, want a tokenize ErrInvalidInput", err)
	}
}
