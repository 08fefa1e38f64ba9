// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	huffman "github.com/jba/statichuff"
)

func TestFindConfigFile(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"-s word":           "",
		"-config":           "",
		"--config":          "",
		"-config foo":       "foo",
		"-config=foo":       "foo",
		"--config foo":      "foo",
		"--config=foo":      "foo",
		"-config=foo -test": "foo",
		"-test -config=foo": "foo",
		"-configure x":      "",
		"-- -config foo":    "",
	}

	for line, expectedFileName := range cases {
		filename := findConfigFile(strings.Split(line, " "))
		if filename != expectedFileName {
			t.Errorf("findConfigFile returned '%s' from the command line "+
				"arguments '%s'; expected '%s'", filename, line, expectedFileName)
		}
	}
}

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "huff.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseDefaults(t *testing.T) {
	conf, args, err := Parse("compress", []string{"in.txt"}, env(nil), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if conf != Default() {
		t.Errorf("got %+v, want defaults", conf)
	}
	if len(args) != 1 || args[0] != "in.txt" {
		t.Errorf("args: got %q", args)
	}
}

func TestParsePrecedence(t *testing.T) {
	path := writeConfig(t, `
mode = "word"
sentinel = "<EOS>"
model_suffix = ".model"
strict_alphabet = true
`)
	// File only.
	conf, _, err := Parse("compress", []string{"-config", path, "in.txt"}, env(nil), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Mode != "word" || conf.Sentinel != "<EOS>" || conf.ModelSuffix != ".model" || !conf.StrictAlphabet {
		t.Errorf("file: got %+v", conf)
	}
	if conf.PayloadExt != ".bin" {
		t.Errorf("unset key lost its default: %q", conf.PayloadExt)
	}

	// Environment beats file, and can name the file.
	e := env(map[string]string{
		"HUFFMAN_CONFIG":       path,
		"HUFFMAN_SENTINEL":     "|",
		"HUFFMAN_MODEL_SUFFIX": ".m.json",
	})
	conf, _, err = Parse("compress", []string{"in.txt"}, e, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Mode != "word" || conf.Sentinel != "|" || conf.ModelSuffix != ".m.json" {
		t.Errorf("env: got %+v", conf)
	}

	// Flags beat environment.
	conf, _, err = Parse("compress", []string{"-sentinel", "#", "-s", "char", "in.txt"}, e, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Mode != "char" || conf.Sentinel != "#" || conf.ModelSuffix != ".m.json" {
		t.Errorf("flags: got %+v", conf)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"missing config file", []string{"-config", filepath.Join(t.TempDir(), "none.toml")}, nil},
		{"unknown key", []string{"-config", writeConfig(t, `colour = "blue"`)}, nil},
		{"bad toml", []string{"-config", writeConfig(t, `mode = `)}, nil},
		{"unknown flag", []string{"-x"}, nil},
		{"bad mode", []string{"-s", "bytes"}, nil},
		{"bad env bool", nil, map[string]string{"HUFFMAN_STRICT": "maybe"}},
		{"empty sentinel", []string{"-sentinel="}, nil},
		{"clashing suffixes", []string{"-model-suffix", ".bin"}, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Parse("compress", tc.args, env(tc.env), io.Discard); err == nil {
				t.Error("got nil error")
			}
		})
	}

	_, _, err := Parse("compress", []string{"-s", "bytes"}, env(nil), io.Discard)
	if !errors.Is(err, huffman.ErrInvalidInput) {
		t.Errorf("bad mode: got %v, want ErrInvalidInput", err)
	}
}
