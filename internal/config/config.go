// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package config

import (
	"flag"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	huffman "github.com/jba/statichuff"
)

// EnvPrefix prefixes the environment variable for every flag:
// -model-suffix is read from HUFFMAN_MODEL_SUFFIX.
const EnvPrefix = "HUFFMAN_"

// Configuration specifies the complete configuration of the huff command.
type Configuration struct {
	Mode           string `toml:"mode"`
	Sentinel       string `toml:"sentinel"`
	StrictAlphabet bool   `toml:"strict_alphabet"`
	Verbose        bool   `toml:"verbose"`
	PayloadExt     string `toml:"payload_ext"`
	ModelSuffix    string `toml:"model_suffix"`
	OutputSuffix   string `toml:"output_suffix"`
}

// Default returns the configuration used when nothing is set.
func Default() Configuration {
	return Configuration{
		Mode:         string(huffman.ModeChar),
		Sentinel:     huffman.DefaultSentinel,
		PayloadExt:   ".bin",
		ModelSuffix:  "-symbol-model.json",
		OutputSuffix: "-decompressed.txt",
	}
}

// Parse parses the configuration for the named subcommand and returns it
// with the remaining positional arguments.
//
// The precedence is:
//
//	command line flags > environment > configuration file > defaults
func Parse(name string, args []string, getenv func(string) string, usage io.Writer) (Configuration, []string, error) {
	config := Default()

	configFile := findConfigFile(args)
	if configFile == "" {
		configFile = getenv(EnvPrefix + "CONFIG")
	}
	if err := parseConfigFile(configFile, &config); err != nil {
		return config, nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(usage)
	setupFlags(fs, &config)
	if err := fs.Parse(args); err != nil {
		return config, nil, err
	}
	if err := setUnsetFlagsFromEnv(fs, getenv); err != nil {
		return config, nil, err
	}
	if err := config.validate(); err != nil {
		return config, nil, err
	}
	return config, fs.Args(), nil
}

// We want to parse the flags after we've read in the config file so that they
// take precedence, so we're going to extract the config file flag directly.
func findConfigFile(args []string) string {
	configRx := regexp.MustCompile("^--?config(?:=(.*))?$")
	for index, arg := range args {
		if arg == "--" {
			break
		}
		match := configRx.FindStringSubmatch(arg)
		if match == nil {
			continue
		}
		if match[1] != "" {
			return match[1]
		}
		if len(args) > (index + 1) {
			return args[index+1]
		}
	}
	return ""
}

func parseConfigFile(configFile string, config *Configuration) error {
	if configFile == "" {
		return nil
	}
	md, err := toml.DecodeFile(configFile, config)
	if err != nil {
		return fmt.Errorf("config file %s: %w", configFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %s: unknown keys %v", configFile, undecoded)
	}
	return nil
}

func setUnsetFlagsFromEnv(fs *flag.FlagSet, getenv func(string) string) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	var err error
	fs.VisitAll(func(f *flag.Flag) {
		if set[f.Name] || f.Name == "config" || err != nil {
			return
		}
		if val := getenv(envKeyForFlag(f.Name)); val != "" {
			if e := fs.Set(f.Name, val); e != nil {
				err = fmt.Errorf("%s: %w", envKeyForFlag(f.Name), e)
			}
		}
	})
	return err
}

func envKeyForFlag(name string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func (c *Configuration) validate() error {
	if _, err := huffman.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Sentinel == "" {
		return fmt.Errorf("%w: empty sentinel", huffman.ErrInvalidInput)
	}
	for name, v := range map[string]string{
		"payload_ext":   c.PayloadExt,
		"model_suffix":  c.ModelSuffix,
		"output_suffix": c.OutputSuffix,
	} {
		if v == "" {
			return fmt.Errorf("%w: empty %s", huffman.ErrInvalidInput, name)
		}
	}
	if c.PayloadExt == c.ModelSuffix || c.PayloadExt == c.OutputSuffix || c.ModelSuffix == c.OutputSuffix {
		return fmt.Errorf("%w: payload, model and output names must differ", huffman.ErrInvalidInput)
	}
	return nil
}
