// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package cli

import (
	"os"
	"path/filepath"

	huffman "github.com/jba/statichuff"
)

type artifact struct {
	path string
	data []byte
}

var rename = os.Rename

// writeArtifacts writes every artifact or none of them. Each is first
// written to a temporary file in its destination directory; the temporary
// files are renamed into place only when all have been written. An existing
// file at a destination is moved aside first and put back if a later rename
// fails, so a failed write leaves the previous artifacts as they were.
func writeArtifacts(arts ...artifact) error {
	var temps, backups []string
	removeTemps := func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}
	restore := func() {
		for i := len(backups) - 1; i >= 0; i-- {
			if backups[i] != "" {
				rename(backups[i], arts[i].path)
			} else {
				os.Remove(arts[i].path)
			}
		}
	}
	for _, a := range arts {
		tmp, err := writeTemp(a)
		if err != nil {
			removeTemps()
			return huffman.WithPath(err, huffman.StageWrite, a.path)
		}
		temps = append(temps, tmp)
	}
	for i, a := range arts {
		backup := ""
		if _, err := os.Lstat(a.path); err == nil {
			backup = temps[i] + ".old"
			if err := rename(a.path, backup); err != nil {
				restore()
				removeTemps()
				return huffman.WithPath(err, huffman.StageWrite, a.path)
			}
		}
		if err := rename(temps[i], a.path); err != nil {
			if backup != "" {
				rename(backup, a.path)
			}
			restore()
			removeTemps()
			return huffman.WithPath(err, huffman.StageWrite, a.path)
		}
		backups = append(backups, backup)
	}
	for _, b := range backups {
		if b != "" {
			os.Remove(b)
		}
	}
	return nil
}

func writeTemp(a artifact) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(a.path), "."+filepath.Base(a.path)+".*.tmp")
	if err != nil {
		return "", err
	}
	name := f.Name()
	_, err = f.Write(a.data)
	if err == nil {
		err = f.Chmod(0o644)
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
