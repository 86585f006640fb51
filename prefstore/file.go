// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package prefstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/utils/v4"
)

// FileBackend keeps each document in its own YAML file under a
// directory.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend that manages files in dir. The
// directory is created on first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Path returns the file holding the document with the given key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".yaml")
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return errors.NotValidf("document key %q", key)
	}
	return nil
}

// Read implements Backend.
func (b *FileBackend) Read(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, errors.Trace(err)
	}
	data, err := os.ReadFile(b.Path(key))
	if os.IsNotExist(err) {
		return nil, errors.NotFoundf("document %q", key)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "cannot read document %q", key)
	}
	return data, nil
}

// Write implements Backend.
func (b *FileBackend) Write(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return errors.Trace(err)
	}
	if err := os.MkdirAll(b.dir, 0700); err != nil {
		return errors.Annotatef(err, "cannot create preferences dir %q", b.dir)
	}
	return errors.Trace(utils.AtomicWriteFile(b.Path(key), data, 0600))
}

// Remove implements Backend.
func (b *FileBackend) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return errors.Trace(err)
	}
	err := os.Remove(b.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Annotatef(err, "cannot remove document %q", key)
	}
	return nil
}
