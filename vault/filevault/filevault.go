// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package filevault is a vault.SecureStorage kept in a local file,
// sealed with a key derived from a per-device master key.
package filevault

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/juju/utils/v4"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
	"gopkg.in/yaml.v3"
)

const (
	keySize   = 32
	nonceSize = 24

	keyInfo = "rootstore secure storage v1"
)

// Config describes where the sealed secrets and the master key live.
type Config struct {
	// Path is the sealed secrets file.
	Path string

	// KeyPath is the master key file. A new random key is created
	// there if it does not exist.
	KeyPath string
}

// Validate returns an error if the config cannot be used.
func (config Config) Validate() error {
	if config.Path == "" {
		return errors.NotValidf("empty Path")
	}
	if config.KeyPath == "" {
		return errors.NotValidf("empty KeyPath")
	}
	return nil
}

// Storage is file backed secure storage. Every call reads and rewrites
// the whole file; it holds a handful of entries.
type Storage struct {
	path string
	key  [keySize]byte
}

// Open returns storage over the configured files, creating the master
// key if needed.
func Open(config Config) (*Storage, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	master, err := readOrCreateMasterKey(config.KeyPath)
	if err != nil {
		return nil, errors.Trace(err)
	}
	s := &Storage{path: config.Path}
	kdf := hkdf.New(sha256.New, master, nil, []byte(keyInfo))
	if _, err := io.ReadFull(kdf, s.key[:]); err != nil {
		return nil, errors.Annotate(err, "cannot derive storage key")
	}
	return s, nil
}

func readOrCreateMasterKey(path string) ([]byte, error) {
	master, err := os.ReadFile(path)
	if err == nil {
		if len(master) != keySize {
			return nil, errors.NotValidf("master key %q of %d bytes", path, len(master))
		}
		return master, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Annotatef(err, "cannot read master key %q", path)
	}
	master = make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, master); err != nil {
		return nil, errors.Annotate(err, "cannot generate master key")
	}
	if err := writeFile(path, master); err != nil {
		return nil, errors.Annotatef(err, "cannot write master key %q", path)
	}
	return master, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(utils.AtomicWriteFile(path, data, 0600))
}

// Get implements vault.SecureStorage.
func (s *Storage) Get(name string) (string, error) {
	secrets, err := s.read()
	if err != nil {
		return "", errors.Trace(err)
	}
	secret, ok := secrets[name]
	if !ok {
		return "", errors.NotFoundf("secret %q", name)
	}
	return secret, nil
}

// Set implements vault.SecureStorage.
func (s *Storage) Set(name, secret string) error {
	secrets, err := s.read()
	if err != nil {
		return errors.Trace(err)
	}
	secrets[name] = secret
	return errors.Trace(s.write(secrets))
}

// Delete implements vault.SecureStorage.
func (s *Storage) Delete(name string) error {
	secrets, err := s.read()
	if err != nil {
		return errors.Trace(err)
	}
	if _, ok := secrets[name]; !ok {
		return nil
	}
	delete(secrets, name)
	return errors.Trace(s.write(secrets))
}

func (s *Storage) read() (map[string]string, error) {
	sealed, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, errors.Annotate(err, "cannot read secure storage")
	}
	if len(sealed) < nonceSize {
		return nil, errors.NotValidf("secure storage file %q", s.path)
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, errors.Errorf("cannot open secure storage %q: wrong key or corrupt file", s.path)
	}
	secrets := make(map[string]string)
	if err := yaml.Unmarshal(plain, &secrets); err != nil {
		return nil, errors.Annotate(err, "cannot parse secure storage")
	}
	return secrets, nil
}

func (s *Storage) write(secrets map[string]string) error {
	plain, err := yaml.Marshal(secrets)
	if err != nil {
		return errors.Trace(err)
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return errors.Annotate(err, "cannot generate nonce")
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &s.key)
	return errors.Annotate(writeFile(s.path, sealed), "cannot write secure storage")
}
