// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package prefstoretesting

import (
	"github.com/juju/errors"
	"github.com/juju/testing"

	"github.com/rootadmin/rootstore/core/rooturi"
)

// MemBackend is an in-memory prefstore.Backend. Calls are recorded on
// the embedded stub, whose queued errors are returned in call order.
type MemBackend struct {
	*testing.Stub

	Documents map[string][]byte
}

// NewMemBackend returns an empty in-memory backend.
func NewMemBackend() *MemBackend {
	return &MemBackend{
		Stub:      &testing.Stub{},
		Documents: make(map[string][]byte),
	}
}

// Read implements prefstore.Backend.
func (b *MemBackend) Read(key string) ([]byte, error) {
	b.AddCall("Read", key)
	if err := b.NextErr(); err != nil {
		return nil, err
	}
	data, ok := b.Documents[key]
	if !ok {
		return nil, errors.NotFoundf("document %q", key)
	}
	return append([]byte(nil), data...), nil
}

// Write implements prefstore.Backend.
func (b *MemBackend) Write(key string, data []byte) error {
	b.AddCall("Write", key, data)
	if err := b.NextErr(); err != nil {
		return err
	}
	b.Documents[key] = append([]byte(nil), data...)
	return nil
}

// Remove implements prefstore.Backend.
func (b *MemBackend) Remove(key string) error {
	b.AddCall("Remove", key)
	if err := b.NextErr(); err != nil {
		return err
	}
	delete(b.Documents, key)
	return nil
}

// Erasure is one call made to a RecordingEraser.
type Erasure struct {
	URI   rooturi.URI
	Login string
}

// RecordingEraser is a prefstore.SecretEraser that remembers what it
// was asked to erase. OnErase, if set, is called before recording.
type RecordingEraser struct {
	Erased  []Erasure
	OnErase func(uri rooturi.URI, login string)
}

// Erase implements prefstore.SecretEraser.
func (e *RecordingEraser) Erase(uri rooturi.URI, login string) {
	if e.OnErase != nil {
		e.OnErase(uri, login)
	}
	e.Erased = append(e.Erased, Erasure{URI: uri, Login: login})
}
