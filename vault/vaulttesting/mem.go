// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package vaulttesting

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
)

// MemStorage is an in-memory vault.SecureStorage. Calls are recorded on
// the embedded stub, whose queued errors are returned in call order.
type MemStorage struct {
	*testing.Stub

	Secrets map[string]string
}

// NewMemStorage returns empty secure storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		Stub:    &testing.Stub{},
		Secrets: make(map[string]string),
	}
}

// Get implements vault.SecureStorage.
func (m *MemStorage) Get(name string) (string, error) {
	m.AddCall("Get", name)
	if err := m.NextErr(); err != nil {
		return "", err
	}
	secret, ok := m.Secrets[name]
	if !ok {
		return "", errors.NotFoundf("secret %q", name)
	}
	return secret, nil
}

// Set implements vault.SecureStorage.
func (m *MemStorage) Set(name, secret string) error {
	m.AddCall("Set", name, secret)
	if err := m.NextErr(); err != nil {
		return err
	}
	m.Secrets[name] = secret
	return nil
}

// Delete implements vault.SecureStorage.
func (m *MemStorage) Delete(name string) error {
	m.AddCall("Delete", name)
	if err := m.NextErr(); err != nil {
		return err
	}
	delete(m.Secrets, name)
	return nil
}

// Capability is a settable vault.Capability that counts how often it
// was asked.
type Capability struct {
	Supported bool
	Calls     int
}

// SupportsSecureStorage implements vault.Capability.
func (c *Capability) SupportsSecureStorage() bool {
	c.Calls++
	return c.Supported
}
