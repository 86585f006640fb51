// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package vault keeps login passwords in secure storage. The vault is
// only usable while the device supports secure storage; otherwise it
// behaves as permanently empty. No vault operation ever fails from the
// caller's point of view: storage problems are logged and read as "no
// secret".
package vault

import (
	"github.com/juju/errors"

	"github.com/rootadmin/rootstore/core/credential"
	corelogger "github.com/rootadmin/rootstore/core/logger"
	"github.com/rootadmin/rootstore/core/rooturi"
)

// SecureStorage is the device facility holding secrets, addressed by
// entry name.
type SecureStorage interface {
	// Get returns the secret stored under name, or an error
	// satisfying errors.NotFound.
	Get(name string) (string, error)

	// Set stores secret under name, replacing any existing entry.
	Set(name, secret string) error

	// Delete removes the entry. Deleting a missing entry is not an
	// error.
	Delete(name string) error
}

// Capability reports whether secure storage may be used. The answer can
// change at runtime, for example when biometric enrollment is removed,
// so it is asked afresh on every operation.
type Capability interface {
	SupportsSecureStorage() bool
}

// CapabilityFunc adapts a function to the Capability interface.
type CapabilityFunc func() bool

// SupportsSecureStorage implements Capability.
func (f CapabilityFunc) SupportsSecureStorage() bool {
	return f()
}

// KnownLogins reports whether a login is recorded for a root server.
type KnownLogins interface {
	HasUser(uri rooturi.URI, login string) bool
}

// Config holds the dependencies of a Vault.
type Config struct {
	Storage    SecureStorage
	Capability Capability
	Logins     KnownLogins

	// Metrics, if set, counts vault operations.
	Metrics *Metrics

	// Logger defaults to the package logger.
	Logger corelogger.Logger
}

// Validate returns an error if the config cannot be used.
func (config Config) Validate() error {
	if config.Storage == nil {
		return errors.NotValidf("nil Storage")
	}
	if config.Capability == nil {
		return errors.NotValidf("nil Capability")
	}
	if config.Logins == nil {
		return errors.NotValidf("nil Logins")
	}
	return nil
}

// Vault stores, fetches and erases login passwords.
type Vault struct {
	config Config
	logger corelogger.Logger
}

// NewVault returns a vault over the configured secure storage.
func NewVault(config Config) (*Vault, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if config.Logger == nil {
		config.Logger = corelogger.GetLogger("vault")
	}
	return &Vault{
		config: config,
		logger: config.Logger,
	}, nil
}

// SupportsSecureStorage reports whether secrets can currently be kept.
func (v *Vault) SupportsSecureStorage() bool {
	return v.config.Capability.SupportsSecureStorage()
}

// Store replaces the password of login on the root server at uri. The
// existing entry is always erased first, so an empty password clears the
// stored one even when secure storage is unavailable. A new password is
// kept only when secure storage is available.
func (v *Vault) Store(uri rooturi.URI, login string, password string) {
	v.Erase(uri, login)
	if password == "" {
		return
	}
	if !v.SupportsSecureStorage() {
		v.logger.Debugf("secure storage unavailable, not storing password for %q", login)
		v.config.Metrics.observe(opStore, outcomeUnavailable)
		return
	}
	name := credential.NewKey(uri, login).String()
	if err := v.config.Storage.Set(name, password); err != nil {
		v.logger.Warningf("cannot store password for %q on %s: %v", login, uri, err)
		v.config.Metrics.observe(opStore, outcomeFailed)
		return
	}
	v.config.Metrics.observe(opStore, outcomeStored)
}

// Fetch returns the password of login on the root server at uri. It
// reports false if secure storage is unavailable or holds no password.
func (v *Vault) Fetch(uri rooturi.URI, login string) (string, bool) {
	if !v.SupportsSecureStorage() {
		v.config.Metrics.observe(opFetch, outcomeUnavailable)
		return "", false
	}
	password, err := v.config.Storage.Get(credential.NewKey(uri, login).String())
	if errors.Is(err, errors.NotFound) || (err == nil && password == "") {
		v.config.Metrics.observe(opFetch, outcomeMissing)
		return "", false
	}
	if err != nil {
		v.logger.Warningf("cannot fetch password for %q on %s: %v", login, uri, err)
		v.config.Metrics.observe(opFetch, outcomeFailed)
		return "", false
	}
	v.config.Metrics.observe(opFetch, outcomeFetched)
	return password, true
}

// HasEntry reports whether a password is stored for a login that is
// known for the root server at uri.
func (v *Vault) HasEntry(uri rooturi.URI, login string) bool {
	if !v.SupportsSecureStorage() {
		return false
	}
	if !v.config.Logins.HasUser(uri, login) {
		return false
	}
	_, ok := v.Fetch(uri, login)
	return ok
}

// Erase removes the password of login on the root server at uri. It
// does not depend on secure storage being available.
func (v *Vault) Erase(uri rooturi.URI, login string) {
	if err := v.config.Storage.Delete(credential.NewKey(uri, login).String()); err != nil {
		v.logger.Warningf("cannot erase password for %q on %s: %v", login, uri, err)
		v.config.Metrics.observe(opErase, outcomeFailed)
		return
	}
	v.config.Metrics.observe(opErase, outcomeErased)
}
