// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package rootstore assembles the client credential and preference
// store: the preferences document, the credential vault over secure
// storage and the login session manager.
package rootstore

import (
	"io"
	"os"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/rootadmin/rootstore/appmetadata"
	corelogger "github.com/rootadmin/rootstore/core/logger"
	"github.com/rootadmin/rootstore/core/rooturi"
	"github.com/rootadmin/rootstore/osenv"
	"github.com/rootadmin/rootstore/prefstore"
	"github.com/rootadmin/rootstore/session"
	"github.com/rootadmin/rootstore/vault"
	"github.com/rootadmin/rootstore/vault/filevault"
)

var logger = corelogger.GetLogger("rootstore")

// BackendKind names a durable settings facility for preferences.
type BackendKind string

const (
	// FileBackend keeps preferences in a YAML file.
	FileBackend BackendKind = "file"

	// SQLiteBackend keeps preferences in a sqlite settings database.
	SQLiteBackend BackendKind = "sqlite"
)

// Config describes how to open a Client. Only Capability is required.
type Config struct {
	// DataDir holds all client state. It defaults to osenv.DataHome.
	DataDir string

	// Backend selects the durable settings facility. It defaults to
	// FileBackend and is ignored when Settings is set.
	Backend BackendKind

	// Settings, if set, is used instead of a backend under DataDir.
	Settings prefstore.Backend

	// SecureStorage, if set, is used instead of the encrypted file
	// under DataDir.
	SecureStorage vault.SecureStorage

	// Capability reports whether the device may keep secrets.
	Capability vault.Capability

	// Metadata, if set, replaces the packaged application metadata.
	Metadata *appmetadata.Metadata

	// Metrics, if set, counts vault operations.
	Metrics *vault.Metrics

	SelectionPolicy *prefstore.Policy
	SessionPolicy   *session.Policy

	// Clock is used when retrying preference writes.
	Clock clock.Clock
}

// Validate returns an error if the config cannot be used.
func (config Config) Validate() error {
	if config.Capability == nil {
		return errors.NotValidf("nil Capability")
	}
	switch config.Backend {
	case "", FileBackend, SQLiteBackend:
	default:
		return errors.NotValidf("backend %q", config.Backend)
	}
	return nil
}

// Client is an open credential and preference store.
type Client struct {
	Preferences *prefstore.Store
	Vault       *vault.Vault
	Sessions    *session.Manager

	metadata appmetadata.Metadata
	closers  []io.Closer
}

// Open wires a Client from config. The preferences document is not
// read until first used.
func Open(config Config) (_ *Client, err error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if loggingConfig := os.Getenv(osenv.LoggingConfigEnvKey); loggingConfig != "" {
		if err := loggo.ConfigureLoggers(loggingConfig); err != nil {
			logger.Warningf("ignoring %s: %v", osenv.LoggingConfigEnvKey, err)
		}
	}
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = osenv.DataHome()
	}
	if dataDir == "" && (config.Settings == nil || config.SecureStorage == nil) {
		return nil, errors.NotValidf("empty data directory")
	}

	client := &Client{}
	defer func() {
		if err != nil {
			_ = client.Close()
		}
	}()

	settings := config.Settings
	if settings == nil {
		settings, err = client.openSettings(dataDir, config.Backend)
		if err != nil {
			return nil, errors.Trace(err)
		}
	}

	storage := config.SecureStorage
	if storage == nil {
		storage, err = filevault.Open(filevault.Config{
			Path:    osenv.SecureStoragePath(dataDir),
			KeyPath: osenv.MasterKeyPath(dataDir),
		})
		if err != nil {
			return nil, errors.Trace(err)
		}
	}

	metadata := appmetadata.Default()
	if config.Metadata != nil {
		metadata = *config.Metadata
	} else if metadata, err = appmetadata.Read(osenv.MetadataPath(dataDir)); err != nil {
		return nil, errors.Trace(err)
	}

	// The vault asks the store which logins are known and the store
	// asks the vault to erase secrets, so the vault sees the store
	// through a late-bound view.
	logins := &knownLogins{}
	client.Vault, err = vault.NewVault(vault.Config{
		Storage:    storage,
		Capability: config.Capability,
		Logins:     logins,
		Metrics:    config.Metrics,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	client.Preferences, err = prefstore.NewStore(prefstore.Config{
		Backend: settings,
		Secrets: client.Vault,
		Policy:  config.SelectionPolicy,
		Clock:   config.Clock,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	logins.store = client.Preferences
	client.metadata = metadata

	client.Sessions, err = session.NewManager(session.Config{
		Preferences: client.Preferences,
		Secrets:     client.Vault,
		Metadata:    metadata,
		Policy:      config.SessionPolicy,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	logger.Debugf("opened client store in %q", dataDir)
	return client, nil
}

func (c *Client) openSettings(dataDir string, kind BackendKind) (prefstore.Backend, error) {
	if kind != SQLiteBackend {
		return prefstore.NewFileBackend(dataDir), nil
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, errors.Annotate(err, "cannot create data directory")
	}
	backend, err := prefstore.OpenSQLiteBackend(osenv.SettingsDatabasePath(dataDir))
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.closers = append(c.closers, backend)
	return backend, nil
}

// DefaultRootURI returns the root server offered at startup.
func (c *Client) DefaultRootURI() rooturi.URI {
	return c.Sessions.DefaultRootURI()
}

// CanonicalizeRootURI canonicalizes a root server address entered by
// the user, adding the scheme the application metadata asks for when
// none is given.
func (c *Client) CanonicalizeRootURI(raw string) rooturi.URI {
	return rooturi.Canonicalize(raw, c.metadata.SSLRequired)
}

// Close releases the resources held by the client. Unsaved preference
// changes are discarded.
func (c *Client) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return errors.Trace(firstErr)
}

type knownLogins struct {
	store *prefstore.Store
}

func (l *knownLogins) HasUser(uri rooturi.URI, login string) bool {
	if l.store == nil {
		return false
	}
	return l.store.HasUser(uri, login)
}
