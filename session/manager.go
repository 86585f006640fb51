// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package session drives the login lifecycle of the client. A login
// moves from unknown, to known without a secret, to known with a stored
// secret, and back again when it is forgotten or its password cleared.
package session

import (
	"github.com/juju/errors"

	"github.com/rootadmin/rootstore/appmetadata"
	"github.com/rootadmin/rootstore/core/credential"
	corelogger "github.com/rootadmin/rootstore/core/logger"
	"github.com/rootadmin/rootstore/core/rooturi"
	"github.com/rootadmin/rootstore/core/servicebody"
)

// Preferences is the part of the preferences store used by the
// session manager.
type Preferences interface {
	Users(uri rooturi.URI) []string
	AddOrTouch(uri rooturi.URI, login string) bool
	Remove(uri rooturi.URI, login string)
	RemoveAll(uri rooturi.URI)
	ClearLogins() error
	LastLogin() (rooturi.URI, string)
	SetLastLogin(uri string, login string)
	SetSelection(body *servicebody.ServiceBody, selected bool, catalog []servicebody.ServiceBody)
	Save() error
}

// Secrets is the part of the credential vault used by the session
// manager.
type Secrets interface {
	Store(uri rooturi.URI, login string, password string)
	Fetch(uri rooturi.URI, login string) (string, bool)
	HasEntry(uri rooturi.URI, login string) bool
}

// Policy holds the defaults applied when a login is first recorded.
type Policy struct {
	// SelectAllOnFirstLogin selects every editable service body the
	// first time a login is recorded.
	SelectAllOnFirstLogin bool
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{SelectAllOnFirstLogin: true}
}

// Config holds the dependencies of a Manager.
type Config struct {
	Preferences Preferences
	Secrets     Secrets

	// Metadata supplies the default root server. The zero value
	// offers no default.
	Metadata appmetadata.Metadata

	// Policy defaults to DefaultPolicy when nil.
	Policy *Policy

	Logger corelogger.Logger
}

// Validate returns an error if the config cannot be used.
func (config Config) Validate() error {
	if config.Preferences == nil {
		return errors.NotValidf("nil Preferences")
	}
	if config.Secrets == nil {
		return errors.NotValidf("nil Secrets")
	}
	return nil
}

// Manager records, restores and forgets logins.
type Manager struct {
	config Config
	logger corelogger.Logger
	policy Policy
}

// NewManager returns a Manager over the configured stores.
func NewManager(config Config) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if config.Logger == nil {
		config.Logger = corelogger.GetLogger("session")
	}
	policy := DefaultPolicy()
	if config.Policy != nil {
		policy = *config.Policy
	}
	return &Manager{
		config: config,
		logger: config.Logger,
		policy: policy,
	}, nil
}

// Login describes a successful authentication against a root server.
type Login struct {
	// URI is the root server as entered; it is canonicalized.
	URI   string
	Login string

	// Password is kept in secure storage when non-empty. An empty
	// password clears any stored one.
	Password string

	// SSLRequired selects the scheme added to a URI without one.
	SSLRequired bool
}

// Result reports what RecordLogin did.
type Result struct {
	URI            rooturi.URI
	FirstLogin     bool
	PasswordStored bool
}

// RecordLogin records a successful login, stores its password, makes it
// the last login and saves the preferences. On the first login for a
// server, every editable service body in catalog is selected when the
// policy asks for it and the catalog is available.
func (m *Manager) RecordLogin(login Login, catalog servicebody.Catalog) (Result, error) {
	uri := rooturi.Canonicalize(login.URI, login.SSLRequired)
	if err := credential.NewKey(uri, login.Login).Validate(); err != nil {
		return Result{}, errors.Trace(err)
	}
	prefs := m.config.Preferences

	first := prefs.AddOrTouch(uri, login.Login)
	m.config.Secrets.Store(uri, login.Login, login.Password)
	prefs.SetLastLogin(string(uri), login.Login)

	if first && m.policy.SelectAllOnFirstLogin {
		if editable := servicebody.Editable(catalog); len(editable) > 0 {
			prefs.SetSelection(nil, true, editable)
			m.logger.Debugf("selected %d service bodies for new login %q", len(editable), login.Login)
		}
	}
	if err := prefs.Save(); err != nil {
		return Result{}, errors.Annotatef(err, "recording login %q on %s", login.Login, uri)
	}
	m.logger.Infof("recorded login %q on %s", login.Login, uri)
	return Result{
		URI:            uri,
		FirstLogin:     first,
		PasswordStored: m.config.Secrets.HasEntry(uri, login.Login),
	}, nil
}

// ClearPassword erases the stored password of a login while keeping
// the login itself known.
func (m *Manager) ClearPassword(uri rooturi.URI, login string) {
	m.config.Secrets.Store(uri, login, "")
}

// Forget erases the password of a login, forgets the login and saves.
func (m *Manager) Forget(uri rooturi.URI, login string) error {
	m.config.Preferences.Remove(uri, login)
	return errors.Trace(m.config.Preferences.Save())
}

// ForgetServer forgets every login of a root server and saves.
func (m *Manager) ForgetServer(uri rooturi.URI) error {
	m.config.Preferences.RemoveAll(uri)
	return errors.Trace(m.config.Preferences.Save())
}

// ForgetAll forgets every login on every root server.
func (m *Manager) ForgetAll() error {
	return errors.Trace(m.config.Preferences.ClearLogins())
}

// Restored is the login offered when the client starts.
type Restored struct {
	URI   rooturi.URI
	Login string

	// Password is only filled in after the host has authenticated
	// the user.
	Password string

	// HasPassword reports whether a password is stored, whether or
	// not it was released.
	HasPassword bool
}

// Restore returns the last login, if any. Its stored password is only
// released when authenticated is true.
func (m *Manager) Restore(authenticated bool) (Restored, bool) {
	uri, login := m.config.Preferences.LastLogin()
	if uri == "" || login == "" {
		return Restored{}, false
	}
	restored := Restored{
		URI:         uri,
		Login:       login,
		HasPassword: m.config.Secrets.HasEntry(uri, login),
	}
	if authenticated && restored.HasPassword {
		restored.Password, restored.HasPassword = m.config.Secrets.Fetch(uri, login)
	}
	return restored, true
}

// DefaultRootURI returns the server of the last login, falling back to
// the packaged default.
func (m *Manager) DefaultRootURI() rooturi.URI {
	if uri, _ := m.config.Preferences.LastLogin(); uri != "" {
		return uri
	}
	return m.config.Metadata.RootURI()
}

// LoginInfo describes a known login of a root server.
type LoginInfo struct {
	Login       string
	HasPassword bool
}

// Logins returns the known logins of a root server.
func (m *Manager) Logins(uri rooturi.URI) []LoginInfo {
	users := m.config.Preferences.Users(uri)
	if len(users) == 0 {
		return nil
	}
	infos := make([]LoginInfo, len(users))
	for i, user := range users {
		infos[i] = LoginInfo{
			Login:       user,
			HasPassword: m.config.Secrets.HasEntry(uri, user),
		}
	}
	return infos
}
