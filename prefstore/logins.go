// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package prefstore

import (
	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/naturalsort"

	"github.com/rootadmin/rootstore/core/credential"
	"github.com/rootadmin/rootstore/core/rooturi"
)

// Users returns the known logins of the root server at uri, in the
// order they were first recorded.
func (s *Store) Users(uri rooturi.URI) []string {
	users := s.document().StoredLogins[uri]
	if len(users) == 0 {
		return nil
	}
	return append([]string(nil), users...)
}

// HasUser reports whether login is known for the root server at uri.
func (s *Store) HasUser(uri rooturi.URI, login string) bool {
	for _, user := range s.document().StoredLogins[uri] {
		if user == login {
			return true
		}
	}
	return false
}

// Servers returns every root server with at least one known login, in
// natural order.
func (s *Store) Servers() []rooturi.URI {
	doc := s.document()
	names := make([]string, 0, len(doc.StoredLogins))
	for uri := range doc.StoredLogins {
		names = append(names, string(uri))
	}
	naturalsort.Sort(names)
	servers := make([]rooturi.URI, len(names))
	for i, name := range names {
		servers[i] = rooturi.URI(name)
	}
	return servers
}

// AddOrTouch records login for the root server at uri. It returns true
// only the first time the login is recorded; callers use that to run
// one-time setup for a new login.
func (s *Store) AddOrTouch(uri rooturi.URI, login string) bool {
	if err := credential.NewKey(uri, login).Validate(); err != nil {
		s.logger.Debugf("not recording login: %v", err)
		return false
	}
	if s.HasUser(uri, login) {
		return false
	}
	doc := s.document()
	doc.StoredLogins[uri] = append(doc.StoredLogins[uri], login)
	s.logger.Debugf("recorded first login %q for %s", login, uri)
	return true
}

// Remove forgets login on the root server at uri. The stored password
// is erased before the login record is dropped.
func (s *Store) Remove(uri rooturi.URI, login string) {
	s.removeLogins(uri, []string{login})
}

// RemoveAll forgets every login on the root server at uri. Every stored
// password is erased before any login record is dropped.
func (s *Store) RemoveAll(uri rooturi.URI) {
	s.removeLogins(uri, s.Users(uri))
}

func (s *Store) removeLogins(uri rooturi.URI, logins []string) {
	for _, login := range logins {
		s.config.Secrets.Erase(uri, login)
	}

	doc := s.document()
	remaining := doc.StoredLogins[uri][:0:0]
	for _, user := range doc.StoredLogins[uri] {
		if !contains(logins, user) {
			remaining = append(remaining, user)
		}
	}
	if len(remaining) == 0 {
		delete(doc.StoredLogins, uri)
	} else {
		doc.StoredLogins[uri] = remaining
	}

	for _, login := range logins {
		key := credential.NewKey(uri, login)
		delete(doc.Selections, key)
		if doc.LastLogin == key {
			doc.LastLogin = credential.Key{}
		}
	}
}

// ClearLogins forgets every login on every root server, erasing all
// stored passwords first. The emptied document is saved and the store
// invalidated, so the next access reads back exactly what was written.
func (s *Store) ClearLogins() error {
	for _, uri := range s.Servers() {
		s.RemoveAll(uri)
	}
	doc := s.document()
	doc.Selections = make(map[credential.Key]set.Ints)
	doc.LastLogin = credential.Key{}
	if err := s.Save(); err != nil {
		return errors.Trace(err)
	}
	s.Invalidate()
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
