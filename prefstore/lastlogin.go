// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package prefstore

import (
	"github.com/rootadmin/rootstore/core/credential"
	"github.com/rootadmin/rootstore/core/rooturi"
)

// LastLogin returns the most recent successful login, or empty strings
// if none is recorded.
func (s *Store) LastLogin() (rooturi.URI, string) {
	key := s.document().LastLogin
	return key.URI, key.Login
}

// LastLoginKey returns the most recent successful login as a key. It is
// the key that scopes service body selection.
func (s *Store) LastLoginKey() credential.Key {
	return s.document().LastLogin
}

// SetLastLogin records the most recent successful login. The uri is
// canonicalized first; an empty uri removes the record.
func (s *Store) SetLastLogin(uri string, login string) {
	doc := s.document()
	canonical := rooturi.CanonicalizeDefault(uri)
	if canonical == "" {
		doc.LastLogin = credential.Key{}
		return
	}
	doc.LastLogin = credential.NewKey(canonical, login)
}
