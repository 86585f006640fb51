// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package credential defines the composite key that scopes per-login
// state on a root server.
package credential

import (
	"strings"

	"github.com/juju/errors"

	"github.com/rootadmin/rootstore/core/rooturi"
)

// Key identifies one login on one root server. Keys are comparable and
// may be used directly as map keys.
type Key struct {
	URI   rooturi.URI
	Login string
}

// NewKey returns the key for login on the server at uri. The uri is
// expected to be canonical already.
func NewKey(uri rooturi.URI, login string) Key {
	return Key{URI: uri, Login: login}
}

// IsZero reports whether the key names no server.
func (k Key) IsZero() bool {
	return k.URI == ""
}

// Validate returns an error satisfying errors.NotValid when the key
// lacks a server or a login.
func (k Key) Validate() error {
	if k.URI == "" {
		return errors.NotValidf("empty root server URI")
	}
	if k.Login == "" {
		return errors.NotValidf("empty login for %q", k.URI)
	}
	return nil
}

// loginEscaper keeps "-" out of the login part of an entry name, so the
// last "-" of a name always separates the URI from the login.
var loginEscaper = strings.NewReplacer("%", "%25", "-", "%2D")

// String returns the flat "uri-login" form naming the key's entry in
// secure storage. Any "%" or "-" in the login is percent-escaped, so
// distinct keys always have distinct names.
func (k Key) String() string {
	return string(k.URI) + "-" + loginEscaper.Replace(k.Login)
}
