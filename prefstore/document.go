// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package prefstore

import (
	"sort"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"github.com/rootadmin/rootstore/core/credential"
	corelogger "github.com/rootadmin/rootstore/core/logger"
	"github.com/rootadmin/rootstore/core/rooturi"
)

// Document keys. Each names one independently decoded section of the
// preferences document.
const (
	storedLoginsKey          = "stored-logins"
	lastLoginKey             = "last-login"
	selectedServiceBodiesKey = "selected-service-bodies"
)

// Document is the in-memory form of the preferences document.
type Document struct {
	// StoredLogins holds the known logins of each root server in
	// the order they were first recorded.
	StoredLogins map[rooturi.URI][]string

	// LastLogin is the most recent successful login, or the zero
	// key when unset.
	LastLogin credential.Key

	// Selections holds the selected service body IDs of each login.
	// No entry maps to an empty set.
	Selections map[credential.Key]set.Ints
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		StoredLogins: make(map[rooturi.URI][]string),
		Selections:   make(map[credential.Key]set.Ints),
	}
}

type lastLoginSerialization struct {
	URI   string `yaml:"uri"`
	Login string `yaml:"login"`
}

type selectionSerialization struct {
	URI   string `yaml:"uri"`
	Login string `yaml:"login"`
	IDs   []int  `yaml:"ids,flow"`
}

type documentSerialization struct {
	StoredLogins          map[string][]string      `yaml:"stored-logins,omitempty"`
	LastLogin             *lastLoginSerialization  `yaml:"last-login,omitempty"`
	SelectedServiceBodies []selectionSerialization `yaml:"selected-service-bodies,omitempty"`
}

// marshalDocument renders doc as YAML. Output is deterministic.
func marshalDocument(doc *Document) ([]byte, error) {
	var out documentSerialization
	if len(doc.StoredLogins) > 0 {
		out.StoredLogins = make(map[string][]string, len(doc.StoredLogins))
		for uri, logins := range doc.StoredLogins {
			out.StoredLogins[string(uri)] = append([]string(nil), logins...)
		}
	}
	if !doc.LastLogin.IsZero() {
		out.LastLogin = &lastLoginSerialization{
			URI:   string(doc.LastLogin.URI),
			Login: doc.LastLogin.Login,
		}
	}
	for key, ids := range doc.Selections {
		if ids.IsEmpty() {
			continue
		}
		out.SelectedServiceBodies = append(out.SelectedServiceBodies, selectionSerialization{
			URI:   string(key.URI),
			Login: key.Login,
			IDs:   ids.SortedValues(),
		})
	}
	sort.Slice(out.SelectedServiceBodies, func(i, j int) bool {
		a, b := out.SelectedServiceBodies[i], out.SelectedServiceBodies[j]
		if a.URI != b.URI {
			return a.URI < b.URI
		}
		return a.Login < b.Login
	})
	data, err := yaml.Marshal(out)
	return data, errors.Trace(err)
}

// unmarshalDocument parses data leniently. A document that cannot be
// parsed at all yields an empty document and an error; a section with
// the wrong shape is dropped with a warning and the rest is kept.
func unmarshalDocument(data []byte, logger corelogger.Logger) (*Document, error) {
	doc := NewDocument()
	var sections map[string]yaml.Node
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return doc, errors.Annotate(err, "cannot parse preferences")
	}

	if node, ok := sections[storedLoginsKey]; ok {
		var logins map[string][]string
		if err := node.Decode(&logins); err != nil {
			logger.Warningf("ignoring malformed %q: %v", storedLoginsKey, err)
		}
		for uri, users := range logins {
			if uri == "" {
				continue
			}
			var kept []string
			for _, user := range users {
				kept = appendUnique(kept, user)
			}
			if len(kept) > 0 {
				doc.StoredLogins[rooturi.URI(uri)] = kept
			}
		}
	}

	if node, ok := sections[lastLoginKey]; ok {
		var last lastLoginSerialization
		if err := node.Decode(&last); err != nil {
			logger.Warningf("ignoring malformed %q: %v", lastLoginKey, err)
		} else if last.URI != "" {
			doc.LastLogin = credential.NewKey(rooturi.URI(last.URI), last.Login)
		}
	}

	if node, ok := sections[selectedServiceBodiesKey]; ok {
		var selections []selectionSerialization
		if err := node.Decode(&selections); err != nil {
			logger.Warningf("ignoring malformed %q: %v", selectedServiceBodiesKey, err)
		}
		for _, sel := range selections {
			if sel.URI == "" {
				continue
			}
			ids := set.NewInts()
			for _, id := range sel.IDs {
				if id > 0 {
					ids.Add(id)
				}
			}
			if ids.IsEmpty() {
				continue
			}
			key := credential.NewKey(rooturi.URI(sel.URI), sel.Login)
			if existing, ok := doc.Selections[key]; ok {
				ids = ids.Union(existing)
			}
			doc.Selections[key] = ids
		}
	}
	return doc, nil
}

// appendUnique appends s to list unless it is empty or already present.
func appendUnique(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
