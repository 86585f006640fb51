// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package prefstore

import (
	"github.com/juju/collections/set"

	"github.com/rootadmin/rootstore/core/credential"
	"github.com/rootadmin/rootstore/core/rooturi"
	"github.com/rootadmin/rootstore/core/servicebody"
)

// SelectedServiceBodies returns the members of catalog selected by the
// last login, in catalog order. When the policy says so, the only
// member of a single-item catalog is always selected.
func (s *Store) SelectedServiceBodies(catalog []servicebody.ServiceBody) []servicebody.ServiceBody {
	if s.singleBody(catalog) {
		return []servicebody.ServiceBody{catalog[0]}
	}
	ids := s.document().Selections[s.LastLoginKey()]
	if ids.IsEmpty() {
		return nil
	}
	return servicebody.Filter(catalog, ids)
}

// IsSelected reports whether body is among the selected service bodies.
func (s *Store) IsSelected(body servicebody.ServiceBody, catalog []servicebody.ServiceBody) bool {
	for _, sb := range s.SelectedServiceBodies(catalog) {
		if sb.ID == body.ID {
			return true
		}
	}
	return false
}

// SelectedIDs returns the stored selection of any login in ascending
// order, without reference to a catalog.
func (s *Store) SelectedIDs(uri rooturi.URI, login string) []int {
	ids, ok := s.document().Selections[credential.NewKey(uri, login)]
	if !ok {
		return nil
	}
	return ids.SortedValues()
}

// SetSelection changes the selection of the last login. A nil body
// selects every member of catalog, or clears the selection when
// selected is false. Otherwise only body is added or removed.
//
// With a single-item catalog under the override policy, the stored
// selection is pinned to body whatever selected says.
func (s *Store) SetSelection(body *servicebody.ServiceBody, selected bool, catalog []servicebody.ServiceBody) {
	key := s.LastLoginKey()
	if key.IsZero() {
		s.logger.Debugf("no current login, not changing service body selection")
		return
	}

	if s.singleBody(catalog) && body != nil && body.Valid() {
		s.setSelection(key, set.NewInts(body.ID))
		return
	}

	if body == nil {
		if selected {
			s.setSelection(key, servicebody.IDs(catalog))
		} else {
			s.setSelection(key, nil)
		}
		return
	}
	if !body.Valid() {
		s.logger.Debugf("ignoring service body with invalid ID %d", body.ID)
		return
	}

	ids := set.NewInts()
	if stored, ok := s.document().Selections[key]; ok {
		ids = ids.Union(stored)
	}
	if selected {
		ids.Add(body.ID)
	} else {
		ids.Remove(body.ID)
	}
	s.setSelection(key, ids)
}

// setSelection stores ids for key. An empty set removes the entry.
func (s *Store) setSelection(key credential.Key, ids set.Ints) {
	doc := s.document()
	if ids.IsEmpty() {
		delete(doc.Selections, key)
		return
	}
	doc.Selections[key] = ids
}

func (s *Store) singleBody(catalog []servicebody.ServiceBody) bool {
	return s.policy.SingleBodyOverride && len(catalog) == 1
}
