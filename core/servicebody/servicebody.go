// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package servicebody describes the organizational units fetched from a
// root server and the session collaborator that supplies them.
package servicebody

import "github.com/juju/collections/set"

// ServiceBody is an organizational scoping unit on a root server.
type ServiceBody struct {
	// ID is the server assigned identifier. Only positive IDs are valid.
	ID int

	// ParentID is the ID of the enclosing service body, or zero.
	ParentID int

	Name        string
	Description string
}

// Valid reports whether the service body has a usable ID.
func (sb ServiceBody) Valid() bool {
	return sb.ID > 0
}

// Catalog is supplied by the network layer for the currently
// authenticated session.
type Catalog interface {
	// Connected reports whether a root server connection is open.
	Connected() bool

	// AdminLoggedIn reports whether the connection is logged in
	// with administrator credentials.
	AdminLoggedIn() bool

	// EditableServiceBodies returns the service bodies the current
	// login may edit, in server order.
	EditableServiceBodies() []ServiceBody
}

// Editable returns the editable service bodies of the catalog, or nil if
// the session is not connected and logged in.
func Editable(catalog Catalog) []ServiceBody {
	if catalog == nil || !catalog.Connected() || !catalog.AdminLoggedIn() {
		return nil
	}
	return catalog.EditableServiceBodies()
}

// IDs returns the set of valid IDs in bodies.
func IDs(bodies []ServiceBody) set.Ints {
	ids := set.NewInts()
	for _, sb := range bodies {
		if sb.Valid() {
			ids.Add(sb.ID)
		}
	}
	return ids
}

// Filter returns the members of bodies whose ID is in ids, keeping the
// order of bodies.
func Filter(bodies []ServiceBody, ids set.Ints) []ServiceBody {
	var result []ServiceBody
	for _, sb := range bodies {
		if ids.Contains(sb.ID) {
			result = append(result, sb)
		}
	}
	return result
}
