// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package prefstore

import corelogger "github.com/rootadmin/rootstore/core/logger"

var MarshalDocument = marshalDocument

func UnmarshalDocument(data []byte, logger corelogger.Logger) (*Document, error) {
	return unmarshalDocument(data, logger)
}

// Document returns the in-memory document, loading it if needed.
func (s *Store) Document() *Document {
	return s.document()
}
