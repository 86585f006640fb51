// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

/*
Package core holds the concepts and pure logic of the client store's domain:
root server URIs, the composite key of a login, service bodies and the
logging surface.

When adding to core:

  - it's fine to import from any subpackage of "github.com/rootadmin/rootstore/core"
  - but never import from any other subpackage of the module
  - nothing here touches durable storage, secure storage or the network
  - no mutable global state
*/
package core
