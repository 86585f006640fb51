// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"os"

	"github.com/rootadmin/rootstore/cmd"
)

const rootstoreDoc = `
rootstore inspects and prunes the logins, stored passwords and service
body selections kept by the client on this device.

State lives in $ROOTSTORE_DATA, or $XDG_DATA_HOME/rootstore, or
~/.local/share/rootstore.
`

// NewRootstoreCommand returns the top level command with every
// subcommand registered.
func NewRootstoreCommand() *cmd.SuperCommand {
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:    "rootstore",
		Purpose: "manage stored root server logins",
		Doc:     rootstoreDoc,
	})
	super.Register(newServersCommand())
	super.Register(newLoginsCommand())
	super.Register(newShowLastLoginCommand())
	super.Register(newDefaultServerCommand())
	super.Register(newSelectionsCommand())
	super.Register(newForgetCommand())
	super.Register(newForgetServerCommand())
	super.Register(newForgetAllCommand())
	super.Register(newClearPasswordCommand())
	super.Register(newCanonicalizeCommand())
	return super
}

func main() {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		os.Exit(2)
	}
	os.Exit(cmd.Main(NewRootstoreCommand(), ctx, os.Args[1:]))
}
