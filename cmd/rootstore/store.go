// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/rootadmin/rootstore"
	"github.com/rootadmin/rootstore/appmetadata"
	"github.com/rootadmin/rootstore/cmd"
	"github.com/rootadmin/rootstore/vault"
	"github.com/rootadmin/rootstore/vault/hashivault"
)

const serverArgDoc = `
A root server given without a scheme gets https:// unless the
application metadata sets ssl-required = false, in which case it gets
http://. An explicit http:// or https:// is always kept.
`

// storeCommand is embedded by commands that open the client store.
type storeCommand struct {
	cmd.CommandBase

	dataDir     string
	backend     string
	metadata    cmd.FileVar
	vaultAddr   string
	vaultMount  string
	vaultPrefix string
}

// SetFlags adds the flags locating the client store.
func (c *storeCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.dataDir, "data-dir", "", "Directory holding client state")
	f.StringVar(&c.backend, "backend", string(rootstore.FileBackend), "Preferences backend (file|sqlite)")
	f.Var(&c.metadata, "metadata", "Application metadata file")
	f.StringVar(&c.vaultAddr, "vault-addr", "", "Keep passwords in the HashiCorp Vault at this address")
	f.StringVar(&c.vaultMount, "vault-mount", "", "KV v2 mount path in Vault")
	f.StringVar(&c.vaultPrefix, "vault-prefix", "", "Path prefix of entries in Vault")
}

// openClient opens the client store described by the flags.
func (c *storeCommand) openClient(ctx *cmd.Context) (*rootstore.Client, error) {
	config := rootstore.Config{
		Backend: rootstore.BackendKind(c.backend),
		// The command line runs as the owner of the data
		// directory, who may always read its secrets.
		Capability: vault.CapabilityFunc(func() bool { return true }),
	}
	if c.dataDir != "" {
		config.DataDir = ctx.AbsPath(c.dataDir)
	}
	if c.metadata.Path != "" {
		data, err := c.metadata.Read(ctx)
		if err != nil {
			return nil, errors.Annotate(err, "cannot read metadata")
		}
		md, err := appmetadata.Parse(data)
		if err != nil {
			return nil, errors.Trace(err)
		}
		config.Metadata = &md
	}
	if c.vaultAddr != "" {
		storage, err := hashivault.New(hashivault.Config{
			Address:   c.vaultAddr,
			MountPath: c.vaultMount,
			Prefix:    c.vaultPrefix,
		})
		if err != nil {
			return nil, errors.Trace(err)
		}
		config.SecureStorage = storage
	}
	client, err := rootstore.Open(config)
	if err != nil {
		return nil, errors.Annotate(err, "cannot open client store")
	}
	return client, nil
}

// serverArg checks a root server given on the command line. It is
// canonicalized once the client store is open, because the scheme added
// to an address without one comes from the application metadata.
func serverArg(arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return "", errors.NotValidf("root server %q", arg)
	}
	return arg, nil
}

// loginArgs parses the "<server> <login>" positional arguments.
func loginArgs(args []string) (string, string, error) {
	switch len(args) {
	case 0:
		return "", "", errors.New("no root server specified")
	case 1:
		return "", "", errors.New("no login specified")
	case 2:
	default:
		return "", "", cmd.CheckEmpty(args[2:])
	}
	server, err := serverArg(args[0])
	if err != nil {
		return "", "", errors.Trace(err)
	}
	if args[1] == "" {
		return "", "", errors.New("no login specified")
	}
	return server, args[1], nil
}

// serverArgs parses the "<server>" positional argument.
func serverArgs(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", errors.New("no root server specified")
	case 1:
	default:
		return "", cmd.CheckEmpty(args[1:])
	}
	return serverArg(args[0])
}
