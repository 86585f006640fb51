// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/rootadmin/rootstore/cmd"
	"github.com/rootadmin/rootstore/core/rooturi"
)

type showLastLoginCommand struct {
	storeCommand
	out cmd.Output
}

func newShowLastLoginCommand() cmd.Command {
	return &showLastLoginCommand{}
}

// LastLoginInfo is the output of the show-last-login command.
type LastLoginInfo struct {
	URI            string `yaml:"uri" json:"uri"`
	Login          string `yaml:"login" json:"login"`
	PasswordStored bool   `yaml:"password-stored" json:"password-stored"`
}

func (c *showLastLoginCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:        "show-last-login",
		Purpose:     "show the login restored at startup",
		Intersperse: true,
	}
}

func (c *showLastLoginCommand) SetFlags(f *gnuflag.FlagSet) {
	c.storeCommand.SetFlags(f)
	c.out.AddFlags(f, "yaml", cmd.DefaultFormatters)
}

func (c *showLastLoginCommand) Run(ctx *cmd.Context) error {
	client, err := c.openClient(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer client.Close()

	// Passwords are never printed, so nothing is released.
	restored, ok := client.Sessions.Restore(false)
	if !ok {
		ctx.Infof("No last login.")
		return nil
	}
	return c.out.Write(ctx, LastLoginInfo{
		URI:            string(restored.URI),
		Login:          restored.Login,
		PasswordStored: restored.HasPassword,
	})
}

type defaultServerCommand struct {
	storeCommand
}

func newDefaultServerCommand() cmd.Command {
	return &defaultServerCommand{}
}

func (c *defaultServerCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:        "default-server",
		Purpose:     "print the root server offered at startup",
		Doc:         "The server of the last login, or else the packaged default.",
		Intersperse: true,
	}
}

func (c *defaultServerCommand) Run(ctx *cmd.Context) error {
	client, err := c.openClient(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer client.Close()

	uri := client.DefaultRootURI()
	if uri == "" {
		return errors.NotFoundf("default root server")
	}
	fmt.Fprintln(ctx.Stdout, uri)
	return nil
}

type canonicalizeCommand struct {
	cmd.CommandBase
	noSSL bool
	raw   string
}

func newCanonicalizeCommand() cmd.Command {
	return &canonicalizeCommand{}
}

func (c *canonicalizeCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:        "canonicalize",
		Args:        "<uri>",
		Purpose:     "print the canonical form of a root server URI",
		Intersperse: true,
	}
}

func (c *canonicalizeCommand) SetFlags(f *gnuflag.FlagSet) {
	f.BoolVar(&c.noSSL, "no-ssl", false, "Add http:// rather than https:// to URIs without a scheme")
}

func (c *canonicalizeCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no URI specified")
	}
	c.raw = args[0]
	return cmd.CheckEmpty(args[1:])
}

func (c *canonicalizeCommand) Run(ctx *cmd.Context) error {
	uri := rooturi.Canonicalize(c.raw, !c.noSSL)
	if uri == "" {
		return errors.NotValidf("root server %q", c.raw)
	}
	fmt.Fprintln(ctx.Stdout, uri)
	return nil
}
