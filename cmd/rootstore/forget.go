// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/rootadmin/rootstore/cmd"
)

const forgetDoc = `
Forget a login: its stored password is erased first, then the login,
its service body selection and, if it was the last login, the last
login record are removed.
`

type forgetCommand struct {
	storeCommand

	server string
	login  string
}

func newForgetCommand() cmd.Command {
	return &forgetCommand{}
}

func (c *forgetCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:        "forget",
		Args:        "<server> <login>",
		Purpose:     "forget a login and its stored password",
		Doc:         forgetDoc + serverArgDoc,
		Intersperse: true,
	}
}

func (c *forgetCommand) Init(args []string) (err error) {
	c.server, c.login, err = loginArgs(args)
	return err
}

func (c *forgetCommand) Run(ctx *cmd.Context) error {
	client, err := c.openClient(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer client.Close()
	server := client.CanonicalizeRootURI(c.server)

	if !client.Preferences.HasUser(server, c.login) {
		return errors.NotFoundf("login %q on %s", c.login, server)
	}
	if err := client.Sessions.Forget(server, c.login); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("Forgot login %q on %s.", c.login, server)
	return nil
}

type forgetServerCommand struct {
	storeCommand

	server string
}

func newForgetServerCommand() cmd.Command {
	return &forgetServerCommand{}
}

func (c *forgetServerCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:        "forget-server",
		Args:        "<server>",
		Purpose:     "forget every login of a root server",
		Doc:         serverArgDoc,
		Intersperse: true,
	}
}

func (c *forgetServerCommand) Init(args []string) (err error) {
	c.server, err = serverArgs(args)
	return err
}

func (c *forgetServerCommand) Run(ctx *cmd.Context) error {
	client, err := c.openClient(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer client.Close()
	server := client.CanonicalizeRootURI(c.server)

	users := client.Preferences.Users(server)
	if len(users) == 0 {
		return errors.NotFoundf("logins for %s", server)
	}
	if err := client.Sessions.ForgetServer(server); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("Forgot %d login(s) on %s.", len(users), server)
	return nil
}

type forgetAllCommand struct {
	storeCommand
	cmd.ConfirmationCommandBase
}

func newForgetAllCommand() cmd.Command {
	return &forgetAllCommand{}
}

func (c *forgetAllCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:        "forget-all",
		Purpose:     "forget every login and erase every stored password",
		Intersperse: true,
	}
}

func (c *forgetAllCommand) SetFlags(f *gnuflag.FlagSet) {
	c.storeCommand.SetFlags(f)
	c.ConfirmationCommandBase.SetFlags(f)
}

func (c *forgetAllCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

func (c *forgetAllCommand) Run(ctx *cmd.Context) error {
	client, err := c.openClient(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer client.Close()

	servers := client.Preferences.Servers()
	if len(servers) == 0 {
		ctx.Infof("No logins recorded.")
		return nil
	}
	if c.NeedsConfirmation() {
		ctx.Infof("This will forget every login on %d root server(s) and erase their stored passwords.", len(servers))
		if err := cmd.UserConfirmYes(ctx); err != nil {
			return errors.Annotate(err, "forget-all")
		}
	}
	if err := client.Sessions.ForgetAll(); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("Forgot all logins.")
	return nil
}

type clearPasswordCommand struct {
	storeCommand

	server string
	login  string
}

func newClearPasswordCommand() cmd.Command {
	return &clearPasswordCommand{}
}

func (c *clearPasswordCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:        "clear-password",
		Args:        "<server> <login>",
		Purpose:     "erase the stored password of a login but keep the login",
		Doc:         serverArgDoc,
		Intersperse: true,
	}
}

func (c *clearPasswordCommand) Init(args []string) (err error) {
	c.server, c.login, err = loginArgs(args)
	return err
}

func (c *clearPasswordCommand) Run(ctx *cmd.Context) error {
	client, err := c.openClient(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer client.Close()
	server := client.CanonicalizeRootURI(c.server)

	if !client.Preferences.HasUser(server, c.login) {
		return errors.NotFoundf("login %q on %s", c.login, server)
	}
	client.Sessions.ClearPassword(server, c.login)
	ctx.Infof("Cleared the stored password of %q on %s.", c.login, server)
	return nil
}
