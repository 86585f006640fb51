// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/rootadmin/rootstore/cmd"
)

const serversDoc = `
List every root server with at least one known login. The server of the
last login is marked with an asterisk.
`

type serversCommand struct {
	storeCommand
	out cmd.Output
}

func newServersCommand() cmd.Command {
	return &serversCommand{}
}

// ServerInfo is the output of the servers command.
type ServerInfo struct {
	URI       string   `yaml:"uri" json:"uri"`
	Logins    []string `yaml:"logins" json:"logins"`
	LastLogin string   `yaml:"last-login,omitempty" json:"last-login,omitempty"`
}

func (c *serversCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:        "servers",
		Purpose:     "list root servers with known logins",
		Doc:         serversDoc,
		Intersperse: true,
	}
}

func (c *serversCommand) SetFlags(f *gnuflag.FlagSet) {
	c.storeCommand.SetFlags(f)
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
		"tabular": formatServersTabular,
	})
}

func (c *serversCommand) Run(ctx *cmd.Context) error {
	client, err := c.openClient(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer client.Close()

	lastURI, lastLogin := client.Preferences.LastLogin()
	servers := []ServerInfo{}
	for _, uri := range client.Preferences.Servers() {
		info := ServerInfo{
			URI:    string(uri),
			Logins: client.Preferences.Users(uri),
		}
		if uri == lastURI {
			info.LastLogin = lastLogin
		}
		servers = append(servers, info)
	}
	if len(servers) == 0 && c.out.Name() == "tabular" {
		ctx.Infof("No logins recorded.")
		return nil
	}
	return c.out.Write(ctx, servers)
}

func formatServersTabular(writer io.Writer, value any) error {
	servers, ok := value.([]ServerInfo)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", servers, value)
	}
	tw := cmd.TabWriter(writer)
	print := func(values ...string) {
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	print("SERVER", "LOGINS")
	for _, server := range servers {
		name := server.URI
		if server.LastLogin != "" {
			name += "*"
		}
		print(name, strings.Join(server.Logins, ","))
	}
	return errors.Trace(tw.Flush())
}

const loginsDoc = `
List the known logins of a root server, whether a password is stored
for each, and which was used last.

Examples:
    rootstore logins example.org/main_server
`

type loginsCommand struct {
	storeCommand
	out cmd.Output

	server string
}

func newLoginsCommand() cmd.Command {
	return &loginsCommand{}
}

// LoginInfo is the output of the logins command.
type LoginInfo struct {
	Login          string `yaml:"login" json:"login"`
	PasswordStored bool   `yaml:"password-stored" json:"password-stored"`
	LastLogin      bool   `yaml:"last-login,omitempty" json:"last-login,omitempty"`
}

func (c *loginsCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:        "logins",
		Args:        "<server>",
		Purpose:     "list the known logins of a root server",
		Doc:         loginsDoc + serverArgDoc,
		Intersperse: true,
	}
}

func (c *loginsCommand) SetFlags(f *gnuflag.FlagSet) {
	c.storeCommand.SetFlags(f)
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
		"tabular": formatLoginsTabular,
	})
}

func (c *loginsCommand) Init(args []string) (err error) {
	c.server, err = serverArgs(args)
	return err
}

func (c *loginsCommand) Run(ctx *cmd.Context) error {
	client, err := c.openClient(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer client.Close()
	server := client.CanonicalizeRootURI(c.server)

	known := client.Sessions.Logins(server)
	if len(known) == 0 {
		return errors.NotFoundf("logins for %s", server)
	}
	lastURI, lastLogin := client.Preferences.LastLogin()
	logins := make([]LoginInfo, len(known))
	for i, info := range known {
		logins[i] = LoginInfo{
			Login:          info.Login,
			PasswordStored: info.HasPassword,
			LastLogin:      lastURI == server && lastLogin == info.Login,
		}
	}
	return c.out.Write(ctx, logins)
}

func formatLoginsTabular(writer io.Writer, value any) error {
	logins, ok := value.([]LoginInfo)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", logins, value)
	}
	tw := cmd.TabWriter(writer)
	print := func(values ...string) {
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	print("LOGIN", "PASSWORD")
	for _, login := range logins {
		name := login.Login
		if login.LastLogin {
			name += "*"
		}
		password := "-"
		if login.PasswordStored {
			password = "stored"
		}
		print(name, password)
	}
	return errors.Trace(tw.Flush())
}

type selectionsCommand struct {
	storeCommand
	out cmd.Output

	server string
	login  string
}

func newSelectionsCommand() cmd.Command {
	return &selectionsCommand{}
}

func (c *selectionsCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:        "selections",
		Args:        "<server> <login>",
		Purpose:     "show the selected service body IDs of a login",
		Doc:         serverArgDoc,
		Intersperse: true,
	}
}

func (c *selectionsCommand) SetFlags(f *gnuflag.FlagSet) {
	c.storeCommand.SetFlags(f)
	c.out.AddFlags(f, "yaml", cmd.DefaultFormatters)
}

func (c *selectionsCommand) Init(args []string) (err error) {
	c.server, c.login, err = loginArgs(args)
	return err
}

func (c *selectionsCommand) Run(ctx *cmd.Context) error {
	client, err := c.openClient(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer client.Close()
	server := client.CanonicalizeRootURI(c.server)

	if !client.Preferences.HasUser(server, c.login) {
		return errors.NotFoundf("login %q on %s", c.login, server)
	}
	ids := client.Preferences.SelectedIDs(server, c.login)
	if ids == nil {
		ids = []int{}
	}
	return c.out.Write(ctx, ids)
}
