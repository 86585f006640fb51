// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd_test

import (
	"fmt"
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/rootadmin/rootstore/cmd"
	"github.com/rootadmin/rootstore/cmd/cmdtesting"
)

// TestCommand is used by several different tests.
type TestCommand struct {
	cmd.CommandBase
	Name    string
	Option  string
	Minimal bool
}

func (c *TestCommand) Info() *cmd.Info {
	if c.Minimal {
		return &cmd.Info{Name: c.Name}
	}
	return &cmd.Info{
		Name:    c.Name,
		Args:    "<something>",
		Purpose: c.Name + " the thing",
		Doc:     c.Name + "-doc",
	}
}

func (c *TestCommand) SetFlags(f *gnuflag.FlagSet) {
	if !c.Minimal {
		f.StringVar(&c.Option, "option", "", "option-doc")
	}
}

func (c *TestCommand) Run(ctx *cmd.Context) error {
	switch c.Option {
	case "error":
		return errors.New("BAM!")
	case "silent-error":
		return cmd.ErrSilent
	case "echo":
		_, err := io.Copy(ctx.Stdout, ctx.Stdin)
		return err
	default:
		fmt.Fprintln(ctx.Stdout, c.Option)
	}
	return nil
}

var minimalHelp = "usage: verb\n"

var fullHelp = `usage: verb <something>
purpose: verb the thing

options:
--option (= "")
    option-doc

verb-doc
`

type commandSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&commandSuite{})

func (*commandSuite) TestHelp(c *gc.C) {
	c.Check(cmdtesting.HelpText(c, &TestCommand{Name: "verb", Minimal: true}), gc.Equals, minimalHelp)
	c.Check(cmdtesting.HelpText(c, &TestCommand{Name: "verb"}), gc.Equals, fullHelp)
}

func (*commandSuite) TestMainSuccess(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--option", "success!"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(cmdtesting.Stdout(ctx), gc.Equals, "success!\n")
}

func (*commandSuite) TestMainRunError(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--option", "error"})
	c.Assert(code, gc.Equals, 1)
	c.Assert(cmdtesting.Stderr(ctx), gc.Equals, "ERROR BAM!\n")
}

func (*commandSuite) TestMainRunSilentError(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--option", "silent-error"})
	c.Assert(code, gc.Equals, 1)
	c.Assert(cmdtesting.Stderr(ctx), gc.Equals, "")
}

func (*commandSuite) TestMainInitError(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--unknown"})
	c.Assert(code, gc.Equals, 2)
	c.Assert(cmdtesting.Stderr(ctx), gc.Equals, "ERROR flag provided but not defined: --unknown\n"+fullHelp)
}

func (*commandSuite) TestMainUnexpectedArgs(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"extra"})
	c.Assert(code, gc.Equals, 2)
	c.Assert(cmdtesting.Stderr(ctx), jc.HasPrefix, `ERROR unrecognized args: ["extra"]`+"\n")
}

func (*commandSuite) TestMainHelp(c *gc.C) {
	for _, arg := range []string{"-h", "--help"} {
		ctx := cmdtesting.Context(c)
		code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{arg})
		c.Check(code, gc.Equals, 0)
		c.Check(cmdtesting.Stdout(ctx), gc.Equals, fullHelp)
	}
}

func (*commandSuite) TestStdin(c *gc.C) {
	ctx := cmdtesting.Context(c)
	ctx.Stdin = strings.NewReader("hello\n")
	code := cmd.Main(&TestCommand{Name: "verb"}, ctx, []string{"--option", "echo"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(cmdtesting.Stdout(ctx), gc.Equals, "hello\n")
}

func (*commandSuite) TestAbsPath(c *gc.C) {
	ctx := &cmd.Context{Dir: "/work"}
	c.Check(ctx.AbsPath("file"), gc.Equals, "/work/file")
	c.Check(ctx.AbsPath("/etc/file"), gc.Equals, "/etc/file")
}

func (*commandSuite) TestFileVar(c *gc.C) {
	ctx := cmdtesting.Context(c)
	var fv cmd.FileVar
	_, err := fv.Read(ctx)
	c.Assert(err, jc.ErrorIs, errors.NotValid)

	c.Assert(fv.Set("missing.ini"), jc.ErrorIsNil)
	c.Check(fv.String(), gc.Equals, "missing.ini")
	_, err = fv.Read(ctx)
	c.Assert(err, gc.ErrorMatches, ".*no such file or directory")
}

func (*commandSuite) TestUserConfirmYes(c *gc.C) {
	for answer, expectErr := range map[string]bool{
		"y\n":   false,
		"YES\n": false,
		"n\n":   true,
		"":      true,
	} {
		ctx := cmdtesting.Context(c)
		ctx.Stdin = strings.NewReader(answer)
		err := cmd.UserConfirmYes(ctx)
		if expectErr {
			c.Check(err, gc.Equals, cmd.ErrUserAborted, gc.Commentf("answer %q", answer))
		} else {
			c.Check(err, jc.ErrorIsNil, gc.Commentf("answer %q", answer))
		}
		c.Check(cmdtesting.Stderr(ctx), gc.Equals, "Continue [y/N]? ")
	}
}
