// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd_test

import (
	"github.com/juju/loggo/v2"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/rootadmin/rootstore/cmd"
	"github.com/rootadmin/rootstore/cmd/cmdtesting"
	"github.com/rootadmin/rootstore/osenv"
)

type superCommandSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&superCommandSuite{})

func (s *superCommandSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	loggo.ResetLogging()
	s.AddCleanup(func(*gc.C) { loggo.ResetLogging() })
}

func newSuperCommand() *cmd.SuperCommand {
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:    "tool",
		Purpose: "test a tool",
		Doc:     "tool-doc",
	})
	super.Register(&TestCommand{Name: "verb"})
	super.Register(&TestCommand{Name: "act", Minimal: true})
	return super
}

func (s *superCommandSuite) TestDispatch(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuperCommand(), ctx, []string{"verb", "--option", "hi"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(cmdtesting.Stdout(ctx), gc.Equals, "hi\n")
}

func (s *superCommandSuite) TestNoCommand(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuperCommand(), ctx, nil)
	c.Assert(code, gc.Equals, 2)
	c.Assert(cmdtesting.Stderr(ctx), jc.HasPrefix, "ERROR no command specified\nusage: tool <command> ...\n")
}

func (s *superCommandSuite) TestUnknownCommand(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuperCommand(), ctx, []string{"dance"})
	c.Assert(code, gc.Equals, 2)
	c.Assert(cmdtesting.Stderr(ctx), jc.HasPrefix, "ERROR unrecognized command: tool dance\n")
}

func (s *superCommandSuite) TestHelpListsCommands(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuperCommand(), ctx, []string{"--help"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(cmdtesting.Stdout(ctx), jc.Contains, `
tool-doc

commands:
    act  - 
    verb - verb the thing
`[1:])
}

func (s *superCommandSuite) TestSubcommandHelp(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuperCommand(), ctx, []string{"verb", "--help"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(cmdtesting.Stdout(ctx), jc.HasPrefix, "usage: tool verb <something>\n")
}

func (s *superCommandSuite) TestSubcommandFlagError(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuperCommand(), ctx, []string{"verb", "--nope"})
	c.Assert(code, gc.Equals, 2)
	c.Assert(cmdtesting.Stderr(ctx), gc.Matches, "ERROR flag provided but not defined: --nope\nusage: tool verb <something>\n(.|\n)*")
}

func (s *superCommandSuite) TestDebugFlag(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuperCommand(), ctx, []string{"--debug", "verb"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(loggo.GetLogger("rootstore").EffectiveLogLevel(), gc.Equals, loggo.DEBUG)
}

func (s *superCommandSuite) TestLoggingConfigFromEnvironment(c *gc.C) {
	s.PatchEnvironment(osenv.LoggingConfigEnvKey, "rootstore.cmd=TRACE")
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuperCommand(), ctx, []string{"verb"})
	c.Assert(code, gc.Equals, 0)
	c.Assert(loggo.GetLogger("rootstore.cmd").LogLevel(), gc.Equals, loggo.TRACE)
}

func (s *superCommandSuite) TestBadLoggingConfig(c *gc.C) {
	ctx := cmdtesting.Context(c)
	code := cmd.Main(newSuperCommand(), ctx, []string{"--logging-config", "rootstore=BOGUS", "verb"})
	c.Assert(code, gc.Equals, 1)
	c.Assert(cmdtesting.Stderr(ctx), jc.HasPrefix, "ERROR invalid logging config")
}

func (s *superCommandSuite) TestDuplicateRegistration(c *gc.C) {
	super := newSuperCommand()
	c.Assert(func() { super.Register(&TestCommand{Name: "verb"}) }, gc.PanicMatches, `command already registered: "verb"`)
}
