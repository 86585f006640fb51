// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"

	corelogger "github.com/rootadmin/rootstore/core/logger"
	"github.com/rootadmin/rootstore/osenv"
)

var logger = corelogger.GetLogger("cmd")

// SuperCommandParams describes a SuperCommand.
type SuperCommandParams struct {
	Name    string
	Purpose string
	Doc     string
}

// SuperCommand dispatches to one of its registered subcommands, named
// by the first positional argument.
type SuperCommand struct {
	CommandBase
	params  SuperCommandParams
	subcmds map[string]Command

	loggingConfig string
	debug         bool

	subcmd Command
}

// NewSuperCommand returns a SuperCommand with no subcommands.
func NewSuperCommand(params SuperCommandParams) *SuperCommand {
	return &SuperCommand{
		params:  params,
		subcmds: make(map[string]Command),
	}
}

// Register makes a subcommand available by its name.
func (c *SuperCommand) Register(sub Command) {
	name := sub.Info().Name
	if _, found := c.subcmds[name]; found {
		panic(fmt.Sprintf("command already registered: %q", name))
	}
	c.subcmds[name] = sub
}

// Info implements Command.
func (c *SuperCommand) Info() *Info {
	return &Info{
		Name:    c.params.Name,
		Args:    "<command> ...",
		Purpose: c.params.Purpose,
		Doc:     strings.TrimSpace(c.params.Doc + "\n\n" + c.describeCommands()),
	}
}

func (c *SuperCommand) describeCommands() string {
	names := make([]string, 0, len(c.subcmds))
	width := 0
	for name := range c.subcmds {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)
	lines := []string{"commands:"}
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("    %-*s - %s", width, name, c.subcmds[name].Info().Purpose))
	}
	return strings.Join(lines, "\n")
}

// SetFlags implements Command.
func (c *SuperCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.loggingConfig, "logging-config", os.Getenv(osenv.LoggingConfigEnvKey), "Specify log levels for modules")
	f.BoolVar(&c.debug, "debug", false, "Equivalent to --logging-config=<root>=DEBUG")
}

// Init selects the subcommand and parses its arguments.
func (c *SuperCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no command specified")
	}
	sub, found := c.subcmds[args[0]]
	if !found {
		return errors.Errorf("unrecognized command: %s %s", c.params.Name, args[0])
	}
	c.subcmd = sub
	return Parse(sub, args[1:])
}

func (c *SuperCommand) usageCommand() Command {
	if c.subcmd == nil {
		return c
	}
	return &subcommandUsage{Command: c.subcmd, prefix: c.params.Name}
}

// Run configures logging and runs the selected subcommand.
func (c *SuperCommand) Run(ctx *Context) error {
	if c.subcmd == nil {
		return errors.New("no command specified")
	}
	config := c.loggingConfig
	if c.debug {
		config = "<root>=DEBUG"
	}
	if config != "" {
		if err := loggo.ConfigureLoggers(config); err != nil {
			return errors.Annotate(err, "invalid logging config")
		}
	}
	logger.Infof("running %s %s", c.params.Name, c.subcmd.Info().Name)
	return c.subcmd.Run(ctx)
}

// subcommandUsage shows a subcommand under its full name.
type subcommandUsage struct {
	Command
	prefix string
}

func (s *subcommandUsage) Info() *Info {
	info := *s.Command.Info()
	info.Name = s.prefix + " " + info.Name
	return &info
}
