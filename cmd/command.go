// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package cmd is a small command line framework: commands describe
// themselves, declare gnuflag flags, validate positional arguments and
// run against a Context holding the standard streams.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
)

// Info holds everything necessary to describe a Command's intent and usage.
type Info struct {
	// Name is the Command's name.
	Name string

	// Args describes the command's expected arguments.
	Args string

	// Purpose is a short explanation of the Command's purpose.
	Purpose string

	// Doc is the long documentation for the Command.
	Doc string

	// Intersperse controls whether the Command will accept interspersed
	// options and positional args.
	Intersperse bool
}

// Usage combines Name and Args to describe the Command's intended usage.
func (i *Info) Usage() string {
	if i.Args == "" {
		return i.Name
	}
	return fmt.Sprintf("%s %s", i.Name, i.Args)
}

// Command is implemented by types that interpret command-line arguments.
type Command interface {
	// Info returns information about the command.
	Info() *Info

	// SetFlags adds command specific flags to the flag set.
	SetFlags(f *gnuflag.FlagSet)

	// Init is called with the positional arguments left after
	// flags are parsed.
	Init(args []string) error

	// Run will execute the command according to the options and
	// positional arguments interpreted by Init.
	Run(ctx *Context) error
}

// CommandBase provides the default implementation for SetFlags and Init.
type CommandBase struct{}

// SetFlags does nothing in the simplest case.
func (c *CommandBase) SetFlags(f *gnuflag.FlagSet) {}

// Init rejects any positional arguments.
func (c *CommandBase) Init(args []string) error {
	return CheckEmpty(args)
}

// Context represents the run context of a Command.
type Context struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultContext returns a Context over the process's working directory
// and standard streams.
func DefaultContext() (*Context, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, errors.Trace(err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &Context{
		Dir:    abs,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// AbsPath returns an absolute representation of path, relative to the
// context's working directory.
func (ctx *Context) AbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(ctx.Dir, path)
}

// Infof writes an informational message to stderr.
func (ctx *Context) Infof(format string, params ...any) {
	fmt.Fprintf(ctx.Stderr, format+"\n", params...)
}

// ErrSilent can be returned from Run to signal that Main should exit
// with code 1 without producing error output.
var ErrSilent = errors.New("cmd: error out silently")

// NewFlagSet returns a FlagSet initialized for use with c.
func NewFlagSet(c Command) *gnuflag.FlagSet {
	f := gnuflag.NewFlagSet(c.Info().Name, gnuflag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.Usage = func() {}
	c.SetFlags(f)
	return f
}

// PrintUsage writes usage information for c to w.
func PrintUsage(c Command, w io.Writer) {
	i := c.Info()
	fmt.Fprintf(w, "usage: %s\n", i.Usage())
	if i.Purpose != "" {
		fmt.Fprintf(w, "purpose: %s\n", i.Purpose)
	}
	f := NewFlagSet(c)
	if hasFlags(f) {
		fmt.Fprintf(w, "\noptions:\n")
		f.SetOutput(w)
		f.PrintDefaults()
	}
	if i.Doc != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(i.Doc))
	}
}

func hasFlags(f *gnuflag.FlagSet) bool {
	found := false
	f.VisitAll(func(*gnuflag.Flag) { found = true })
	return found
}

// Parse parses args on c. This must be called before c is Run.
func Parse(c Command, args []string) error {
	f := NewFlagSet(c)
	if err := f.Parse(c.Info().Intersperse, args); err != nil {
		return err
	}
	return c.Init(f.Args())
}

// CheckEmpty is a utility function that returns an error if args is not empty.
func CheckEmpty(args []string) error {
	if len(args) != 0 {
		return errors.Errorf("unrecognized args: %q", args)
	}
	return nil
}

// usageTarget is implemented by commands that delegate to another
// command once their arguments are parsed.
type usageTarget interface {
	usageCommand() Command
}

// Main parses and runs c, returning the process exit code.
func Main(c Command, ctx *Context, args []string) int {
	if err := Parse(c, args); err != nil {
		target := c
		if t, ok := c.(usageTarget); ok {
			target = t.usageCommand()
		}
		if errors.Is(err, gnuflag.ErrHelp) {
			PrintUsage(target, ctx.Stdout)
			return 0
		}
		fmt.Fprintf(ctx.Stderr, "ERROR %v\n", err)
		PrintUsage(target, ctx.Stderr)
		return 2
	}
	if err := c.Run(ctx); err != nil {
		if err != ErrSilent {
			logger.Debugf("%s command failed: %s", c.Info().Name, errors.Details(err))
			fmt.Fprintf(ctx.Stderr, "ERROR %v\n", err)
		}
		return 1
	}
	return 0
}
