// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package cmdtesting runs commands against in-memory streams.
package cmdtesting

import (
	"bytes"
	"io"
	"strings"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/rootadmin/rootstore/cmd"
)

// Context returns a context over empty buffers, rooted in a fresh
// temporary directory.
func Context(c *gc.C) *cmd.Context {
	return &cmd.Context{
		Dir:    c.MkDir(),
		Stdin:  strings.NewReader(""),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}
}

// ContextForDir returns a context over empty buffers, rooted in dir.
func ContextForDir(c *gc.C, dir string) *cmd.Context {
	ctx := Context(c)
	ctx.Dir = dir
	return ctx
}

// InitCommand parses args on com.
func InitCommand(com cmd.Command, args []string) error {
	return cmd.Parse(com, args)
}

// RunCommand parses args on com and runs it, returning the context
// holding its output.
func RunCommand(c *gc.C, com cmd.Command, args ...string) (*cmd.Context, error) {
	if err := InitCommand(com, args); err != nil {
		return nil, err
	}
	ctx := Context(c)
	return ctx, com.Run(ctx)
}

// Stdout returns the output written to the context's stdout buffer.
func Stdout(ctx *cmd.Context) string {
	return bufferString(ctx.Stdout)
}

// Stderr returns the output written to the context's stderr buffer.
func Stderr(ctx *cmd.Context) string {
	return bufferString(ctx.Stderr)
}

func bufferString(stream io.Writer) string {
	return stream.(*bytes.Buffer).String()
}

// HelpText returns the usage text of com.
func HelpText(c *gc.C, com cmd.Command) string {
	var buf bytes.Buffer
	cmd.PrintUsage(com, &buf)
	c.Assert(buf.Len(), jc.GreaterThan, 0)
	return buf.String()
}
