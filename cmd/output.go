// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/juju/ansiterm"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"gopkg.in/yaml.v3"
)

// Formatter writes an arbitrary object to a writer.
type Formatter func(w io.Writer, value any) error

// FormatYaml writes value as YAML, unless value is nil.
func FormatYaml(w io.Writer, value any) error {
	if value == nil {
		return nil
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = w.Write(data)
	return errors.Trace(err)
}

// FormatJson writes value as a single line of JSON.
func FormatJson(w io.Writer, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = w.Write(append(data, '\n'))
	return errors.Trace(err)
}

// DefaultFormatters are used by most commands.
var DefaultFormatters = map[string]Formatter{
	"yaml": FormatYaml,
	"json": FormatJson,
}

// TabWriter returns a tab writer aligning columns with single spaces.
func TabWriter(w io.Writer) *ansiterm.TabWriter {
	const (
		minwidth = 0
		tabwidth = 0
		padding  = 1
		padchar  = ' '
		flags    = 0
	)
	return ansiterm.NewTabWriter(w, minwidth, tabwidth, padding, padchar, flags)
}

// formatterValue implements gnuflag.Value for the --format flag.
type formatterValue struct {
	name       string
	formatters map[string]Formatter
}

// newFormatterValue returns a new formatterValue. The initial Formatter name
// must be present in formatters.
func newFormatterValue(initial string, formatters map[string]Formatter) *formatterValue {
	v := &formatterValue{formatters: formatters}
	if err := v.Set(initial); err != nil {
		panic(err)
	}
	return v
}

// Set stores the chosen formatter name in v.name.
func (v *formatterValue) Set(value string) error {
	if v.formatters[value] == nil {
		return errors.Errorf("unknown format %q", value)
	}
	v.name = value
	return nil
}

// String returns the chosen formatter name.
func (v *formatterValue) String() string {
	return v.name
}

// doc returns documentation for the --format flag.
func (v *formatterValue) doc() string {
	choices := make([]string, 0, len(v.formatters))
	for name := range v.formatters {
		choices = append(choices, name)
	}
	sort.Strings(choices)
	return "Specify output format (" + strings.Join(choices, "|") + ")"
}

// Output is responsible for interpreting output-related command line flags
// and writing a value to a file or to stdout as directed.
type Output struct {
	formatter *formatterValue
	outPath   string
}

// AddFlags injects the --format and --output flags into f.
func (c *Output) AddFlags(f *gnuflag.FlagSet, defaultFormatter string, formatters map[string]Formatter) {
	c.formatter = newFormatterValue(defaultFormatter, formatters)
	f.Var(c.formatter, "format", c.formatter.doc())
	f.StringVar(&c.outPath, "o", "", "Specify an output file")
	f.StringVar(&c.outPath, "output", "", "")
}

// Name returns the chosen format.
func (c *Output) Name() string {
	return c.formatter.name
}

// Write formats and outputs value as directed by the --format and --output
// command line flags.
func (c *Output) Write(ctx *Context, value any) (err error) {
	target := ctx.Stdout
	if c.outPath != "" {
		var f *os.File
		f, err = os.Create(ctx.AbsPath(c.outPath))
		if err != nil {
			return errors.Trace(err)
		}
		defer func() {
			if closeErr := f.Close(); err == nil {
				err = errors.Trace(closeErr)
			}
		}()
		target = f
	}
	return c.formatter.formatters[c.formatter.name](target, value)
}
