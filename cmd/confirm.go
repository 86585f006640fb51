// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
)

// ErrUserAborted is returned when the user declines to continue.
var ErrUserAborted = errors.New("aborted")

// UserConfirmYes asks on stderr whether to continue and reads the
// answer from stdin. Anything but "y" or "yes" aborts.
func UserConfirmYes(ctx *Context) error {
	fmt.Fprint(ctx.Stderr, "Continue [y/N]? ")
	answer, err := bufio.NewReader(ctx.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return errors.Trace(err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	}
	return ErrUserAborted
}

// ConfirmationCommandBase provides the flags for commands that ask the
// user to confirm before acting.
type ConfirmationCommandBase struct {
	assumeNoPrompt bool
}

// SetFlags adds the --no-prompt flag.
func (c *ConfirmationCommandBase) SetFlags(f *gnuflag.FlagSet) {
	f.BoolVar(&c.assumeNoPrompt, "y", false, "")
	f.BoolVar(&c.assumeNoPrompt, "no-prompt", false, "Do not ask for confirmation")
}

// NeedsConfirmation reports whether the user must be asked.
func (c *ConfirmationCommandBase) NeedsConfirmation() bool {
	return !c.assumeNoPrompt
}
