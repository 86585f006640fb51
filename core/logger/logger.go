// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package logger

import "github.com/juju/loggo/v2"

// Logger is the logging surface used throughout the store. A
// loggo.Logger satisfies it.
type Logger interface {
	Errorf(message string, args ...any)
	Warningf(message string, args ...any)
	Infof(message string, args ...any)
	Debugf(message string, args ...any)
	Tracef(message string, args ...any)
}

// GetLogger returns the module logger with the given name, prefixed
// with the module root.
func GetLogger(name string) Logger {
	return loggo.GetLogger("rootstore." + name)
}
