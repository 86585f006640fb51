// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package loggertesting

import (
	"fmt"
	"sync"

	"github.com/juju/loggo/v2"
)

// CheckLog is an interface that can be used to log messages to a
// *testing.T or *check.C.
type CheckLog interface {
	Logf(string, ...any)
}

// CheckLogger is a logger.Logger that logs to a *testing.T or *check.C.
type CheckLogger struct {
	Log CheckLog
}

// NewCheckLogger returns a CheckLogger that logs to the given CheckLog.
func NewCheckLogger(log CheckLog) CheckLogger {
	return CheckLogger{Log: log}
}

func (c CheckLogger) Errorf(msg string, args ...any)   { c.logf(loggo.ERROR, msg, args...) }
func (c CheckLogger) Warningf(msg string, args ...any) { c.logf(loggo.WARNING, msg, args...) }
func (c CheckLogger) Infof(msg string, args ...any)    { c.logf(loggo.INFO, msg, args...) }
func (c CheckLogger) Debugf(msg string, args ...any)   { c.logf(loggo.DEBUG, msg, args...) }
func (c CheckLogger) Tracef(msg string, args ...any)   { c.logf(loggo.TRACE, msg, args...) }

func (c CheckLogger) logf(level loggo.Level, msg string, args ...any) {
	c.Log.Logf("%s: %s", level.String(), fmt.Sprintf(msg, args...))
}

// Entry is one message recorded by a RecordingLogger.
type Entry struct {
	Level   loggo.Level
	Message string
}

// RecordingLogger remembers every message at or above Threshold.
// Messages below it are dropped. The zero value records everything.
type RecordingLogger struct {
	Threshold loggo.Level

	mu      sync.Mutex
	entries []Entry
}

func (r *RecordingLogger) Errorf(msg string, args ...any)   { r.logf(loggo.ERROR, msg, args...) }
func (r *RecordingLogger) Warningf(msg string, args ...any) { r.logf(loggo.WARNING, msg, args...) }
func (r *RecordingLogger) Infof(msg string, args ...any)    { r.logf(loggo.INFO, msg, args...) }
func (r *RecordingLogger) Debugf(msg string, args ...any)   { r.logf(loggo.DEBUG, msg, args...) }
func (r *RecordingLogger) Tracef(msg string, args ...any)   { r.logf(loggo.TRACE, msg, args...) }

func (r *RecordingLogger) logf(level loggo.Level, msg string, args ...any) {
	if level < r.Threshold {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(msg, args...)})
}

// Entries returns a copy of the recorded messages.
func (r *RecordingLogger) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Messages returns the recorded messages at exactly level.
func (r *RecordingLogger) Messages(level loggo.Level) []string {
	var messages []string
	for _, entry := range r.Entries() {
		if entry.Level == level {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}
