// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package prefstore provides the preferences of the client: the known
// logins of each root server, the last successful login and the
// selected service bodies of each login. Everything lives in a single
// document that is loaded on first use and written back on request.
package prefstore

import (
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/retry"

	corelogger "github.com/rootadmin/rootstore/core/logger"
	"github.com/rootadmin/rootstore/core/rooturi"
)

// DocumentKey is the key of the preferences document in durable storage.
const DocumentKey = "rootstore-preferences"

// GracePeriod is how long an authenticated session is trusted before
// the host asks for authentication again. It is not configurable.
const GracePeriod = 15 * time.Minute

const (
	defaultWriteAttempts = 3
	defaultWriteDelay    = 50 * time.Millisecond
)

// Backend is the durable key/value settings facility holding the
// preferences document.
type Backend interface {
	// Read returns the blob stored under key, or an error satisfying
	// errors.NotFound if there is none.
	Read(key string) ([]byte, error)

	// Write replaces the blob stored under key.
	Write(key string, data []byte) error

	// Remove deletes the blob stored under key. Removing a missing
	// key is not an error.
	Remove(key string) error
}

// SecretEraser erases the stored secret of a login. Erasing must never
// fail from the caller's point of view.
type SecretEraser interface {
	Erase(uri rooturi.URI, login string)
}

// Policy holds the selection defaults applied by the store.
type Policy struct {
	// SingleBodyOverride, when set, treats the only editable
	// service body as always selected.
	SingleBodyOverride bool
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{SingleBodyOverride: true}
}

// Config holds the dependencies of a Store.
type Config struct {
	// Backend is where the document is persisted.
	Backend Backend

	// Secrets erases stored passwords when logins are removed.
	Secrets SecretEraser

	// Policy controls selection defaults. A nil policy means
	// DefaultPolicy.
	Policy *Policy

	// Logger is used for diagnostics. It defaults to the package
	// logger.
	Logger corelogger.Logger

	// Clock, WriteAttempts and WriteDelay control how writes to the
	// backend are retried.
	Clock         clock.Clock
	WriteAttempts int
	WriteDelay    time.Duration
}

// Validate returns an error if the config cannot be used.
func (config Config) Validate() error {
	if config.Backend == nil {
		return errors.NotValidf("nil Backend")
	}
	if config.Secrets == nil {
		return errors.NotValidf("nil Secrets")
	}
	if config.WriteAttempts < 0 {
		return errors.NotValidf("negative WriteAttempts")
	}
	if config.WriteDelay < 0 {
		return errors.NotValidf("negative WriteDelay")
	}
	return nil
}

// State is the load state of a Store.
type State int

const (
	// Unloaded means the document has not been read since the store
	// was created or last invalidated.
	Unloaded State = iota

	// Loaded means the in-memory document is current.
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "unloaded"
}

// Store is the preferences store. It is not safe for concurrent use;
// callers confine it to a single goroutine or lock around it.
type Store struct {
	config Config
	logger corelogger.Logger
	policy Policy

	state State
	doc   *Document
}

// NewStore returns a new, unloaded store.
func NewStore(config Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if config.Logger == nil {
		config.Logger = corelogger.GetLogger("prefstore")
	}
	if config.Clock == nil {
		config.Clock = clock.WallClock
	}
	if config.WriteAttempts == 0 {
		config.WriteAttempts = defaultWriteAttempts
	}
	if config.WriteDelay == 0 {
		config.WriteDelay = defaultWriteDelay
	}
	policy := DefaultPolicy()
	if config.Policy != nil {
		policy = *config.Policy
	}
	return &Store{
		config: config,
		logger: config.Logger,
		policy: policy,
	}, nil
}

// State returns the load state of the store.
func (s *Store) State() State {
	return s.state
}

// Load reads the document from the backend unless it is already
// loaded. A missing or unreadable document yields an empty one, so
// Load always reports that a usable document is present.
func (s *Store) Load() bool {
	if s.state == Loaded {
		return true
	}
	s.doc = s.read()
	s.state = Loaded
	return true
}

func (s *Store) read() *Document {
	data, err := s.config.Backend.Read(DocumentKey)
	if errors.Is(err, errors.NotFound) {
		s.logger.Debugf("no stored preferences, starting empty")
		return NewDocument()
	}
	if err != nil {
		s.logger.Warningf("cannot read preferences, starting empty: %v", err)
		return NewDocument()
	}
	doc, err := unmarshalDocument(data, s.logger)
	if err != nil {
		s.logger.Warningf("%v, starting empty", err)
	}
	return doc
}

// document returns the loaded document, loading it first if needed.
func (s *Store) document() *Document {
	s.Load()
	return s.doc
}

// Save writes the in-memory document to the backend. An unloaded store
// has nothing to write. Nothing is ever saved implicitly.
func (s *Store) Save() error {
	if s.state != Loaded {
		return nil
	}
	data, err := marshalDocument(s.doc)
	if err != nil {
		return errors.Annotate(err, "cannot encode preferences")
	}
	err = retry.Call(retry.CallArgs{
		Func: func() error {
			return s.config.Backend.Write(DocumentKey, data)
		},
		NotifyFunc: func(err error, attempt int) {
			s.logger.Debugf("writing preferences failed (attempt %d): %v", attempt, err)
		},
		Attempts: s.config.WriteAttempts,
		Delay:    s.config.WriteDelay,
		Clock:    s.config.Clock,
	})
	if err != nil {
		return errors.Annotate(retry.LastError(err), "cannot save preferences")
	}
	s.logger.Tracef("saved preferences (%d bytes)", len(data))
	return nil
}

// Invalidate drops the in-memory document. The next access reloads it
// from the backend.
func (s *Store) Invalidate() {
	s.doc = nil
	s.state = Unloaded
}

// Clear removes the stored document entirely and invalidates the store.
// Secrets are not touched; see ClearLogins.
func (s *Store) Clear() error {
	if err := s.config.Backend.Remove(DocumentKey); err != nil {
		return errors.Annotate(err, "cannot remove preferences")
	}
	s.Invalidate()
	return nil
}
