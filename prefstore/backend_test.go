// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package prefstore_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/rootadmin/rootstore/prefstore"
	"github.com/rootadmin/rootstore/prefstore/prefstoretesting"
)

// checkBackend exercises the behaviour every backend must share.
func checkBackend(c *gc.C, backend prefstore.Backend) {
	_, err := backend.Read(prefstore.DocumentKey)
	c.Assert(errors.Is(err, errors.NotFound), jc.IsTrue)

	c.Assert(backend.Write(prefstore.DocumentKey, []byte("one")), jc.ErrorIsNil)
	data, err := backend.Read(prefstore.DocumentKey)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(string(data), gc.Equals, "one")

	c.Assert(backend.Write(prefstore.DocumentKey, []byte("two")), jc.ErrorIsNil)
	data, err = backend.Read(prefstore.DocumentKey)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(string(data), gc.Equals, "two")

	c.Assert(backend.Remove(prefstore.DocumentKey), jc.ErrorIsNil)
	_, err = backend.Read(prefstore.DocumentKey)
	c.Assert(errors.Is(err, errors.NotFound), jc.IsTrue)
	c.Assert(backend.Remove(prefstore.DocumentKey), jc.ErrorIsNil)
}

// checkStoreRestart saves through one store and reads through another.
func checkStoreRestart(c *gc.C, backend prefstore.Backend) {
	newStore := func() *prefstore.Store {
		store, err := prefstore.NewStore(prefstore.Config{
			Backend:    backend,
			Secrets:    &prefstoretesting.RecordingEraser{},
			Logger:     loggo.GetLogger("test"),
			WriteDelay: time.Millisecond,
		})
		c.Assert(err, jc.ErrorIsNil)
		return store
	}
	store := newStore()
	store.AddOrTouch(exampleURI, "alice")
	store.SetLastLogin(string(exampleURI), "alice")
	c.Assert(store.Save(), jc.ErrorIsNil)

	store = newStore()
	c.Assert(store.Users(exampleURI), jc.DeepEquals, []string{"alice"})
	c.Assert(store.AddOrTouch(exampleURI, "alice"), jc.IsFalse)
}

type fileBackendSuite struct {
	testing.IsolationSuite
	dir string
}

var _ = gc.Suite(&fileBackendSuite{})

func (s *fileBackendSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.dir = filepath.Join(c.MkDir(), "rootstore")
}

func (s *fileBackendSuite) TestBackend(c *gc.C) {
	checkBackend(c, prefstore.NewFileBackend(s.dir))
}

func (s *fileBackendSuite) TestStoreRestart(c *gc.C) {
	checkStoreRestart(c, prefstore.NewFileBackend(s.dir))
}

func (s *fileBackendSuite) TestFileMode(c *gc.C) {
	backend := prefstore.NewFileBackend(s.dir)
	c.Assert(backend.Write(prefstore.DocumentKey, []byte("x")), jc.ErrorIsNil)

	path := backend.Path(prefstore.DocumentKey)
	c.Assert(path, gc.Equals, filepath.Join(s.dir, prefstore.DocumentKey+".yaml"))
	info, err := os.Stat(path)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(info.Mode().Perm(), gc.Equals, os.FileMode(0600))
}

func (s *fileBackendSuite) TestInvalidKey(c *gc.C) {
	backend := prefstore.NewFileBackend(s.dir)
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		_, err := backend.Read(key)
		c.Check(errors.Is(err, errors.NotValid), jc.IsTrue, gc.Commentf("key %q", key))
		c.Check(errors.Is(backend.Write(key, nil), errors.NotValid), jc.IsTrue)
	}
}

type sqliteBackendSuite struct {
	testing.IsolationSuite
	backend *prefstore.SQLiteBackend
}

var _ = gc.Suite(&sqliteBackendSuite{})

func (s *sqliteBackendSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	backend, err := prefstore.OpenSQLiteBackend(filepath.Join(c.MkDir(), "settings.db"))
	c.Assert(err, jc.ErrorIsNil)
	s.backend = backend
	s.AddCleanup(func(c *gc.C) {
		c.Check(s.backend.Close(), jc.ErrorIsNil)
	})
}

func (s *sqliteBackendSuite) TestBackend(c *gc.C) {
	checkBackend(c, s.backend)
}

func (s *sqliteBackendSuite) TestStoreRestart(c *gc.C) {
	checkStoreRestart(c, s.backend)
}

type memBackendSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&memBackendSuite{})

func (s *memBackendSuite) TestBackend(c *gc.C) {
	checkBackend(c, prefstoretesting.NewMemBackend())
}
