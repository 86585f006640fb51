// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package osenv_test

import (
	"path/filepath"

	"github.com/juju/testing"
	gc "gopkg.in/check.v1"

	"github.com/rootadmin/rootstore/osenv"
)

type DataHomeSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&DataHomeSuite{})

func (s *DataHomeSuite) TearDownTest(c *gc.C) {
	osenv.SetDataHome("")
	s.IsolationSuite.TearDownTest(c)
}

func (s *DataHomeSuite) TestOverride(c *gc.C) {
	dir := c.MkDir()
	s.PatchEnvironment(osenv.DataEnvKey, "/elsewhere")
	osenv.SetDataHome(dir)
	c.Assert(osenv.DataHome(), gc.Equals, dir)
	c.Assert(osenv.DataHomeDir(), gc.Equals, "/elsewhere")
}

func (s *DataHomeSuite) TestDataEnv(c *gc.C) {
	s.PatchEnvironment(osenv.DataEnvKey, "/srv/rootstore")
	s.PatchEnvironment(osenv.XDGDataHomeEnvKey, "/xdg")
	c.Assert(osenv.DataHome(), gc.Equals, "/srv/rootstore")
}

func (s *DataHomeSuite) TestXDGDataHome(c *gc.C) {
	s.PatchEnvironment(osenv.DataEnvKey, "")
	s.PatchEnvironment(osenv.XDGDataHomeEnvKey, "/xdg")
	c.Assert(osenv.DataHome(), gc.Equals, filepath.Join("/xdg", "rootstore"))
}

func (s *DataHomeSuite) TestHomeFallback(c *gc.C) {
	s.PatchEnvironment(osenv.DataEnvKey, "")
	s.PatchEnvironment(osenv.XDGDataHomeEnvKey, "")
	s.PatchEnvironment("HOME", "/home/bob")
	c.Assert(osenv.DataHome(), gc.Equals, filepath.Join("/home/bob", ".local", "share", "rootstore"))
}

func (s *DataHomeSuite) TestPaths(c *gc.C) {
	s.PatchEnvironment(osenv.MetadataEnvKey, "")
	c.Check(osenv.SettingsDatabasePath("/data"), gc.Equals, filepath.Join("/data", "settings.db"))
	c.Check(osenv.SecureStoragePath("/data"), gc.Equals, filepath.Join("/data", "vault", "secrets"))
	c.Check(osenv.MasterKeyPath("/data"), gc.Equals, filepath.Join("/data", "vault", "master.key"))
	c.Check(osenv.MetadataPath("/data"), gc.Equals, filepath.Join("/data", "metadata.ini"))
}

func (s *DataHomeSuite) TestMetadataEnv(c *gc.C) {
	s.PatchEnvironment(osenv.MetadataEnvKey, "/usr/share/rootstore/metadata.ini")
	c.Assert(osenv.MetadataPath("/data"), gc.Equals, "/usr/share/rootstore/metadata.ini")
}
