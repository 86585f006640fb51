// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package credential_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/rootadmin/rootstore/core/credential"
	"github.com/rootadmin/rootstore/core/rooturi"
)

type keySuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&keySuite{})

func (*keySuite) TestString(c *gc.C) {
	key := credential.NewKey("https://example.org", "bob")
	c.Assert(key.String(), gc.Equals, "https://example.org-bob")
}

func (*keySuite) TestStringEscapesLogin(c *gc.C) {
	for i, test := range []struct {
		login    string
		expected string
	}{
		{"bob", "https://example.org-bob"},
		{"server-bob", "https://example.org-server%2Dbob"},
		{"100%", "https://example.org-100%25"},
		{"a%2Db", "https://example.org-a%252Db"},
	} {
		c.Logf("test %d: %q", i, test.login)
		c.Check(credential.NewKey("https://example.org", test.login).String(), gc.Equals, test.expected)
	}
}

func (*keySuite) TestSeparatorInLoginKeepsNamesDistinct(c *gc.C) {
	a := credential.NewKey("https://example.org/main", "server-bob")
	b := credential.NewKey("https://example.org/main-server", "bob")
	c.Assert(a, gc.Not(gc.Equals), b)
	c.Assert(a.String(), gc.Not(gc.Equals), b.String())

	m := map[string]credential.Key{a.String(): a, b.String(): b}
	c.Assert(m, gc.HasLen, 2)
}

func (*keySuite) TestIsZero(c *gc.C) {
	c.Check(credential.Key{}.IsZero(), jc.IsTrue)
	c.Check(credential.Key{Login: "bob"}.IsZero(), jc.IsTrue)
	c.Check(credential.NewKey("https://example.org", "").IsZero(), jc.IsFalse)
}

func (*keySuite) TestValidate(c *gc.C) {
	for i, test := range []struct {
		uri   rooturi.URI
		login string
		err   string
	}{{
		uri:   "https://example.org",
		login: "bob",
	}, {
		login: "bob",
		err:   "empty root server URI not valid",
	}, {
		uri: "https://example.org",
		err: `empty login for "https://example.org" not valid`,
	}} {
		c.Logf("test %d", i)
		err := credential.NewKey(test.uri, test.login).Validate()
		if test.err == "" {
			c.Check(err, jc.ErrorIsNil)
			continue
		}
		c.Check(err, gc.ErrorMatches, test.err)
		c.Check(err, jc.ErrorIs, errors.NotValid)
	}
}
