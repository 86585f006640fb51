// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package appmetadata reads the packaged application metadata that
// supplies defaults used before any login has been recorded.
package appmetadata

import (
	"os"

	"github.com/juju/errors"
	"gopkg.in/ini.v1"

	"github.com/rootadmin/rootstore/core/logger"
	"github.com/rootadmin/rootstore/core/rooturi"
)

var log = logger.GetLogger("appmetadata")

const serverSection = "server"

// Metadata holds the settings read from the [server] section of the
// metadata file.
type Metadata struct {
	// DefaultRootURI is offered when there is no last login.
	DefaultRootURI string

	// SSLRequired selects the scheme added to URIs that lack one.
	SSLRequired bool
}

// Default returns the metadata used when no file is present.
func Default() Metadata {
	return Metadata{SSLRequired: true}
}

// RootURI returns DefaultRootURI in canonical form, or the empty URI.
func (m Metadata) RootURI() rooturi.URI {
	return rooturi.Canonicalize(m.DefaultRootURI, m.SSLRequired)
}

// Read loads metadata from path. A missing file yields Default.
func Read(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debugf("no application metadata at %q", path)
		return Default(), nil
	} else if err != nil {
		return Metadata{}, errors.Annotate(err, "cannot read application metadata")
	}
	return Parse(data)
}

// Parse decodes metadata in INI form:
//
//	[server]
//	default-root-uri = https://example.org/main_server
//	ssl-required = true
func Parse(data []byte) (Metadata, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return Metadata{}, errors.Annotate(err, "cannot parse application metadata")
	}
	sec := cfg.Section(serverSection)
	md := Default()
	md.DefaultRootURI = sec.Key("default-root-uri").String()
	if sec.HasKey("ssl-required") {
		md.SSLRequired, err = sec.Key("ssl-required").Bool()
		if err != nil {
			return Metadata{}, errors.NotValidf("ssl-required %q", sec.Key("ssl-required").String())
		}
	}
	return md, nil
}
