// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package hashivault is a vault.SecureStorage kept in the KV version 2
// secrets engine of a HashiCorp Vault server.
package hashivault

import (
	"context"
	"encoding/base64"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/juju/errors"
)

const (
	defaultMountPath = "secret"
	defaultPrefix    = "rootstore"
	defaultTimeout   = 10 * time.Second

	passwordField = "password"
)

// Config describes how to reach the Vault server.
type Config struct {
	// Address and Token are used to build a client when Client is
	// nil. An empty Address uses the VAULT_ADDR environment default.
	Address string
	Token   string

	// Client, if set, is used as is.
	Client *api.Client

	// MountPath is the KV v2 mount; it defaults to "secret".
	MountPath string

	// Prefix is the path under the mount holding entries; it
	// defaults to "rootstore".
	Prefix string

	// Timeout bounds each request; it defaults to ten seconds.
	Timeout time.Duration
}

// Storage keeps each entry as one KV v2 secret.
type Storage struct {
	kv      *api.KVv2
	prefix  string
	timeout time.Duration
}

// New returns storage over the configured Vault server.
func New(config Config) (*Storage, error) {
	client := config.Client
	if client == nil {
		clientConfig := api.DefaultConfig()
		if clientConfig.Error != nil {
			return nil, errors.Annotate(clientConfig.Error, "cannot configure vault client")
		}
		if config.Address != "" {
			clientConfig.Address = config.Address
		}
		var err error
		client, err = api.NewClient(clientConfig)
		if err != nil {
			return nil, errors.Annotate(err, "cannot create vault client")
		}
		if config.Token != "" {
			client.SetToken(config.Token)
		}
	}
	mountPath := config.MountPath
	if mountPath == "" {
		mountPath = defaultMountPath
	}
	prefix := strings.Trim(config.Prefix, "/")
	if prefix == "" {
		prefix = defaultPrefix
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Storage{
		kv:      client.KVv2(mountPath),
		prefix:  prefix,
		timeout: timeout,
	}, nil
}

// secretPath maps an entry name to a secret path. Names contain
// slashes, so they are encoded into a single path element.
func (s *Storage) secretPath(name string) string {
	return path.Join(s.prefix, base64.RawURLEncoding.EncodeToString([]byte(name)))
}

// Get implements vault.SecureStorage.
func (s *Storage) Get(name string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	secret, err := s.kv.Get(ctx, s.secretPath(name))
	if isNotFound(err) {
		return "", errors.NotFoundf("secret %q", name)
	}
	if err != nil {
		return "", errors.Annotatef(err, "cannot read secret %q", name)
	}
	value, ok := secret.Data[passwordField].(string)
	if !ok {
		return "", errors.NotFoundf("secret %q", name)
	}
	return value, nil
}

// Set implements vault.SecureStorage.
func (s *Storage) Set(name, secret string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.kv.Put(ctx, s.secretPath(name), map[string]interface{}{
		passwordField: secret,
	})
	return errors.Annotatef(err, "cannot write secret %q", name)
}

// Delete implements vault.SecureStorage. It removes every version of
// the secret.
func (s *Storage) Delete(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := s.kv.DeleteMetadata(ctx, s.secretPath(name))
	if err == nil || isNotFound(err) {
		return nil
	}
	return errors.Annotatef(err, "cannot delete secret %q", name)
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, api.ErrSecretNotFound) {
		return true
	}
	var apiErr *api.ResponseError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}
