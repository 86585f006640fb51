// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package hashivault_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/rootadmin/rootstore/vault"
	"github.com/rootadmin/rootstore/vault/hashivault"
)

// fakeKV serves the subset of the KV v2 API used by the storage.
type fakeKV struct {
	mu       sync.Mutex
	secrets  map[string]string
	requests []string
	status   int
}

func (f *fakeKV) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"errors":["permission denied"]}`))
		return
	}

	const metadata = `{"created_time":"2024-01-02T03:04:05Z","version":1}`
	switch {
	case strings.HasPrefix(r.URL.Path, "/v1/secret/data/"):
		secretPath := strings.TrimPrefix(r.URL.Path, "/v1/secret/data/")
		switch r.Method {
		case http.MethodGet:
			password, ok := f.secrets[secretPath]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"errors":[]}`))
				return
			}
			data, _ := json.Marshal(password)
			_, _ = w.Write([]byte(`{"data":{"data":{"password":` + string(data) + `},"metadata":` + metadata + `}}`))
		case http.MethodPut, http.MethodPost:
			var body struct {
				Data map[string]interface{} `json:"data"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			password, _ := body.Data["password"].(string)
			f.secrets[secretPath] = password
			_, _ = w.Write([]byte(`{"data":` + metadata + `}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case strings.HasPrefix(r.URL.Path, "/v1/secret/metadata/") && r.Method == http.MethodDelete:
		delete(f.secrets, strings.TrimPrefix(r.URL.Path, "/v1/secret/metadata/"))
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type hashiVaultSuite struct {
	testing.IsolationSuite

	fake    *fakeKV
	server  *httptest.Server
	storage *hashivault.Storage
}

var _ = gc.Suite(&hashiVaultSuite{})

var _ vault.SecureStorage = (*hashivault.Storage)(nil)

func (s *hashiVaultSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.fake = &fakeKV{secrets: make(map[string]string)}
	s.server = httptest.NewServer(s.fake)
	s.AddCleanup(func(*gc.C) { s.server.Close() })

	storage, err := hashivault.New(hashivault.Config{
		Address: s.server.URL,
		Token:   "test-token",
	})
	c.Assert(err, jc.ErrorIsNil)
	s.storage = storage
}

func (s *hashiVaultSuite) TestSetGetDelete(c *gc.C) {
	_, err := s.storage.Get("https://example.org-bob")
	c.Assert(errors.Is(err, errors.NotFound), jc.IsTrue)

	c.Assert(s.storage.Set("https://example.org-bob", "hunter2"), jc.ErrorIsNil)
	secret, err := s.storage.Get("https://example.org-bob")
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(secret, gc.Equals, "hunter2")

	c.Assert(s.storage.Delete("https://example.org-bob"), jc.ErrorIsNil)
	_, err = s.storage.Get("https://example.org-bob")
	c.Assert(errors.Is(err, errors.NotFound), jc.IsTrue)
}

func (s *hashiVaultSuite) TestEntryPaths(c *gc.C) {
	c.Assert(s.storage.Set("https://example.org/main-bob", "hunter2"), jc.ErrorIsNil)

	encoded := base64.RawURLEncoding.EncodeToString([]byte("https://example.org/main-bob"))
	c.Assert(s.fake.secrets, jc.DeepEquals, map[string]string{
		"rootstore/" + encoded: "hunter2",
	})
	c.Assert(s.fake.requests, jc.DeepEquals, []string{
		"PUT /v1/secret/data/rootstore/" + encoded,
	})
}

func (s *hashiVaultSuite) TestCustomMountAndPrefix(c *gc.C) {
	storage, err := hashivault.New(hashivault.Config{
		Address:   s.server.URL,
		Token:     "test-token",
		MountPath: "secret",
		Prefix:    "/clients/alpha/",
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(storage.Set("x", "y"), jc.ErrorIsNil)
	c.Assert(s.fake.requests, jc.DeepEquals, []string{
		"PUT /v1/secret/data/clients/alpha/" + base64.RawURLEncoding.EncodeToString([]byte("x")),
	})
}

func (s *hashiVaultSuite) TestPermissionDenied(c *gc.C) {
	s.fake.status = http.StatusForbidden

	_, err := s.storage.Get("https://example.org-bob")
	c.Assert(err, gc.NotNil)
	c.Assert(errors.Is(err, errors.NotFound), jc.IsFalse)
	c.Assert(s.storage.Set("https://example.org-bob", "hunter2"), gc.ErrorMatches, `(?s)cannot write secret .*permission denied.*`)
	c.Assert(s.storage.Delete("https://example.org-bob"), gc.ErrorMatches, `(?s)cannot delete secret .*permission denied.*`)
}
