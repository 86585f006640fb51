// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package rooturi turns user supplied root server addresses into the
// canonical form used as the basis of every stored key.
package rooturi

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	httpScheme  = "http://"
	httpsScheme = "https://"
)

// URI is a canonical root server address. It is percent-encoded and
// carries exactly one scheme prefix.
type URI string

// String implements fmt.Stringer.
func (u URI) String() string {
	return string(u)
}

// IsSecure reports whether the URI uses https.
func (u URI) IsSecure() bool {
	return strings.HasPrefix(string(u), httpsScheme)
}

// Host returns the URI without its scheme prefix.
func (u URI) Host() string {
	rest, _ := splitScheme(string(u))
	return rest
}

// CanonicalizeDefault canonicalizes raw, requiring SSL when no scheme
// was given.
func CanonicalizeDefault(raw string) URI {
	return Canonicalize(raw, true)
}

// Canonicalize percent-encodes raw and gives it a single scheme prefix.
// An explicit https:// is kept; an explicit http:// is kept even when
// sslRequired is set. Without a scheme, https:// is used when sslRequired
// is true and http:// otherwise.
//
// Canonicalize is idempotent: canonicalizing a URI yields the same URI.
// Blank input yields the empty URI.
func Canonicalize(raw string, sslRequired bool) URI {
	raw = norm.NFC.String(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}
	rest, scheme := splitScheme(escape(raw))
	if scheme == httpsScheme || (scheme == "" && sslRequired) {
		return URI(httpsScheme + rest)
	}
	return URI(httpScheme + rest)
}

// splitScheme strips one leading http:// or https://, matched without
// regard to case, and returns the remainder with the lower-cased scheme.
func splitScheme(s string) (string, string) {
	for _, scheme := range []string{httpsScheme, httpScheme} {
		if len(s) >= len(scheme) && strings.EqualFold(s[:len(scheme)], scheme) {
			return s[len(scheme):], scheme
		}
	}
	return s, ""
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes every byte outside the URL query allowed set.
// Well formed escapes already present are kept, with their hex digits
// upper-cased, so that escaping twice is the same as escaping once.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte('%')
			b.WriteByte(upper(s[i+1]))
			b.WriteByte(upper(s[i+2]))
			i += 2
		case queryAllowed(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

func queryAllowed(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!$&'()*+,-./:;=?@_~", c) >= 0
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'f' {
		return c - ('a' - 'A')
	}
	return c
}
