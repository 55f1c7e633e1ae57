// Package assets turns content-relative paths into URLs anchored at the
// configured base path.
package assets

import (
	"regexp"
	"strings"
)

// absoluteURL matches http(s) URLs and protocol-relative URLs.
var absoluteURL = regexp.MustCompile(`(?i)^(https?:)?//`)

// Resolver prefixes relative asset paths with a base path.
type Resolver struct {
	base string
}

// NewResolver returns a resolver for base. An empty base means "/". The base
// is normalized to end with exactly one slash.
func NewResolver(base string) Resolver {
	if base == "" {
		base = "/"
	}
	base = strings.TrimRight(base, "/") + "/"
	return Resolver{base: base}
}

// Base returns the normalized base path.
func (r Resolver) Base() string {
	if r.base == "" {
		return "/"
	}
	return r.base
}

// Resolve returns path unchanged when it is empty, absolute, or a data: or
// blob: URL. Anything else is joined onto the base with a single leading
// slash stripped. Resolve never fails; malformed input is simply joined.
func (r Resolver) Resolve(path string) string {
	if path == "" {
		return path
	}
	if absoluteURL.MatchString(path) {
		return path
	}
	if strings.HasPrefix(path, "data:") || strings.HasPrefix(path, "blob:") {
		return path
	}
	return r.Base() + strings.TrimPrefix(path, "/")
}
