package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	r := NewResolver("/app/")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"https", "https://x/y", "https://x/y"},
		{"http upper case", "HTTP://x/y", "HTTP://x/y"},
		{"protocol relative", "//cdn.example.org/a.png", "//cdn.example.org/a.png"},
		{"data url", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"blob url", "blob:https://x/1234", "blob:https://x/1234"},
		{"root relative", "/img/a.png", "/app/img/a.png"},
		{"relative", "img/a.png", "/app/img/a.png"},
		{"only one slash stripped", "//img", "//img"},
		{"ftp is joined", "ftp://x/y", "/app/ftp://x/y"},
		{"relative dots", "../a.png", "/app/../a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.in))
		})
	}
}

func TestNewResolver_NormalizesBase(t *testing.T) {
	for base, want := range map[string]string{
		"":        "/",
		"/":       "/",
		"/app":    "/app/",
		"/app/":   "/app/",
		"/app///": "/app/",
		"site":    "site/",
	} {
		assert.Equal(t, want, NewResolver(base).Base(), "base %q", base)
	}

	assert.Equal(t, "/app/img/a.png", NewResolver("/app").Resolve("img/a.png"))
	assert.Equal(t, "/a.png", NewResolver("").Resolve("/a.png"))
}

func TestZeroResolver(t *testing.T) {
	var r Resolver
	assert.Equal(t, "/img/a.png", r.Resolve("img/a.png"))
}
