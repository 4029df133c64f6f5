package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized(t *testing.T) {
	t.Parallel()

	data := []struct {
		in                       string
		scheme, user, host, port string
		path, authority          string
	}{
		{
			in:     "HTTPS://Example.COM:443/a/./b/../c",
			scheme: "https", host: "example.com", path: "/a/c", authority: "example.com",
		},
		{
			in:     "ssh://Git@Example.com:0022/repo.git",
			scheme: "ssh", user: "Git", host: "example.com", path: "/repo.git", authority: "Git@example.com",
		},
		{
			in:     "git+ssh://git@example.com:2222/%7euser/repo%2fx.git",
			scheme: "git+ssh", user: "git", host: "example.com", port: "2222",
			path: "/~user/repo%2Fx.git", authority: "git@example.com:2222",
		},
		{
			in:     "https://example.com",
			scheme: "https", host: "example.com", path: "/", authority: "example.com",
		},
		{
			in:     "https://bücher.example/repo",
			scheme: "https", host: "xn--bcher-kva.example", path: "/repo", authority: "xn--bcher-kva.example",
		},
		{
			in:     "https://ex%41mple.com/repo with space",
			scheme: "https", host: "example.com", path: "/repo%20with%20space", authority: "example.com",
		},
		{
			in:     "ssh://git@a%40b/repo",
			scheme: "ssh", user: "git", host: "a%40b", path: "/repo", authority: "git@a%40b",
		},
		{
			in:     "https://[::1]:8443/repo",
			scheme: "https", host: "[::1]", port: "8443", path: "/repo", authority: "[::1]:8443",
		},
		{
			in:   "../relative/./repo",
			path: "../relative/./repo",
		},
	}

	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			t.Parallel()

			u, err := Parse(d.in)
			require.NoError(t, err)

			assert.Equal(t, d.scheme, u.NormalizedScheme())
			assert.Equal(t, d.user, u.NormalizedUser())
			assert.Equal(t, d.host, u.NormalizedHost())
			assert.Equal(t, d.port, u.NormalizedPort())
			assert.Equal(t, d.path, u.NormalizedPath())
			assert.Equal(t, d.authority, u.NormalizedAuthority())
		})
	}
}

func TestEscapeHostDelims(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", escapeHostDelims("example.com"))
	assert.Equal(t, "a%40b", escapeHostDelims("a@b"))
	assert.Equal(t, "host%2Fx%3A1", escapeHostDelims("host/x:1"))
	assert.Equal(t, "a%20b%25", escapeHostDelims("a b%"))
}

func TestRemoveDotSegments(t *testing.T) {
	t.Parallel()

	data := []struct{ in, out string }{
		{"/a/b/c/./../../g", "/a/g"},
		{"mid/content=5/../6", "mid/6"},
		{"/a/b/..", "/a/"},
		{"/../a", "/a"},
		{"/", "/"},
		{"/a//b", "/a//b"},
	}

	for _, d := range data {
		assert.Equal(t, d.out, removeDotSegments(d.in), d.in)
	}
}

func TestNormalizeComponent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", normalizeComponent("%61%62c", isPathChar))
	assert.Equal(t, "%2F", normalizeComponent("%2f", isUserChar))
	assert.Equal(t, "%25zz", normalizeComponent("%zz", isPathChar))
	assert.Equal(t, "a%5Cb", normalizeComponent(`a\b`, isPathChar))
	assert.Equal(t, "%C3%BC", normalizeComponent("ü", isPathChar))
}

func TestDefaultPort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 22, DefaultPort("SSH"))
	assert.Equal(t, 443, DefaultPort("https"))
	assert.Equal(t, 0, DefaultPort("git+ssh"))
	assert.True(t, IPBased("git"))
	assert.False(t, IPBased("file"))
}
