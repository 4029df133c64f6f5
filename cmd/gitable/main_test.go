package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hairyhenderson/go-gitable/internal/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(context.Background(), args, stdout, stderr)

	return stdout.String(), stderr.String(), err
}

func TestParse(t *testing.T) {
	out, _, err := runCmd(t, "parse", "git@github.com:martinemde/gitable.git")
	require.NoError(t, err)
	assert.Equal(t, `locator:         git@github.com:martinemde/gitable.git
kind:            scp
inferred scheme: ssh
user:            git
host:            github.com
path:            martinemde/gitable.git
project name:    gitable
web URL:         https://github.com/martinemde/gitable
github:          true
ssh:             true
authenticated:   true
interactive:     false
`, out)
}

func TestParse_JSON(t *testing.T) {
	out, _, err := runCmd(t, "parse", "-o", "json",
		"https://user@Example.com:8443/a/../repo.git", "/srv/repo")
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewBufferString(out))

	info := locatorInfo{}
	require.NoError(t, dec.Decode(&info))
	assert.Equal(t, locatorInfo{
		Locator:        "https://user@Example.com:8443/a/../repo.git",
		Kind:           "standard",
		Scheme:         "https",
		InferredScheme: "https",
		User:           "user",
		Host:           "example.com",
		Port:           "8443",
		Path:           "/repo.git",
		ProjectName:    "repo",
		WebURL:         "https://example.com:8443/repo",
		Authenticated:  true,
		Interactive:    true,
	}, info)

	info = locatorInfo{}
	require.NoError(t, dec.Decode(&info))
	assert.Equal(t, "file", info.InferredScheme)
	assert.Empty(t, info.WebURL)
}

func TestParse_YAML(t *testing.T) {
	out, _, err := runCmd(t, "parse", "--output=yaml", "git@github.com:martinemde/gitable.git")
	require.NoError(t, err)

	info := locatorInfo{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &info))
	assert.Equal(t, "scp", info.Kind)
	assert.Equal(t, "martinemde/gitable.git", info.Path)
	assert.True(t, info.GitHub)
}

func TestParse_Errors(t *testing.T) {
	_, _, err := runCmd(t, "parse", "@:/path")
	require.EqualError(t, err, "Hostname segment missing: '@:/path'")

	_, _, err = runCmd(t, "parse", "")
	require.Error(t, err)

	_, _, err = runCmd(t, "parse")
	require.Error(t, err)

	_, _, err = runCmd(t, "parse", "-o", "xml", "repo")
	require.EqualError(t, err, `unsupported output format "xml"`)

	_, _, err = runCmd(t, "parse", "--log-level", "loud", "repo")
	require.Error(t, err)
}

func TestEquivalent(t *testing.T) {
	out, _, err := runCmd(t, "equivalent",
		"git@github.com:martinemde/gitable.git", "https://martinemde@github.com/martinemde/gitable.git")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, _, err = runCmd(t, "equivalent", "alice@host.com:a/b.git", "bob@host.com:a/b.git")

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.code)
	assert.Equal(t, "false\n", out)

	out, _, err = runCmd(t, "-o", "json", "equivalent", "git://host.com/a/b.git", "git://host.com/a/b.git/")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestWeb(t *testing.T) {
	out, _, err := runCmd(t, "web", "git@github.com:martinemde/gitable.git")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/martinemde/gitable\n", out)

	out, _, err = runCmd(t, "web", "--scheme=http", "git://github.com/martinemde/gitable.git")
	require.NoError(t, err)
	assert.Equal(t, "http://github.com/martinemde/gitable\n", out)

	_, _, err = runCmd(t, "web", "/srv/repo.git")
	require.Error(t, err)
}

func TestWeb_Env(t *testing.T) {
	t.Setenv("GITABLE_SCHEME", "http")
	t.Setenv("GITABLE_OUTPUT", "json")

	out, _, err := runCmd(t, "web", "git@github.com:martinemde/gitable.git")
	require.NoError(t, err)
	assert.Equal(t, "\"http://github.com/martinemde/gitable\"\n", out)
}

func TestHeuristic(t *testing.T) {
	out, stderr, err := runCmd(t, "--log-level=debug", "heuristic",
		"http://github.com:martinemde/gitable", "github.com/martinemde/gitable")
	require.NoError(t, err)
	assert.Equal(t, `git://github.com/martinemde/gitable.git
http://github.com/martinemde/gitable.git
`, out)
	assert.Contains(t, stderr, "heuristic parse")
}

func setupRepoDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte(tests.GitConfig(
		tests.Remote{Name: "origin", URLs: []string{"git@github.com:martinemde/gitable.git"}},
		tests.Remote{Name: "upstream", URLs: []string{"https://github.com/hairyhenderson/go-gitable"}},
	)), 0o644))

	return dir
}

func TestRemotes(t *testing.T) {
	dir := setupRepoDir(t)

	out, _, err := runCmd(t, "remotes", dir)
	require.NoError(t, err)
	assert.Equal(t, `origin   git@github.com:martinemde/gitable.git        scp
upstream https://github.com/hairyhenderson/go-gitable standard
`, out)

	out, _, err = runCmd(t, "remotes", "--match", "https://github.com/martinemde/gitable", dir)
	require.NoError(t, err)
	assert.Equal(t, "origin\n", out)

	_, _, err = runCmd(t, "remotes", "--match", "https://gitlab.com/martinemde/gitable", dir)

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)

	out, _, err = runCmd(t, "remotes", "-o", "yaml", dir)
	require.NoError(t, err)

	list := []remoteInfo{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &list))
	assert.Equal(t, []remoteInfo{
		{Name: "origin", URLs: []string{"git@github.com:martinemde/gitable.git"}, Kind: "scp"},
		{Name: "upstream", URLs: []string{"https://github.com/hairyhenderson/go-gitable"}, Kind: "standard"},
	}, list)
}

func TestRemotes_NotARepo(t *testing.T) {
	_, _, err := runCmd(t, "remotes", t.TempDir())
	assert.Error(t, err)
}
