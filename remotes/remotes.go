// Package remotes reads the remotes of a local git repository as locators.
package remotes

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/config"
	gitable "github.com/hairyhenderson/go-gitable"
	"github.com/sirupsen/logrus"
)

// Remote is a named remote from a git config.
type Remote struct {
	Name string
	// URLs as given in the config, in order
	URLs []string
	// Locators parsed from URLs. URLs that aren't valid locators are omitted.
	Locators []gitable.Locator
	// Fetch refspecs
	Fetch []string
}

// Matches reports whether any of the remote's locators is equivalent to
// target, which may be anything gitable.Parse accepts.
func (r Remote) Matches(target any) bool {
	for _, l := range r.Locators {
		if l.Equivalent(target) {
			return true
		}
	}

	return false
}

// Remotes is a list of remotes, sorted by name.
type Remotes []Remote

// Names returns the names of all remotes, sorted.
func (rs Remotes) Names() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}

	return names
}

// Get returns the remote with the given name.
func (rs Remotes) Get(name string) (Remote, bool) {
	i, ok := slices.BinarySearchFunc(rs, name, func(r Remote, name string) int {
		return strings.Compare(r.Name, name)
	})
	if !ok {
		return Remote{}, false
	}

	return rs[i], true
}

// Find returns the first remote with a locator equivalent to target.
func (rs Remotes) Find(target any) (Remote, bool) {
	for _, r := range rs {
		if r.Matches(target) {
			return r, true
		}
	}

	return Remote{}, false
}

// Read decodes a git config file and returns its remotes.
func Read(r io.Reader) (Remotes, error) {
	cfg, err := config.ReadConfig(r)
	if err != nil {
		return nil, fmt.Errorf("read git config: %w", err)
	}

	rs := make(Remotes, 0, len(cfg.Remotes))

	for name, rc := range cfg.Remotes {
		remote := Remote{Name: name, URLs: rc.URLs}

		for _, spec := range rc.Fetch {
			remote.Fetch = append(remote.Fetch, spec.String())
		}

		for _, u := range rc.URLs {
			l, err := gitable.Parse(u)
			if err != nil || l == nil {
				logrus.WithFields(logrus.Fields{
					"remote": name,
					"url":    u,
				}).WithError(err).Debug("skipping remote URL")

				continue
			}

			remote.Locators = append(remote.Locators, l)
		}

		rs = append(rs, remote)
	}

	slices.SortFunc(rs, func(a, b Remote) int {
		return strings.Compare(a.Name, b.Name)
	})

	return rs, nil
}

// configPaths are the locations of the config file, relative to the root of a
// repository's work tree, or of a bare repository.
var configPaths = []string{".git/config", "config"}

// Open reads the remotes of the repository rooted at fsys. Both bare and
// non-bare repositories are supported.
func Open(fsys billy.Filesystem) (Remotes, error) {
	for _, p := range configPaths {
		f, err := fsys.Open(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("open %s: %w", p, err)
		}

		logrus.WithField("path", fsys.Join(fsys.Root(), p)).Debug("reading git config")

		rs, err := Read(f)
		_ = f.Close()

		return rs, err
	}

	return nil, fmt.Errorf("no git config found in %s: %w", fsys.Root(), fs.ErrNotExist)
}
