package gitable

import (
	"strings"

	"github.com/hairyhenderson/go-gitable/internal/uri"
)

// ScpLocator is an scp-style Locator: "[user@]host:path", with no scheme and
// no port. The path may be relative ("host:repo.git", usually relative to the
// user's home directory) or absolute ("host:/srv/repo.git"), and keeps that
// form through parsing, mutation and rendering.
type ScpLocator struct {
	components
}

var _ Locator = (*ScpLocator)(nil)

func newScpLocator(authority, p string) (*ScpLocator, error) {
	u := &uri.URI{}
	if err := u.SetAuthority(authority); err != nil {
		return nil, invalidLocator(err)
	}

	l := &ScpLocator{components{u: u}}
	l.setPath(p)

	return l, l.validate()
}

func (l *ScpLocator) Kind() Kind { return KindSCP }

// String renders the locator as "authority:path" from the normalized
// components.
func (l *ScpLocator) String() string {
	return l.u.NormalizedAuthority() + ":" + l.u.NormalizedPath()
}

func (l *ScpLocator) GoString() string {
	return "<ScpLocator " + l.String() + ">"
}

func (l *ScpLocator) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// InferredScheme is always "ssh".
func (l *ScpLocator) InferredScheme() string { return "ssh" }

func (l *ScpLocator) IsSSH() bool { return true }
func (l *ScpLocator) IsSCP() bool { return true }

func (l *ScpLocator) IsAuthenticated() bool { return true }

// IsInteractiveAuthenticated is always false, since SSH doesn't prompt for
// passwords in the way HTTP authentication does.
func (l *ScpLocator) IsInteractiveAuthenticated() bool { return false }

// SetPath replaces the path, keeping it relative if p is relative.
func (l *ScpLocator) SetPath(p string) error {
	l.setPath(p)

	return l.validate()
}

func (l *ScpLocator) setPath(p string) {
	l.u.SetPath(p)

	if !strings.HasPrefix(p, "/") {
		l.u.SetRawPath(strings.TrimPrefix(l.u.Path(), "/"))
	}
}

func (l *ScpLocator) SetBasename(base string) error {
	return setBasename(l, base)
}

func (l *ScpLocator) SetExtname(ext string) error {
	return setExtname(l, ext)
}

func (l *ScpLocator) SetGitExtname() error {
	return l.SetExtname("git")
}

func (l *ScpLocator) Equivalent(other any) bool {
	return Equivalent(l, other)
}

func (l *ScpLocator) Clone() Locator {
	return &ScpLocator{components{u: l.u.Clone()}}
}

func (l *ScpLocator) validate() error {
	invalid := func(reason string) error {
		return &InvalidLocatorError{Reason: reason, Locator: l.String()}
	}

	switch {
	case l.u.Host() == "":
		return invalid("Hostname segment missing")
	case l.u.Scheme() != "":
		return invalid("Scp style URI must not have a scheme")
	case l.u.Port() != "":
		return invalid("Scp style URI cannot have a port")
	case l.u.Path() == "":
		return invalid("Absolute URI missing hierarchical segment")
	}

	return nil
}
