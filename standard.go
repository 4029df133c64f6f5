package gitable

import (
	"strings"

	"github.com/hairyhenderson/go-gitable/internal/uri"
)

// StandardLocator is a Locator in URI form ("https://host/path",
// "ssh://user@host:22/path", "file:///path"), or a local path.
type StandardLocator struct {
	components
}

var _ Locator = (*StandardLocator)(nil)

func newStandardLocator(u *uri.URI) (*StandardLocator, error) {
	l := &StandardLocator{components{u: u}}

	return l, l.validate()
}

func (l *StandardLocator) Kind() Kind { return KindStandard }

func (l *StandardLocator) String() string {
	return l.u.String()
}

func (l *StandardLocator) GoString() string {
	return "<StandardLocator " + l.String() + ">"
}

func (l *StandardLocator) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// InferredScheme returns the normalized scheme, or "file" for local paths.
func (l *StandardLocator) InferredScheme() string {
	scheme := l.u.NormalizedScheme()
	if scheme == "" && l.u.NormalizedHost() == "" {
		return "file"
	}

	return scheme
}

// IsSSH reports whether the scheme is "ssh" or a variant such as "git+ssh".
func (l *StandardLocator) IsSSH() bool {
	return strings.Contains(l.u.NormalizedScheme(), "ssh")
}

func (l *StandardLocator) IsSCP() bool { return false }

func (l *StandardLocator) IsAuthenticated() bool {
	return l.IsSSH() || l.IsInteractiveAuthenticated()
}

func (l *StandardLocator) IsInteractiveAuthenticated() bool {
	return !l.IsSSH() && l.u.HasUser() && !l.u.HasPassword()
}

// SetPath replaces the path. A relative path is made absolute when the
// locator has a host.
func (l *StandardLocator) SetPath(p string) error {
	l.u.SetPath(p)

	return l.validate()
}

// SetBasename replaces the last path segment, or appends base to the path
// when there's no basename.
func (l *StandardLocator) SetBasename(base string) error {
	return setBasename(l, base)
}

// SetExtname gives the basename the extension ext, in place of any ".git"
// extension. Leading dots in ext are ignored. No-op when there's no basename.
func (l *StandardLocator) SetExtname(ext string) error {
	return setExtname(l, ext)
}

func (l *StandardLocator) SetGitExtname() error {
	return l.SetExtname("git")
}

func (l *StandardLocator) Equivalent(other any) bool {
	return Equivalent(l, other)
}

func (l *StandardLocator) Clone() Locator {
	return &StandardLocator{components{u: l.u.Clone()}}
}

func (l *StandardLocator) validate() error {
	return invalidLocator(l.u.Validate())
}
