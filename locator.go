package gitable

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/hairyhenderson/go-gitable/internal/uri"
)

// Kind identifies the family a Locator belongs to.
type Kind int

const (
	// KindStandard locators are URIs with a scheme, or local paths
	KindStandard Kind = iota
	// KindSCP locators are scp-style addresses ("user@host:path")
	KindSCP
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindSCP:
		return "scp"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Locator identifies a git repository. It is implemented by
// *StandardLocator and *ScpLocator, and created with Parse or HeuristicParse.
//
// The raw accessors (Scheme, User, Path, etc...) return components as they
// were given, and the Normalized accessors return them in canonical form
// (case-folded scheme and host, consistent percent-encoding, default ports
// elided).
//
// A Locator is mutable through its Set methods, which validate the result.
// When a Set method returns an error the Locator has already been changed and
// should be discarded. Locators are not safe for concurrent mutation.
type Locator interface {
	fmt.Stringer
	fmt.GoStringer

	// MarshalText returns the same text as String
	MarshalText() ([]byte, error)

	Kind() Kind

	Scheme() string
	User() string
	Password() string
	Host() string
	Port() string
	Path() string
	Query() string
	Fragment() string

	// HasUser reports whether userinfo is present, even if empty
	HasUser() bool
	// HasPassword reports whether a password is present, even if empty
	HasPassword() bool

	NormalizedScheme() string
	NormalizedUser() string
	NormalizedPassword() string
	NormalizedHost() string
	NormalizedPort() string
	NormalizedPath() string
	NormalizedAuthority() string

	// InferredScheme is the scheme git will use to fetch the repository,
	// which may differ from Scheme when none is given.
	InferredScheme() string

	// IsGitHub reports whether the host is github.com or a subdomain.
	IsGitHub() bool
	// IsSSH reports whether the repository is fetched over SSH.
	IsSSH() bool
	// IsSCP reports whether this is an scp-style locator.
	IsSCP() bool
	// IsAuthenticated reports whether fetching will require authentication.
	IsAuthenticated() bool
	// IsInteractiveAuthenticated reports whether git is expected to prompt
	// for a password: the locator names a user but no password, and doesn't
	// use SSH.
	IsInteractiveAuthenticated() bool

	// Basename is the last path segment, or "" for a root path.
	Basename() string
	// Extname is the part of the basename after the last ".", without the
	// ".". A leading dot does not start an extension.
	Extname() string
	// ProjectName is the basename without a ".git" extension.
	ProjectName() string

	// WebURL returns the URL of the repository's web page, using the given
	// scheme ("https" if empty). Returns nil when there's no host.
	WebURL(scheme string) *url.URL

	SetPath(p string) error
	SetBasename(base string) error
	SetExtname(ext string) error
	SetGitExtname() error

	// Equivalent reports whether other locates the same repository. See the
	// package-level Equivalent.
	Equivalent(other any) bool

	// Clone returns a deep copy.
	Clone() Locator
}

var githubHostRegexp = regexp.MustCompile(`(^|\.)github\.com$`)

// components holds the state and accessors shared by both locator variants.
type components struct {
	u *uri.URI
}

func (c components) Scheme() string   { return c.u.Scheme() }
func (c components) User() string     { return c.u.User() }
func (c components) Password() string { return c.u.Password() }
func (c components) Host() string     { return c.u.Host() }
func (c components) Port() string     { return c.u.Port() }
func (c components) Path() string     { return c.u.Path() }
func (c components) Query() string    { return c.u.Query() }
func (c components) Fragment() string { return c.u.Fragment() }

func (c components) HasUser() bool     { return c.u.HasUser() }
func (c components) HasPassword() bool { return c.u.HasPassword() }

func (c components) NormalizedScheme() string    { return c.u.NormalizedScheme() }
func (c components) NormalizedUser() string      { return c.u.NormalizedUser() }
func (c components) NormalizedPassword() string  { return c.u.NormalizedPassword() }
func (c components) NormalizedHost() string      { return c.u.NormalizedHost() }
func (c components) NormalizedPort() string      { return c.u.NormalizedPort() }
func (c components) NormalizedPath() string      { return c.u.NormalizedPath() }
func (c components) NormalizedAuthority() string { return c.u.NormalizedAuthority() }

func (c components) IsGitHub() bool {
	return githubHostRegexp.MatchString(c.u.NormalizedHost())
}

func (c components) Basename() string {
	base := c.u.Basename()

	// "/" and "//" have no basename
	if base == "/" {
		return ""
	}

	return base
}

func (c components) Extname() string {
	base := c.Basename()

	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}

	return base[i+1:]
}

func (c components) ProjectName() string {
	return strings.TrimSuffix(c.Basename(), ".git")
}

func (c components) WebURL(scheme string) *url.URL {
	host := c.u.NormalizedHost()
	if host == "" {
		return nil
	}

	if scheme == "" {
		scheme = "https"
	}

	// url.URL escapes Host and Path itself
	if h, err := url.PathUnescape(host); err == nil {
		host = h
	}

	if port := c.u.NormalizedPort(); port != "" {
		host += ":" + port
	}

	rawPath := trimGitSuffix(c.u.NormalizedPath())
	if !strings.HasPrefix(rawPath, "/") {
		rawPath = "/" + rawPath
	}

	p, err := url.PathUnescape(rawPath)
	if err != nil {
		p = rawPath
	}

	return &url.URL{Scheme: scheme, Host: host, Path: p, RawPath: rawPath}
}

// trimGitSuffix removes a trailing ".git" or ".git/"
func trimGitSuffix(p string) string {
	if trimmed, ok := strings.CutSuffix(p, ".git/"); ok {
		return trimmed
	}

	return strings.TrimSuffix(p, ".git")
}

// pathSetter is the part of a Locator the basename and extname setters need.
// Each variant supplies its own SetPath.
type pathSetter interface {
	Path() string
	Basename() string
	SetPath(p string) error
}

func setBasename(l pathSetter, base string) error {
	current := l.Basename()
	p := l.Path()

	if current == "" {
		return l.SetPath(p + base)
	}

	i := strings.LastIndex(p, current)

	return l.SetPath(p[:i] + base + p[i+len(current):])
}

func setExtname(l pathSetter, ext string) error {
	base := l.Basename()
	if base == "" {
		return nil
	}

	stem := strings.TrimSuffix(base, ".git")

	return setBasename(l, stem+"."+strings.TrimLeft(ext, "."))
}
