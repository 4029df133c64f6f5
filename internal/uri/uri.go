// Package uri is a small RFC 3986 URI implementation. Unlike net/url it keeps
// the textual form of every component as given, so that a value re-renders
// exactly as it was parsed, and it offers normalized views of each component
// alongside.
//
// Strings such as "git@example.com:repo.git" are accepted: the leading token
// is not a valid scheme, so the whole string becomes a relative path with no
// host. Callers are expected to recognise such shapes themselves.
package uri

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// the RFC 3986 appendix B grammar
var (
	uriRegexp    = regexp.MustCompile(`(?s)^(([^:/?#]+):)?(//([^/?#]*))?([^?#]*)(\?([^#]*))?(#(.*))?$`)
	schemeRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*$`)
)

// URI is a parsed URI reference. The zero value is an empty relative
// reference.
type URI struct {
	scheme   string
	user     string
	password string
	host     string
	port     string
	path     string
	query    string
	fragment string

	hasAuthority bool
	hasUser      bool
	hasPassword  bool
	hasQuery     bool
	hasFragment  bool
}

// Error is returned when a string can't be parsed, or when a URI's components
// don't form a valid URI.
type Error struct {
	Reason string
	URI    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: '%s'", e.Reason, e.URI)
}

// Parse splits s into its components. Only the authority is checked here (a
// port must be numeric); use Validate to check the URI as a whole.
func Parse(s string) (*URI, error) {
	m := uriRegexp.FindStringSubmatchIndex(s)
	if m == nil {
		return nil, &Error{Reason: "Cannot parse URI", URI: s}
	}

	group := func(n int) (string, bool) {
		if m[2*n] < 0 {
			return "", false
		}

		return s[m[2*n]:m[2*n+1]], true
	}

	u := &URI{}

	scheme, hasScheme := group(2)
	authority, hasAuthority := group(4)
	u.path, _ = group(5)
	u.query, u.hasQuery = group(7)
	u.fragment, u.hasFragment = group(9)

	switch {
	case hasScheme && !schemeRegexp.MatchString(scheme):
		// not a scheme after all, so everything up to the query is path
		u.path = s[:m[11]]
	case hasScheme:
		u.scheme = scheme

		fallthrough
	default:
		if hasAuthority {
			if err := u.SetAuthority(authority); err != nil {
				return nil, &Error{Reason: "Invalid port number", URI: s}
			}
		}
	}

	return u, nil
}

// Clone returns a copy of u.
func (u *URI) Clone() *URI {
	c := *u

	return &c
}

func (u *URI) Scheme() string   { return u.scheme }
func (u *URI) User() string     { return u.user }
func (u *URI) Password() string { return u.password }
func (u *URI) Host() string     { return u.host }
func (u *URI) Port() string     { return u.port }
func (u *URI) Path() string     { return u.path }
func (u *URI) Query() string    { return u.query }
func (u *URI) Fragment() string { return u.fragment }

// HasAuthority reports whether u has an authority component, even an empty
// one (as in "file:///path").
func (u *URI) HasAuthority() bool { return u.hasAuthority }

// HasUser reports whether a userinfo component was present, even if empty.
func (u *URI) HasUser() bool { return u.hasUser }

// HasPassword reports whether the userinfo contained a password, even if
// empty.
func (u *URI) HasPassword() bool { return u.hasPassword }

// Authority renders the authority component as given.
func (u *URI) Authority() string {
	if !u.hasAuthority {
		return ""
	}

	var b strings.Builder

	if u.hasUser {
		b.WriteString(u.user)

		if u.hasPassword {
			b.WriteByte(':')
			b.WriteString(u.password)
		}

		b.WriteByte('@')
	}

	b.WriteString(u.host)

	if u.port != "" {
		b.WriteByte(':')
		b.WriteString(u.port)
	}

	return b.String()
}

// SetAuthority replaces the userinfo, host and port. An error is returned if
// the port is not numeric; the other components are set regardless.
func (u *URI) SetAuthority(authority string) error {
	u.hasAuthority = true
	u.user, u.password = "", ""
	u.hasUser, u.hasPassword = false, false

	hostport := authority
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		u.hasUser = true
		u.user, u.password, u.hasPassword = strings.Cut(authority[:i], ":")
		hostport = authority[i+1:]
	}

	u.host, u.port = splitHostPort(hostport)

	if !isDigits(u.port) {
		return &Error{Reason: "Invalid port number", URI: authority}
	}

	return nil
}

// SetPath sets the path. When u has an authority, a leading "/" is added to
// non-empty relative paths, since a path following an authority must be
// absolute.
func (u *URI) SetPath(p string) {
	if u.hasAuthority && p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	u.path = p
}

// SetRawPath sets the path verbatim.
func (u *URI) SetRawPath(p string) {
	u.path = p
}

// Basename returns the last element of the path, ignoring trailing slashes.
// A root path has the basename "/".
func (u *URI) Basename() string {
	if u.path == "" {
		return ""
	}

	return path.Base(u.path)
}

// String renders u from its components as given.
func (u *URI) String() string {
	var b strings.Builder

	if u.scheme != "" {
		b.WriteString(u.scheme)
		b.WriteByte(':')
	}

	if u.hasAuthority {
		b.WriteString("//")
		b.WriteString(u.Authority())
	}

	b.WriteString(u.path)

	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.query)
	}

	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}

	return b.String()
}

// Validate checks that the components of u form a valid URI.
func (u *URI) Validate() error {
	invalid := func(reason string) error {
		return &Error{Reason: reason, URI: u.String()}
	}

	if u.scheme != "" && IPBased(u.scheme) && u.host == "" && u.path == "" {
		return invalid("Absolute URI missing hierarchical segment")
	}

	if u.host == "" && (u.port != "" || u.hasUser || u.hasPassword) {
		return invalid("Hostname not supplied")
	}

	if !u.hasAuthority && strings.HasPrefix(u.path, "//") {
		return invalid("Cannot have a path with two leading slashes without an authority set")
	}

	if u.host != "" && u.path != "" && !strings.HasPrefix(u.path, "/") {
		return invalid("Cannot have a relative path with an authority set")
	}

	if strings.ContainsAny(u.host, " \t\r\n<>\\^`{|}") {
		return invalid("Invalid character in host")
	}

	if !isDigits(u.port) {
		return invalid("Invalid port number")
	}

	return nil
}

func splitHostPort(hostport string) (host, port string) {
	// IPv6 literal
	if strings.HasPrefix(hostport, "[") {
		if i := strings.IndexByte(hostport, ']'); i >= 0 {
			return hostport[:i+1], strings.TrimPrefix(hostport[i+1:], ":")
		}
	}

	host, port, _ = strings.Cut(hostport, ":")

	return host, port
}

func isDigits(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
