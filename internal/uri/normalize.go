package uri

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// default ports for schemes with a host-based authority
//
//nolint:gochecknoglobals
var defaultPorts = map[string]int{
	"ftp":      21,
	"git":      9418,
	"gopher":   70,
	"http":     80,
	"https":    443,
	"ldap":     389,
	"nntp":     119,
	"prospero": 1525,
	"sftp":     22,
	"ssh":      22,
	"svn+ssh":  22,
	"telnet":   23,
	"tftp":     69,
	"wais":     210,
}

// DefaultPort returns the well-known port for the given scheme, or 0 if there
// isn't one.
func DefaultPort(scheme string) int {
	return defaultPorts[strings.ToLower(scheme)]
}

// IPBased reports whether URIs with this scheme address a host.
func IPBased(scheme string) bool {
	return DefaultPort(scheme) != 0
}

func (u *URI) NormalizedScheme() string {
	return strings.ToLower(u.scheme)
}

func (u *URI) NormalizedUser() string {
	return normalizeComponent(u.user, isUserChar)
}

func (u *URI) NormalizedPassword() string {
	return normalizeComponent(u.password, isPasswordChar)
}

// NormalizedHost returns the host lower-cased, with percent-encoding removed
// and internationalized names converted to their ASCII form. Escaped
// delimiters stay escaped, so that the host can't be mistaken for other
// components when rendered.
func (u *URI) NormalizedHost() string {
	if u.host == "" {
		return ""
	}

	if strings.HasPrefix(u.host, "[") {
		return strings.ToLower(u.host)
	}

	host, err := url.PathUnescape(u.host)
	if err != nil {
		host = u.host
	}

	host = strings.ToLower(host)

	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}

	return escapeHostDelims(host)
}

// escapeHostDelims percent-encodes the characters that delimit a host from
// the rest of a URI or scp-style address.
func escapeHostDelims(host string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder

	b.Grow(len(host))

	for i := range len(host) {
		c := host[i]

		if c > ' ' && c != 0x7f && strings.IndexByte(":/?#[]@%", c) < 0 {
			b.WriteByte(c)

			continue
		}

		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}

	return b.String()
}

// NormalizedPort returns the port without leading zeroes, or "" when it is
// the default port for the scheme.
func (u *URI) NormalizedPort() string {
	if u.port == "" {
		return ""
	}

	n, err := strconv.Atoi(u.port)
	if err != nil {
		return u.port
	}

	if n == DefaultPort(u.scheme) {
		return ""
	}

	return strconv.Itoa(n)
}

// NormalizedPath returns the path with consistent percent-encoding. Dot
// segments are removed from absolute paths only; a relative path may be
// relative to something outside of the URI (such as a home directory), so
// leading ".." segments are meaningful.
func (u *URI) NormalizedPath() string {
	p := normalizeComponent(u.path, isPathChar)

	if strings.HasPrefix(p, "/") {
		p = removeDotSegments(p)
	}

	if p == "" && u.scheme != "" && u.host != "" {
		p = "/"
	}

	return p
}

// NormalizedAuthority renders the authority from its normalized components.
func (u *URI) NormalizedAuthority() string {
	if !u.hasAuthority {
		return ""
	}

	var b strings.Builder

	if u.hasUser {
		b.WriteString(u.NormalizedUser())

		if u.hasPassword {
			b.WriteByte(':')
			b.WriteString(u.NormalizedPassword())
		}

		b.WriteByte('@')
	}

	b.WriteString(u.NormalizedHost())

	if port := u.NormalizedPort(); port != "" {
		b.WriteByte(':')
		b.WriteString(port)
	}

	return b.String()
}

// normalizeComponent decodes percent-encoded unreserved characters, upper-cases
// the remaining escapes, and encodes characters that aren't allowed.
func normalizeComponent(s string, allowed func(byte) bool) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			d := unhex(s[i+1])<<4 | unhex(s[i+2])
			if isUnreserved(d) {
				b.WriteByte(d)
			} else {
				b.WriteByte('%')
				b.WriteByte(hex[d>>4])
				b.WriteByte(hex[d&0x0f])
			}

			i += 2
		case c != '%' && allowed(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}

	return b.String()
}

// removeDotSegments implements RFC 3986 section 5.2.4
func removeDotSegments(p string) string {
	out := []string{}

	pop := func() {
		if len(out) > 0 {
			out = out[:len(out)-1]
		}
	}

	for p != "" {
		switch {
		case strings.HasPrefix(p, "../"):
			p = p[3:]
		case strings.HasPrefix(p, "./"):
			p = p[2:]
		case strings.HasPrefix(p, "/./"):
			p = p[2:]
		case p == "/.":
			p = "/"
		case strings.HasPrefix(p, "/../"):
			p = p[3:]

			pop()
		case p == "/..":
			p = "/"

			pop()
		case p == "." || p == "..":
			p = ""
		default:
			i := strings.IndexByte(p[1:], '/')
			if i < 0 {
				out = append(out, p)
				p = ""
			} else {
				out = append(out, p[:i+1])
				p = p[i+1:]
			}
		}
	}

	return strings.Join(out, "")
}

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

func isSubDelim(c byte) bool {
	return strings.IndexByte("!$&'()*+,;=", c) >= 0
}

func isUserChar(c byte) bool     { return isUnreserved(c) || isSubDelim(c) }
func isPasswordChar(c byte) bool { return isUserChar(c) || c == ':' }
func isPathChar(c byte) bool     { return isUserChar(c) || c == ':' || c == '@' || c == '/' }

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
