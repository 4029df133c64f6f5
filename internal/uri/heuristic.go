package uri

import (
	"regexp"
	"strings"
)

// DefaultHeuristicScheme is the scheme given to URIs that look like they
// start with a hostname but have no scheme.
const DefaultHeuristicScheme = "http"

var (
	httpSlashRegexp = regexp.MustCompile(`(?i)^(https?):/+`)
	fileSlashRegexp = regexp.MustCompile(`(?i)^file:/+`)

	// "example.com:8080/repo"
	hostPortRegexp = regexp.MustCompile(`^[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+:[0-9]+(/|$)`)

	// "example.com/repo"
	hostPathRegexp = regexp.MustCompile(`^[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+/`)
)

// Heuristic makes a best-effort attempt at correcting common mistakes in
// hand-typed or copy-pasted URIs:
//
//   - surrounding whitespace is removed
//   - "http:/host" and "http:///host" become "http://host" (likewise https)
//   - "file:/path" and "file://path" become "file:///path"
//   - "//host/path" becomes "http://host/path", "/path" becomes "file:///path"
//   - backslashes in the authority become slashes, spaces become "%20"
//   - a scheme prefixed to an scp-style address, which leaves a non-numeric
//     "port" (as in "http://example.com:user/repo"), becomes a "git://" URI
//   - a leading hostname with no scheme ("example.com/repo") gets the
//     DefaultHeuristicScheme
//
// Anything else is returned unchanged.
func Heuristic(s string) string {
	s = strings.TrimSpace(s)

	switch {
	case httpSlashRegexp.MatchString(s):
		s = httpSlashRegexp.ReplaceAllString(s, "$1://")
	case fileSlashRegexp.MatchString(s):
		s = fileSlashRegexp.ReplaceAllString(s, "file:///")
	case strings.HasPrefix(s, "//"):
		s = DefaultHeuristicScheme + ":" + s
	case strings.HasPrefix(s, "/"):
		s = "file://" + s
	case hostPortRegexp.MatchString(s), hostPathRegexp.MatchString(s):
		s = DefaultHeuristicScheme + "://" + s
	}

	m := uriRegexp.FindStringSubmatchIndex(s)
	if m == nil || m[8] < 0 {
		return s
	}

	// m[8]:m[9] is the authority
	authority := s[m[8]:m[9]]
	fixed := strings.NewReplacer(`\`, "/", " ", "%20").Replace(authority)

	if fixed != authority {
		return Heuristic(s[:m[8]] + fixed + s[m[9]:])
	}

	if m[4] < 0 || !schemeRegexp.MatchString(s[m[4]:m[5]]) {
		return s
	}

	userinfo, hostport := "", authority
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		userinfo, hostport = authority[:i+1], authority[i+1:]
	}

	host, port := splitHostPort(hostport)
	if port == "" || isDigits(port) {
		return s
	}

	return "git://" + userinfo + host + "/" + port + s[m[9]:]
}

// HeuristicParse parses s after correcting it with Heuristic.
func HeuristicParse(s string) (*URI, error) {
	return Parse(Heuristic(s))
}
