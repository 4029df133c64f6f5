package gitable

import (
	"encoding"
	"errors"
	"fmt"
	"strings"

	"github.com/hairyhenderson/go-gitable/internal/uri"
)

// Parse parses a git repository locator. The input may be a string, a
// []byte, a fmt.Stringer or an encoding.TextMarshaler. Given a Locator, a
// copy is returned. Given nil or an empty string, Parse returns (nil, nil).
//
// Strings in scp-style ("git@example.com:repo.git") produce an *ScpLocator,
// everything else a *StandardLocator. Local paths are StandardLocators with
// no scheme or host.
//
// Errors match ErrConversion when the input has no textual form, and
// ErrInvalidLocator when the text isn't a valid locator.
func Parse(input any) (Locator, error) {
	if l, ok := input.(Locator); ok {
		return l.Clone(), nil
	}

	s, err := toText(input)
	if err != nil || s == "" {
		return nil, err
	}

	return parse(s)
}

// MustParse is like Parse but panics on error.
func MustParse(input any) Locator {
	l, err := Parse(input)
	if err != nil {
		panic(err)
	}

	return l
}

// ParseWhenValid is like Parse, but returns nil instead of an error.
func ParseWhenValid(input any) Locator {
	l, err := Parse(input)
	if errors.Is(err, ErrInvalidLocator) || errors.Is(err, ErrConversion) {
		return nil
	}

	return l
}

// HeuristicParse makes a best-effort attempt at parsing a mistyped or
// copy-pasted locator, fixing common mistakes in the scheme and slashes
// (e.g. "http:/example.com/repo"), and returning "git://" locators for scp
// addresses with a scheme prefixed ("http://example.com:user/repo").
//
// GitHub locators are given a ".git" extension.
//
// Given a Locator, HeuristicParse returns it as-is.
func HeuristicParse(input any) (Locator, error) {
	if l, ok := input.(Locator); ok {
		return l, nil
	}

	s, err := toText(input)
	if err != nil || s == "" {
		return nil, err
	}

	l, err := parse(uri.Heuristic(s))
	if err != nil {
		return nil, err
	}

	if l.IsGitHub() {
		if err := l.SetGitExtname(); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func toText(input any) (string, error) {
	switch v := input.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			return "", &ConversionError{Value: input, Err: err}
		}

		return string(b), nil
	default:
		return "", &ConversionError{Value: input}
	}
}

func parse(s string) (Locator, error) {
	u, err := uri.Parse(s)
	if err != nil {
		return nil, invalidLocator(err)
	}

	if u.Host() == "" {
		if authority, p, ok := splitSCP(s); ok {
			l, err := newScpLocator(authority, p)
			if err != nil {
				return nil, err
			}

			return l, nil
		}
	}

	l, err := newStandardLocator(u)
	if err != nil {
		return nil, err
	}

	return l, nil
}

// splitSCP splits an scp-style address into its authority and path. The
// address is "[user@]host:path", where the user is non-empty, the host has no
// "/", and the path is non-empty and doesn't start with "//" (which would
// make it a URI's authority). IPv6 hosts are bracketed ("[::1]:repo").
//
// Windows drive paths ("C:\dir", "C:/dir") are not scp-style addresses.
func splitSCP(s string) (authority, path string, ok bool) {
	if i := strings.IndexByte(s, ':'); i < 0 || strings.HasPrefix(s[i:], "://") {
		return "", "", false
	}

	if at := strings.IndexByte(s, '@'); at > 0 {
		if host, p, ok := splitHostPath(s[at+1:]); ok {
			return s[:at+1] + host, p, true
		}
	}

	host, p, ok := splitHostPath(s)
	if !ok || isDrivePath(host, p) {
		return "", "", false
	}

	return host, p, true
}

func splitHostPath(s string) (host, path string, ok bool) {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 || !strings.HasPrefix(s[end+1:], ":") {
			return "", "", false
		}

		host, path, ok = s[:end+1], s[end+2:], true
	} else {
		host, path, ok = strings.Cut(s, ":")
	}

	if !ok || host == "" || path == "" || strings.Contains(host, "/") || strings.HasPrefix(path, "//") {
		return "", "", false
	}

	return host, path, true
}

func isDrivePath(host, path string) bool {
	if len(host) != 1 {
		return false
	}

	c := host[0]
	letter := 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'

	return letter && (path[0] == '\\' || path[0] == '/')
}
