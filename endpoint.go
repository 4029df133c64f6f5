package gitable

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Endpoint converts l to a go-git transport endpoint, suitable for cloning
// or fetching with go-git. A "git+" scheme prefix (as in "git+ssh://") is
// removed, since go-git selects the transport by the remainder.
func Endpoint(l Locator) (*transport.Endpoint, error) {
	if l == nil {
		return nil, errors.New("endpoint: nil locator")
	}

	if l.IsSCP() {
		// go-git only recognises scp-style addresses with a "/" in the
		// path, so the endpoint is built directly
		return &transport.Endpoint{
			Protocol: "ssh",
			User:     unescape(l.User()),
			Password: unescape(l.Password()),
			Host:     strings.Trim(unescape(l.NormalizedHost()), "[]"),
			Port:     22,
			Path:     l.Path(),
		}, nil
	}

	s := l.String()

	if scheme := l.NormalizedScheme(); strings.HasPrefix(scheme, "git+") {
		s = strings.TrimPrefix(scheme, "git+") + s[len(l.Scheme()):]
	}

	return transport.NewEndpoint(s)
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}

	return s
}
